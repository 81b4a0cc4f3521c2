package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lysyi3m/reader-render/app/database"
	"github.com/lysyi3m/reader-render/app/render"
	"github.com/lysyi3m/reader-render/app/tasks"
	"github.com/lysyi3m/reader-render/app/theme"
)

const maxBodySize = 10 << 20

type Handler struct {
	renderer    RendererInterface
	extractor   ExtractorInterface
	parser      tasks.ItemParser
	scheduler   tasks.TaskSchedulerInterface
	renderStore database.RenderStore
	surfaces    *SurfaceRegistry
	upgrader    websocket.Upgrader
}

// NewHandler wires the HTTP handlers. renderStore may be nil when caching is
// disabled.
func NewHandler(renderer RendererInterface, extractor ExtractorInterface, parser tasks.ItemParser,
	scheduler tasks.TaskSchedulerInterface, renderStore database.RenderStore, surfaces *SurfaceRegistry) *Handler {
	return &Handler{
		renderer:    renderer,
		extractor:   extractor,
		parser:      parser,
		scheduler:   scheduler,
		renderStore: renderStore,
		surfaces:    surfaces,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"surfaces":  h.surfaces.Count(),
	}

	if h.renderStore != nil {
		if renderCount, err := h.renderStore.GetRenderCount(); err == nil {
			health["cached_renders"] = renderCount
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIRender(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid render request", "message": err.Error()})
		return
	}

	result, key, err := h.renderer.Render(c.Request.Context(), req.Item, req.Preferences)
	if err != nil {
		slog.Error("Render failed", "post_id", req.Item.PostID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Render failed"})
		return
	}

	c.Header("X-Render-Key", key)
	c.JSON(http.StatusOK, newRenderResponse(key, result))
}

func (h *Handler) APIRenderHTML(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid render request", "message": err.Error()})
		return
	}

	result, key, err := h.renderer.Render(c.Request.Context(), req.Item, req.Preferences)
	if err != nil {
		slog.Error("Render failed", "post_id", req.Item.PostID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Render-Key", key)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.HTML))
}

func (h *Handler) APIRenderArticle(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}

	data, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	item, err := h.extractor.Run(data, pageURL)
	if err != nil {
		slog.Warn("Article extraction failed", "url", pageURL, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Article extraction failed", "message": err.Error()})
		return
	}

	result, key, err := h.renderer.Render(c.Request.Context(), item, preferencesFromQuery(c))
	if err != nil {
		slog.Error("Render failed", "url", pageURL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Render failed"})
		return
	}

	c.Header("X-Render-Key", key)
	c.JSON(http.StatusOK, newRenderResponse(key, result))
}

func (h *Handler) APIPrerender(c *gin.Context) {
	data, err := readBody(c)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feed document required"})
		return
	}

	sourceName := c.DefaultQuery("source", "api")
	task := tasks.NewPrerenderFeedTask(sourceName, data, h.parser, h.renderer)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue PrerenderFeedTask", "source", sourceName, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to enqueue prerender", "message": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": task.GetID(),
		"source":  sourceName,
		"status":  "queued",
	})
}

func (h *Handler) APIGetRender(c *gin.Context) {
	key := c.Param("key")

	result, err := h.renderer.Cached(key)
	if err != nil {
		slog.Error("Database error", "operation", "get_render", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Render not found"})
		return
	}

	c.JSON(http.StatusOK, newRenderResponse(key, *result))
}

func (h *Handler) APICreateSurface(c *gin.Context) {
	session := h.surfaces.Create()

	c.JSON(http.StatusCreated, gin.H{
		"id":      session.ID,
		"socket":  "/api/surfaces/" + session.ID + "/ws",
		"handler": render.HandlerName,
	})
}

func (h *Handler) APISurfaceSocket(c *gin.Context) {
	session := h.surfaces.Get(c.Param("id"))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Surface not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("Surface socket upgrade failed", "surface", session.ID, "error", err)
		return
	}

	if err := session.Surface.Attach(conn); err != nil {
		conn.Close()
		return
	}

	slog.Debug("Surface client attached", "surface", session.ID)
	session.Surface.Serve(conn)
	slog.Debug("Surface client detached", "surface", session.ID)
}

func (h *Handler) APIRenderOnSurface(c *gin.Context) {
	session := h.surfaces.Get(c.Param("id"))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Surface not found"})
		return
	}

	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid render request", "message": err.Error()})
		return
	}

	generation := session.Pipeline.BeginRender(req.Item, h.renderer.Tokens(req.Preferences))
	if generation == 0 {
		c.JSON(http.StatusGone, gin.H{"error": "Surface closed"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"surface":    session.ID,
		"generation": generation,
	})
}

func (h *Handler) APIDeleteSurface(c *gin.Context) {
	if !h.surfaces.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Surface not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func readBody(c *gin.Context) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodySize {
		return nil, errors.New("request body too large")
	}
	return data, nil
}

func preferencesFromQuery(c *gin.Context) theme.Preferences {
	prefs := theme.Preferences{
		Theme:      c.Query("theme"),
		FontFamily: c.Query("font_family"),
	}
	if size, err := strconv.Atoi(c.Query("font_size")); err == nil {
		prefs.FontSize = size
	}
	return prefs
}
