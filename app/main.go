package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/reader-render/app/api"
	"github.com/lysyi3m/reader-render/app/cache"
	"github.com/lysyi3m/reader-render/app/cfg"
	"github.com/lysyi3m/reader-render/app/database"
	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/media"
	"github.com/lysyi3m/reader-render/app/render"
	"github.com/lysyi3m/reader-render/app/source"
	"github.com/lysyi3m/reader-render/app/tasks"
	"github.com/lysyi3m/reader-render/app/theme"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	log.Printf("Starting Reader Render server %s...", appCfg.Version)

	themes := theme.NewRegistry(appCfg.Theme, appCfg.FontFamily, appCfg.FontSize)
	if appCfg.ThemesFile != "" {
		if err := themes.LoadFile(appCfg.ThemesFile); err != nil {
			log.Fatal("Failed to load themes:", err)
		}
	}
	log.Printf("Loaded %d themes", len(themes.Themes()))

	var renderStore database.RenderStore
	switch {
	case appCfg.RedisURL != "":
		log.Println("Connecting to Redis render cache...")
		redisStore, err := cache.NewRedisStore(appCfg.RedisURL, cache.DefaultPrefix)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisStore.Close()
		log.Println("Connected to Redis successfully")

		renderStore = redisStore
	case appCfg.DBPath != "":
		log.Printf("Opening render cache at %s...", appCfg.DBPath)
		db, err := database.NewConnection(appCfg.DBPath)
		if err != nil {
			log.Fatal("Failed to open render cache:", err)
		}
		defer db.Close()

		migrationVersion, dirty, err := database.RunMigrations(db)
		if err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		log.Printf("Render cache ready (schema version %d, dirty: %t)", migrationVersion, dirty)

		renderStore = database.NewRenderRepository(db)
	default:
		log.Println("Render cache disabled (REDIS_URL and DB_PATH not set)")
	}

	metrics := display.NewMetrics(appCfg.DisplayWidth, appCfg.DisplayDensity,
		appCfg.MarginMedium, appCfg.MarginLarge, appCfg.DetailMargin)
	log.Printf("Display metrics: %dpx at %.3f density (wide: %t)", metrics.DisplayWidthPx, metrics.Density, metrics.IsWideDisplay)

	assembler := render.NewAssembler(metrics, media.NewPhotonResizer(appCfg.PhotonHost),
		render.StaticCSSURL(appCfg.StylesheetURL), appCfg.SupportScriptURL)
	renderService := render.NewService(assembler, themes, renderStore, appCfg.GetCacheTTL())

	log.Printf("Starting background scheduler with %d workers...", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(renderStore, appCfg.GetSchedulerInterval(), appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	surfaces := api.NewSurfaceRegistry(assembler)
	defer surfaces.CloseAll()

	apiHandler := api.NewHandler(renderService, source.NewArticleExtractor(), source.NewFeedParser(),
		scheduler, renderStore, surfaces)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Render:        http://localhost:%s/api/render", appCfg.Port)
		log.Printf("  Surfaces:      http://localhost:%s/api/surfaces", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Reader Render server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Surface sockets are hijacked connections and are not closed by Shutdown
	surfaces.CloseAll()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("Reader Render server shutdown complete")
}
