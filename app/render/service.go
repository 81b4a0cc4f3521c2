package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/reader-render/app/database"
	"github.com/lysyi3m/reader-render/app/theme"
)

// Service renders items with resolved reading preferences and caches the
// documents when a store is configured.
type Service struct {
	assembler *Assembler
	themes    *theme.Registry
	store     database.RenderStore
	ttl       time.Duration
}

// NewService creates a render service. A nil store disables caching.
func NewService(assembler *Assembler, themes *theme.Registry, store database.RenderStore, ttl time.Duration) *Service {
	return &Service{
		assembler: assembler,
		themes:    themes,
		store:     store,
		ttl:       ttl,
	}
}

func (s *Service) Assembler() *Assembler {
	return s.assembler
}

func (s *Service) Tokens(prefs theme.Preferences) theme.Tokens {
	return s.themes.Resolve(prefs)
}

// Render returns the document for item and its cache key. The key is empty
// when the inputs cannot be keyed; such renders skip the cache.
func (s *Service) Render(ctx context.Context, item ContentItem, prefs theme.Preferences) (RenderResult, string, error) {
	tokens := s.Tokens(prefs)

	key, err := CacheKey(item, tokens, s.assembler.Metrics())
	if err != nil {
		slog.Warn("Rendering without cache", "post_id", item.PostID, "error", err)
		result, err := s.assemble(ctx, item, tokens)
		return result, "", err
	}

	if cached, err := s.Cached(key); err != nil {
		slog.Warn("Failed to read render cache", "key", key, "error", err)
	} else if cached != nil {
		slog.Debug("Render cache hit", "key", key)
		// Gallery classes are per render, cached documents included.
		cached.HTML = ReplaceGalleryClass(cached.HTML, s.assembler.GalleryClass())
		return *cached, key, nil
	}

	result, err := s.assemble(ctx, item, tokens)
	if err != nil {
		return RenderResult{}, key, err
	}

	if s.store != nil {
		err := s.store.SaveRender(database.Render{
			Key:        key,
			HTML:       result.HTML,
			ScriptURLs: result.ScriptURLs,
			ExpiresAt:  time.Now().Add(s.ttl),
		})
		if err != nil {
			slog.Warn("Failed to store render", "key", key, "error", err)
		}
	}

	return result, key, nil
}

func (s *Service) assemble(ctx context.Context, item ContentItem, tokens theme.Tokens) (RenderResult, error) {
	result, err := s.assembler.Assemble(ctx, item, tokens)
	if err != nil {
		return RenderResult{}, fmt.Errorf("failed to render item: %w", err)
	}
	return result, nil
}

// Cached returns the cached document for key, or nil when there is none.
func (s *Service) Cached(key string) (*RenderResult, error) {
	if s.store == nil {
		return nil, nil
	}

	render, err := s.store.GetRender(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached render: %w", err)
	}
	if render == nil {
		return nil, nil
	}

	scripts := render.ScriptURLs
	if scripts == nil {
		scripts = []string{}
	}
	return &RenderResult{HTML: render.HTML, ScriptURLs: scripts}, nil
}
