package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/reader-render/app/render"
	"github.com/lysyi3m/reader-render/app/source"
	"github.com/lysyi3m/reader-render/app/theme"
)

type ItemParser interface {
	Run(data []byte) ([]render.ContentItem, error)
}

var _ ItemParser = (*source.FeedParser)(nil)

// PrerenderFeedTask renders every item of a feed document with the default
// preferences so later requests hit the cache.
type PrerenderFeedTask struct {
	Task
	data     []byte
	parser   ItemParser
	renderer Renderer
}

func NewPrerenderFeedTask(sourceName string, data []byte, parser ItemParser, renderer Renderer) *PrerenderFeedTask {
	return &PrerenderFeedTask{
		Task:     NewTask(TaskTypePrerenderFeed, sourceName),
		data:     data,
		parser:   parser,
		renderer: renderer,
	}
}

func (t *PrerenderFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, err := t.parser.Run(t.data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	t.ResetResults()
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, key, err := t.renderer.Render(ctx, item, theme.Preferences{})
		if err != nil {
			t.RecordFailed()
			slog.Warn("Failed to prerender item", "source", t.Source, "url", item.URL, "error", err)
			continue
		}
		t.RecordRendered(key)
	}

	if failed := t.Results.Failed; failed > 0 && failed == len(items) {
		return fmt.Errorf("failed to prerender all %d items", failed)
	}

	slog.Info("Feed prerendered", "source", t.Source, "items", len(items), "rendered", t.Results.Rendered, "failed", t.Results.Failed, "duration", t.GetDuration().String())
	return nil
}

// Keys returns the cache keys written by the last run.
func (t *PrerenderFeedTask) Keys() []string {
	return t.Results.Keys
}
