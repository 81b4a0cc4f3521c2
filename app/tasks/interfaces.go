package tasks

import (
	"context"

	"github.com/lysyi3m/reader-render/app/render"
	"github.com/lysyi3m/reader-render/app/theme"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the API server to hand off prerender work and by main to manage
// the worker pool.
//
//	scheduler := NewScheduler(renderStore, interval, workerCount)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewPrerenderFeedTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// Renderer renders a single item and caches the result.
type Renderer interface {
	Render(ctx context.Context, item render.ContentItem, prefs theme.Preferences) (render.RenderResult, string, error)
}
