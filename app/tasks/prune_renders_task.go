package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/reader-render/app/database"
)

type PruneRendersTask struct {
	Task
	store database.RenderStore
	now   func() time.Time
}

func NewPruneRendersTask(store database.RenderStore) *PruneRendersTask {
	return &PruneRendersTask{
		Task:  NewTask(TaskTypePruneRenders, "cache"),
		store: store,
		now:   time.Now,
	}
}

func (t *PruneRendersTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.ResetResults()
	deleted, err := t.store.DeleteExpired(t.now())
	if err != nil {
		return fmt.Errorf("failed to delete expired renders: %w", err)
	}
	t.RecordPruned(deleted)

	if deleted > 0 {
		slog.Info("Expired renders pruned", "count", deleted)
	} else {
		slog.Debug("No expired renders to prune")
	}
	return nil
}
