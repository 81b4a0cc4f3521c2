package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

type TaskType string

const (
	TaskTypePrerenderFeed TaskType = "prerender_feed"
	TaskTypePruneRenders  TaskType = "prune_renders"
)

const (
	DefaultMaxRetries = 3
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetSource() string
	GetRetryCount() int
	GetMaxRetries() int
	IncrementRetryCount()
	CanRetry() bool
	Start()
	GetDuration() time.Duration
	GetResults() Results
}

// Results counts what a run did: documents rendered or pruned, items that
// failed, and the cache keys written.
type Results struct {
	Rendered int
	Pruned   int64
	Failed   int
	Keys     []string
}

type Task struct {
	ID         string
	Type       TaskType
	Source     string
	RetryCount int
	MaxRetries int
	StartedAt  *time.Time
	Results    Results
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetSource() string {
	return t.Source
}

func (t *Task) GetRetryCount() int {
	return t.RetryCount
}

func (t *Task) GetMaxRetries() int {
	return t.MaxRetries
}

func (t *Task) IncrementRetryCount() {
	t.RetryCount++
}

func (t *Task) CanRetry() bool {
	return t.RetryCount < t.MaxRetries
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

// ResetResults clears the counts of a previous attempt.
func (t *Task) ResetResults() {
	t.Results = Results{}
}

func (t *Task) RecordRendered(key string) {
	t.Results.Rendered++
	if key != "" {
		t.Results.Keys = append(t.Results.Keys, key)
	}
}

func (t *Task) RecordFailed() {
	t.Results.Failed++
}

func (t *Task) RecordPruned(count int64) {
	t.Results.Pruned += count
}

func (t *Task) GetResults() Results {
	return t.Results
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

// NewTask creates a task base. Source labels where the work came from and
// only shows up in logs.
func NewTask(taskType TaskType, source string) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:         uniqueID,
		Type:       taskType,
		Source:     source,
		RetryCount: 0,
		MaxRetries: DefaultMaxRetries,
	}
}
