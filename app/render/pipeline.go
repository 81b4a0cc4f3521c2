package render

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lysyi3m/reader-render/app/theme"
)

type State int

const (
	StateIdle State = iota
	StateBuilding
	StateReady
	StateDelivered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// Surface displays finished documents. IsValid is checked right before
// every delivery.
type Surface interface {
	IsValid() bool
	Load(result RenderResult) error
}

type Builder interface {
	Assemble(ctx context.Context, item ContentItem, tokens theme.Tokens) (RenderResult, error)
}

// Pipeline builds documents in the background and delivers them to one
// surface from a single delivery goroutine. Each render is stamped with a
// generation; starting a render cancels the one in flight, and only the
// latest generation is ever delivered.
type Pipeline struct {
	builder Builder

	mu         sync.Mutex
	surface    Surface
	state      State
	generation uint64
	cancel     context.CancelFunc
	closed     bool

	ctx        context.Context
	stop       context.CancelFunc
	deliveries chan delivery
	pending    sync.WaitGroup
	loopDone   chan struct{}
}

type delivery struct {
	generation uint64
	result     RenderResult
	err        error
}

func NewPipeline(builder Builder, surface Surface) *Pipeline {
	ctx, stop := context.WithCancel(context.Background())

	p := &Pipeline{
		builder:    builder,
		surface:    surface,
		ctx:        ctx,
		stop:       stop,
		deliveries: make(chan delivery),
		loopDone:   make(chan struct{}),
	}

	go p.deliveryLoop()

	return p
}

// BeginRender starts building item and returns its generation. Returns 0
// once the pipeline is closed.
func (p *Pipeline) BeginRender(item ContentItem, tokens theme.Tokens) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0
	}

	if p.cancel != nil {
		p.cancel()
	}

	p.generation++
	generation := p.generation

	ctx, cancel := context.WithCancel(p.ctx)
	p.cancel = cancel
	p.state = StateBuilding

	p.pending.Add(1)
	go p.build(ctx, cancel, generation, item, tokens)

	slog.Debug("Render started", "generation", generation, "post_id", item.PostID)

	return generation
}

func (p *Pipeline) build(ctx context.Context, cancel context.CancelFunc, generation uint64, item ContentItem, tokens theme.Tokens) {
	defer cancel()

	result, err := p.builder.Assemble(ctx, item, tokens)
	d := delivery{generation: generation, result: result, err: err}

	select {
	case p.deliveries <- d:
	case <-p.ctx.Done():
		p.pending.Done()
	}
}

func (p *Pipeline) deliveryLoop() {
	defer close(p.loopDone)

	for {
		select {
		case d := <-p.deliveries:
			p.deliver(d)
			p.pending.Done()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pipeline) deliver(d delivery) {
	p.mu.Lock()
	if d.generation != p.generation {
		p.mu.Unlock()
		slog.Debug("Discarding superseded render", "generation", d.generation, "latest", p.generation)
		return
	}
	p.cancel = nil

	if d.err != nil {
		p.state = StateIdle
		p.mu.Unlock()
		slog.Warn("Render aborted", "generation", d.generation, "error", d.err)
		return
	}

	p.state = StateReady
	surface := p.surface
	p.mu.Unlock()

	if surface == nil || !surface.IsValid() {
		p.transition(d.generation, StateIdle)
		slog.Warn("Display surface invalid, discarding render", "generation", d.generation)
		return
	}

	if err := surface.Load(d.result); err != nil {
		p.transition(d.generation, StateIdle)
		slog.Warn("Failed to load render into display surface", "generation", d.generation, "error", err)
		return
	}

	p.transition(d.generation, StateDelivered)
	slog.Debug("Render delivered", "generation", d.generation)
}

func (p *Pipeline) transition(generation uint64, state State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if generation == p.generation {
		p.state = state
	}
}

// SetSurface replaces the display surface. A nil surface makes every
// delivery a discard.
func (p *Pipeline) SetSurface(surface Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.surface = surface
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Wait blocks until every started render has been delivered or discarded.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Close cancels the render in flight and stops the delivery goroutine.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.stop()
	<-p.loopDone
	p.pending.Wait()

	p.mu.Lock()
	if p.state == StateBuilding || p.state == StateReady {
		p.state = StateIdle
	}
	p.mu.Unlock()
}
