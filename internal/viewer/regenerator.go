package viewer

import (
	"context"
	"log"
	"sync"

	"heightgen/internal/config"
	"heightgen/internal/heightfield"
	"heightgen/internal/timing"
)

// Result is a finished generation handed back to the render thread.
type Result struct {
	Config config.RunConfig
	Field  *heightfield.Field
	Sample timing.Sample
	Err    error
}

// Regenerator runs generators off the render thread. Each Request cancels
// the run before it; only the newest request's result is ever delivered.
type Regenerator struct {
	rec timing.Recorder

	mu      sync.Mutex
	seq     uint64 // newest request
	done    uint64 // newest request that has finished
	cancel  context.CancelFunc
	results chan Result
	wg      sync.WaitGroup
}

// NewRegenerator returns a regenerator recording finished runs to rec.
func NewRegenerator(rec timing.Recorder) *Regenerator {
	return &Regenerator{
		rec:     rec,
		results: make(chan Result, 1),
	}
}

// Request starts generating cfg in the background.
func (g *Regenerator) Request(cfg config.RunConfig) {
	g.mu.Lock()
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer cancel()
		g.deliver(seq, generate(ctx, cfg))
	}()
}

func generate(ctx context.Context, cfg config.RunConfig) Result {
	res := Result{Config: cfg}
	gen, err := cfg.Generator()
	if err != nil {
		res.Err = err
		return res
	}
	sample := timing.Sample{Algorithm: gen.Name(), Size: cfg.GridSize(), Seed: cfg.Seed}
	res.Sample, res.Err = timing.Measure(ctx, nil, sample, func(ctx context.Context) error {
		f, err := gen.Generate(ctx)
		res.Field = f
		return err
	})
	return res
}

// deliver publishes res if no newer request has been made, replacing any
// result the render thread has not collected yet. Only published runs are
// recorded.
func (g *Regenerator) deliver(seq uint64, res Result) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq {
		return
	}
	g.done = seq
	if res.Err == nil && g.rec != nil {
		if err := g.rec.Record(context.Background(), res.Sample); err != nil {
			log.Printf("record timing: %v", err)
		}
	}
	select {
	case <-g.results:
	default:
	}
	g.results <- res
}

// Poll returns a finished result without blocking.
func (g *Regenerator) Poll() (Result, bool) {
	select {
	case res := <-g.results:
		return res, true
	default:
		return Result{}, false
	}
}

// Busy reports whether the newest request is still running.
func (g *Regenerator) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done != g.seq
}

// Close cancels any run in flight and waits for workers to exit.
func (g *Regenerator) Close() {
	g.mu.Lock()
	if g.cancel != nil {
		g.cancel()
	}
	g.seq++
	g.done = g.seq
	g.mu.Unlock()
	g.wg.Wait()
}
