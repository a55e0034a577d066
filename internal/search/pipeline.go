// Package search streams filesystem entries whose names contain a query.
//
// A Pipeline owns at most one run at a time. A run walks its roots with a
// bounded pool of workers and pushes matches into a buffered channel that the
// shell empties with Drain once per tick, so the interactive loop never waits
// on the filesystem.
package search

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kk-code-lab/fbrowse/internal/logger"
)

const (
	defaultBuffer     = 1024
	defaultDrainLimit = 4096
	maxWorkers        = 64
)

// Options tunes a Pipeline. Zero values select defaults.
type Options struct {
	Workers    int
	Buffer     int
	DrainLimit int
	SkipHidden bool
	Exclude    []string
	Logger     *logger.Logger
}

// Pipeline runs searches one at a time. Start, Cancel, Reset, Drain and
// Stats may be called from any goroutine.
type Pipeline struct {
	workers    int
	buffer     int
	drainLimit int
	skipHidden bool
	exclude    excludeSet
	log        *logger.Logger

	mu  sync.Mutex
	run *run
}

// New validates opts and returns an idle Pipeline.
func New(opts Options) (*Pipeline, error) {
	exclude, err := newExcludeSet(opts.Exclude)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Pipeline{
		workers:    workerCount(opts.Workers),
		buffer:     positiveOr(opts.Buffer, defaultBuffer),
		drainLimit: positiveOr(opts.DrainLimit, defaultDrainLimit),
		skipHidden: opts.SkipHidden,
		exclude:    exclude,
		log:        log,
	}, nil
}

// Workers returns the size of the worker pool used per run.
func (p *Pipeline) Workers() int {
	return p.workers
}

// Start cancels any current run and begins a fresh one for req.
func (p *Pipeline) Start(req Request) RunID {
	r := newRun(req, p.buffer)

	p.mu.Lock()
	prev := p.run
	p.run = r
	p.mu.Unlock()

	if prev != nil {
		prev.stop()
	}

	p.log.Infof("search %s started: query=%q roots=%v workers=%d", r.id, req.Query, req.Roots, p.workers)
	go p.execute(r)
	return r.id
}

// Cancel asks the current run to stop. Workers stop scheduling directories
// immediately; a few matches already in flight may still be drained.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	r := p.run
	p.mu.Unlock()

	if r != nil && r.stop() {
		p.log.Infof("search %s cancelled", r.id)
	}
}

// Reset cancels the current run, if any, and returns the pipeline to Idle.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	r := p.run
	p.run = nil
	p.mu.Unlock()

	if r != nil {
		r.stop()
	}
}

// Drain returns the matches buffered so far without blocking. It returns at
// most the configured drain limit per call and nothing when no run exists.
func (p *Pipeline) Drain() []Match {
	p.mu.Lock()
	r := p.run
	p.mu.Unlock()

	if r == nil {
		return nil
	}

	var out []Match
	for len(out) < p.drainLimit {
		select {
		case m, ok := <-r.matches:
			if !ok {
				return out
			}
			out = append(out, m)
		default:
			return out
		}
	}
	return out
}

// State reports the lifecycle state of the current run.
func (p *Pipeline) State() State {
	p.mu.Lock()
	r := p.run
	p.mu.Unlock()

	if r == nil {
		return Idle
	}
	return State(r.state.Load())
}

// Stats returns the counters of the current run.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	r := p.run
	p.mu.Unlock()

	if r == nil {
		return Stats{State: Idle}
	}
	return r.snapshot()
}

// Wait blocks until the current run has finished or ctx is done. The shell
// never calls it; the CLI and tests do.
func (p *Pipeline) Wait(ctx context.Context) error {
	p.mu.Lock()
	r := p.run
	p.mu.Unlock()

	if r == nil {
		return nil
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is one traversal. Its channel and counters are never shared with
// another run, so a superseded run's stragglers cannot leak into Drain.
type run struct {
	id      RunID
	req     Request
	ctx     context.Context
	cancel  context.CancelFunc
	matches chan Match
	done    chan struct{}

	state atomic.Int32

	// schedMu orders scheduling against stop: once stop holds the write
	// lock and sets stopped, no directory is scheduled again.
	schedMu sync.RWMutex
	stopped bool

	dirsScheduled atomic.Int64
	dirsListed    atomic.Int64
	dirsSkipped   atomic.Int64
	matched       atomic.Int64

	startedAt  time.Time
	finishedAt atomic.Int64
}

func newRun(req Request, buffer int) *run {
	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		id:        RunID(uuid.NewString()),
		req:       req,
		ctx:       ctx,
		cancel:    cancel,
		matches:   make(chan Match, buffer),
		done:      make(chan struct{}),
		startedAt: time.Now(),
	}
	r.state.Store(int32(Running))
	return r
}

// stop cancels the run. It reports whether this call moved the run from
// Running to Cancelled.
func (r *run) stop() bool {
	r.schedMu.Lock()
	r.stopped = true
	r.schedMu.Unlock()
	r.cancel()
	return r.state.CompareAndSwap(int32(Running), int32(Cancelled))
}

// trySchedule counts dir as scheduled unless the run has been stopped.
func (r *run) trySchedule() bool {
	r.schedMu.RLock()
	defer r.schedMu.RUnlock()
	if r.stopped {
		return false
	}
	r.dirsScheduled.Add(1)
	return true
}

func (r *run) finish() {
	r.finishedAt.Store(time.Now().UnixNano())
	r.state.CompareAndSwap(int32(Running), int32(Completed))
	r.cancel()
	close(r.done)
}

func (r *run) snapshot() Stats {
	s := Stats{
		RunID:         r.id,
		State:         State(r.state.Load()),
		DirsScheduled: r.dirsScheduled.Load(),
		DirsListed:    r.dirsListed.Load(),
		DirsSkipped:   r.dirsSkipped.Load(),
		Matches:       r.matched.Load(),
		StartedAt:     r.startedAt,
	}
	if ns := r.finishedAt.Load(); ns != 0 {
		s.FinishedAt = time.Unix(0, ns)
	}
	return s
}

func workerCount(requested int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return clampInt(n, 1, maxWorkers)
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
