package freeze

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Worker drives a tick function from one background goroutine.
type Worker struct {
	Interval time.Duration
	tick     func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWorker(interval time.Duration, tick func()) *Worker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Worker{Interval: interval, tick: tick}
}

// Start initiates the background ticker. Calling Start on a running worker
// is a no-op.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx, w.done)
	log.Debug().Str("component", "freeze").Dur("interval", w.Interval).Msg("tick worker started")
}

func (w *Worker) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

// Stop cancels the ticker and waits for the goroutine to exit.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Debug().Str("component", "freeze").Msg("tick worker stopped")
}

func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}
