package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/shop-engine/pkg/shop"
)

const (
	DefaultPublishTimeout = 500 * time.Millisecond
	observerBuffer        = 64
)

type pending struct {
	state  *shop.Snapshot
	result *shop.Result
}

// Observer implements shop.Observer by handing updates to a background
// publisher. The session never waits on Redis: when the buffer is full the
// update is dropped and logged.
type Observer struct {
	broadcaster *Broadcaster
	journal     *Journal // optional
	logger      *slog.Logger
	timeout     time.Duration

	mu      sync.Mutex
	closed  bool
	updates chan pending
	done    chan struct{}
}

var _ shop.Observer = (*Observer)(nil)

// NewObserver starts the publisher goroutine. Call Close to flush and stop it.
func NewObserver(b *Broadcaster, j *Journal, logger *slog.Logger, timeout time.Duration) *Observer {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	o := &Observer{
		broadcaster: b,
		journal:     j,
		logger:      logger,
		timeout:     timeout,
		updates:     make(chan pending, observerBuffer),
		done:        make(chan struct{}),
	}
	go o.run()
	return o
}

func (o *Observer) OnStateChanged(s shop.Snapshot) {
	o.enqueue(pending{state: &s})
}

func (o *Observer) OnTransactionResult(r shop.Result) {
	o.enqueue(pending{result: &r})
}

func (o *Observer) enqueue(p pending) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	select {
	case o.updates <- p:
	default:
		o.logger.Warn("Shop event buffer full, dropping update")
	}
}

// Close stops accepting updates and waits for queued ones to publish.
func (o *Observer) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.updates)
	o.mu.Unlock()
	<-o.done
}

func (o *Observer) run() {
	defer close(o.done)
	for p := range o.updates {
		o.publish(p)
	}
}

func (o *Observer) publish(p pending) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	// The broadcaster logs its own failures.
	switch {
	case p.state != nil:
		_ = o.broadcaster.PublishStateChanged(ctx, *p.state)
	case p.result != nil:
		_ = o.broadcaster.PublishTransactionResult(ctx, *p.result)
		if o.journal != nil {
			if err := o.journal.Append(ctx, *p.result); err != nil {
				o.logger.Error("Failed to journal transaction", "error", err, "session_id", p.result.SessionID.String())
			}
		}
	}
}
