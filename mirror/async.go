// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrDisabled is returned by Async.Ping when the sink cannot be probed,
// as with Nop.
var ErrDisabled = errors.New("mirror disabled")

// Pinger is implemented by sinks that can report whether they are reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Async replicates events to a Sink in the background. Errors, timeouts,
// and panics from the sink are logged and never reach the caller.
type Async struct {
	sink    Sink
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
}

func NewAsync(sink Sink, timeout time.Duration, maxInFlight int) *Async {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Async{
		sink:    sink,
		timeout: timeout,
		slots:   make(chan struct{}, maxInFlight),
	}
}

// Mirror schedules ev and returns immediately. When maxInFlight writes are
// already pending the event is dropped.
func (a *Async) Mirror(ev Event) {
	select {
	case a.slots <- struct{}{}:
	default:
		slog.Warn("mirror busy, dropping event", "kind", ev.Kind)
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() { <-a.slots }()

		if err := a.write(ev); err != nil {
			slog.Warn("mirror write failed", "kind", ev.Kind, "error", err)
			return
		}
		slog.Debug("mirror write ok", "kind", ev.Kind)
	}()
}

func (a *Async) write(ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mirror sink panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	return a.sink.Write(ctx, ev)
}

// Ping probes the sink within the write timeout.
func (a *Async) Ping(ctx context.Context) error {
	p, ok := a.sink.(Pinger)
	if !ok {
		return ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	return p.Ping(ctx)
}

// Close waits for pending writes.
func (a *Async) Close() {
	a.wg.Wait()
}
