// Package signalx ties process signals to context cancellation, so a running command stops when the user presses ctrl-c.
package signalx

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// SignalCtx returns a context that is cancelled when any of the given signals are received.
// Calling stop releases the signal handler, and cancels the context.
func SignalCtx(parent context.Context, signals ...os.Signal) (ctx context.Context, stop context.CancelFunc) {
	if len(signals) == 0 {
		panic("no signals passed to SignalCtx")
	}
	return signal.NotifyContext(parent, signals...)
}

// SignalExitCtx is like [SignalCtx], except that a second signal calls exit with code 130.
// An interactive session stops the current command on the first signal, and the user can force an exit with the next.
func SignalExitCtx(parent context.Context, exit func(code int), signals ...os.Signal) (context.Context, context.CancelFunc) {
	if len(signals) == 0 {
		panic("no signals passed to SignalExitCtx")
	}
	if exit == nil {
		exit = os.Exit
	}
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 2)
	done := make(chan struct{})
	signal.Notify(sigs, signals...)
	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancel()
		case <-done:
			return
		}
		select {
		case <-sigs:
			exit(130)
		case <-done:
		}
	}()
	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			close(done)
			cancel()
		})
	}
}
