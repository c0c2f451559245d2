package runnables

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Runnable is a long-running component. Start blocks until the ctx is closed or the component is done.
type Runnable interface {
	Start(ctx context.Context) error
}

// RunnableFunc is a function that implements Runnable.
type RunnableFunc func(ctx context.Context) error

// Start calls f(ctx).
func (f RunnableFunc) Start(ctx context.Context) error {
	return f(ctx)
}

// Run starts the runnables and blocks until all of them return.
// As soon as one runnable returns, with or without an error, the ctx of the others is canceled.
// Run returns the first error.
func Run(ctx context.Context, runnables ...Runnable) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	for _, r := range runnables {
		g.Go(func() error {
			defer cancel()
			return r.Start(ctx)
		})
	}

	return g.Wait()
}
