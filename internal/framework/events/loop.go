package events

import (
	"context"

	"github.com/go-logr/logr"
)

// Loop runs Events one at a time, so that all Subjects and Observers touched by the Events are used by a single
// logical thread, even though the Events are posted from many goroutines.
//
// When a new event comes, there are two cases:
// - If there is no event(s) currently being handled, the new event is handled immediately.
// - Otherwise, the new event will be saved for later handling. All saved events will be handled after the handling of
// the current event(s) finishes, in the order they were posted. Multiple saved events will be handled at once -- they
// will be batched.
//
// At any point of time, no more than one batch is being handled, so Events never run concurrently.
type Loop struct {
	eventCh chan Event
	logger  logr.Logger

	// The Loop uses double buffering to handle event batch processing.
	// The goroutine that handles the batch will always read from the currentBatch slice.
	// While the current batch is being handled, new events are added to the nextBatch slice.
	// The batches are swapped before starting the handler goroutine.
	currentBatch EventBatch
	nextBatch    EventBatch

	// the ID of the current batch
	currentBatchID int
}

// NewLoop creates a new Loop.
func NewLoop(logger logr.Logger) *Loop {
	return &Loop{
		eventCh:      make(chan Event),
		logger:       logger,
		currentBatch: make(EventBatch, 0),
		nextBatch:    make(EventBatch, 0),
	}
}

// Post hands the event to the Loop. It blocks until the Loop accepts the event or the ctx is done.
// Post can be called from an Event.
func (l *Loop) Post(ctx context.Context, e Event) error {
	select {
	case l.eventCh <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do posts the event and waits until it has run or the ctx is done.
// Do must not be called from an Event, because the Event would wait for itself.
func (l *Loop) Do(ctx context.Context, e Event) error {
	done := make(chan struct{})

	err := l.Post(ctx, func() {
		defer close(done)
		e()
	})
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start starts the Loop.
// This method will block until the Loop stops, which will happen after the ctx is closed. Events that were posted
// but not handled yet when the ctx is closed are dropped.
func (l *Loop) Start(ctx context.Context) error {
	// handling tells if any batch is currently being handled.
	var handling bool
	// handlingDone is used to signal the completion of handling a batch.
	handlingDone := make(chan struct{})

	handleBatch := func() {
		go func(batch EventBatch) {
			l.currentBatchID++
			batchLogger := l.logger.WithName("eventHandler").WithValues("batchID", l.currentBatchID)

			batchLogger.V(1).Info("Handling events from the batch", "total", len(batch))

			for _, e := range batch {
				e()
			}

			batchLogger.V(1).Info("Finished handling the batch")
			handlingDone <- struct{}{}
		}(l.currentBatch)
	}

	l.logger.Info("Starting event loop")

	// The event loop
	for {
		select {
		case <-ctx.Done():
			// Wait for the completion if a batch is being handled.
			if handling {
				<-handlingDone
			}
			l.logger.Info("Stopping event loop", "dropped", len(l.nextBatch))
			return nil
		case e := <-l.eventCh:
			l.nextBatch = append(l.nextBatch, e)

			l.logger.V(1).Info("added an event to the next batch", "total", len(l.nextBatch))

			// If no batch is currently being handled, swap batches and begin handling the batch.
			if !handling {
				l.swapBatches()
				handleBatch()
				handling = true
			}
		case <-handlingDone:
			handling = false

			// If there's at least one event in the next batch, swap batches and begin handling the batch.
			if len(l.nextBatch) > 0 {
				l.swapBatches()
				handleBatch()
				handling = true
			}
		}
	}
}

// swapBatches swaps the current and next batches.
func (l *Loop) swapBatches() {
	l.currentBatch, l.nextBatch = l.nextBatch, l.currentBatch
	l.nextBatch = l.nextBatch[:0]
}
