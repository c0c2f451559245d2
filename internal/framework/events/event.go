package events

// Event is a unit of work that must run on the goroutine that owns the observable state, for example applying a
// directory snapshot to a MapSubject or subscribing a new consumer.
type Event func()

// EventBatch is a batch of events to be handled at once, in order.
type EventBatch []Event
