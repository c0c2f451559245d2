package observer

import (
	"slices"

	"github.com/go-logr/logr"
)

type entry[S any] struct {
	callback func(S)
	id       SubscriptionID
}

// registry is the ordered set of callbacks of one Subject.
// Entries are sorted by id because ids are allocated in increasing order and entries are only ever appended.
type registry[S any] struct {
	ids     *IDAllocator
	entries []entry[S]
}

func (r *registry[S]) add(callback func(S)) SubscriptionID {
	id := r.ids.Next()
	r.entries = append(r.entries, entry[S]{id: id, callback: callback})
	return id
}

func (r *registry[S]) find(id SubscriptionID) (int, bool) {
	return slices.BinarySearchFunc(r.entries, id, func(e entry[S], id SubscriptionID) int {
		switch {
		case e.id < id:
			return -1
		case e.id > id:
			return 1
		default:
			return 0
		}
	})
}

func (r *registry[S]) remove(id SubscriptionID) bool {
	idx, ok := r.find(id)
	if !ok {
		return false
	}

	r.entries = slices.Delete(r.entries, idx, idx+1)
	return true
}

func (r *registry[S]) contains(id SubscriptionID) bool {
	_, ok := r.find(id)
	return ok
}

// snapshot returns a copy of the entries, so that a notification pass is not affected by entries added or removed
// while it runs.
func (r *registry[S]) snapshot() []entry[S] {
	return slices.Clone(r.entries)
}

// subject is the part shared by all Subject kinds: the registry, the name, the logger and the recorder.
type subject[S any] struct {
	recorder Recorder
	logger   logr.Logger
	name     string
	registry registry[S]
	valid    bool
}

func newSubject[S any](opts []Option) subject[S] {
	o := newOptions(opts)

	logger := o.logger
	if o.name != "" {
		logger = logger.WithValues("subject", o.name)
	}

	return subject[S]{
		recorder: o.recorder,
		logger:   logger,
		name:     o.name,
		registry: registry[S]{ids: o.ids},
		valid:    true,
	}
}

// subscribe registers the callback. With Trigger, the callback is invoked with the state returned by current before
// subscribe returns.
func (s *subject[S]) subscribe(callback func(S), action CallbackAction, current func() S) SubscriptionID {
	id := s.registry.add(callback)

	s.logger.V(1).Info(
		"Registered observer",
		"id", id,
		"action", action.String(),
		"number of registered observers", len(s.registry.entries),
	)
	s.recorder.RecordObserverCount(s.name, len(s.registry.entries))

	if action == Trigger {
		callback(current())
	}

	return id
}

func (s *subject[S]) unsubscribe(id SubscriptionID) {
	if !s.registry.remove(id) {
		return
	}

	s.logger.V(1).Info(
		"Removed observer",
		"id", id,
		"number of registered observers", len(s.registry.entries),
	)
	s.recorder.RecordObserverCount(s.name, len(s.registry.entries))
}

// notify runs one notification pass over the callbacks registered when it starts.
// A callback removed during the pass is skipped if it has not been invoked yet. Every callback receives the state
// at the time it is invoked, so after a nested mutation the remaining callbacks see the newest state.
func (s *subject[S]) notify(current func() S) {
	entries := s.registry.snapshot()
	if len(entries) == 0 {
		return
	}

	s.logger.V(1).Info("Notifying observers", "number of registered observers", len(entries))

	var invoked int
	for _, e := range entries {
		if !s.registry.contains(e.id) {
			continue
		}

		e.callback(current())
		invoked++
	}

	s.recorder.RecordNotification(s.name, invoked)
}

func (s *subject[S]) observerCount() int {
	return len(s.registry.entries)
}
