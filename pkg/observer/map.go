package observer

import (
	"cmp"
	"maps"
	"slices"
)

// MapSubject holds a mapping of unique keys to values and notifies its Observers with the whole mapping whenever
// the content changes.
type MapSubject[K comparable, V any] struct {
	equal EqualFunc[V]
	items map[K]V
	core  subject[map[K]V]
}

// NewMapSubject creates a new MapSubject that compares values with ==.
func NewMapSubject[K, V comparable](items map[K]V, opts ...Option) *MapSubject[K, V] {
	return NewMapSubjectFunc(items, Comparable[V], opts...)
}

// NewMapSubjectFunc creates a new MapSubject that compares values with equal.
// It panics if equal is nil.
func NewMapSubjectFunc[K comparable, V any](items map[K]V, equal EqualFunc[V], opts ...Option) *MapSubject[K, V] {
	if equal == nil {
		panic("observer: nil EqualFunc")
	}

	return &MapSubject[K, V]{
		equal: equal,
		items: cloneMap(items),
		core:  newSubject[map[K]V](opts),
	}
}

// cloneMap copies items into a new non-nil map.
func cloneMap[K comparable, V any](items map[K]V) map[K]V {
	c := make(map[K]V, len(items))
	maps.Copy(c, items)
	return c
}

// Get returns a copy of the mapping.
func (s *MapSubject[K, V]) Get() map[K]V {
	return cloneMap(s.items)
}

// Size returns the number of keys.
func (s *MapSubject[K, V]) Size() int {
	return len(s.items)
}

// IsEmpty reports whether the mapping has no keys.
func (s *MapSubject[K, V]) IsEmpty() bool {
	return len(s.items) == 0
}

// HasKey reports whether key is present.
func (s *MapSubject[K, V]) HasKey(key K) bool {
	_, ok := s.items[key]
	return ok
}

// Item returns the value of key and whether key is present.
func (s *MapSubject[K, V]) Item(key K) (V, bool) {
	v, ok := s.items[key]
	return v, ok
}

// Keys returns the keys in no particular order. Use SortedKeys for a stable order.
func (s *MapSubject[K, V]) Keys() []K {
	return slices.Collect(maps.Keys(s.items))
}

// SetIfChanged replaces the mapping and notifies the Observers, unless items equals the current mapping.
// It reports whether the mapping was changed.
func (s *MapSubject[K, V]) SetIfChanged(items map[K]V) bool {
	if maps.EqualFunc(s.items, items, s.equal) {
		return false
	}

	s.SetAlways(items)
	return true
}

// SetAlways replaces the mapping and notifies the Observers, even if items equals the current mapping.
func (s *MapSubject[K, V]) SetAlways(items map[K]V) {
	s.items = cloneMap(items)
	s.core.notify(s.Get)
}

// SetItem sets the value of key and notifies the Observers, unless key already has an equal value.
// It reports whether the mapping was changed.
func (s *MapSubject[K, V]) SetItem(key K, value V) bool {
	if v, ok := s.items[key]; ok && s.equal(v, value) {
		return false
	}

	s.items[key] = value
	s.core.notify(s.Get)

	return true
}

// RemoveItem removes key and notifies the Observers, unless key is absent.
// It reports whether the mapping was changed.
func (s *MapSubject[K, V]) RemoveItem(key K) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}

	delete(s.items, key)
	s.core.notify(s.Get)

	return true
}

// Clear removes all keys and notifies the Observers, unless the mapping is already empty.
// It reports whether the mapping was changed.
func (s *MapSubject[K, V]) Clear() bool {
	return s.SetIfChanged(nil)
}

// ObserverCount returns the number of live Observers.
func (s *MapSubject[K, V]) ObserverCount() int {
	return s.core.observerCount()
}

// Name returns the name of the MapSubject set by WithName.
func (s *MapSubject[K, V]) Name() string {
	return s.core.name
}

// SortedKeys returns the keys of s in ascending order.
func SortedKeys[K cmp.Ordered, V any](s *MapSubject[K, V]) []K {
	return slices.Sorted(maps.Keys(s.items))
}

// MapObserver is a subscription to a MapSubject. The subscription lasts until Close is called.
type MapObserver[K comparable, V any] struct {
	subject *MapSubject[K, V]
	id      SubscriptionID
	closed  bool
}

// NewMapObserver subscribes callback to subject.
// With Trigger, callback is invoked with the current mapping before NewMapObserver returns.
// It panics with an *InvalidSubjectError if subject is nil or was not created by a NewMapSubject function.
// The map passed to callback is a copy owned by the callback.
func NewMapObserver[K comparable, V any](
	subject *MapSubject[K, V],
	callback func(map[K]V),
	action CallbackAction,
) *MapObserver[K, V] {
	mustBeValid("MapSubject", subject != nil && subject.core.valid)

	o := &MapObserver[K, V]{subject: subject}
	o.id = subject.core.subscribe(callback, action, subject.Get)

	return o
}

// Close ends the subscription. The callback is never invoked after Close returns.
// Calling Close more than once has no effect.
func (o *MapObserver[K, V]) Close() {
	if o.closed {
		return
	}

	o.closed = true
	o.subject.core.unsubscribe(o.id)
}
