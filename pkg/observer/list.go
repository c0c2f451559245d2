package observer

import (
	"slices"
)

// InvalidIndex is returned by ListSubject.IndexOf when the item is not in the list.
const InvalidIndex = -1

// ListSubject holds an ordered list of items and notifies its Observers with the whole list whenever the content
// changes.
type ListSubject[T any] struct {
	equal EqualFunc[T]
	core  subject[[]T]
	items []T
}

// NewListSubject creates a new ListSubject that compares items with ==.
func NewListSubject[T comparable](items []T, opts ...Option) *ListSubject[T] {
	return NewListSubjectFunc(items, Comparable[T], opts...)
}

// NewListSubjectFunc creates a new ListSubject that compares items with equal.
// It panics if equal is nil.
func NewListSubjectFunc[T any](items []T, equal EqualFunc[T], opts ...Option) *ListSubject[T] {
	if equal == nil {
		panic("observer: nil EqualFunc")
	}

	return &ListSubject[T]{
		equal: equal,
		core:  newSubject[[]T](opts),
		items: cloneItems(items),
	}
}

// cloneItems copies items into a new non-nil slice.
func cloneItems[T any](items []T) []T {
	c := make([]T, len(items))
	copy(c, items)
	return c
}

// Get returns a copy of the list.
func (s *ListSubject[T]) Get() []T {
	return cloneItems(s.items)
}

// Size returns the number of items.
func (s *ListSubject[T]) Size() int {
	return len(s.items)
}

// IsEmpty reports whether the list has no items.
func (s *ListSubject[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Item returns the item at index. It panics if index is out of range.
func (s *ListSubject[T]) Item(index int) T {
	return s.items[index]
}

// Contains reports whether item is in the list.
func (s *ListSubject[T]) Contains(item T) bool {
	return s.IndexOf(item) != InvalidIndex
}

// IndexOf returns the index of the first occurrence of item, or InvalidIndex.
func (s *ListSubject[T]) IndexOf(item T) int {
	idx := slices.IndexFunc(s.items, func(v T) bool {
		return s.equal(v, item)
	})
	if idx < 0 {
		return InvalidIndex
	}
	return idx
}

// SetIfChanged replaces the list and notifies the Observers, unless items equals the current list.
// It reports whether the list was changed.
func (s *ListSubject[T]) SetIfChanged(items []T) bool {
	if slices.EqualFunc(s.items, items, s.equal) {
		return false
	}

	s.SetAlways(items)
	return true
}

// SetAlways replaces the list and notifies the Observers, even if items equals the current list.
func (s *ListSubject[T]) SetAlways(items []T) {
	s.items = cloneItems(items)
	s.core.notify(s.Get)
}

// PushBack appends item and notifies the Observers.
func (s *ListSubject[T]) PushBack(item T) {
	s.items = append(s.items, item)
	s.core.notify(s.Get)
}

// InsertItem inserts item at index and notifies the Observers. An index equal to Size appends.
// An index out of range leaves the list unchanged. It reports whether the list was changed.
func (s *ListSubject[T]) InsertItem(index int, item T) bool {
	if index < 0 || index > len(s.items) {
		return false
	}

	s.items = slices.Insert(s.items, index, item)
	s.core.notify(s.Get)

	return true
}

// SetItem replaces the item at index and notifies the Observers, unless item equals the current one or index is out
// of range. It reports whether the list was changed.
func (s *ListSubject[T]) SetItem(index int, item T) bool {
	if index < 0 || index >= len(s.items) || s.equal(s.items[index], item) {
		return false
	}

	s.items[index] = item
	s.core.notify(s.Get)

	return true
}

// RemoveItem removes the item at index and notifies the Observers.
// An index out of range leaves the list unchanged. It reports whether the list was changed.
func (s *ListSubject[T]) RemoveItem(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}

	s.items = slices.Delete(s.items, index, index+1)
	s.core.notify(s.Get)

	return true
}

// Clear removes all items and notifies the Observers, unless the list is already empty.
// It reports whether the list was changed.
func (s *ListSubject[T]) Clear() bool {
	return s.SetIfChanged(nil)
}

// ObserverCount returns the number of live Observers.
func (s *ListSubject[T]) ObserverCount() int {
	return s.core.observerCount()
}

// Name returns the name of the ListSubject set by WithName.
func (s *ListSubject[T]) Name() string {
	return s.core.name
}

// ListObserver is a subscription to a ListSubject. The subscription lasts until Close is called.
type ListObserver[T any] struct {
	subject *ListSubject[T]
	id      SubscriptionID
	closed  bool
}

// NewListObserver subscribes callback to subject.
// With Trigger, callback is invoked with the current list before NewListObserver returns.
// It panics with an *InvalidSubjectError if subject is nil or was not created by a NewListSubject function.
// The slice passed to callback is a copy owned by the callback.
func NewListObserver[T any](
	subject *ListSubject[T],
	callback func([]T),
	action CallbackAction,
) *ListObserver[T] {
	mustBeValid("ListSubject", subject != nil && subject.core.valid)

	o := &ListObserver[T]{subject: subject}
	o.id = subject.core.subscribe(callback, action, subject.Get)

	return o
}

// Close ends the subscription. The callback is never invoked after Close returns.
// Calling Close more than once has no effect.
func (o *ListObserver[T]) Close() {
	if o.closed {
		return
	}

	o.closed = true
	o.subject.core.unsubscribe(o.id)
}
