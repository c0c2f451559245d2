package observer

// ValueSubject holds one value of type T and notifies its Observers when the value is set.
type ValueSubject[T any] struct {
	equal EqualFunc[T]
	value T
	core  subject[T]
}

// NewValueSubject creates a new ValueSubject that compares values with ==.
func NewValueSubject[T comparable](initial T, opts ...Option) *ValueSubject[T] {
	return NewValueSubjectFunc(initial, Comparable[T], opts...)
}

// NewValueSubjectDeep creates a new ValueSubject that compares values with DeepEqual.
// It allows SetIfChanged for types that don't support ==, like structs with slice fields.
func NewValueSubjectDeep[T any](initial T, opts ...Option) *ValueSubject[T] {
	return NewValueSubjectFunc(initial, DeepEqual[T], opts...)
}

// NewValueSubjectFunc creates a new ValueSubject that compares values with equal.
// It panics if equal is nil.
func NewValueSubjectFunc[T any](initial T, equal EqualFunc[T], opts ...Option) *ValueSubject[T] {
	if equal == nil {
		panic("observer: nil EqualFunc")
	}

	return &ValueSubject[T]{
		equal: equal,
		value: initial,
		core:  newSubject[T](opts),
	}
}

// Get returns the current value.
func (s *ValueSubject[T]) Get() T {
	return s.value
}

// SetIfChanged sets the value and notifies the Observers, unless v equals the current value.
// It reports whether the value was changed.
func (s *ValueSubject[T]) SetIfChanged(v T) bool {
	if s.equal(s.value, v) {
		return false
	}

	s.SetAlways(v)
	return true
}

// SetAlways sets the value and notifies the Observers, even if v equals the current value.
func (s *ValueSubject[T]) SetAlways(v T) {
	s.value = v
	s.core.notify(s.Get)
}

// ObserverCount returns the number of live Observers.
func (s *ValueSubject[T]) ObserverCount() int {
	return s.core.observerCount()
}

// Name returns the name of the ValueSubject set by WithName.
func (s *ValueSubject[T]) Name() string {
	return s.core.name
}

// ValueObserver is a subscription to a ValueSubject. The subscription lasts until Close is called.
type ValueObserver[T any] struct {
	subject *ValueSubject[T]
	id      SubscriptionID
	closed  bool
}

// NewValueObserver subscribes callback to subject.
// With Trigger, callback is invoked with the current value before NewValueObserver returns.
// It panics with an *InvalidSubjectError if subject is nil or was not created by a NewValueSubject function.
func NewValueObserver[T any](
	subject *ValueSubject[T],
	callback func(T),
	action CallbackAction,
) *ValueObserver[T] {
	mustBeValid("ValueSubject", subject != nil && subject.core.valid)

	o := &ValueObserver[T]{subject: subject}
	o.id = subject.core.subscribe(callback, action, subject.Get)

	return o
}

// Close ends the subscription. The callback is never invoked after Close returns.
// Calling Close more than once has no effect.
func (o *ValueObserver[T]) Close() {
	if o.closed {
		return
	}

	o.closed = true
	o.subject.core.unsubscribe(o.id)
}
