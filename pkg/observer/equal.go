package observer

import (
	"github.com/google/go-cmp/cmp"
)

// EqualFunc reports whether two values are equal. Subjects use it to decide whether SetIfChanged changes anything.
type EqualFunc[T any] func(a, b T) bool

// Comparable compares two values with ==.
func Comparable[T comparable](a, b T) bool {
	return a == b
}

// DeepEqual compares two values with cmp.Equal.
// It panics for types with unexported fields, like cmp.Equal does.
func DeepEqual[T any](a, b T) bool {
	return cmp.Equal(a, b)
}
