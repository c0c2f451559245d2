package observer

import (
	"fmt"
)

// InvalidSubjectError is the panic value used when an Observer is created for a nil Subject, or for a Subject that
// was not built by one of the New*Subject functions.
type InvalidSubjectError struct {
	// Kind is the kind of the Subject, for example "ValueSubject".
	Kind string
}

func (e *InvalidSubjectError) Error() string {
	return fmt.Sprintf("cannot observe an invalid %s", e.Kind)
}

func mustBeValid(kind string, valid bool) {
	if !valid {
		panic(&InvalidSubjectError{Kind: kind})
	}
}
