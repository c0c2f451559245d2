package observer

import (
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Context holds what the Subjects owned by one subsystem share: the id allocator, the logger and the recorder.
// It replaces process-wide counters, so that independent subsystems (and tests) never interfere.
type Context struct {
	ids      *IDAllocator
	recorder Recorder
	logger   logr.Logger
	id       string
}

// NewContext creates a new Context. A nil recorder records nothing.
func NewContext(logger logr.Logger, recorder Recorder) *Context {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	id := uuid.NewString()

	return &Context{
		ids:      NewIDAllocator(),
		recorder: recorder,
		logger:   logger.WithValues("context", id),
		id:       id,
	}
}

// ID returns the unique id of the Context.
func (c *Context) ID() string {
	return c.id
}

// IDs returns the id allocator shared by the Subjects of the Context.
func (c *Context) IDs() *IDAllocator {
	return c.ids
}

// Option configures a Subject.
type Option func(*options)

type options struct {
	ids      *IDAllocator
	recorder Recorder
	logger   logr.Logger
	name     string
}

func newOptions(opts []Option) options {
	o := options{
		recorder: noopRecorder{},
		logger:   logr.Discard(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.ids == nil {
		o.ids = NewIDAllocator()
	}

	return o
}

// WithContext makes the Subject use the id allocator, logger and recorder of the Context.
// Options that follow WithContext override the corresponding setting.
func WithContext(c *Context) Option {
	return func(o *options) {
		o.ids = c.ids
		o.recorder = c.recorder
		o.logger = c.logger
	}
}

// WithName names the Subject in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger of the Subject. Subjects log at V(1) only.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sets the Recorder of the Subject.
func WithRecorder(recorder Recorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

// WithIDAllocator sets the id allocator of the Subject.
func WithIDAllocator(ids *IDAllocator) Option {
	return func(o *options) {
		if ids != nil {
			o.ids = ids
		}
	}
}
