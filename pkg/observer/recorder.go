package observer

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 . Recorder

// Recorder records the activity of Subjects, for example as metrics.
type Recorder interface {
	// RecordNotification records one notification pass of the named Subject that reached the given number of
	// callbacks.
	RecordNotification(subject string, callbacks int)
	// RecordObserverCount records the number of live Observers of the named Subject.
	RecordObserverCount(subject string, count int)
}

type noopRecorder struct{}

func (noopRecorder) RecordNotification(string, int) {}

func (noopRecorder) RecordObserverCount(string, int) {}
