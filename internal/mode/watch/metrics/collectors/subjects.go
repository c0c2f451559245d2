package collectors

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nginx/state-observer/internal/mode/watch/metrics"
	"github.com/nginx/state-observer/pkg/observer"
)

const unnamedSubject = "unnamed"

// SubjectCollector collects metrics for observable Subjects.
// Implements the prometheus.Collector and the observer.Recorder interfaces.
type SubjectCollector struct {
	// Metrics
	notificationsTotal *prometheus.CounterVec
	callbacksTotal     *prometheus.CounterVec
	observers          *prometheus.GaugeVec
}

// NewSubjectCollector creates a new SubjectCollector.
func NewSubjectCollector(constLabels map[string]string) *SubjectCollector {
	return &SubjectCollector{
		notificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "subject_notifications_total",
				Namespace:   metrics.Namespace,
				Help:        "Number of notification passes of a subject",
				ConstLabels: constLabels,
			},
			[]string{"subject"},
		),
		callbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "subject_callbacks_total",
				Namespace:   metrics.Namespace,
				Help:        "Number of observer callbacks invoked by notification passes of a subject",
				ConstLabels: constLabels,
			},
			[]string{"subject"},
		),
		observers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "subject_observers",
				Namespace:   metrics.Namespace,
				Help:        "Number of live observers of a subject",
				ConstLabels: constLabels,
			},
			[]string{"subject"},
		),
	}
}

// RecordNotification counts a notification pass and the callbacks it invoked.
func (c *SubjectCollector) RecordNotification(subject string, callbacks int) {
	subject = labelValue(subject)
	c.notificationsTotal.WithLabelValues(subject).Inc()
	c.callbacksTotal.WithLabelValues(subject).Add(float64(callbacks))
}

// RecordObserverCount sets the number of live observers.
func (c *SubjectCollector) RecordObserverCount(subject string, count int) {
	c.observers.WithLabelValues(labelValue(subject)).Set(float64(count))
}

// Describe implements prometheus.Collector interface Describe method.
func (c *SubjectCollector) Describe(ch chan<- *prometheus.Desc) {
	c.notificationsTotal.Describe(ch)
	c.callbacksTotal.Describe(ch)
	c.observers.Describe(ch)
}

// Collect implements the prometheus.Collector interface Collect method.
func (c *SubjectCollector) Collect(ch chan<- prometheus.Metric) {
	c.notificationsTotal.Collect(ch)
	c.callbacksTotal.Collect(ch)
	c.observers.Collect(ch)
}

func labelValue(subject string) string {
	if subject == "" {
		return unnamedSubject
	}
	return subject
}

var (
	_ prometheus.Collector = &SubjectCollector{}
	_ observer.Recorder    = &SubjectCollector{}
)
