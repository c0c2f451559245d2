package metrics

// Namespace is the namespace of all metrics exposed by observe.
const Namespace = "observe"
