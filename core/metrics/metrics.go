// Package metrics provides the backend-neutral instrumentation types used by
// the id generator, so core packages never import a metrics backend directly.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
type Timer interface {
	// ObserveDuration records the elapsed time since the timer was created.
	ObserveDuration()
}
