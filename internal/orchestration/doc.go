// Package orchestration coordinates a single generation request end to end.
// An Orchestrator owns the single-flight guard, runs the progress estimator
// alongside the Transport call and reports the lifecycle to a Presenter,
// stopping the estimator before any terminal notification is delivered.
// RunBatch drives several independent orchestrators concurrently.
package orchestration
