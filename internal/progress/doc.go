// Package progress implements the cosmetic progress estimator that runs
// alongside a generation request.
//
// The estimator walks a Schedule of phases on a fixed cadence, emitting a
// Tick every interval. Percentages never decrease and never exceed the last
// phase ceiling, which is always below 100: completion is only ever reported
// by the caller once the real operation has finished.
package progress
