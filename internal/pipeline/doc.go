// Package pipeline orchestrates the four-stage remux run:
//
//	START → PROBING → PLANNING → MUXING → DONE
//
// Any stage can transition to FAILED, which is terminal and triggers cleanup
// of the partial destination file and the per-run temp workspace. No stage
// is retried; a failing external tool is assumed deterministic.
//
// Implemented:
//   - UsageError, ProbeError, MuxError taxonomy (errors.go)
//   - Result: success report data (result.go)
//   - Runner: stage sequencing, side-file materialization, cleanup (runner.go)
package pipeline
