// Package probe runs ffprobe against the source file and parses its JSON
// output into an immutable source descriptor: container format and tags,
// the ordered track list, and the chapter list.
//
// Implemented:
//   - Result, Format, Track, Chapter domain types (types.go)
//   - Probe: single ffprobe JSON call with stderr capture (prober.go)
//   - ParseJSON: wire-type parsing, exported for fixture tests (prober.go)
package probe
