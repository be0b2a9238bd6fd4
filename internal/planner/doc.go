// Package planner derives the multiplex plan from the probed source
// descriptor: one metadata group per muxable track, the resolved global tag
// map, subtitle extraction jobs, and the side files that must exist before
// mkvmerge runs.
//
// Planning is deterministic and cannot fail; tags with no Matroska
// equivalent are dropped by omission (best-effort preservation is the
// policy, not strict fidelity).
//
// Implemented:
//   - Plan, TrackPlan, Extraction (types.go)
//   - BuildPlan: track walk, tag policy resolution, side-file naming (planner.go)
//   - needsConversion: subtitle codec classification (subtitle.go)
package planner
