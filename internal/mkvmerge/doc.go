// Package mkvmerge turns a multiplex plan into the mkvmerge argument vector
// and runs the tool with full output capture.
//
// Implemented:
//   - Build: argv assembly with explicit track selection and --track-order
//     so destination track order always matches source order (builder.go)
//   - Execute + ExecResult: invocation with stdout/stderr capture and
//     warning-vs-error exit classification (executor.go)
package mkvmerge
