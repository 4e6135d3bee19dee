// Package job loads protocol job files and compiles them.
//
// A job names a pattern kind, its timing, its geometry and the coordinate
// sources it needs. Jobs are written in YAML or CUE; both forms are checked
// against the embedded CUE schema (#Job) before they are decoded, so defaults
// such as reps: 1 and trigger: "none" come from the schema.
//
// Relative source paths are resolved against the directory of the job file.
package job
