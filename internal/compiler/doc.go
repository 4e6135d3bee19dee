// Package compiler turns stimulation patterns into DSP command lists.
//
// Six builders share one timing policy and one episode scheduler:
//
//   - BuildSpot: a single position, optionally a pulse train.
//   - BuildGrid: a Dims.X by Dims.Y lattice swept row by row.
//   - BuildTarget: an explicit list of points in visiting order.
//   - BuildRapidGrid: the grid lattice with one pulse per cell, stepped at
//     the pulse interval instead of the episode period.
//   - BuildRapidTarget: one pulse per point, back to back.
//   - BuildPattern: index pattern mapped onto a lattice, then as BuildTarget.
//
// All timing parameters are given in milliseconds and converted to DSP
// cycles (10 µs). Inconsistent timing is corrected rather than rejected: the pulse
// interval is raised to the pulse width, and the episode period is raised to
// fit the baseline plus the whole pulse train. Corrections are logged at
// debug level.
//
// Every builder owns a fresh protocol.List for the duration of one call, so a
// Compiler may be shared between goroutines.
package compiler
