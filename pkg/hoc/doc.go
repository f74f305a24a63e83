// Package hoc extracts filament polylines from hoc-style morphology text.
//
// Simulation tooling emits one brace-delimited record per traced segment,
// introduced by a filament_<component>[<segment>] header and containing one
// pt3dadd(x, y, z, diameter, n) call per sample:
//
//	filament_3[12] {
//	  pt3dclear()
//	  pt3dadd(10.5, 2.25, 0.0, 1.2, 0)
//	  pt3dadd(11.0, 2.75, 0.0, 1.1, 0)
//	}
//
// [Parse] groups the records by component id and turns each one into a
// [filament.Polyline], keeping the first four numbers of every sample and
// dropping the fifth. Anything the patterns do not match is skipped without
// error: malformed pt3dadd calls are ignored and records without a single
// valid sample are dropped.
package hoc
