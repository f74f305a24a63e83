// Package io reads and writes filament data as JSON.
//
// [WriteJSON] and [ExportJSON] serialize a built filament: nodes in
// distinct-coordinate order with their per-edge widths and lengths and
// neighbor indices, the collapsed edge list, and the layer list when the
// filament has been layered.
//
// [WriteComponents] and [ReadComponents] round-trip parsed polylines. The
// pipeline uses them to cache parsing results and accepts the same format
// as input in place of hoc text.
package io
