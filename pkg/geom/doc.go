// Package geom provides the pixel geometry shared by the page editor.
//
// All element positions and sizes live on an integer grid of [GridUnit]
// pixels. [Snap] is the single rounding primitive: every value that is
// stored in an editor document passes through it, so off-grid geometry
// cannot be represented.
//
// # Identifiers
//
// [NewID] produces opaque element identifiers. They carry a readable
// prefix for debugging but are never parsed.
//
//	id := geom.NewID("el") // "el_3f2c9d..."
package geom
