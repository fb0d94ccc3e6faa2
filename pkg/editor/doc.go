// Package editor implements the page builder's document model and
// pointer interaction.
//
// # Document Model
//
// A [Document] is an ordered list of [Element] values. Order is paint order:
// later elements draw on top. Every mutation snaps geometry to the
// [geom.GridUnit] grid and floors sizes at [geom.MinSize] before storing,
// so an element can never hold off-grid or undersized geometry.
//
// Operations that name an element by id are silent no-ops when the id is
// not present. Editing stale UI state never fails.
//
// # Interaction
//
// An [Engine] turns pointer events into document mutations. Drag and resize
// are explicit [Session] values moving through Idle → Active → Idle; while a
// drag is active the engine also computes a [Guide] that hints when the
// dragged element is centered on the canvas.
//
//	doc := editor.NewDefault()
//	eng := editor.NewEngine(doc)
//	eng.PointerDown(editor.PointerEvent{X: 100, Y: 60, Target: id})
//	eng.PointerMove(editor.PointerEvent{X: 124, Y: 60})
//	eng.PointerUp(editor.PointerEvent{})
//
// # Concurrency
//
// Documents and engines are not safe for concurrent use. Callers that share
// one between goroutines must serialize access.
package editor
