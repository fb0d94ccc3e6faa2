package editor

import (
	"math"

	"github.com/matzehuels/pagecraft/pkg/geom"
)

// Mode is the state of an interaction session.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrag
	ModeResize
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeResize:
		return "resize"
	default:
		return "idle"
	}
}

// Session is the transient state of an active drag or resize. The zero value
// is the idle session.
type Session struct {
	Mode   Mode
	Target string     // element being dragged or resized
	Anchor Anchor     // resize handle; empty for drag
	Last   geom.Point // pointer position at the previous tick
	Canvas geom.Size  // canvas bounds for guide computation; drag only
}

// Active reports whether a drag or resize is in progress.
func (s Session) Active() bool {
	return s.Mode != ModeIdle
}

// Guide is an advisory alignment hint. V is the x position of a vertical
// line; H is the y position of a horizontal line. Either may be nil.
type Guide struct {
	V *float64 `json:"v,omitempty"`
	H *float64 `json:"h,omitempty"`
}

// Empty reports whether no guide line is shown.
func (g Guide) Empty() bool {
	return g.V == nil && g.H == nil
}

// ComputeGuide returns the guides for an element box on a canvas. A vertical
// guide appears at the canvas horizontal center when the box's horizontal
// center is within geom.GuideTolerance of it, and symmetrically for the
// horizontal guide. Guides never move the box.
func ComputeGuide(box geom.Rect, canvas geom.Size) Guide {
	var g Guide
	c := box.Center()
	cc := canvas.Center()
	if math.Abs(c.X-cc.X) < geom.GuideTolerance {
		v := cc.X
		g.V = &v
	}
	if math.Abs(c.Y-cc.Y) < geom.GuideTolerance {
		h := cc.Y
		g.H = &h
	}
	return g
}

// PointerEvent is one pointer input. Target is the id of the element under
// the pointer, or empty for the canvas background. Handle names the resize
// handle that was hit, if any. Canvas carries the canvas bounds on
// pointer-down; a zero Canvas falls back to geom.CanvasSize.
type PointerEvent struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Target string    `json:"target,omitempty"`
	Handle Anchor    `json:"handle,omitempty"`
	Canvas geom.Size `json:"canvas,omitempty"`
}

// Point returns the event's pointer position.
func (ev PointerEvent) Point() geom.Point {
	return geom.Point{X: ev.X, Y: ev.Y}
}

// Engine routes pointer events to a document. Each event is handled to
// completion before it returns.
type Engine struct {
	doc     *Document
	session Session
	guide   Guide
}

// NewEngine returns an idle engine over doc.
func NewEngine(doc *Document) *Engine {
	if doc == nil {
		doc = New()
	}
	return &Engine{doc: doc}
}

// Document returns the document the engine mutates.
func (e *Engine) Document() *Document {
	return e.doc
}

// Session returns the current session.
func (e *Engine) Session() Session {
	return e.session
}

// Guide returns the current alignment guide.
func (e *Engine) Guide() Guide {
	return e.guide
}

// PointerDown selects the element under the pointer and starts a drag, or a
// resize when a handle was hit. Pointer-down on the background, or on an id
// that no longer exists, clears the selection without starting a session.
func (e *Engine) PointerDown(ev PointerEvent) {
	if _, ok := e.doc.Element(ev.Target); !ok {
		e.doc.ClearSelection()
		e.reset()
		return
	}

	e.doc.Select(ev.Target)
	e.guide = Guide{}

	if ev.Handle != "" {
		if !ev.Handle.Valid() {
			e.reset()
			return
		}
		e.session = Session{
			Mode:   ModeResize,
			Target: ev.Target,
			Anchor: ev.Handle,
			Last:   ev.Point(),
		}
		return
	}

	canvas := ev.Canvas
	if canvas.IsZero() {
		canvas = geom.CanvasSize
	}
	e.session = Session{
		Mode:   ModeDrag,
		Target: ev.Target,
		Last:   ev.Point(),
		Canvas: canvas,
	}
}

// PointerMove applies the pointer delta since the previous tick to the
// active session's element. Deltas are incremental, not cumulative from
// the start of the session. If the target was removed mid-session, the
// session ends.
func (e *Engine) PointerMove(ev PointerEvent) {
	if !e.session.Active() {
		return
	}
	el, ok := e.doc.Element(e.session.Target)
	if !ok {
		e.reset()
		return
	}

	p := ev.Point()
	d := p.Sub(e.session.Last)

	switch e.session.Mode {
	case ModeDrag:
		next := moveRect(el.Rect(), d.X, d.Y)
		e.doc.Move(el.ID, d.X, d.Y)
		e.guide = ComputeGuide(next, e.session.Canvas)
	case ModeResize:
		e.doc.Resize(el.ID, d.X, d.Y, e.session.Anchor)
	}
	e.session.Last = p
}

// PointerUp ends any active session and clears the guide.
func (e *Engine) PointerUp(PointerEvent) {
	e.reset()
}

func (e *Engine) reset() {
	e.session = Session{}
	e.guide = Guide{}
}
