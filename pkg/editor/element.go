package editor

import (
	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/geom"
)

// Kind identifies what an element renders as. It is fixed at creation.
type Kind string

const (
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindRectangle Kind = "rectangle"
	KindButton    Kind = "button"
)

// Kinds lists every element kind in palette order.
var Kinds = []Kind{KindText, KindImage, KindRectangle, KindButton}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindImage, KindRectangle, KindButton:
		return true
	}
	return false
}

// HasText reports whether elements of this kind carry editable text.
func (k Kind) HasText() bool {
	return k == KindText || k == KindButton
}

// ParseKind converts a wire name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", errors.New(errors.ErrCodeInvalidKind, "unknown element kind: %q", s)
	}
	return k, nil
}

// Anchor names the corner or edge a resize handle controls.
type Anchor string

const (
	AnchorBottomRight  Anchor = "br"
	AnchorMiddleRight  Anchor = "mr"
	AnchorMiddleBottom Anchor = "mb"
	AnchorTopLeft      Anchor = "tl"
)

// Valid reports whether a is a known anchor.
func (a Anchor) Valid() bool {
	switch a {
	case AnchorBottomRight, AnchorMiddleRight, AnchorMiddleBottom, AnchorTopLeft:
		return true
	}
	return false
}

// ParseAnchor converts a wire name into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	a := Anchor(s)
	if !a.Valid() {
		return "", errors.New(errors.ErrCodeInvalidAnchor, "unknown resize anchor: %q", s)
	}
	return a, nil
}

// Style defaults.
const (
	DefaultFontSize   = 16
	DefaultColor      = "#0b1220"
	DefaultBackground = "transparent"
	AccentColor       = "#7c3aed"
)

// Style holds the optional visual attributes of an element.
type Style struct {
	FontSize   int    `json:"fontSize,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
}

// FontSizeOrDefault returns the font size, falling back to DefaultFontSize.
func (s Style) FontSizeOrDefault() int {
	if s.FontSize <= 0 {
		return DefaultFontSize
	}
	return s.FontSize
}

// StylePatch is a partial Style. Nil fields leave the existing value alone.
type StylePatch struct {
	FontSize   *int    `json:"fontSize,omitempty"`
	Color      *string `json:"color,omitempty"`
	Background *string `json:"background,omitempty"`
}

// Merge returns s with every non-nil field of p applied. A non-positive font
// size is ignored so FontSize stays positive.
func (s Style) Merge(p StylePatch) Style {
	if p.FontSize != nil && *p.FontSize > 0 {
		s.FontSize = *p.FontSize
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	return s
}

// Element is a placed object on the canvas.
type Element struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"type"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Text  string `json:"text,omitempty"`
	Src   string `json:"src,omitempty"`
	Style Style  `json:"style"`
}

// Rect returns the element's box.
func (e Element) Rect() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

func (e *Element) setRect(r geom.Rect) {
	e.X, e.Y, e.W, e.H = r.X, r.Y, r.W, r.H
}

// normalize snaps position and size and fills style defaults.
func (e *Element) normalize() {
	e.X = geom.Snap(float64(e.X))
	e.Y = geom.Snap(float64(e.Y))
	e.W = geom.ClampSize(float64(e.W))
	e.H = geom.ClampSize(float64(e.H))
	e.Style.FontSize = e.Style.FontSizeOrDefault()
}

// resizeRect applies a resize delta through the given anchor. Positions are
// snapped; sizes are snapped and floored at geom.MinSize. It reports false
// for an unknown anchor.
func resizeRect(r geom.Rect, dx, dy float64, anchor Anchor) (geom.Rect, bool) {
	switch anchor {
	case AnchorBottomRight:
		r.W = geom.ClampSize(float64(r.W) + dx)
		r.H = geom.ClampSize(float64(r.H) + dy)
	case AnchorMiddleRight:
		r.W = geom.ClampSize(float64(r.W) + dx)
	case AnchorMiddleBottom:
		r.H = geom.ClampSize(float64(r.H) + dy)
	case AnchorTopLeft:
		r.X = geom.Snap(float64(r.X) + dx)
		r.Y = geom.Snap(float64(r.Y) + dy)
		r.W = geom.ClampSize(float64(r.W) - dx)
		r.H = geom.ClampSize(float64(r.H) - dy)
	default:
		return r, false
	}
	return r, true
}

// moveRect shifts r by a pointer delta, snapping the new position.
func moveRect(r geom.Rect, dx, dy float64) geom.Rect {
	r.X = geom.Snap(float64(r.X) + dx)
	r.Y = geom.Snap(float64(r.Y) + dy)
	return r
}
