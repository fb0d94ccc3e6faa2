package editor

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/geom"
)

// idPrefix prefixes every generated element id.
const idPrefix = "el"

// Placement of newly added elements: (60,60) snapped to the grid.
const (
	spawnX = 64
	spawnY = 64
)

// placeholderImage is the remote image a new image element points at.
// The query suffix varies so browsers do not serve every placeholder from
// one cached response.
const placeholderImage = "https://picsum.photos/300/200?random=%d"

// Document is the ordered collection of placed elements plus the current
// selection. The zero value is an empty, usable document.
type Document struct {
	elements []Element
	selected string
}

// Snapshot is an immutable copy of a document's elements in paint order.
type Snapshot struct {
	Elements []Element `json:"elements"`
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// NewDefault returns a document holding the starter headline element.
func NewDefault() *Document {
	d := New()
	headline := Element{
		ID:   geom.NewID(idPrefix),
		Kind: KindText,
		X:    40,
		Y:    40,
		W:    220,
		H:    40,
		Text: "Landing headline",
		Style: Style{
			FontSize:   24,
			Color:      DefaultColor,
			Background: DefaultBackground,
		},
	}
	headline.normalize()
	d.elements = append(d.elements, headline)
	return d
}

// FromSnapshot builds a document from a snapshot, typically one read from a
// design file. Geometry is re-snapped and floored. Unknown kinds, empty ids
// and duplicate ids are rejected.
func FromSnapshot(s Snapshot) (*Document, error) {
	d := New()
	seen := make(map[string]bool, len(s.Elements))
	for i, el := range s.Elements {
		if el.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "element %d has no id", i)
		}
		if seen[el.ID] {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "duplicate element id %q", el.ID)
		}
		if !el.Kind.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "element %q has unknown kind %q", el.ID, el.Kind)
		}
		seen[el.ID] = true
		el.normalize()
		d.elements = append(d.elements, el)
	}
	return d, nil
}

// Snapshot returns a copy of the elements that later mutations cannot touch.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{Elements: d.Elements()}
}

// Elements returns a copy of the elements in paint order.
func (d *Document) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Len returns the number of elements.
func (d *Document) Len() int {
	return len(d.elements)
}

// Element returns the element with the given id.
func (d *Document) Element(id string) (Element, bool) {
	i := d.indexOf(id)
	if i < 0 {
		return Element{}, false
	}
	return d.elements[i], true
}

// Selected returns the selected element id, if any.
func (d *Document) Selected() (string, bool) {
	return d.selected, d.selected != ""
}

// Select marks id as selected. Unknown ids are ignored.
func (d *Document) Select(id string) {
	if d.indexOf(id) >= 0 {
		d.selected = id
	}
}

// ClearSelection deselects whatever is selected.
func (d *Document) ClearSelection() {
	d.selected = ""
}

// Add appends a new element of the given kind with kind-specific defaults
// and selects it.
func (d *Document) Add(kind Kind) (Element, error) {
	if !kind.Valid() {
		return Element{}, errors.New(errors.ErrCodeInvalidKind, "unknown element kind: %q", kind)
	}

	el := Element{
		ID:   geom.NewID(idPrefix),
		Kind: kind,
		X:    spawnX,
		Y:    spawnY,
		W:    120,
		H:    80,
		Style: Style{
			FontSize:   DefaultFontSize,
			Color:      DefaultColor,
			Background: DefaultBackground,
		},
	}
	switch kind {
	case KindText:
		el.W, el.H = 200, 48
		el.Text = "Edit me"
	case KindImage:
		el.Src = fmt.Sprintf(placeholderImage, rand.IntN(1000))
	case KindButton:
		el.Style.Background = AccentColor
	}

	d.elements = append(d.elements, el)
	d.selected = el.ID
	return el, nil
}

// UpdateText replaces the text of the element.
func (d *Document) UpdateText(id, text string) {
	d.update(id, func(el *Element) { el.Text = text })
}

// SetSource replaces the image URL of an image element.
func (d *Document) SetSource(id, src string) {
	d.update(id, func(el *Element) {
		if el.Kind == KindImage {
			el.Src = src
		}
	})
}

// ChangeStyle merges patch into the element's style.
func (d *Document) ChangeStyle(id string, patch StylePatch) {
	d.update(id, func(el *Element) { el.Style = el.Style.Merge(patch) })
}

// SetSize sets the element's width and height directly. Both are snapped and
// floored at geom.MinSize.
func (d *Document) SetSize(id string, w, h float64) {
	d.update(id, func(el *Element) {
		el.W = geom.ClampSize(w)
		el.H = geom.ClampSize(h)
	})
}

// Resize applies a pointer delta to the element through the given anchor.
// Unknown anchors leave the element unchanged.
func (d *Document) Resize(id string, dx, dy float64, anchor Anchor) {
	d.update(id, func(el *Element) {
		if r, ok := resizeRect(el.Rect(), dx, dy, anchor); ok {
			el.setRect(r)
		}
	})
}

// Move shifts the element by a pointer delta, snapping the new position.
func (d *Document) Move(id string, dx, dy float64) {
	d.update(id, func(el *Element) { el.setRect(moveRect(el.Rect(), dx, dy)) })
}

// Remove deletes the element and clears the selection if it was selected.
func (d *Document) Remove(id string) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}
	d.elements = append(d.elements[:i], d.elements[i+1:]...)
	if d.selected == id {
		d.selected = ""
	}
}

// ReorderForward moves the element one step later in paint order.
func (d *Document) ReorderForward(id string) {
	i := d.indexOf(id)
	if i < 0 || i == len(d.elements)-1 {
		return
	}
	d.elements[i], d.elements[i+1] = d.elements[i+1], d.elements[i]
}

// ReorderBackward moves the element one step earlier in paint order.
func (d *Document) ReorderBackward(id string) {
	i := d.indexOf(id)
	if i <= 0 {
		return
	}
	d.elements[i], d.elements[i-1] = d.elements[i-1], d.elements[i]
}

func (d *Document) update(id string, fn func(el *Element)) {
	if i := d.indexOf(id); i >= 0 {
		fn(&d.elements[i])
	}
}

func (d *Document) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range d.elements {
		if d.elements[i].ID == id {
			return i
		}
	}
	return -1
}
