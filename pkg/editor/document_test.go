package editor

import (
	"strings"
	"testing"

	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/geom"
)

func ids(d *Document) []string {
	var out []string
	for _, el := range d.Elements() {
		out = append(out, el.ID)
	}
	return out
}

func mustAdd(t *testing.T, d *Document, k Kind) Element {
	t.Helper()
	el, err := d.Add(k)
	if err != nil {
		t.Fatalf("Add(%s) error: %v", k, err)
	}
	return el
}

func TestAddDefaults(t *testing.T) {
	tests := []struct {
		kind       Kind
		w, h       int
		text       string
		background string
	}{
		{KindText, 200, 48, "Edit me", DefaultBackground},
		{KindImage, 120, 80, "", DefaultBackground},
		{KindRectangle, 120, 80, "", DefaultBackground},
		{KindButton, 120, 80, "", AccentColor},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			d := New()
			el := mustAdd(t, d, tt.kind)

			if el.X != 64 || el.Y != 64 || el.W != tt.w || el.H != tt.h {
				t.Errorf("box = %+v, want (64,64,%d,%d)", el.Rect(), tt.w, tt.h)
			}
			if el.Text != tt.text {
				t.Errorf("Text = %q, want %q", el.Text, tt.text)
			}
			if el.Style.FontSize != DefaultFontSize {
				t.Errorf("FontSize = %d, want %d", el.Style.FontSize, DefaultFontSize)
			}
			if el.Style.Background != tt.background {
				t.Errorf("Background = %q, want %q", el.Style.Background, tt.background)
			}
			if tt.kind == KindImage && !strings.HasPrefix(el.Src, "https://picsum.photos/300/200?random=") {
				t.Errorf("Src = %q, want placeholder URL", el.Src)
			}
			if tt.kind != KindImage && el.Src != "" {
				t.Errorf("Src = %q, want empty for %s", el.Src, tt.kind)
			}
			if sel, ok := d.Selected(); !ok || sel != el.ID {
				t.Errorf("Selected() = %q, %v, want %q", sel, ok, el.ID)
			}
			if d.Len() != 1 {
				t.Errorf("Len() = %d, want 1", d.Len())
			}
		})
	}
}

func TestAddUnknownKind(t *testing.T) {
	d := New()
	_, err := d.Add(Kind("circle"))
	if !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Fatalf("Add(circle) error = %v, want %s", err, errors.ErrCodeInvalidKind)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestAddUniqueIDs(t *testing.T) {
	d := New()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		el := mustAdd(t, d, Kinds[i%len(Kinds)])
		if seen[el.ID] {
			t.Fatalf("duplicate id %q", el.ID)
		}
		seen[el.ID] = true
	}
}

func TestNewDefault(t *testing.T) {
	d := NewDefault()
	els := d.Elements()
	if len(els) != 1 {
		t.Fatalf("NewDefault() has %d elements, want 1", len(els))
	}
	el := els[0]
	if el.Kind != KindText || el.Text != "Landing headline" || el.Style.FontSize != 24 {
		t.Errorf("headline = %+v", el)
	}
	if el.Rect() != (geom.Rect{X: 40, Y: 40, W: 224, H: 40}) {
		t.Errorf("headline box = %+v, want grid-aligned (40,40,224,40)", el.Rect())
	}
	if _, ok := d.Selected(); ok {
		t.Error("NewDefault() should start with no selection")
	}
}

func TestAddThenRemove(t *testing.T) {
	d := NewDefault()
	before := d.Len()

	el := mustAdd(t, d, KindButton)
	d.Remove(el.ID)

	if d.Len() != before {
		t.Errorf("Len() = %d, want %d", d.Len(), before)
	}
	if _, ok := d.Selected(); ok {
		t.Error("removing the selected element should clear the selection")
	}
}

func TestRemoveUnselectedKeepsSelection(t *testing.T) {
	d := New()
	a := mustAdd(t, d, KindText)
	b := mustAdd(t, d, KindRectangle)

	d.Remove(a.ID)
	if sel, _ := d.Selected(); sel != b.ID {
		t.Errorf("Selected() = %q, want %q", sel, b.ID)
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	d := NewDefault()
	before := d.Elements()

	d.UpdateText("missing", "x")
	d.ChangeStyle("missing", StylePatch{Color: ptr("red")})
	d.Resize("missing", 10, 10, AnchorBottomRight)
	d.Move("missing", 10, 10)
	d.SetSize("missing", 100, 100)
	d.SetSource("missing", "https://x/y.png")
	d.ReorderForward("missing")
	d.ReorderBackward("missing")
	d.Remove("missing")
	d.Select("missing")

	after := d.Elements()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("document changed: %+v -> %+v", before, after)
	}
	if _, ok := d.Selected(); ok {
		t.Error("Select(missing) should not select anything")
	}
}

func TestUpdateText(t *testing.T) {
	d := New()
	el := mustAdd(t, d, KindText)
	d.UpdateText(el.ID, "Hello")
	if got, _ := d.Element(el.ID); got.Text != "Hello" {
		t.Errorf("Text = %q, want Hello", got.Text)
	}
}

func TestChangeStyleMerges(t *testing.T) {
	d := New()
	el := mustAdd(t, d, KindText)

	d.ChangeStyle(el.ID, StylePatch{Color: ptr("#ff0000")})
	d.ChangeStyle(el.ID, StylePatch{FontSize: ptr(32)})
	d.ChangeStyle(el.ID, StylePatch{FontSize: ptr(-4)})

	got, _ := d.Element(el.ID)
	want := Style{FontSize: 32, Color: "#ff0000", Background: DefaultBackground}
	if got.Style != want {
		t.Errorf("Style = %+v, want %+v", got.Style, want)
	}
}

func TestSetSourceImageOnly(t *testing.T) {
	d := New()
	img := mustAdd(t, d, KindImage)
	rect := mustAdd(t, d, KindRectangle)

	d.SetSource(img.ID, "https://x/y.png")
	d.SetSource(rect.ID, "https://x/y.png")

	if got, _ := d.Element(img.ID); got.Src != "https://x/y.png" {
		t.Errorf("image Src = %q", got.Src)
	}
	if got, _ := d.Element(rect.ID); got.Src != "" {
		t.Errorf("rectangle Src = %q, want empty", got.Src)
	}
}

func TestSetSize(t *testing.T) {
	d := New()
	el := mustAdd(t, d, KindRectangle)

	d.SetSize(el.ID, 301, 3)
	got, _ := d.Element(el.ID)
	if got.W != 304 || got.H != geom.MinSize {
		t.Errorf("size = %dx%d, want 304x%d", got.W, got.H, geom.MinSize)
	}
}

func TestResizeAnchors(t *testing.T) {
	start := geom.Rect{X: 40, Y: 40, W: 120, H: 80}
	tests := []struct {
		name   string
		anchor Anchor
		dx, dy float64
		want   geom.Rect
	}{
		{"bottom-right grows both", AnchorBottomRight, 16, 8, geom.Rect{X: 40, Y: 40, W: 136, H: 88}},
		{"middle-right grows width", AnchorMiddleRight, 16, 8, geom.Rect{X: 40, Y: 40, W: 136, H: 80}},
		{"middle-bottom grows height", AnchorMiddleBottom, 16, 8, geom.Rect{X: 40, Y: 40, W: 120, H: 88}},
		{"top-left shifts and shrinks", AnchorTopLeft, 16, 8, geom.Rect{X: 56, Y: 48, W: 104, H: 72}},
		{"top-left grows on negative", AnchorTopLeft, -16, -16, geom.Rect{X: 24, Y: 24, W: 136, H: 96}},
		{"floor at minimum", AnchorBottomRight, -500, -500, geom.Rect{X: 40, Y: 40, W: 16, H: 16}},
		{"sub-grid delta snaps back", AnchorBottomRight, 3, -3, geom.Rect{X: 40, Y: 40, W: 120, H: 80}},
		{"unknown anchor", Anchor("zz"), 16, 16, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Document{elements: []Element{{ID: "a", Kind: KindRectangle, X: start.X, Y: start.Y, W: start.W, H: start.H}}}
			d.Resize("a", tt.dx, tt.dy, tt.anchor)
			got, _ := d.Element("a")
			if got.Rect() != tt.want {
				t.Errorf("Resize(%s, %v, %v) = %+v, want %+v", tt.anchor, tt.dx, tt.dy, got.Rect(), tt.want)
			}
		})
	}
}

func TestResizeHeadlineScenario(t *testing.T) {
	d := &Document{elements: []Element{{ID: "a", Kind: KindText, X: 40, Y: 40, W: 220, H: 40}}}
	d.Resize("a", 5, 3, AnchorBottomRight)
	got, _ := d.Element("a")
	if got.W != 224 || got.H != 40 {
		t.Errorf("size = %dx%d, want 224x40", got.W, got.H)
	}
}

func TestResizeInvariantsHold(t *testing.T) {
	d := New()
	el := mustAdd(t, d, KindText)
	anchors := []Anchor{AnchorBottomRight, AnchorMiddleRight, AnchorMiddleBottom, AnchorTopLeft}
	deltas := []float64{-1000, -37.5, -9, -3, 0, 2.5, 7, 13, 64.25, 999}

	for i := 0; i < 400; i++ {
		a := anchors[i%len(anchors)]
		dx := deltas[i%len(deltas)]
		dy := deltas[(i*7)%len(deltas)]
		d.Resize(el.ID, dx, dy, a)

		got, _ := d.Element(el.ID)
		if got.W < geom.MinSize || got.H < geom.MinSize {
			t.Fatalf("step %d: size %dx%d below minimum", i, got.W, got.H)
		}
		for _, v := range []int{got.X, got.Y, got.W, got.H} {
			if v%geom.GridUnit != 0 {
				t.Fatalf("step %d: box %+v not grid-aligned", i, got.Rect())
			}
		}
	}
}

func TestMove(t *testing.T) {
	d := &Document{elements: []Element{{ID: "a", Kind: KindRectangle, X: 40, Y: 40, W: 120, H: 80}}}
	d.Move("a", 13, -21)
	got, _ := d.Element("a")
	if got.X != 56 || got.Y != 16 {
		t.Errorf("position = (%d,%d), want (56,16)", got.X, got.Y)
	}
}

func TestReorder(t *testing.T) {
	d := New()
	a := mustAdd(t, d, KindText)
	b := mustAdd(t, d, KindImage)
	c := mustAdd(t, d, KindButton)

	d.ReorderForward(a.ID)
	if got := ids(d); got[0] != b.ID || got[1] != a.ID || got[2] != c.ID {
		t.Errorf("after forward: %v", got)
	}

	d.ReorderForward(c.ID) // already on top
	if got := ids(d); got[2] != c.ID {
		t.Errorf("forward at top changed order: %v", got)
	}

	d.ReorderBackward(b.ID) // already at bottom
	if got := ids(d); got[0] != b.ID {
		t.Errorf("backward at bottom changed order: %v", got)
	}
}

func TestReorderRoundTrip(t *testing.T) {
	d := New()
	for i := 0; i < 5; i++ {
		mustAdd(t, d, Kinds[i%len(Kinds)])
	}
	original := ids(d)

	for _, id := range original[:len(original)-1] {
		d.ReorderForward(id)
		d.ReorderBackward(id)
		got := ids(d)
		for i := range original {
			if got[i] != original[i] {
				t.Fatalf("forward+backward on %s: %v, want %v", id, got, original)
			}
		}
	}
}

func TestSnapshotIsolated(t *testing.T) {
	d := New()
	el := mustAdd(t, d, KindText)
	snap := d.Snapshot()

	d.UpdateText(el.ID, "changed")
	d.Remove(el.ID)

	if len(snap.Elements) != 1 || snap.Elements[0].Text != "Edit me" {
		t.Errorf("snapshot mutated: %+v", snap.Elements)
	}
}

func TestFromSnapshot(t *testing.T) {
	d, err := FromSnapshot(Snapshot{Elements: []Element{
		{ID: "a", Kind: KindText, X: 41, Y: 45, W: 5, H: 221, Text: "hi"},
		{ID: "b", Kind: KindImage, X: 0, Y: 0, W: 120, H: 80, Src: "https://x/y.png"},
	}})
	if err != nil {
		t.Fatalf("FromSnapshot error: %v", err)
	}
	a, _ := d.Element("a")
	if a.Rect() != (geom.Rect{X: 40, Y: 48, W: 16, H: 224}) {
		t.Errorf("normalized box = %+v", a.Rect())
	}
	if a.Style.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %d, want default", a.Style.FontSize)
	}
}

func TestFromSnapshotRejects(t *testing.T) {
	tests := []struct {
		name string
		els  []Element
	}{
		{"empty id", []Element{{Kind: KindText}}},
		{"duplicate id", []Element{{ID: "a", Kind: KindText}, {ID: "a", Kind: KindButton}}},
		{"unknown kind", []Element{{ID: "a", Kind: "video"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSnapshot(Snapshot{Elements: tt.els})
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("FromSnapshot error = %v, want %s", err, errors.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestParseKindAndAnchor(t *testing.T) {
	if k, err := ParseKind("button"); err != nil || k != KindButton {
		t.Errorf("ParseKind(button) = %q, %v", k, err)
	}
	if _, err := ParseKind("video"); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("ParseKind(video) error = %v", err)
	}
	if a, err := ParseAnchor("tl"); err != nil || a != AnchorTopLeft {
		t.Errorf("ParseAnchor(tl) = %q, %v", a, err)
	}
	if _, err := ParseAnchor("xx"); !errors.Is(err, errors.ErrCodeInvalidAnchor) {
		t.Errorf("ParseAnchor(xx) error = %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
