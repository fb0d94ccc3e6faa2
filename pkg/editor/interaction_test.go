package editor

import (
	"testing"

	"github.com/matzehuels/pagecraft/pkg/geom"
)

func docWith(els ...Element) *Document {
	d, err := FromSnapshot(Snapshot{Elements: els})
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeGuide(t *testing.T) {
	canvas := geom.Size{W: 1200, H: 800}
	tests := []struct {
		name  string
		box   geom.Rect
		wantV bool
		wantH bool
	}{
		{"centered", geom.Rect{X: 540, Y: 360, W: 120, H: 80}, true, true},
		{"off by four", geom.Rect{X: 544, Y: 364, W: 120, H: 80}, true, true},
		{"off by exactly tolerance", geom.Rect{X: 548, Y: 368, W: 120, H: 80}, false, false},
		{"horizontal only", geom.Rect{X: 0, Y: 360, W: 120, H: 80}, false, true},
		{"vertical only", geom.Rect{X: 540, Y: 0, W: 120, H: 80}, true, false},
		{"far", geom.Rect{X: 0, Y: 0, W: 120, H: 80}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ComputeGuide(tt.box, canvas)
			if (g.V != nil) != tt.wantV || (g.H != nil) != tt.wantH {
				t.Fatalf("ComputeGuide(%+v) = {V:%v H:%v}, want V=%v H=%v", tt.box, g.V, g.H, tt.wantV, tt.wantH)
			}
			if g.V != nil && *g.V != 600 {
				t.Errorf("V = %v, want 600", *g.V)
			}
			if g.H != nil && *g.H != 400 {
				t.Errorf("H = %v, want 400", *g.H)
			}
		})
	}
}

func TestDragNearCenterEmitsGuides(t *testing.T) {
	d := docWith(
		Element{ID: "a", Kind: KindRectangle, X: 536, Y: 360, W: 120, H: 80},
		Element{ID: "b", Kind: KindRectangle, X: 0, Y: 0, W: 120, H: 80},
	)
	e := NewEngine(d)

	e.PointerDown(PointerEvent{X: 600, Y: 400, Target: "a", Canvas: geom.Size{W: 1200, H: 800}})
	e.PointerMove(PointerEvent{X: 608, Y: 400})

	a, _ := d.Element("a")
	if a.X != 544 {
		t.Fatalf("a.X = %d, want 544", a.X)
	}
	if g := e.Guide(); g.V == nil || g.H == nil {
		t.Errorf("Guide() = %+v, want both guides for a centered element", g)
	}

	e.PointerUp(PointerEvent{})
	if !e.Guide().Empty() {
		t.Error("PointerUp should clear the guide")
	}

	e.PointerDown(PointerEvent{X: 10, Y: 10, Target: "b"})
	e.PointerMove(PointerEvent{X: 18, Y: 18})
	if g := e.Guide(); !g.Empty() {
		t.Errorf("Guide() = %+v, want none for a far element", g)
	}
}

func TestGuideDoesNotSnapPosition(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindRectangle, X: 528, Y: 0, W: 120, H: 80})
	e := NewEngine(d)

	e.PointerDown(PointerEvent{X: 0, Y: 0, Target: "a"})
	e.PointerMove(PointerEvent{X: 16, Y: 0}) // center lands at 604

	a, _ := d.Element("a")
	if a.X != 544 {
		t.Errorf("a.X = %d, want 544 (guides must not pull toward center)", a.X)
	}
	if e.Guide().V == nil {
		t.Error("expected vertical guide")
	}
}

func TestDragDeltasAreIncremental(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindText, X: 40, Y: 40, W: 200, H: 48})
	e := NewEngine(d)

	e.PointerDown(PointerEvent{X: 100, Y: 100, Target: "a"})
	e.PointerMove(PointerEvent{X: 116, Y: 100})
	e.PointerMove(PointerEvent{X: 124, Y: 108})

	a, _ := d.Element("a")
	if a.X != 64 || a.Y != 48 {
		t.Errorf("position = (%d,%d), want (64,48)", a.X, a.Y)
	}
	if s := e.Session(); s.Last != (geom.Point{X: 124, Y: 108}) {
		t.Errorf("Session().Last = %+v, want last pointer", s.Last)
	}
}

func TestPointerDownSelectsAndStartsDrag(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindText, X: 40, Y: 40, W: 200, H: 48})
	e := NewEngine(d)

	e.PointerDown(PointerEvent{X: 50, Y: 50, Target: "a"})

	if sel, _ := d.Selected(); sel != "a" {
		t.Errorf("Selected() = %q, want a", sel)
	}
	s := e.Session()
	if s.Mode != ModeDrag || s.Target != "a" {
		t.Errorf("Session() = %+v, want drag on a", s)
	}
	if s.Canvas != geom.CanvasSize {
		t.Errorf("Canvas = %+v, want default %+v", s.Canvas, geom.CanvasSize)
	}
}

func TestPointerDownBackgroundClearsSelection(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindText, X: 40, Y: 40, W: 200, H: 48})
	e := NewEngine(d)
	d.Select("a")

	e.PointerDown(PointerEvent{X: 900, Y: 700})

	if _, ok := d.Selected(); ok {
		t.Error("background pointer-down should clear selection")
	}
	if e.Session().Active() {
		t.Error("background pointer-down should not start a session")
	}
}

func TestResizeSession(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindRectangle, X: 40, Y: 40, W: 120, H: 80})
	e := NewEngine(d)

	e.PointerDown(PointerEvent{X: 160, Y: 120, Target: "a", Handle: AnchorBottomRight})
	if e.Session().Mode != ModeResize {
		t.Fatalf("Session().Mode = %s, want resize", e.Session().Mode)
	}
	e.PointerMove(PointerEvent{X: 176, Y: 128})
	e.PointerMove(PointerEvent{X: 184, Y: 128})

	a, _ := d.Element("a")
	if a.Rect() != (geom.Rect{X: 40, Y: 40, W: 144, H: 88}) {
		t.Errorf("box = %+v, want (40,40,144,88)", a.Rect())
	}
	if !e.Guide().Empty() {
		t.Error("resize should not produce guides")
	}

	e.PointerUp(PointerEvent{})
	if e.Session().Active() {
		t.Error("PointerUp should end the resize session")
	}
}

func TestInvalidHandleStartsNothing(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindRectangle, X: 40, Y: 40, W: 120, H: 80})
	e := NewEngine(d)

	e.PointerDown(PointerEvent{Target: "a", Handle: Anchor("zz")})
	if e.Session().Active() {
		t.Error("unknown handle should not start a session")
	}
}

func TestMoveWhileIdleIsNoop(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindRectangle, X: 40, Y: 40, W: 120, H: 80})
	e := NewEngine(d)

	e.PointerMove(PointerEvent{X: 500, Y: 500})
	a, _ := d.Element("a")
	if a.X != 40 || a.Y != 40 {
		t.Errorf("idle move changed position to (%d,%d)", a.X, a.Y)
	}
}

func TestTargetRemovedMidDrag(t *testing.T) {
	d := docWith(Element{ID: "a", Kind: KindRectangle, X: 40, Y: 40, W: 120, H: 80})
	e := NewEngine(d)

	e.PointerDown(PointerEvent{X: 0, Y: 0, Target: "a"})
	d.Remove("a")
	e.PointerMove(PointerEvent{X: 16, Y: 16})

	if e.Session().Active() {
		t.Error("session should end once its target is gone")
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeIdle: "idle", ModeDrag: "drag", ModeResize: "resize"} {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, got, want)
		}
	}
}
