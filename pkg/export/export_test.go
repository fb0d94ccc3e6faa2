package export

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pagecraft/pkg/cache"
	"github.com/matzehuels/pagecraft/pkg/editor"
	"github.com/matzehuels/pagecraft/pkg/errors"
)

func snapshot(els ...editor.Element) editor.Snapshot {
	return editor.Snapshot{Elements: els}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<b>hi</b>", "&lt;b&gt;hi&lt;/b&gt;"},
		{"a & b", "a &amp; b"},
		{"&lt;", "&amp;lt;"},
		{`say "hi" it's`, `say "hi" it's`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderEscapesText(t *testing.T) {
	b := Render(snapshot(editor.Element{ID: "t", Kind: editor.KindText, X: 8, Y: 16, W: 64, H: 32, Text: "<b>hi</b>"}))

	if !strings.Contains(b.Markup, "&lt;b&gt;hi&lt;/b&gt;") {
		t.Errorf("markup missing escaped text:\n%s", b.Markup)
	}
	if strings.Contains(b.Markup, "<b>") {
		t.Error("markup must not contain raw <b>")
	}
	if !strings.Contains(b.Markup, "position:absolute;left:8px;top:16px;width:64px;height:32px;") {
		t.Errorf("markup missing box style:\n%s", b.Markup)
	}
}

func TestRenderImageSourceVerbatim(t *testing.T) {
	b := Render(snapshot(editor.Element{ID: "i", Kind: editor.KindImage, W: 120, H: 80, Src: "https://x/y.png"}))

	if !strings.Contains(b.Markup, `src="https://x/y.png"`) {
		t.Errorf("image src not embedded verbatim:\n%s", b.Markup)
	}
	if !strings.Contains(b.Markup, "object-fit:cover;") {
		t.Error("image should use object-fit cover")
	}
}

func TestRenderButtonLabel(t *testing.T) {
	tests := []struct {
		name, text, want string
	}{
		{"empty defaults", "", ">Button</button>"},
		{"custom label", "Buy", ">Buy</button>"},
		{"escaped label", "a<b", ">a&lt;b</button>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Render(snapshot(editor.Element{ID: "b", Kind: editor.KindButton, W: 96, H: 40, Text: tt.text}))
			if !strings.Contains(b.Markup, tt.want) {
				t.Errorf("markup missing %q:\n%s", tt.want, b.Markup)
			}
		})
	}
}

func TestRenderRectangle(t *testing.T) {
	b := Render(snapshot(editor.Element{ID: "r", Kind: editor.KindRectangle, W: 160, H: 96}))
	if !strings.Contains(b.Markup, `<div class="el el-rect"`) {
		t.Errorf("rectangle not rendered:\n%s", b.Markup)
	}
}

func TestRenderPaintOrder(t *testing.T) {
	b := Render(snapshot(
		editor.Element{ID: "1", Kind: editor.KindText, W: 16, H: 16, Text: "first"},
		editor.Element{ID: "2", Kind: editor.KindRectangle, W: 16, H: 16},
		editor.Element{ID: "3", Kind: editor.KindText, W: 16, H: 16, Text: "third"},
	))

	i1 := strings.Index(b.Markup, "first")
	i2 := strings.Index(b.Markup, "el-rect")
	i3 := strings.Index(b.Markup, "third")
	if !(i1 >= 0 && i1 < i2 && i2 < i3) {
		t.Errorf("elements out of paint order: %d %d %d", i1, i2, i3)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	b := Render(snapshot())
	if !strings.Contains(b.Markup, `<div class="canvas">`) {
		t.Error("empty document should still render the canvas")
	}
	if !strings.Contains(b.Markup, `href="styles.css"`) || !strings.Contains(b.Markup, `src="script.js"`) {
		t.Error("markup should reference the stylesheet and script")
	}
	if b.Stylesheet == "" || b.Script == "" {
		t.Error("stylesheet and script should not be empty")
	}
}

func TestRenderDoesNotMutateSnapshot(t *testing.T) {
	doc := editor.NewDefault()
	before := doc.Snapshot()
	Render(before)
	after := doc.Snapshot()
	if len(before.Elements) != len(after.Elements) || before.Elements[0] != after.Elements[0] {
		t.Error("Render changed the document")
	}
}

func TestZipContents(t *testing.T) {
	b := Render(editor.NewDefault().Snapshot())
	data, err := Zip(b)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}

	files, err := ReadZip(data)
	if err != nil {
		t.Fatalf("ReadZip: %v", err)
	}
	var names []string
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	want := []string{"index.html", "script.js", "styles.css"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("archive files = %v, want %v", names, want)
	}
	if files[MarkupFile] != b.Markup || files[StylesheetFile] != b.Stylesheet || files[ScriptFile] != b.Script {
		t.Error("archive contents differ from bundle")
	}
}

func TestZipDeterministic(t *testing.T) {
	b := Render(snapshot(editor.Element{ID: "t", Kind: editor.KindText, W: 16, H: 16, Text: "x"}))
	a1, err := Zip(b)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := Zip(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a1, a2) {
		t.Error("identical bundles should produce identical archives")
	}
}

func TestReadZipRejectsGarbage(t *testing.T) {
	if _, err := ReadZip([]byte("not a zip")); err == nil {
		t.Error("expected error for invalid archive")
	}
}

type failingCache struct{ cache.NullCache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, cache.ErrNetwork
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return cache.ErrNetwork
}

func TestExporterCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	x := NewExporter(fc, cache.NewDefaultKeyer(), nil)
	s := editor.NewDefault().Snapshot()

	first, err := x.Export(ctx, s)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if first.Cached {
		t.Error("first export should not be cached")
	}
	if first.Name != ArchiveName {
		t.Errorf("Name = %q, want %q", first.Name, ArchiveName)
	}

	second, err := x.Export(ctx, s)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !second.Cached {
		t.Error("second export of unchanged document should be cached")
	}
	if !bytes.Equal(first.Data, second.Data) || first.Hash != second.Hash {
		t.Error("cached archive differs from rendered archive")
	}

	s.Elements[0].Text = "changed"
	third, err := x.Export(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached || third.Hash == first.Hash {
		t.Error("changed document should miss the cache")
	}
}

func TestExporterIgnoresCacheFailures(t *testing.T) {
	x := NewExporter(failingCache{}, nil, nil)
	a, err := x.Export(context.Background(), editor.NewDefault().Snapshot())
	if err != nil {
		t.Fatalf("cache failure should not fail export: %v", err)
	}
	if len(a.Data) == 0 || a.Cached {
		t.Error("expected a freshly rendered archive")
	}
}

func TestZeroExporter(t *testing.T) {
	var x Exporter
	a, err := x.Export(context.Background(), snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if errors.GetCode(err) != "" || len(a.Data) == 0 {
		t.Error("zero exporter should render without caching")
	}
}
