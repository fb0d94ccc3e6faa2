package export

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pagecraft/pkg/editor"
)

// File names inside the bundle.
const (
	MarkupFile     = "index.html"
	StylesheetFile = "styles.css"
	ScriptFile     = "script.js"
)

// ArchiveName is the suggested file name of the packaged bundle.
const ArchiveName = "design-export.zip"

// defaultButtonLabel is used when a button has no text.
const defaultButtonLabel = "Button"

// Bundle is the rendered static site.
type Bundle struct {
	Markup     string
	Stylesheet string
	Script     string
}

// File is one named text file of a bundle.
type File struct {
	Name    string
	Content string
}

// Files returns the bundle's files in a stable order.
func (b Bundle) Files() []File {
	return []File{
		{Name: MarkupFile, Content: b.Markup},
		{Name: StylesheetFile, Content: b.Stylesheet},
		{Name: ScriptFile, Content: b.Script},
	}
}

const stylesheet = `body{margin:0;font-family:Inter,system-ui,Arial;}
.canvas{position:relative;width:1200px;height:800px;margin:24px auto;background:#fff;border:1px solid #ddd;box-shadow:0 6px 18px rgba(0,0,0,.08);}
.el{box-sizing:border-box;}
.el-text{font-size:16px;color:#0b1220;padding:6px}
.el-rect{background:#e6eef6}
.el-btn{background:#7c3aed;color:#fff;border:none;border-radius:6px}
.el-image{display:block}
`

const script = `// Minimal script for exported page (empty for now)
console.log('Design loaded');`

const page = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<link rel="stylesheet" href="` + StylesheetFile + `">
<title>Exported Design</title>
</head>
<body>
<div class="canvas">
%s
</div>
<script src="` + ScriptFile + `"></script>
</body>
</html>`

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML replaces &, < and > with their entities. Quotes are left alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Render converts a snapshot into a bundle. It reads the snapshot only.
func Render(s editor.Snapshot) Bundle {
	nodes := make([]string, 0, len(s.Elements))
	for _, el := range s.Elements {
		if n := renderElement(el); n != "" {
			nodes = append(nodes, n)
		}
	}
	return Bundle{
		Markup:     fmt.Sprintf(page, strings.Join(nodes, "\n")),
		Stylesheet: stylesheet,
		Script:     script,
	}
}

func renderElement(el editor.Element) string {
	box := fmt.Sprintf("position:absolute;left:%dpx;top:%dpx;width:%dpx;height:%dpx;", el.X, el.Y, el.W, el.H)
	switch el.Kind {
	case editor.KindText:
		return fmt.Sprintf(`<div class="el el-text" style="%s">%s</div>`, box, EscapeHTML(el.Text))
	case editor.KindImage:
		return fmt.Sprintf(`<img class="el el-image" src="%s" style="%sobject-fit:cover;"/>`, el.Src, box)
	case editor.KindRectangle:
		return fmt.Sprintf(`<div class="el el-rect" style="%s"></div>`, box)
	case editor.KindButton:
		label := el.Text
		if label == "" {
			label = defaultButtonLabel
		}
		return fmt.Sprintf(`<button class="el el-btn" style="%s">%s</button>`, box, EscapeHTML(label))
	}
	return ""
}
