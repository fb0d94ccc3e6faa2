package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pagecraft/pkg/editor"
	"github.com/matzehuels/pagecraft/pkg/geom"
	designio "github.com/matzehuels/pagecraft/pkg/io"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(bright)
	listDimStyle      = lipgloss.NewStyle().Foreground(faint)
	canvasStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(faint)
)

// Canvas preview dimensions in terminal cells.
const (
	previewCols = 60
	previewRows = 20
)

// kindGlyphs maps element kinds to the rune used in the canvas preview.
var kindGlyphs = map[editor.Kind]rune{
	editor.KindText:      'T',
	editor.KindImage:     'I',
	editor.KindRectangle: '#',
	editor.KindButton:    'B',
}

// addKeys maps palette keys to the kind they add.
var addKeys = map[string]editor.Kind{
	"t": editor.KindText,
	"i": editor.KindImage,
	"r": editor.KindRectangle,
	"b": editor.KindButton,
}

// =============================================================================
// EditorModel - Interactive design editing
// =============================================================================

// EditorModel is the bubbletea model for editing a design file.
type EditorModel struct {
	Path  string
	Dirty bool

	doc         *editor.Document
	ctrl        *editor.Controller
	save        func(editor.Snapshot, string) error
	status      string
	confirmQuit bool
}

// NewEditorModel creates an editor over doc that saves to path.
func NewEditorModel(doc *editor.Document, path string) EditorModel {
	return EditorModel{
		Path: path,
		doc:  doc,
		ctrl: editor.NewController(doc),
		save: designio.ExportJSON,
	}
}

// Document returns the document being edited.
func (m EditorModel) Document() *editor.Document {
	return m.doc
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	k := key.String()
	if k != "q" && k != "ctrl+c" {
		m.confirmQuit = false
	}
	m.status = ""

	switch k {
	case "q", "ctrl+c":
		if m.Dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.status = "Unsaved changes: press q again to quit, s to save"
			return m, nil
		}
		return m, tea.Quit
	case "s":
		if err := m.save(m.doc.Snapshot(), m.Path); err != nil {
			m.status = "Save failed: " + err.Error()
			return m, nil
		}
		m.Dirty = false
		m.status = "Saved " + m.Path
	case "up", "down", "left", "right":
		dx, dy := arrowDelta(k)
		m.edit(func(id string) { m.doc.Move(id, dx, dy) })
	case "shift+up", "shift+down", "shift+left", "shift+right":
		dx, dy := arrowDelta(strings.TrimPrefix(k, "shift+"))
		m.edit(func(id string) { m.doc.Resize(id, dx, dy, editor.AnchorBottomRight) })
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "esc":
		m.doc.ClearSelection()
	case "+", "=":
		m.mark(m.ctrl.BringForward())
	case "-":
		m.mark(m.ctrl.SendBackward())
	case "d", "delete":
		m.mark(m.ctrl.Delete())
	default:
		if kind, ok := addKeys[k]; ok {
			if _, err := m.doc.Add(kind); err == nil {
				m.Dirty = true
			}
		}
	}
	return m, nil
}

// edit applies fn to the selected element and marks the model dirty when the
// element changed.
func (m *EditorModel) edit(fn func(id string)) {
	id, ok := m.doc.Selected()
	if !ok {
		return
	}
	before, _ := m.doc.Element(id)
	fn(id)
	after, _ := m.doc.Element(id)
	if before.Rect() != after.Rect() {
		m.Dirty = true
	}
}

func (m *EditorModel) mark(changed bool) {
	if changed {
		m.Dirty = true
	}
}

// cycle moves the selection step elements through paint order, wrapping.
func (m *EditorModel) cycle(step int) {
	els := m.doc.Elements()
	if len(els) == 0 {
		return
	}
	cur := -1
	if id, ok := m.doc.Selected(); ok {
		for i, el := range els {
			if el.ID == id {
				cur = i
				break
			}
		}
	}
	var next int
	switch {
	case cur < 0 && step < 0:
		next = len(els) - 1
	case cur < 0:
		next = 0
	default:
		next = (cur + step + len(els)) % len(els)
	}
	m.doc.Select(els[next].ID)
}

// arrowDelta returns the one-grid-unit delta for an arrow key.
func arrowDelta(k string) (dx, dy float64) {
	switch k {
	case "up":
		return 0, -geom.GridUnit
	case "down":
		return 0, geom.GridUnit
	case "left":
		return -geom.GridUnit, 0
	case "right":
		return geom.GridUnit, 0
	}
	return 0, 0
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := designName(m.Path)
	if m.Dirty {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←↑↓→ move  ⇧+arrows resize  tab select  +/- order  d delete  t/i/r/b add  s save  q quit"))
	b.WriteString("\n\n")

	guide := m.guide()
	b.WriteString(canvasStyle.Render(renderPreview(m.doc.Elements(), guide)))
	b.WriteString("\n")
	b.WriteString(m.elementTable())
	b.WriteString("\n")

	if line := guideLine(guide); line != "" {
		b.WriteString(accentStyle.Render(line))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// guide returns the alignment guide for the selected element.
func (m EditorModel) guide() editor.Guide {
	id, ok := m.doc.Selected()
	if !ok {
		return editor.Guide{}
	}
	el, ok := m.doc.Element(id)
	if !ok {
		return editor.Guide{}
	}
	return editor.ComputeGuide(el.Rect(), geom.CanvasSize)
}

func guideLine(g editor.Guide) string {
	var parts []string
	if g.V != nil {
		parts = append(parts, fmt.Sprintf("centered horizontally (x=%g)", *g.V))
	}
	if g.H != nil {
		parts = append(parts, fmt.Sprintf("centered vertically (y=%g)", *g.H))
	}
	return strings.Join(parts, ", ")
}

func (m EditorModel) elementTable() string {
	els := m.doc.Elements()
	if len(els) == 0 {
		return listDimStyle.Render("  empty canvas: press t, i, r or b to add an element")
	}
	selected, _ := m.doc.Selected()

	rows := make([][]string, 0, len(els))
	for i, el := range els {
		cursor := "  "
		if el.ID == selected {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i),
			string(el.Kind),
			fmt.Sprintf("%d,%d", el.X, el.Y),
			fmt.Sprintf("%d×%d", el.W, el.H),
			elementLabel(el),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(subtle).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		Headers("", "Z", "Kind", "Pos", "Size", "Content").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(els) && els[row].ID == selected {
				return listSelectedStyle
			}
			return listNormalStyle
		})
	return t.Render()
}

// elementLabel returns a short description of an element's content.
func elementLabel(el editor.Element) string {
	s := el.Text
	if el.Kind == editor.KindImage {
		s = el.Src
	}
	const maxLabel = 32
	if r := []rune(s); len(r) > maxLabel {
		s = string(r[:maxLabel-1]) + "…"
	}
	return s
}

// renderPreview draws elements in paint order onto a scaled character grid,
// then overlays any guide lines.
func renderPreview(els []editor.Element, g editor.Guide) string {
	grid := make([][]rune, previewRows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", previewCols))
	}

	sx := float64(geom.CanvasWidth) / previewCols
	sy := float64(geom.CanvasHeight) / previewRows
	for _, el := range els {
		x0, y0 := clampCell(float64(el.X)/sx, previewCols), clampCell(float64(el.Y)/sy, previewRows)
		x1, y1 := clampCell(float64(el.X+el.W-1)/sx, previewCols), clampCell(float64(el.Y+el.H-1)/sy, previewRows)
		glyph := kindGlyphs[el.Kind]
		for y := y0; y <= y1 && y < previewRows; y++ {
			for x := x0; x <= x1 && x < previewCols; x++ {
				grid[y][x] = glyph
			}
		}
	}

	if g.V != nil {
		x := clampCell(*g.V/sx, previewCols)
		for y := range grid {
			grid[y][x] = '│'
		}
	}
	if g.H != nil {
		y := clampCell(*g.H/sy, previewRows)
		for x := range grid[y] {
			grid[y][x] = '─'
		}
	}

	lines := make([]string, previewRows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func clampCell(v float64, n int) int {
	switch i := int(v); {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	default:
		return i
	}
}
