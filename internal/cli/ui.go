package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	accent = lipgloss.Color("36")
	good   = lipgloss.Color("35")
	warn   = lipgloss.Color("220")
	bad    = lipgloss.Color("167")
	subtle = lipgloss.Color("245")
	faint  = lipgloss.Color("240")
	bright = lipgloss.Color("255")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	accentStyle = lipgloss.NewStyle().Foreground(accent)
	warnStyle   = lipgloss.NewStyle().Foreground(warn)
	faintStyle  = lipgloss.NewStyle().Foreground(faint)
	valueStyle  = lipgloss.NewStyle().Foreground(bright)
	labelStyle  = lipgloss.NewStyle().Foreground(subtle).Width(12)
)

// mark is the colored glyph that leads a one-line status message.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(good)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(bad)}
	markWarn = mark{"!", warnStyle}
	markInfo = mark{"›", lipgloss.NewStyle().Foreground(subtle)}
)

func (m mark) println(format string, args []any) {
	fmt.Println(m.style.Render(m.glyph) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { markOK.println(format, args) }
func printError(format string, args ...any)   { markFail.println(format, args) }
func printInfo(format string, args ...any)    { markInfo.println(format, args) }

func printWarning(format string, args ...any) {
	markWarn.println("%s", []any{warnStyle.Render(fmt.Sprintf(format, args...))})
}

// printDetail prints an indented, muted line under a status message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + faintStyle.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a path the command wrote.
func printFile(path string) {
	fmt.Println("  " + faintStyle.Render("→") + " " + valueStyle.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(labelStyle.Render(key) + " " + valueStyle.Render(value))
}

// printExportStats prints element count, archive size and cache status,
// e.g. "  3 elements · 2.1 KB · cached".
func printExportStats(elements, size int, cached bool) {
	source := faintStyle.Render("fresh")
	if cached {
		source = markOK.style.Render("cached")
	}
	sep := faintStyle.Render(" · ")
	fields := []string{
		faintStyle.Render(fmt.Sprintf("%d elements", elements)),
		faintStyle.Render(formatBytes(size)),
		source,
	}
	fmt.Println("  " + strings.Join(fields, sep))
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	if n < unit*unit {
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	}
	return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
}

// printNextStep suggests the command to run next.
func printNextStep(what, command string) {
	fmt.Println(faintStyle.Render(what+":") + " " + accentStyle.Render(command))
}
