package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Guerrilla-Interactive/psbuilder/app"
)

// ColumnWidths returns the inner widths of the verbs, nouns and parameters
// panels for a terminal width. Each panel adds 4 columns of border and
// padding.
//
// Rules:
// - verbs and nouns get ~22% each, clamped to [14, 26]
// - parameters take the rest, at least 30
func ColumnWidths(termWidth int) (verbs, nouns, params int) {
	const (
		defaultList = 18
		minList     = 14
		maxList     = 26
		minParams   = 30
		chrome      = 4
	)
	if termWidth <= 0 {
		return defaultList, defaultList, 44
	}
	list := (termWidth * 11) / 50 // ~22%
	if list < minList {
		list = minList
	}
	if list > maxList {
		list = maxList
	}
	params = termWidth - 2*(list+chrome) - chrome
	if params < minParams {
		params = minParams
	}
	return list, list, params
}

// ListHeight returns how many rows a column list may use.
func ListHeight(termHeight int) int {
	const (
		defaultRows = 12
		reserved    = 18 // header, details, command bar, footer
		minRows     = 5
	)
	if termHeight <= 0 {
		return defaultRows
	}
	rows := termHeight - reserved
	if rows < minRows {
		rows = minRows
	}
	return rows
}

// Window returns the [start, end) slice of n items to show so that cursor
// stays visible within height rows.
func Window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

// Panel renders a titled, bordered column.
func Panel(title, body string, width int, focused bool) string {
	style := app.PanelStyle
	if focused {
		style = app.FocusedPanelStyle
	}
	header := app.SubtitleStyle.Render(title)
	return style.Width(width).Render(header + "\n\n" + strings.TrimRight(body, "\n"))
}

// Columns joins panels side by side with a one-space gap.
func Columns(panels ...string) string {
	parts := make([]string, 0, 2*len(panels))
	for i, p := range panels {
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, p)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
