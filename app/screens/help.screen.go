package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Guerrilla-Interactive/psbuilder/app"
	"github.com/Guerrilla-Interactive/psbuilder/app/screens/shared"
)

var helpKeys = [][2]string{
	{"tab / shift+tab", "switch between verbs, nouns and parameters"},
	{"↑/↓ or j/k", "move within a column"},
	{"enter / space", "choose a verb or noun, toggle a parameter"},
	{"e", "edit the value of the highlighted parameter"},
	{"/", "fuzzy filter the verbs or nouns column"},
	{"c", "copy the command to the clipboard"},
	{"p", "pipe into a new segment"},
	{"x", "remove the current segment"},
	{"[ / ]", "previous / next segment"},
	{"o", "toggle how empty values render (omit or <value>)"},
	{"E", "examples"},
	{"H", "history"},
	{"q", "quit"},
}

// UpdateHelpScreen returns to the previous screen on any close key.
func UpdateHelpScreen(m app.Model, msg tea.KeyMsg) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "enter", "backspace":
		m.CurrentScreen = m.PreviousScreen
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// ViewHelpScreen lists the builder key bindings.
func ViewHelpScreen(m app.Model) string {
	var b strings.Builder
	b.WriteString(app.TitleStyle.Render("Keys") + "\n\n")
	for _, k := range helpKeys {
		b.WriteString(fmt.Sprintf("  %s  %s\n", app.HighlightStyle.Render(fmt.Sprintf("%-16s", k[0])), k[1]))
	}
	b.WriteString("\n")
	b.WriteString(app.ChoiceStyle.Render("Commands are never executed; copy them into a PowerShell session.") + "\n\n")
	b.WriteString(shared.Footer("esc: back", "q: quit"))
	return app.DocStyle.Render(b.String())
}
