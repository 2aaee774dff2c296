package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Guerrilla-Interactive/psbuilder/app"
	"github.com/Guerrilla-Interactive/psbuilder/app/examples"
	"github.com/Guerrilla-Interactive/psbuilder/app/screens/shared"
)

// UpdateExamplesScreen moves through the built-in examples and loads one
// into the builder on enter.
func UpdateExamplesScreen(m app.Model, msg tea.KeyMsg) (app.Model, tea.Cmd) {
	all := examples.All()
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.CurrentScreen = app.ScreenBuilder

	case "up", "k":
		m.ExamplesIndex = (m.ExamplesIndex - 1 + len(all)) % len(all)

	case "down", "j":
		m.ExamplesIndex = (m.ExamplesIndex + 1) % len(all)

	case "c":
		return m, RequestCopy(all[m.ExamplesIndex].Command)

	case "enter":
		ex := all[m.ExamplesIndex]
		p, err := ex.Load(m.Catalog)
		if err != nil {
			return setStatus(m, err.Error(), true)
		}
		m.Pipeline = p
		m = resetCursors(m)
		m.CurrentScreen = app.ScreenBuilder
		return setStatus(m, "Loaded example: "+ex.Title, false)
	}
	return m, nil
}

// ViewExamplesScreen lists the examples with their commands.
func ViewExamplesScreen(m app.Model) string {
	width := wrapWidth(m)
	var b strings.Builder
	b.WriteString(app.TitleStyle.Render("Examples") + "\n\n")
	for i, ex := range examples.All() {
		if i == m.ExamplesIndex {
			b.WriteString(app.HighlightStyle.Render("> "+ex.Title) + "\n")
		} else {
			b.WriteString(app.ChoiceStyle.Render("  "+ex.Title) + "\n")
		}
		b.WriteString(app.PathStyle.Render(indent(shared.WrapText(ex.Description, width-4), "    ")) + "\n")
		b.WriteString(indent(shared.WrapText(ex.Command, width-4), "    ") + "\n\n")
	}
	if status := shared.StatusLine(m); status != "" {
		b.WriteString(status + "\n")
	}
	b.WriteString(shared.Footer("↑/↓: move", "enter: load", "c: copy", "esc: back", "q: quit"))
	return app.DocStyle.Render(b.String())
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
