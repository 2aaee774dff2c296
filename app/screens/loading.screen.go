package screens

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Guerrilla-Interactive/psbuilder/app"
	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
	"github.com/Guerrilla-Interactive/psbuilder/app/screens/shared"
)

// UpdateLoadingScreen only lets the user quit while the catalog loads.
func UpdateLoadingScreen(m app.Model, msg tea.KeyMsg) (app.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

// ViewLoadingScreen shows the spinner and where the catalog comes from.
func ViewLoadingScreen(m app.Model) string {
	body := app.TitleStyle.Render("PowerShell Command Builder") + "\n\n"
	body += fmt.Sprintf("%s Loading cmdlet catalog...\n\n", m.Spinner.View())
	body += app.PathStyle.Render("verbs:      "+sourceLabel(m.Sources.Verbs)) + "\n"
	body += app.PathStyle.Render("parameters: "+sourceLabel(m.Sources.Parameters)) + "\n\n"
	body += shared.Footer("q: quit")
	return app.DocStyle.Render(body)
}

// UpdateLoadErrorScreen: a failed load ends the session.
func UpdateLoadErrorScreen(m app.Model, msg tea.KeyMsg) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		return m, tea.Quit
	}
	return m, nil
}

// ViewLoadErrorScreen explains why the catalog could not be loaded.
func ViewLoadErrorScreen(m app.Model) string {
	body := app.TitleStyle.Render("PowerShell Command Builder") + "\n\n"
	body += app.ErrorStyle.Render("Failed to load the cmdlet catalog.") + "\n\n"
	if m.LoadErr != nil {
		body += shared.WrapText(m.LoadErr.Error(), wrapWidth(m)) + "\n\n"
	}
	var loadErr *catalog.LoadError
	if errors.As(m.LoadErr, &loadErr) {
		body += app.ChoiceStyle.Render("The catalog documents are malformed; fix them and restart.") + "\n"
	} else {
		body += app.ChoiceStyle.Render("Check verbs_source and parameters_source with 'psb config list'.") + "\n"
	}
	body += "\n" + shared.Footer("q: quit")
	return app.DocStyle.Render(body)
}

func sourceLabel(location string) string {
	if location == "" {
		return "built-in"
	}
	return location
}

func wrapWidth(m app.Model) int {
	if m.TerminalWidth <= 10 {
		return 76
	}
	return m.TerminalWidth - 6
}
