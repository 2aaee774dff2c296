package shared

import (
	"strings"

	"github.com/Guerrilla-Interactive/psbuilder/app"
)

// Footer joins navigation tips with a consistent separator and applies
// the global help style for footers.
func Footer(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	text := strings.Join(parts, "  •  ")
	return app.HelpStyle.Render(text)
}

// StatusLine renders the transient status message, if any.
func StatusLine(m app.Model) string {
	if m.Status == "" {
		return ""
	}
	if m.StatusErr {
		return app.ErrorStyle.Render(m.Status)
	}
	return app.SelectedStyle.Render(m.Status)
}
