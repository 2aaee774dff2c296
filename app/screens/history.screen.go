package screens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Guerrilla-Interactive/psbuilder/app"
	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
	"github.com/Guerrilla-Interactive/psbuilder/app/history"
	"github.com/Guerrilla-Interactive/psbuilder/app/screens/shared"
)

// historyEntries returns the stored commands newest first.
func historyEntries(store *history.Store) []history.Entry {
	if store == nil {
		return nil
	}
	entries := store.List()
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// UpdateHistoryScreen handles the paginated list of copied commands.
func UpdateHistoryScreen(m app.Model, msg tea.KeyMsg, store *history.Store) (app.Model, tea.Cmd) {
	entries := historyEntries(store)
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.CurrentScreen = app.ScreenBuilder
		return m, nil
	}
	if len(entries) == 0 {
		return m, nil
	}

	perPage := m.HistoryPaginator.PerPage
	switch key {
	case "up", "k":
		m.HistoryIndex = (m.HistoryIndex - 1 + len(entries)) % len(entries)

	case "down", "j":
		m.HistoryIndex = (m.HistoryIndex + 1) % len(entries)

	case "left", "h":
		m.HistoryPaginator.PrevPage()
		m.HistoryIndex = m.HistoryPaginator.Page * perPage

	case "right", "l":
		m.HistoryPaginator.NextPage()
		m.HistoryIndex = m.HistoryPaginator.Page * perPage

	case "enter":
		p, err := builder.FromCommandLine(m.Catalog, entries[m.HistoryIndex].Command)
		if errors.Is(err, cli.ErrUnterminatedQuote) {
			return setStatus(m, "Cannot load: "+cli.UnbalancedQuoteHint, true)
		}
		if err != nil {
			return setStatus(m, "Cannot load: "+err.Error(), true)
		}
		m.Pipeline = p
		m = resetCursors(m)
		m.CurrentScreen = app.ScreenBuilder
		return setStatus(m, "Loaded from history", false)

	case "c":
		return m, RequestCopy(entries[m.HistoryIndex].Command)

	case "f":
		fav := store.ToggleFavorite(entries[m.HistoryIndex].Command)
		if err := store.Save(); err != nil {
			return setStatus(m, "Failed to save history: "+err.Error(), true)
		}
		if fav {
			return setStatus(m, "Added to favorites", false)
		}
		return setStatus(m, "Removed from favorites", false)

	case "d":
		store.Remove(entries[m.HistoryIndex].Command)
		if err := store.Save(); err != nil {
			return setStatus(m, "Failed to save history: "+err.Error(), true)
		}
		remaining := len(entries) - 1
		if m.HistoryIndex >= remaining {
			m.HistoryIndex = max(remaining-1, 0)
		}
		m.HistoryPaginator.SetTotalPages(remaining)
		return setStatus(m, "Removed from history", false)
	}

	if perPage > 0 {
		m.HistoryPaginator.Page = m.HistoryIndex / perPage
	}
	return m, nil
}

// ViewHistoryScreen renders the current page of history entries.
func ViewHistoryScreen(m app.Model, store *history.Store) string {
	entries := historyEntries(store)
	var b strings.Builder
	b.WriteString(app.TitleStyle.Render("History") + "\n")
	if store != nil {
		b.WriteString(app.PathStyle.Render(store.Path()) + "\n")
	}
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(app.ChoiceStyle.Render("No commands copied yet. Press c in the builder to copy one.") + "\n\n")
		b.WriteString(shared.Footer("esc: back", "q: quit"))
		return app.DocStyle.Render(b.String())
	}

	m.HistoryPaginator.SetTotalPages(len(entries))
	start, end := m.HistoryPaginator.GetSliceBounds(len(entries))
	width := wrapWidth(m) - 12
	for i := start; i < end; i++ {
		e := entries[i]
		star := " "
		if e.IsFavorite {
			star = "*"
		}
		line := fmt.Sprintf("%s %s", star, shared.Truncate(e.Command, width))
		meta := fmt.Sprintf("  x%d  %s", e.Uses, time.Unix(e.Timestamp, 0).Format("2006-01-02 15:04"))
		if i == m.HistoryIndex {
			b.WriteString(app.HighlightStyle.Render("> "+line) + app.PathStyle.Render(meta) + "\n")
		} else {
			b.WriteString(app.ChoiceStyle.Render("  "+line) + app.PathStyle.Render(meta) + "\n")
		}
	}
	if m.HistoryPaginator.TotalPages > 1 {
		b.WriteString("\n  " + m.HistoryPaginator.View() + "\n")
	}
	b.WriteString("\n")
	if status := shared.StatusLine(m); status != "" {
		b.WriteString(status + "\n")
	}
	b.WriteString(shared.Footer("↑/↓: move", "←/→: page", "enter: load", "c: copy", "f: favorite", "d: delete", "esc: back"))
	return app.DocStyle.Render(b.String())
}
