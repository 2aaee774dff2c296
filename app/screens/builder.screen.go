package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/Guerrilla-Interactive/psbuilder/app"
	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/history"
	"github.com/Guerrilla-Interactive/psbuilder/app/screens/shared"
)

// UpdateBuilderScreen handles input for the three-column builder.
func UpdateBuilderScreen(m app.Model, msg tea.KeyMsg, store *history.Store) (app.Model, tea.Cmd) {
	if m.Catalog == nil {
		return m, nil
	}
	if m.EditingValue {
		return updateValueEditor(m, msg)
	}
	if m.Filtering {
		return updateFilter(m, msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab", "right", "l":
		m.Focus = (m.Focus + 1) % 3

	case "shift+tab", "left", "h":
		m.Focus = (m.Focus + 2) % 3

	case "up", "k":
		m = moveCursor(m, -1)

	case "down", "j":
		m = moveCursor(m, 1)

	case "enter", " ":
		m = chooseFocused(m)

	case "e":
		return startEditing(m)

	case "/":
		if m.Focus == app.PanelParams {
			return m, nil
		}
		m.Filtering = true
		m.FilterPanel = m.Focus
		m.FilterInput.Reset()
		m = setCursor(m, m.Focus, 0)
		return m, m.FilterInput.Focus()

	case "c":
		command, ok := builder.RenderPipeline(m.Pipeline, m.Policy)
		if !ok {
			return setStatus(m, "Nothing to copy yet", true)
		}
		return m, RequestCopy(command)

	case "p":
		if m.Pipeline.Current().Cmdlet() == "" {
			return setStatus(m, "Finish this segment before adding a pipe", true)
		}
		m.Pipeline = m.Pipeline.AddSegment()
		m = resetCursors(m)

	case "x":
		m.Pipeline = m.Pipeline.RemoveSegment()
		m = resetCursors(m)

	case "[":
		m.Pipeline = m.Pipeline.Focus(m.Pipeline.Active() - 1)
		m = resetCursors(m)

	case "]":
		m.Pipeline = m.Pipeline.Focus(m.Pipeline.Active() + 1)
		m = resetCursors(m)

	case "o":
		if m.Policy == builder.EmptyOmit {
			m.Policy = builder.EmptyPlaceholder
		} else {
			m.Policy = builder.EmptyOmit
		}
		return setStatus(m, "Empty values: "+m.Policy.String(), false)

	case "?":
		m.PreviousScreen = app.ScreenBuilder
		m.CurrentScreen = app.ScreenHelp

	case "E":
		m.ExamplesIndex = 0
		m.CurrentScreen = app.ScreenExamples

	case "H":
		m.HistoryIndex = 0
		m.HistoryPaginator.Page = 0
		if store != nil {
			m.HistoryPaginator.SetTotalPages(len(store.List()))
		}
		m.CurrentScreen = app.ScreenHistory
	}
	return m, nil
}

func updateFilter(m app.Model, msg tea.KeyMsg) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = stopFiltering(m)
		return m, nil
	case "enter":
		m = chooseFocused(m)
		return m, nil
	case "up":
		return moveCursor(m, -1), nil
	case "down":
		return moveCursor(m, 1), nil
	}
	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	m = setCursor(m, m.FilterPanel, 0)
	return m, cmd
}

func stopFiltering(m app.Model) app.Model {
	m.Filtering = false
	m.FilterInput.Reset()
	m.FilterInput.Blur()
	return m
}

func startEditing(m app.Model) (app.Model, tea.Cmd) {
	param, ok := focusedParam(m)
	if m.Focus != app.PanelParams || !ok || param.IsSwitch() {
		return m, nil
	}
	m.EditingValue = true
	m.ValueInput.SetValue(param.Value)
	m.ValueInput.CursorEnd()
	return m, m.ValueInput.Focus()
}

func updateValueEditor(m app.Model, msg tea.KeyMsg) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.EditingValue = false
		m.ValueInput.Blur()
		return m, nil
	case "enter":
		if param, ok := focusedParam(m); ok {
			value := m.ValueInput.Value()
			m.Pipeline, _ = m.Pipeline.Update(func(s builder.Selection) (builder.Selection, bool) {
				return s.ToggleParameter(param.Name, true)
			})
			m.Pipeline, _ = m.Pipeline.Update(func(s builder.Selection) (builder.Selection, bool) {
				return s.SetParameterValue(param.Name, value)
			})
		}
		m.EditingValue = false
		m.ValueInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ValueInput, cmd = m.ValueInput.Update(msg)
	return m, cmd
}

// chooseFocused applies enter/space to the highlighted row of the focused panel.
func chooseFocused(m app.Model) app.Model {
	panel := m.Focus
	if m.Filtering {
		panel = m.FilterPanel
	}
	switch panel {
	case app.PanelVerbs:
		verbs := visibleVerbs(m)
		if len(verbs) == 0 {
			return m
		}
		verb := verbs[m.VerbIdx]
		var ok bool
		m.Pipeline, ok = m.Pipeline.Update(func(s builder.Selection) (builder.Selection, bool) {
			return s.ChooseVerb(m.Catalog, verb)
		})
		if m.Filtering {
			m = stopFiltering(m)
		}
		if ok {
			m.VerbIdx = indexOf(m.Catalog.Verbs(), verb)
			m.NounIdx = 0
			m.ParamIdx = 0
			m.Focus = app.PanelNouns
		}

	case app.PanelNouns:
		nouns := visibleNouns(m)
		if len(nouns) == 0 {
			return m
		}
		noun := nouns[m.NounIdx]
		var ok bool
		m.Pipeline, ok = m.Pipeline.Update(func(s builder.Selection) (builder.Selection, bool) {
			return s.ChooseNoun(m.Catalog, noun)
		})
		if m.Filtering {
			m = stopFiltering(m)
		}
		if ok {
			m.NounIdx = indexOf(m.Catalog.Nouns(m.Pipeline.Current().Verb()), noun)
			m.ParamIdx = 0
			if len(m.Pipeline.Current().Params()) > 0 {
				m.Focus = app.PanelParams
			}
		}

	case app.PanelParams:
		param, ok := focusedParam(m)
		if !ok {
			return m
		}
		m.Pipeline, _ = m.Pipeline.Update(func(s builder.Selection) (builder.Selection, bool) {
			return s.ToggleParameter(param.Name, !param.Selected)
		})
	}
	return m
}

func moveCursor(m app.Model, delta int) app.Model {
	panel := m.Focus
	if m.Filtering {
		panel = m.FilterPanel
	}
	n := panelLen(m, panel)
	if n == 0 {
		return m
	}
	return setCursor(m, panel, (cursor(m, panel)+delta+n)%n)
}

func cursor(m app.Model, panel app.Panel) int {
	switch panel {
	case app.PanelVerbs:
		return m.VerbIdx
	case app.PanelNouns:
		return m.NounIdx
	default:
		return m.ParamIdx
	}
}

func setCursor(m app.Model, panel app.Panel, i int) app.Model {
	switch panel {
	case app.PanelVerbs:
		m.VerbIdx = i
	case app.PanelNouns:
		m.NounIdx = i
	default:
		m.ParamIdx = i
	}
	return m
}

func panelLen(m app.Model, panel app.Panel) int {
	switch panel {
	case app.PanelVerbs:
		return len(visibleVerbs(m))
	case app.PanelNouns:
		return len(visibleNouns(m))
	default:
		return len(m.Pipeline.Current().Params())
	}
}

// resetCursors points the columns at the active segment's choices.
func resetCursors(m app.Model) app.Model {
	sel := m.Pipeline.Current()
	m.VerbIdx = max(indexOf(m.Catalog.Verbs(), sel.Verb()), 0)
	m.NounIdx = max(indexOf(m.Catalog.Nouns(sel.Verb()), sel.Noun()), 0)
	m.ParamIdx = 0
	switch sel.Stage() {
	case builder.StageNoVerb:
		m.Focus = app.PanelVerbs
	case builder.StageVerbChosen:
		m.Focus = app.PanelNouns
	default:
		m.Focus = app.PanelParams
	}
	return m
}

func visibleVerbs(m app.Model) []string {
	verbs := m.Catalog.Verbs()
	if m.Filtering && m.FilterPanel == app.PanelVerbs {
		return fuzzyFilter(m.FilterInput.Value(), verbs)
	}
	return verbs
}

func visibleNouns(m app.Model) []string {
	nouns := m.Catalog.Nouns(m.Pipeline.Current().Verb())
	if m.Filtering && m.FilterPanel == app.PanelNouns {
		return fuzzyFilter(m.FilterInput.Value(), nouns)
	}
	return nouns
}

// fuzzyFilter returns the items matching pattern, best match first.
func fuzzyFilter(pattern string, items []string) []string {
	if pattern == "" {
		return items
	}
	matches := fuzzy.Find(pattern, items)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Str)
	}
	return out
}

func focusedParam(m app.Model) (builder.ParamState, bool) {
	params := m.Pipeline.Current().Params()
	if m.ParamIdx < 0 || m.ParamIdx >= len(params) {
		return builder.ParamState{}, false
	}
	return params[m.ParamIdx], true
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}

// ViewBuilderScreen renders the columns, the details panel and the command bar.
func ViewBuilderScreen(m app.Model) string {
	if m.Catalog == nil {
		return ViewLoadingScreen(m)
	}
	sel := m.Pipeline.Current()
	verbW, nounW, paramW := shared.ColumnWidths(m.TerminalWidth)
	rows := shared.ListHeight(m.TerminalHeight)

	header := app.TitleStyle.Render("PowerShell Command Builder")
	if m.Pipeline.Len() > 1 {
		header += "  " + segmentTabs(m.Pipeline)
	}

	verbs := renderList(visibleVerbs(m), m.VerbIdx, sel.Verb(), m.Focus == app.PanelVerbs, rows, verbW)
	var nouns string
	if sel.Verb() == "" {
		nouns = app.ChoiceStyle.Render("Choose a verb first")
	} else {
		nouns = renderList(visibleNouns(m), m.NounIdx, sel.Noun(), m.Focus == app.PanelNouns, rows, nounW)
	}
	params := renderParams(m, sel, rows, paramW)

	columns := shared.Columns(
		shared.Panel("Verbs", verbs, verbW, m.Focus == app.PanelVerbs),
		shared.Panel("Nouns", nouns, nounW, m.Focus == app.PanelNouns),
		shared.Panel("Parameters", params, paramW, m.Focus == app.PanelParams),
	)
	totalW := lipgloss.Width(columns) - 2

	body := header + "\n\n" + columns + "\n"
	switch {
	case m.Filtering:
		body += m.FilterInput.View() + "\n"
	case m.EditingValue:
		param, _ := focusedParam(m)
		body += app.SubtitleStyle.Render("-"+param.Name) + " " + m.ValueInput.View() + "\n"
	}
	body += shared.Panel("Details", details(m, totalW), totalW, false) + "\n"

	command, ok := builder.RenderPipeline(m.Pipeline, m.Policy)
	if !ok {
		command = app.ChoiceStyle.Render(command)
	}
	body += app.CommandBarStyle.Width(totalW).Render(command) + "\n"
	body += app.PathStyle.Render("empty values: "+m.Policy.String()) + "\n"
	if status := shared.StatusLine(m); status != "" {
		body += status + "\n"
	}
	body += shared.Footer(builderFooter(m)...)
	return body
}

func builderFooter(m app.Model) []string {
	switch {
	case m.Filtering:
		return []string{"type to filter", "↑/↓: move", "enter: choose", "esc: cancel"}
	case m.EditingValue:
		return []string{"enter: save", "esc: cancel"}
	}
	return []string{"tab: panel", "enter/space: choose", "e: edit", "/: filter", "c: copy", "p: pipe", "?: help", "q: quit"}
}

func segmentTabs(p builder.Pipeline) string {
	tabs := make([]string, 0, p.Len())
	for i, s := range p.Segments() {
		label := s.Cmdlet()
		if label == "" {
			label = "…"
		}
		label = fmt.Sprintf("%d %s", i+1, label)
		if i == p.Active() {
			tabs = append(tabs, app.HighlightStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, app.ChoiceStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, app.ChoiceStyle.Render("|"))
}

// renderList draws a windowed list; chosen marks the item already picked.
func renderList(items []string, idx int, chosen string, focused bool, rows, width int) string {
	if len(items) == 0 {
		return app.ChoiceStyle.Render("No matches")
	}
	start, end := shared.Window(len(items), idx, rows)
	var b strings.Builder
	for i := start; i < end; i++ {
		label := shared.Truncate(items[i], width-2)
		switch {
		case i == idx && focused:
			b.WriteString(app.HighlightStyle.Render("> " + label))
		case items[i] == chosen:
			b.WriteString(app.SelectedStyle.Render("• " + label))
		default:
			b.WriteString(app.ChoiceStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderParams(m app.Model, sel builder.Selection, rows, width int) string {
	switch sel.Stage() {
	case builder.StageNoVerb:
		return app.ChoiceStyle.Render("Choose a verb and a noun")
	case builder.StageVerbChosen:
		return app.ChoiceStyle.Render("Choose a noun")
	}
	params := sel.Params()
	if len(params) == 0 {
		return app.ChoiceStyle.Render("No parameters")
	}
	focused := m.Focus == app.PanelParams
	start, end := shared.Window(len(params), m.ParamIdx, rows)
	var b strings.Builder
	for i := start; i < end; i++ {
		p := params[i]
		box := "[ ]"
		if p.Selected {
			box = "[x]"
		}
		line := box + " -" + p.Name
		if !p.IsSwitch() {
			if p.Value != "" {
				line += " = " + p.Value
			} else {
				line += " (" + p.Type + ")"
			}
		}
		line = shared.Truncate(line, width-2)
		switch {
		case i == m.ParamIdx && focused:
			b.WriteString(app.HighlightStyle.Render("> " + line))
		case p.Selected:
			b.WriteString(app.SelectedStyle.Render("  " + line))
		default:
			b.WriteString(app.ChoiceStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// details describes whatever the focused cursor points at.
func details(m app.Model, width int) string {
	sel := m.Pipeline.Current()
	var text string
	switch m.Focus {
	case app.PanelVerbs:
		verbs := visibleVerbs(m)
		if len(verbs) > 0 && m.VerbIdx < len(verbs) {
			verb := verbs[m.VerbIdx]
			text = fmt.Sprintf("%s: %d noun(s)", verb, len(m.Catalog.Nouns(verb)))
		}
	case app.PanelNouns:
		nouns := visibleNouns(m)
		if len(nouns) > 0 && m.NounIdx < len(nouns) {
			name := sel.Verb() + "-" + nouns[m.NounIdx]
			text = name
			if cmdlet, ok := m.Catalog.Cmdlet(name); ok && cmdlet.Description != "" {
				text += ": " + cmdlet.Description
			}
		}
	case app.PanelParams:
		param, ok := focusedParam(m)
		if !ok {
			break
		}
		text = fmt.Sprintf("-%s [%s]", param.Name, param.Type)
		if cmdlet, found := m.Catalog.Cmdlet(sel.Cmdlet()); found {
			if schema, found := cmdlet.Parameter(param.Name); found {
				if schema.Description != "" {
					text += ": " + schema.Description
				}
				if schema.Placeholder != "" && !param.IsSwitch() {
					text += "\nExample: " + schema.Placeholder
				}
			}
		}
	}
	if text == "" {
		text = app.ChoiceStyle.Render("Nothing selected")
	}
	return shared.TruncateLines(shared.WrapText(text, width), 3)
}
