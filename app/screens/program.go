package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Guerrilla-Interactive/psbuilder/app"
	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
	"github.com/Guerrilla-Interactive/psbuilder/app/history"
)

// statusTimeout is how long a status message stays in the footer.
const statusTimeout = 2 * time.Second

// CatalogLoadedMsg carries the result of the startup catalog load.
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// CopyRequestedMsg asks the program to put Command on the clipboard.
type CopyRequestedMsg struct {
	Command string
}

// CopiedMsg reports the outcome of a clipboard write.
type CopiedMsg struct {
	Command string
	Err     error
}

// ClearStatusMsg clears the status line if it is still the one numbered Seq.
type ClearStatusMsg struct {
	Seq int
}

// Deps are the side effects the program model needs.
type Deps struct {
	LoadCatalog func(context.Context) (*catalog.Catalog, error)
	History     *history.Store
	Clipboard   func(string) error
	Logger      *zap.Logger
}

// ProgramModel wraps app.Model so we can hold Update logic in one place.
type ProgramModel struct {
	M    app.Model
	ctx  context.Context
	deps Deps
}

// NewProgramModel returns the root bubbletea model.
func NewProgramModel(ctx context.Context, m app.Model, deps Deps) ProgramModel {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return ProgramModel{M: m, ctx: ctx, deps: deps}
}

// LoadCatalogCmd runs load off the update loop and reports a CatalogLoadedMsg.
func LoadCatalogCmd(ctx context.Context, load func(context.Context) (*catalog.Catalog, error)) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return CatalogLoadedMsg{Err: fmt.Errorf("no catalog loader configured")}
		}
		c, err := load(ctx)
		return CatalogLoadedMsg{Catalog: c, Err: err}
	}
}

// RequestCopy returns a command asking the program to copy text.
func RequestCopy(text string) tea.Cmd {
	return func() tea.Msg { return CopyRequestedMsg{Command: text} }
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if write == nil {
			return CopiedMsg{Command: text, Err: fmt.Errorf("clipboard is not available")}
		}
		return CopiedMsg{Command: text, Err: write(text)}
	}
}

// setStatus shows a transient message and schedules its removal.
func setStatus(m app.Model, text string, isErr bool) (app.Model, tea.Cmd) {
	m.StatusSeq++
	m.Status = text
	m.StatusErr = isErr
	seq := m.StatusSeq
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}

// Init starts the spinner and the catalog load.
func (pm ProgramModel) Init() tea.Cmd {
	return tea.Batch(pm.M.Spinner.Tick, LoadCatalogCmd(pm.ctx, pm.deps.LoadCatalog))
}

// Update handles incoming Msgs (both from commands and user interaction).
func (pm ProgramModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typedMsg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.M.TerminalWidth = typedMsg.Width
		pm.M.TerminalHeight = typedMsg.Height
		return pm, nil

	case CatalogLoadedMsg:
		if typedMsg.Err != nil {
			pm.deps.Logger.Error("catalog load failed", zap.Error(typedMsg.Err))
			pm.M.LoadErr = typedMsg.Err
			pm.M.CurrentScreen = app.ScreenLoadError
			return pm, nil
		}
		pm.M.Catalog = typedMsg.Catalog
		pm.M.CurrentScreen = app.ScreenBuilder
		pm.deps.Logger.Info("catalog loaded",
			zap.Int("cmdlets", typedMsg.Catalog.Len()),
			zap.Int("warnings", len(typedMsg.Catalog.Warnings)))
		if n := len(typedMsg.Catalog.Warnings); n > 0 {
			var cmd tea.Cmd
			pm.M, cmd = setStatus(pm.M, fmt.Sprintf("Catalog loaded with %d warning(s); run 'psb validate' for details", n), true)
			return pm, cmd
		}
		return pm, nil

	case spinner.TickMsg:
		if pm.M.CurrentScreen != app.ScreenLoading {
			return pm, nil
		}
		var cmd tea.Cmd
		pm.M.Spinner, cmd = pm.M.Spinner.Update(typedMsg)
		return pm, cmd

	case CopyRequestedMsg:
		return pm, copyCmd(pm.deps.Clipboard, typedMsg.Command)

	case CopiedMsg:
		var cmd tea.Cmd
		if typedMsg.Err != nil {
			pm.deps.Logger.Warn("clipboard write failed", zap.Error(typedMsg.Err))
			pm.M, cmd = setStatus(pm.M, "Copy failed: "+typedMsg.Err.Error(), true)
			return pm, cmd
		}
		if pm.deps.History != nil {
			pm.deps.History.Record(typedMsg.Command)
			if err := pm.deps.History.Save(); err != nil {
				pm.deps.Logger.Warn("failed to save history", zap.Error(err))
			}
		}
		pm.deps.Logger.Info("command copied", zap.String("command", typedMsg.Command))
		pm.M, cmd = setStatus(pm.M, "Copied to clipboard!", false)
		return pm, cmd

	case ClearStatusMsg:
		if typedMsg.Seq == pm.M.StatusSeq {
			pm.M.Status = ""
			pm.M.StatusErr = false
		}
		return pm, nil

	case tea.KeyMsg:
		if typedMsg.String() == "ctrl+c" {
			return pm, tea.Quit
		}
		var cmd tea.Cmd
		switch pm.M.CurrentScreen {
		case app.ScreenLoading:
			pm.M, cmd = UpdateLoadingScreen(pm.M, typedMsg)
		case app.ScreenLoadError:
			pm.M, cmd = UpdateLoadErrorScreen(pm.M, typedMsg)
		case app.ScreenBuilder:
			pm.M, cmd = UpdateBuilderScreen(pm.M, typedMsg, pm.deps.History)
		case app.ScreenExamples:
			pm.M, cmd = UpdateExamplesScreen(pm.M, typedMsg)
		case app.ScreenHistory:
			pm.M, cmd = UpdateHistoryScreen(pm.M, typedMsg, pm.deps.History)
		case app.ScreenHelp:
			pm.M, cmd = UpdateHelpScreen(pm.M, typedMsg)
		}
		return pm, cmd
	}

	// Everything else (cursor blink ticks) goes to whichever input has focus.
	var cmd tea.Cmd
	switch {
	case pm.M.Filtering:
		pm.M.FilterInput, cmd = pm.M.FilterInput.Update(msg)
	case pm.M.EditingValue:
		pm.M.ValueInput, cmd = pm.M.ValueInput.Update(msg)
	}
	return pm, cmd
}

// View selects which screen's View function to call based on pm.M.CurrentScreen.
func (pm ProgramModel) View() string {
	switch pm.M.CurrentScreen {
	case app.ScreenLoading:
		return ViewLoadingScreen(pm.M)
	case app.ScreenLoadError:
		return ViewLoadErrorScreen(pm.M)
	case app.ScreenBuilder:
		return ViewBuilderScreen(pm.M)
	case app.ScreenExamples:
		return ViewExamplesScreen(pm.M)
	case app.ScreenHistory:
		return ViewHistoryScreen(pm.M, pm.deps.History)
	case app.ScreenHelp:
		return ViewHelpScreen(pm.M)
	}
	return ""
}
