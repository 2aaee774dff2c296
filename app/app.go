package app

import (
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
)

// Screen indicates which screen is currently shown.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLoadError
	ScreenBuilder
	ScreenExamples
	ScreenHistory
	ScreenHelp
)

// Panel is the builder column that receives list keys.
type Panel int

const (
	PanelVerbs Panel = iota
	PanelNouns
	PanelParams
)

// Model is the primary application state shared by all screens.
type Model struct {
	CurrentScreen  Screen
	PreviousScreen Screen // where help returns to

	Catalog *catalog.Catalog
	LoadErr error
	Sources catalog.Sources

	// Builder state. The pipeline is replaced on every transition.
	Pipeline builder.Pipeline
	Policy   builder.EmptyValuePolicy
	Focus    Panel
	VerbIdx  int
	NounIdx  int
	ParamIdx int

	// Fuzzy filter over the verbs or nouns column.
	Filtering    bool
	FilterPanel  Panel
	FilterInput  textinput.Model
	EditingValue bool
	ValueInput   textinput.Model

	ExamplesIndex    int
	HistoryIndex     int
	HistoryPaginator paginator.Model

	Spinner   spinner.Model
	Status    string
	StatusErr bool
	StatusSeq int

	TerminalWidth  int
	TerminalHeight int
}

// NewModel returns the model shown while the catalog loads.
func NewModel(policy builder.EmptyValuePolicy, sources catalog.Sources) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = HighlightStyle

	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.CharLimit = 40

	value := textinput.New()
	value.Placeholder = "value"
	value.Prompt = "= "
	value.CharLimit = 512

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 10
	p.ActiveDot = HighlightStyle.Render("•")
	p.InactiveDot = ChoiceStyle.Render("•")

	return Model{
		CurrentScreen:    ScreenLoading,
		Sources:          sources,
		Pipeline:         builder.NewPipeline(),
		Policy:           policy,
		FilterInput:      filter,
		ValueInput:       value,
		HistoryPaginator: p,
		Spinner:          s,
	}
}

var (
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	SubtitleStyle  = lipgloss.NewStyle().Bold(true)
	HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500"))
	ChoiceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	SelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787"))
	DocStyle       = lipgloss.NewStyle().Padding(1, 2)
	HelpStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888"))
	PathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	ErrorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
)

// Panel and command bar styles.
var (
	PanelStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	FocusedPanelStyle = PanelStyle.BorderForeground(lipgloss.Color("205"))
	CommandBarStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("#FFA500"))
)
