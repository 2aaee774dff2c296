package args

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
	"github.com/Guerrilla-Interactive/psbuilder/app/history"
	config "github.com/Guerrilla-Interactive/psbuilder/internal"
)

// Env is what commands run against: settings, output streams and the
// lazily loaded catalog and history.
type Env struct {
	Config *config.Config
	Logger *zap.Logger
	Out    io.Writer
	Err    io.Writer

	// Interactive enables the loading spinner on Err.
	Interactive bool
	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	catalog *catalog.Catalog
	history *history.Store
}

// NewEnv returns an Env writing to the process stdout and stderr.
func NewEnv(cfg *config.Config, logger *zap.Logger) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{
		Config:      cfg,
		Logger:      logger,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Interactive: term.IsTerminal(int(os.Stderr.Fd())),
		Clipboard:   clipboard.WriteAll,
	}
}

// Sources returns the catalog locations from the configuration.
func (e *Env) Sources() catalog.Sources {
	return catalog.Sources{Verbs: e.Config.VerbsSource, Parameters: e.Config.ParametersSource}
}

// Catalog loads the configured catalog once per Env. Remote sources show a
// spinner when stderr is a terminal.
func (e *Env) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if e.catalog != nil {
		return e.catalog, nil
	}
	src := e.Sources()
	if e.Interactive && src.IsRemote() {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(e.Err))
		s.Suffix = " Loading catalog..."
		s.Start()
		defer s.Stop()
	}

	c, err := catalog.NewLoader(e.Config.HTTPTimeout, e.Logger).Load(ctx, src)
	if err != nil {
		return nil, cli.WrapWithMessage(err, cli.Catalog, "failed to load catalog",
			"Check verbs_source and parameters_source with 'psb config list'",
			"Unset both to use the built-in catalog")
	}
	e.catalog = c
	return c, nil
}

// History loads the history store once per Env.
func (e *Env) History() (*history.Store, error) {
	if e.history != nil {
		return e.history, nil
	}
	store, err := history.Load(e.Config.HistoryFile, e.Config.HistoryLimit)
	if err != nil {
		return nil, cli.Wrap(err, cli.Runtime, "Move or delete the history file to start fresh")
	}
	e.history = store
	return store, nil
}

// EmptyPolicy returns the configured empty-value policy, or the override
// when it is not blank.
func (e *Env) EmptyPolicy(override string) (builder.EmptyValuePolicy, error) {
	value := e.Config.EmptyValue
	if override != "" {
		value = override
	}
	policy, err := builder.ParseEmptyValuePolicy(value)
	if err != nil {
		return builder.EmptyOmit, cli.NewArgumentError(err.Error())
	}
	return policy, nil
}

// CopyAndRecord puts command on the clipboard and records it in history.
func (e *Env) CopyAndRecord(command string) error {
	if e.Clipboard == nil {
		return cli.NewArgumentError("clipboard is not available")
	}
	if err := e.Clipboard(command); err != nil {
		return cli.WrapWithMessage(err, cli.Runtime, "failed to copy to clipboard")
	}
	store, err := e.History()
	if err != nil {
		return err
	}
	store.Record(command)
	if err := store.Save(); err != nil {
		e.Logger.Warn("failed to save history", zap.Error(err))
	}
	e.Logger.Info("command copied", zap.String("command", command))
	return nil
}
