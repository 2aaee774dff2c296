package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Guerrilla-Interactive/psbuilder/app"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
	"github.com/Guerrilla-Interactive/psbuilder/app/commands/args"
	"github.com/Guerrilla-Interactive/psbuilder/app/screens"
	config "github.com/Guerrilla-Interactive/psbuilder/internal"
	"github.com/Guerrilla-Interactive/psbuilder/internal/logging"
)

// Version is set via linker flags during build.
var Version = "v0.1.0"

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// rootFlags override values from the config file and environment.
type rootFlags struct {
	verbose     bool
	verbs       string
	parameters  string
	empty       string
	historyFile string
}

func (f rootFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("verbs") {
		cfg.VerbsSource = f.verbs
	}
	if cmd.Flags().Changed("parameters") {
		cfg.ParametersSource = f.parameters
	}
	if cmd.Flags().Changed("empty") {
		cfg.EmptyValue = f.empty
	}
	if cmd.Flags().Changed("history-file") {
		cfg.HistoryFile = f.historyFile
	}
}

func newRootCommand() *cobra.Command {
	var flags rootFlags
	var env *args.Env

	root := &cobra.Command{
		Use:           "psb",
		Short:         "Build PowerShell commands from a cmdlet catalog",
		Long:          "psb builds PowerShell command lines by choosing a verb, a noun and parameters.\nRun without a command to open the interactive builder.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return cli.WrapWithMessage(err, cli.Configuration, "failed to load configuration",
					"Check the file printed by 'psb config list --describe'",
					"Unset PSB_* environment variables that hold invalid values")
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return cli.Wrap(err, cli.Argument)
			}

			logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Verbose: flags.verbose})
			if err != nil {
				return cli.WrapWithMessage(err, cli.Configuration, "failed to open log file", "Set log_file to a writable path")
			}
			env = args.NewEnv(cfg, logger)
			env.Out = cmd.OutOrStdout()
			logger.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", Version))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if env != nil {
				_ = env.Logger.Sync()
			}
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), env)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")
	pf.StringVar(&flags.verbs, "verbs", "", "verb index file or URL")
	pf.StringVar(&flags.parameters, "parameters", "", "parameter schema file or URL")
	pf.StringVar(&flags.empty, "empty", "", "render of selected parameters without a value: omit or placeholder")
	pf.StringVar(&flags.historyFile, "history-file", "", "history file path")

	args.AttachCommands(root, func() *args.Env { return env })
	return root
}

// runInteractive starts the full-screen builder.
func runInteractive(ctx context.Context, env *args.Env) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.NewArgumentErrorWithUsage("the interactive builder needs a terminal", "psb <command>",
			"Run 'psb commands' to list the non-interactive commands")
	}

	policy, err := env.EmptyPolicy("")
	if err != nil {
		return err
	}
	store, err := env.History()
	if err != nil {
		return err
	}
	// The TUI draws its own spinner.
	env.Interactive = false

	model := screens.NewProgramModel(ctx, app.NewModel(policy, env.Sources()), screens.Deps{
		LoadCatalog: env.Catalog,
		History:     store,
		Clipboard:   env.Clipboard,
		Logger:      env.Logger,
	})
	env.Logger.Info("interactive session started")
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return cli.WrapWithMessage(err, cli.Runtime, "interactive session failed")
	}
	return nil
}
