package args

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
	config "github.com/Guerrilla-Interactive/psbuilder/internal"
)

type harness struct {
	env     *Env
	out     *bytes.Buffer
	copied  []string
	cfgPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath: filepath.Join(dir, "config.yaml"),
		SkipEnv:    true,
	})
	require.NoError(t, err)
	cfg.HistoryFile = filepath.Join(dir, "history.json")
	cfg.LogFile = ""

	h := &harness{out: &bytes.Buffer{}, cfgPath: filepath.Join(dir, "config.yaml")}
	h.env = &Env{
		Config: cfg,
		Logger: zap.NewNop(),
		Out:    h.out,
		Err:    &bytes.Buffer{},
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	}
	return h
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	root := &cobra.Command{Use: "psb", SilenceUsage: true, SilenceErrors: true}
	root.SetOut(h.out)
	root.SetErr(h.out)
	AttachCommands(root, func() *Env { return h.env })
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestRegistryIsSortedAndComplete(t *testing.T) {
	var names []string
	for _, cmd := range GetAllCommands() {
		names = append(names, cmd.Name())
	}
	assert.IsIncreasing(t, names)
	for _, want := range []string{"verbs", "nouns", "describe", "render", "parse", "examples", "history", "config list", "config get", "validate"} {
		_, ok := GetCommand(want)
		assert.True(t, ok, want)
	}
	_, ok := GetCommand("nope")
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() { RegisterCommand(&VerbsCommand{}) })
}

func TestVerbsAndNouns(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("verbs"))
	verbs := lines(h.out.String())
	assert.Contains(t, verbs, "Get")
	assert.IsIncreasing(t, verbs)

	require.NoError(t, h.run("nouns", "stop"))
	assert.Equal(t, []string{"Process", "Service"}, lines(h.out.String()))
}

func TestNounsErrors(t *testing.T) {
	h := newHarness(t)

	err := h.run("nouns")
	var cliErr *cli.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, cli.Argument, cliErr.Category)
	assert.Contains(t, cliErr.Message, "missing required argument: verb")
	assert.Equal(t, "psb nouns <verb>", cliErr.Usage)

	err = h.run("nouns", "Frob")
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Message, `unknown verb "Frob"`)

	err = h.run("nouns", "Get", "Process")
	require.ErrorAs(t, err, &cliErr)
	assert.Contains(t, cliErr.Message, "too many arguments")
}

func TestRender(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "Bare", args: []string{"render", "Get", "Process"}, expected: "Get-Process"},
		{name: "Value", args: []string{"render", "get", "process", "--param", "Name=chrome"}, expected: "Get-Process -Name chrome"},
		{name: "Switch", args: []string{"render", "Stop", "Process", "--switch", "Force"}, expected: "Stop-Process -Force"},
		{name: "Quoted", args: []string{"render", "Out", "File", "-p", "FilePath=my file.txt", "-s", "Append"}, expected: "Out-File -FilePath 'my file.txt' -Append"},
		{name: "Empty Omitted", args: []string{"render", "Get", "Process", "-p", "Name"}, expected: "Get-Process"},
		{name: "Empty Placeholder", args: []string{"render", "Get", "Process", "-p", "Name", "--empty", "placeholder"}, expected: "Get-Process -Name <value>"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.run(tc.args...))
			assert.Equal(t, tc.expected+"\n", h.out.String())
		})
	}
}

func TestRenderRejectsWrongParameterKinds(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("render", "Stop", "Process", "--param", "Force=yes"))
	assert.Error(t, h.run("render", "Get", "Process", "--switch", "Name"))
	assert.Error(t, h.run("render", "Get", "Process", "--param", "Frob=1"))
	assert.Error(t, h.run("render", "Get", "Process", "--empty", "drop"))
}

func TestRenderCopyRecordsHistory(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("render", "Stop", "Process", "--switch", "Force", "--copy"))
	assert.Equal(t, []string{"Stop-Process -Force"}, h.copied)

	_, err := os.Stat(h.env.Config.HistoryFile)
	require.NoError(t, err)

	require.NoError(t, h.run("history"))
	assert.Contains(t, h.out.String(), "Stop-Process -Force")
	assert.Contains(t, h.out.String(), "(x1)")

	require.NoError(t, h.run("history", "favorite", "Stop-Process -Force"))
	assert.Contains(t, h.out.String(), "Added to favorites")

	require.NoError(t, h.run("history", "--favorites"))
	assert.True(t, strings.HasPrefix(h.out.String(), "* "), h.out.String())

	assert.Error(t, h.run("history", "favorite", "Get-Date"))
}

func TestCopyFailure(t *testing.T) {
	h := newHarness(t)
	h.env.Clipboard = func(string) error { return errors.New("no display") }

	err := h.run("render", "Get", "Date", "--copy")
	assert.ErrorContains(t, err, "no display")
}

func TestParse(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("parse", "get-process -name chrome | stop-process -force"))
	assert.Equal(t, "Get-Process -Name chrome | Stop-Process -Force\n", h.out.String())

	require.NoError(t, h.run("parse", "Get-ChildItem -Path -Recurse", "--empty", "placeholder"))
	assert.Equal(t, "Get-ChildItem -Path <value> -Recurse\n", h.out.String())

	var cliErr *cli.CLIError
	err := h.run("parse", "Get-Frob")
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, cli.Argument, cliErr.Category)

	err = h.run("parse", "Get-Process -Name 'chrome")
	require.ErrorAs(t, err, &cliErr)
	assert.ErrorIs(t, err, cli.ErrUnterminatedQuote)
	assert.Contains(t, cliErr.Remediation, cli.UnbalancedQuoteHint)
}

func TestParsePlaceholderValueStaysEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("parse", "Get-Process -Name <value>"))
	assert.Equal(t, "Get-Process\n", h.out.String())

	require.NoError(t, h.run("parse", "Get-Process -Name <value>", "--empty", "placeholder"))
	assert.Equal(t, "Get-Process -Name <value>\n", h.out.String())
}

func TestRenderedValueWithQuoteDoesNotParseBack(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("render", "Get", "Process", "--param", "Name=it's here"))
	rendered := strings.TrimSpace(h.out.String())
	assert.Equal(t, "Get-Process -Name 'it's here'", rendered)

	err := h.run("parse", rendered)
	var cliErr *cli.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.ErrorIs(t, err, cli.ErrUnterminatedQuote)
	assert.Contains(t, cliErr.Remediation, cli.UnbalancedQuoteHint)
}

func TestDescribeRaw(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("describe", "Get-Process", "--raw"))
	out := h.out.String()
	assert.True(t, strings.HasPrefix(out, "# Get-Process\n"))
	assert.Contains(t, out, "| `-Name` | String[] |")

	require.NoError(t, h.run("describe", "get", "location"))
	assert.Contains(t, h.out.String(), "_No parameters._")
}

func TestExamples(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("examples"))
	assert.Contains(t, h.out.String(), "file-ops")
	assert.Contains(t, h.out.String(), "system-mgmt")

	require.NoError(t, h.run("examples", "system-mgmt", "--copy"))
	assert.Equal(t, "Get-Process -Name 'chrome' | Stop-Process -Force\n", h.out.String())
	assert.Equal(t, []string{"Get-Process -Name 'chrome' | Stop-Process -Force"}, h.copied)

	assert.Error(t, h.run("examples", "nope"))
}

func TestValidate(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("validate"))
	assert.Contains(t, h.out.String(), "built-in")
	assert.Contains(t, h.out.String(), "Catalog OK")
}

func TestValidateReportsWarnings(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	h.env.Config.VerbsSource = filepath.Join(dir, "verbs.json")
	h.env.Config.ParametersSource = filepath.Join(dir, "parameters.json")
	require.NoError(t, os.WriteFile(h.env.Config.VerbsSource, []byte(`{"verbs": {"Get": ["Thing"]}}`), 0o600))
	require.NoError(t, os.WriteFile(h.env.Config.ParametersSource, []byte(`{"cmdlets": {"Get-Thing": {"parameters": {"Name": {}}}}}`), 0o600))

	require.NoError(t, h.run("validate"))
	assert.Contains(t, h.out.String(), "1 warning(s)")
}

func TestCatalogLoadFailure(t *testing.T) {
	h := newHarness(t)
	h.env.Config.VerbsSource = filepath.Join(t.TempDir(), "missing.json")

	err := h.run("verbs")
	var cliErr *cli.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, cli.Catalog, cliErr.Category)
	assert.NotEmpty(t, cliErr.Remediation)
}

func TestCmdlets(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("cmdlets", "--category", "services"))
	for _, line := range lines(h.out.String()) {
		assert.Contains(t, line, "Service")
	}
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("config", "get", "empty_value"))
	assert.Equal(t, "omit\n", h.out.String())

	require.NoError(t, h.run("config", "list"))
	assert.Len(t, lines(h.out.String()), len(config.Keys))

	assert.Error(t, h.run("config", "get", "colour"))

	require.NoError(t, h.run("config", "set", "empty_value", "placeholder", "--file", h.cfgPath))
	cfg, err := config.LoadWithOptions(config.LoadOptions{ConfigPath: h.cfgPath, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "placeholder", cfg.EmptyValue)

	assert.Error(t, h.run("config", "set", "empty_value", "sometimes", "--file", h.cfgPath))
}

func TestListCommands(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("commands"))
	out := h.out.String()
	assert.Contains(t, out, "config get")
	assert.NotContains(t, out, "  commands ")
}

func TestCommandDetails(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("commands", "config", "get"))
	out := h.out.String()
	assert.Contains(t, out, "Usage: psb config get")
	assert.Contains(t, out, "Arguments:")
	assert.Contains(t, out, "(required)")

	require.NoError(t, h.run("commands", "render"))
	assert.Contains(t, h.out.String(), "--param, -p <value>")
	assert.Contains(t, h.out.String(), "--copy")

	err := h.run("commands", "frob")
	var cliErr *cli.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, cli.Argument, cliErr.Category)
	assert.Contains(t, cliErr.Message, `unknown command "frob"`)
}
