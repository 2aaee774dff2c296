package args

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// ParseCommand normalizes a typed command line through the builder.
type ParseCommand struct{}

func init() {
	RegisterCommand(&ParseCommand{})
}

func (c *ParseCommand) Name() string { return "parse" }

func (c *ParseCommand) Description() string {
	return "Checks a command line against the catalog and prints it normalized."
}

func (c *ParseCommand) Usage() string { return "<command line> [--empty omit|placeholder] [--copy]" }

func (c *ParseCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "line", Description: "The command line; quote it so the shell passes it whole.", Required: true, Variadic: true},
	}
}

func (c *ParseCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "empty", Description: "How selected parameters without a value render: omit or placeholder.", HasValue: true},
		{Name: "copy", Description: "Copy the result to the clipboard."},
	}
}

func (c *ParseCommand) Execute(ctx context.Context, env *Env, inv Invocation) error {
	policy, err := env.EmptyPolicy(inv.Flag("empty"))
	if err != nil {
		return err
	}
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}

	line := strings.Join(inv.Args, " ")
	p, err := builder.FromCommandLine(cat, line)
	if err != nil {
		return parseError(err)
	}
	out, _ := builder.RenderPipeline(p, policy)
	fmt.Fprintln(env.Out, out)
	if inv.BoolFlags["copy"] {
		return env.CopyAndRecord(out)
	}
	return nil
}

func parseError(err error) error {
	var syntax *cli.SyntaxError
	switch {
	case errors.Is(err, cli.ErrUnterminatedQuote):
		return cli.WrapWithMessage(err, cli.Argument, "invalid command line", cli.UnbalancedQuoteHint)
	case errors.As(err, &syntax):
		return cli.WrapWithMessage(err, cli.Argument, "invalid command line")
	case errors.Is(err, builder.ErrUnknownCmdlet):
		return cli.Wrap(err, cli.Argument, "Run 'psb cmdlets' to list the available cmdlets")
	case errors.Is(err, builder.ErrUnknownParameter), errors.Is(err, builder.ErrSwitchValue):
		return cli.Wrap(err, cli.Argument, "Run 'psb describe <cmdlet>' to list its parameters")
	case errors.Is(err, builder.ErrPositionalArgument):
		return cli.Wrap(err, cli.Argument, "Name every argument, e.g. -Path C:\\Temp")
	}
	return cli.Wrap(err, cli.Runtime)
}
