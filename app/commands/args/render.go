package args

import (
	"context"
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// RenderCommand builds a command line from a verb, a noun and parameters.
type RenderCommand struct{}

func init() {
	RegisterCommand(&RenderCommand{})
}

func (c *RenderCommand) Name() string { return "render" }

func (c *RenderCommand) Description() string {
	return "Builds a command line from a verb, a noun and parameters."
}

func (c *RenderCommand) Usage() string {
	return "<verb> <noun> [--param Name=value]... [--switch Name]... [--empty omit|placeholder] [--copy]"
}

func (c *RenderCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "verb", Description: "The verb, e.g. Get.", Required: true},
		{Name: "noun", Description: "The noun, e.g. Process.", Required: true},
	}
}

func (c *RenderCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "param", ShortName: "p", Description: "Select a value parameter (Name=value, or Name for an empty value).", HasValue: true, Repeatable: true},
		{Name: "switch", ShortName: "s", Description: "Select a switch parameter.", HasValue: true, Repeatable: true},
		{Name: "empty", Description: "How selected parameters without a value render: omit or placeholder.", HasValue: true},
		{Name: "copy", Description: "Copy the result to the clipboard."},
	}
}

func (c *RenderCommand) Execute(ctx context.Context, env *Env, inv Invocation) error {
	policy, err := env.EmptyPolicy(inv.Flag("empty"))
	if err != nil {
		return err
	}
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}
	cmdlet, err := resolveCmdlet(cat, inv.Args)
	if err != nil {
		return err
	}

	sel, _ := builder.Selection{}.ChooseVerb(cat, cmdlet.Verb)
	sel, _ = sel.ChooseNoun(cat, cmdlet.Noun)

	for _, raw := range inv.FlagValues("param") {
		name, value, _ := strings.Cut(raw, "=")
		param, ok := cmdlet.LookupParameter(strings.TrimSpace(name))
		if !ok {
			return unknownParameter(cmdlet.Name(), name)
		}
		if param.IsSwitch() {
			return cli.NewArgumentError(fmt.Sprintf("-%s is a switch parameter", param.Name),
				fmt.Sprintf("Use --switch %s instead", param.Name))
		}
		sel, _ = sel.ToggleParameter(param.Name, true)
		sel, _ = sel.SetParameterValue(param.Name, value)
	}
	for _, name := range inv.FlagValues("switch") {
		param, ok := cmdlet.LookupParameter(strings.TrimSpace(name))
		if !ok {
			return unknownParameter(cmdlet.Name(), name)
		}
		if !param.IsSwitch() {
			return cli.NewArgumentError(fmt.Sprintf("-%s takes a value", param.Name),
				fmt.Sprintf("Use --param %s=<value> instead", param.Name))
		}
		sel, _ = sel.ToggleParameter(param.Name, true)
	}

	out, _ := builder.Render(sel, policy)
	fmt.Fprintln(env.Out, out)
	if inv.BoolFlags["copy"] {
		return env.CopyAndRecord(out)
	}
	return nil
}

func unknownParameter(cmdlet, name string) error {
	return cli.NewArgumentError(fmt.Sprintf("%s has no parameter %q", cmdlet, name),
		fmt.Sprintf("Run 'psb describe %s' to list its parameters", cmdlet))
}
