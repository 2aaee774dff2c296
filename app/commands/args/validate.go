package args

import (
	"context"
	"fmt"

	"github.com/fatih/color"
)

// ValidateCommand loads the configured catalog and reports its warnings.
type ValidateCommand struct{}

func init() {
	RegisterCommand(&ValidateCommand{})
}

func (c *ValidateCommand) Name() string { return "validate" }

func (c *ValidateCommand) Description() string {
	return "Loads the configured catalog and reports problems."
}

func (c *ValidateCommand) Usage() string { return "" }

func (c *ValidateCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *ValidateCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *ValidateCommand) Execute(ctx context.Context, env *Env, _ Invocation) error {
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}
	src := env.Sources()
	fmt.Fprintf(env.Out, "Verb index:       %s\n", sourceName(src.Verbs))
	fmt.Fprintf(env.Out, "Parameter schema: %s\n", sourceName(src.Parameters))
	fmt.Fprintf(env.Out, "%d verbs, %d cmdlets\n", len(cat.Verbs()), cat.Len())

	if len(cat.Warnings) == 0 {
		fmt.Fprintln(env.Out, color.GreenString("Catalog OK"))
		return nil
	}
	fmt.Fprintln(env.Out, color.YellowString("%d warning(s):", len(cat.Warnings)))
	for _, w := range cat.Warnings {
		fmt.Fprintf(env.Out, "  - %s\n", w)
	}
	return nil
}

func sourceName(location string) string {
	if location == "" {
		return "built-in"
	}
	return location
}
