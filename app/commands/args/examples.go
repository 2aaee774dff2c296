package args

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
	"github.com/Guerrilla-Interactive/psbuilder/app/examples"
)

// ExamplesCommand lists the built-in example pipelines.
type ExamplesCommand struct{}

func init() {
	RegisterCommand(&ExamplesCommand{})
}

func (c *ExamplesCommand) Name() string { return "examples" }

func (c *ExamplesCommand) Description() string {
	return "Lists the example pipelines, or prints one by id."
}

func (c *ExamplesCommand) Usage() string { return "[id] [--copy]" }

func (c *ExamplesCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "id", Description: "Example id, e.g. file-ops."},
	}
}

func (c *ExamplesCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "copy", Description: "Copy the example to the clipboard (needs an id)."},
	}
}

func (c *ExamplesCommand) Execute(ctx context.Context, env *Env, inv Invocation) error {
	if len(inv.Args) == 0 {
		title := color.New(color.Bold).SprintFunc()
		for _, ex := range examples.All() {
			fmt.Fprintf(env.Out, "%s (%s)\n  %s\n  %s\n\n", title(ex.Title), ex.ID, ex.Description, ex.Command)
		}
		return nil
	}

	ex, ok := examples.Find(inv.Args[0])
	if !ok {
		return cli.NewArgumentError(fmt.Sprintf("unknown example %q", inv.Args[0]),
			"Run 'psb examples' to list them")
	}
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}
	p, err := ex.Load(cat)
	if err != nil {
		return parseError(err)
	}
	out, _ := builder.RenderPipeline(p, builder.EmptyOmit)
	fmt.Fprintln(env.Out, out)
	if inv.BoolFlags["copy"] {
		return env.CopyAndRecord(out)
	}
	return nil
}
