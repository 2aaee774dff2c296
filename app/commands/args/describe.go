package args

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// DescribeCommand prints a cmdlet's description and parameters.
type DescribeCommand struct{}

func init() {
	RegisterCommand(&DescribeCommand{})
}

func (c *DescribeCommand) Name() string { return "describe" }

func (c *DescribeCommand) Description() string {
	return "Shows a cmdlet's description and parameters."
}

func (c *DescribeCommand) Usage() string { return "<cmdlet | verb noun> [--raw]" }

func (c *DescribeCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "cmdlet", Description: "Verb-Noun, or a verb followed by a noun.", Required: true},
		{Name: "noun", Description: "Noun when the verb is given separately."},
	}
}

func (c *DescribeCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "raw", Description: "Print markdown without terminal styling."},
	}
}

func (c *DescribeCommand) Execute(ctx context.Context, env *Env, inv Invocation) error {
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}
	cmdlet, err := resolveCmdlet(cat, inv.Args)
	if err != nil {
		return err
	}

	doc := CmdletMarkdown(cmdlet)
	if inv.BoolFlags["raw"] || !env.Interactive {
		fmt.Fprint(env.Out, doc)
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return cli.Wrap(err, cli.Runtime)
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return cli.Wrap(err, cli.Runtime)
	}
	fmt.Fprint(env.Out, out)
	return nil
}

// CmdletMarkdown documents a cmdlet as markdown.
func CmdletMarkdown(cmdlet catalog.Cmdlet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cmdlet.Name())
	if cmdlet.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", cmdlet.Description)
	}
	if cmdlet.Category != "" {
		fmt.Fprintf(&b, "**Category:** %s\n\n", cmdlet.Category)
	}
	if len(cmdlet.Parameters) == 0 {
		b.WriteString("_No parameters._\n")
		return b.String()
	}
	b.WriteString("## Parameters\n\n")
	b.WriteString("| Name | Type | Description |\n")
	b.WriteString("|------|------|-------------|\n")
	for _, p := range cmdlet.Parameters {
		desc := p.Description
		if p.Placeholder != "" {
			desc = strings.TrimSpace(desc + " (e.g. `" + p.Placeholder + "`)")
		}
		fmt.Fprintf(&b, "| `-%s` | %s | %s |\n", p.Name, p.Type, strings.ReplaceAll(desc, "|", "\\|"))
	}
	return b.String()
}
