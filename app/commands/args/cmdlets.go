package args

import (
	"context"
	"fmt"
	"strings"
)

// CmdletsCommand lists every cmdlet of the catalog.
type CmdletsCommand struct{}

func init() {
	RegisterCommand(&CmdletsCommand{})
}

func (c *CmdletsCommand) Name() string { return "cmdlets" }

func (c *CmdletsCommand) Description() string {
	return "Lists every cmdlet with its category."
}

func (c *CmdletsCommand) Usage() string { return "[--category name]" }

func (c *CmdletsCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *CmdletsCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "category", ShortName: "c", Description: "Only list cmdlets of this category.", HasValue: true},
	}
}

func (c *CmdletsCommand) Execute(ctx context.Context, env *Env, inv Invocation) error {
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}
	category := inv.Flag("category")
	for _, cmdlet := range cat.Cmdlets() {
		if category != "" && !strings.EqualFold(cmdlet.Category, category) {
			continue
		}
		label := cmdlet.Category
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(env.Out, "%-20s %-10s %d params\n", cmdlet.Name(), label, len(cmdlet.Parameters))
	}
	return nil
}
