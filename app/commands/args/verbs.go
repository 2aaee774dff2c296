package args

import (
	"context"
	"fmt"
)

// VerbsCommand lists the catalog verbs.
type VerbsCommand struct{}

func init() {
	RegisterCommand(&VerbsCommand{})
}

func (c *VerbsCommand) Name() string { return "verbs" }

func (c *VerbsCommand) Description() string {
	return "Lists the verbs of the catalog."
}

func (c *VerbsCommand) Usage() string { return "[--count]" }

func (c *VerbsCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *VerbsCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "count", ShortName: "c", Description: "Show how many nouns each verb has."},
	}
}

func (c *VerbsCommand) Execute(ctx context.Context, env *Env, inv Invocation) error {
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}
	for _, verb := range cat.Verbs() {
		if inv.BoolFlags["count"] {
			fmt.Fprintf(env.Out, "%-12s %d\n", verb, len(cat.Nouns(verb)))
			continue
		}
		fmt.Fprintln(env.Out, verb)
	}
	return nil
}
