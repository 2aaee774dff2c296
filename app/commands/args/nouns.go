package args

import (
	"context"
	"fmt"
)

// NounsCommand lists the nouns of one verb.
type NounsCommand struct{}

func init() {
	RegisterCommand(&NounsCommand{})
}

func (c *NounsCommand) Name() string { return "nouns" }

func (c *NounsCommand) Description() string {
	return "Lists the nouns available for a verb."
}

func (c *NounsCommand) Usage() string { return "<verb>" }

func (c *NounsCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "verb", Description: "The verb, e.g. Get.", Required: true},
	}
}

func (c *NounsCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *NounsCommand) Execute(ctx context.Context, env *Env, inv Invocation) error {
	cat, err := env.Catalog(ctx)
	if err != nil {
		return err
	}
	verb, err := resolveVerb(cat, inv.Args[0])
	if err != nil {
		return err
	}
	for _, noun := range cat.Nouns(verb) {
		fmt.Fprintln(env.Out, noun)
	}
	return nil
}
