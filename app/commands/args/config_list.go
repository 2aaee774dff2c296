package args

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	config "github.com/Guerrilla-Interactive/psbuilder/internal"
)

// ConfigListCommand defines the command to list configuration values.
type ConfigListCommand struct{}

func init() {
	RegisterCommand(&ConfigListCommand{})
}

func (c *ConfigListCommand) Name() string {
	return "config list"
}

func (c *ConfigListCommand) Description() string {
	return "Lists all configuration keys and values."
}

func (c *ConfigListCommand) Usage() string {
	return "[--describe]"
}

func (c *ConfigListCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{}
}

func (c *ConfigListCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "describe", ShortName: "d", Description: "Show a description under each key."},
	}
}

func (c *ConfigListCommand) Execute(_ context.Context, env *Env, inv Invocation) error {
	faint := color.New(color.Faint).SprintFunc()
	for _, k := range config.Keys {
		value, _ := env.Config.Get(k.Name)
		fmt.Fprintf(env.Out, "%-18s = %s\n", k.Name, value)
		if inv.BoolFlags["describe"] {
			fmt.Fprintf(env.Out, "  %s\n", faint(k.Description))
		}
	}
	return nil
}
