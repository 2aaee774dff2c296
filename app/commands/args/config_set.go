package args

import (
	"context"
	"fmt"

	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
	config "github.com/Guerrilla-Interactive/psbuilder/internal"
)

// ConfigSetCommand defines the command to set a configuration value.
type ConfigSetCommand struct{}

func init() {
	RegisterCommand(&ConfigSetCommand{})
}

func (c *ConfigSetCommand) Name() string {
	return "config set"
}

func (c *ConfigSetCommand) Description() string {
	return "Sets a configuration key in the user config file."
}

func (c *ConfigSetCommand) Usage() string {
	return "<key> <value> [--file path]"
}

func (c *ConfigSetCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "key", Description: "The configuration key to set.", Required: true},
		{Name: "value", Description: "The value to set for the key.", Required: true},
	}
}

func (c *ConfigSetCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "file", Description: "Config file to write instead of the user config.", HasValue: true},
	}
}

func (c *ConfigSetCommand) Execute(_ context.Context, env *Env, inv Invocation) error {
	key, value := inv.Args[0], inv.Args[1]
	if _, err := config.LookupKey(key); err != nil {
		return configKeyError(err)
	}

	path := inv.Flag("file")
	if path == "" {
		var err error
		if path, err = config.UserConfigPath(); err != nil {
			return cli.Wrap(err, cli.Configuration)
		}
	}
	if err := config.SetValue(path, key, value); err != nil {
		return cli.WrapWithMessage(err, cli.Configuration, "failed to set "+key)
	}
	fmt.Fprintf(env.Out, "Set %s = %s in %s\n", key, value, path)
	return nil
}
