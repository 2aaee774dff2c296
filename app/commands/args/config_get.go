package args

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
	config "github.com/Guerrilla-Interactive/psbuilder/internal"
)

// ConfigGetCommand defines the command to get a configuration value.
type ConfigGetCommand struct{}

func init() {
	RegisterCommand(&ConfigGetCommand{})
}

func (c *ConfigGetCommand) Name() string {
	return "config get"
}

func (c *ConfigGetCommand) Description() string {
	return "Gets the value of a specific configuration key."
}

func (c *ConfigGetCommand) Usage() string {
	return "<key>"
}

func (c *ConfigGetCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "key", Description: "The configuration key to get.", Required: true},
	}
}

func (c *ConfigGetCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{}
}

func (c *ConfigGetCommand) Execute(_ context.Context, env *Env, inv Invocation) error {
	value, err := env.Config.Get(inv.Args[0])
	if err != nil {
		return configKeyError(err)
	}
	fmt.Fprintln(env.Out, value)
	return nil
}

func configKeyError(err error) error {
	var unknown config.ErrUnknownKey
	if errors.As(err, &unknown) {
		return cli.NewArgumentError(err.Error(), "Run 'psb config list' to see the available keys")
	}
	return cli.Wrap(err, cli.Configuration)
}
