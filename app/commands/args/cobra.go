package args

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// EnvFunc returns the Env for the running command. It is called after the
// root command's PersistentPreRunE has loaded configuration.
type EnvFunc func() *Env

// AttachCommands adds every registered command to root. Multi-word names
// become nested cobra commands ("config get" -> config, get).
func AttachCommands(root *cobra.Command, env EnvFunc) {
	for _, cmd := range GetAllCommands() {
		words := strings.Fields(cmd.Name())
		parent := root
		for _, group := range words[:len(words)-1] {
			parent = groupCommand(parent, group)
		}
		parent.AddCommand(newCobraCommand(words[len(words)-1], cmd, env))
	}
}

func groupCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	group := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", name),
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}
	parent.AddCommand(group)
	return group
}

func newCobraCommand(use string, cmd Command, env EnvFunc) *cobra.Command {
	c := &cobra.Command{
		Use:   strings.TrimSpace(use + " " + cmd.Usage()),
		Short: cmd.Description(),
		Args:  positionalArgs(cmd),
		RunE: func(c *cobra.Command, positional []string) error {
			return cmd.Execute(c.Context(), env(), invocationFrom(c, cmd, positional))
		},
	}
	for _, f := range cmd.ExpectedFlags() {
		switch {
		case f.HasValue && f.Repeatable:
			c.Flags().StringArrayP(f.Name, f.ShortName, nil, f.Description)
		case f.HasValue:
			c.Flags().StringP(f.Name, f.ShortName, f.Default, f.Description)
		default:
			c.Flags().BoolP(f.Name, f.ShortName, false, f.Description)
		}
	}
	return c
}

// positionalArgs validates the argument count against ExpectedArgs and turns
// a mismatch into an argument error carrying the usage line.
func positionalArgs(cmd Command) cobra.PositionalArgs {
	return func(_ *cobra.Command, positional []string) error {
		required, limit := 0, 0
		for _, a := range cmd.ExpectedArgs() {
			if a.Required {
				required++
			}
			if a.Variadic {
				limit = -1
			} else if limit >= 0 {
				limit++
			}
		}
		switch {
		case len(positional) < required:
			missing := cmd.ExpectedArgs()[len(positional)].Name
			return cli.NewArgumentErrorWithUsage(
				fmt.Sprintf("missing required argument: %s", missing),
				usageLine(cmd),
				fmt.Sprintf("Run 'psb %s --help' for details", cmd.Name()))
		case limit >= 0 && len(positional) > limit:
			return cli.NewArgumentErrorWithUsage(
				fmt.Sprintf("too many arguments: expected at most %d, got %d", limit, len(positional)),
				usageLine(cmd))
		}
		return nil
	}
}

func invocationFrom(c *cobra.Command, cmd Command, positional []string) Invocation {
	inv := Invocation{
		Args:      positional,
		Flags:     map[string][]string{},
		BoolFlags: map[string]bool{},
	}
	for _, f := range cmd.ExpectedFlags() {
		switch {
		case f.HasValue && f.Repeatable:
			if values, err := c.Flags().GetStringArray(f.Name); err == nil && len(values) > 0 {
				inv.Flags[f.Name] = values
			}
		case f.HasValue:
			if value, err := c.Flags().GetString(f.Name); err == nil && value != "" {
				inv.Flags[f.Name] = []string{value}
			}
		default:
			if value, err := c.Flags().GetBool(f.Name); err == nil {
				inv.BoolFlags[f.Name] = value
			}
		}
	}
	return inv
}
