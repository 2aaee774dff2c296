package args

import (
	"context"
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// ListCommandsCommand defines the command to list all registered commands.
type ListCommandsCommand struct{}

// init registers the list-commands command when the package is initialized.
func init() {
	RegisterCommand(&ListCommandsCommand{})
}

// Name returns the command's name.
func (c *ListCommandsCommand) Name() string {
	return "commands"
}

// Description returns a brief help description.
func (c *ListCommandsCommand) Description() string {
	return "Lists all available commands."
}

// Usage returns a brief usage string.
func (c *ListCommandsCommand) Usage() string {
	return "[command]"
}

// ExpectedArgs returns definitions for expected positional arguments.
func (c *ListCommandsCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "command", Description: "Show details for one command, e.g. config get", Variadic: true},
	}
}

// ExpectedFlags returns definitions for expected flags.
func (c *ListCommandsCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{}
}

// Execute prints every registered command except itself, or the details of
// the one named by the arguments.
func (c *ListCommandsCommand) Execute(_ context.Context, env *Env, inv Invocation) error {
	if len(inv.Args) > 0 {
		name := strings.Join(inv.Args, " ")
		cmd, found := GetCommand(name)
		if !found {
			return cli.NewArgumentErrorWithUsage(fmt.Sprintf("unknown command %q", name), usageLine(c),
				"Run 'psb commands' to list the available commands")
		}
		printCommandHelp(env, cmd)
		return nil
	}
	fmt.Fprintln(env.Out, "Available Commands:")
	for _, cmd := range GetAllCommands() {
		if cmd.Name() == c.Name() {
			continue
		}
		fmt.Fprintf(env.Out, "  %-18s %s\n", cmd.Name(), cmd.Description())
	}
	fmt.Fprintln(env.Out, "\nRun 'psb [command] --help' for more information on a specific command.")
	fmt.Fprintln(env.Out, "Run 'psb' without arguments to open the interactive builder.")
	return nil
}

// printCommandHelp displays detailed help for a specific command.
func printCommandHelp(env *Env, cmd Command) {
	fmt.Fprintf(env.Out, "Usage: %s\n\n", usageLine(cmd))
	fmt.Fprintf(env.Out, "  %s\n", cmd.Description())

	if args := cmd.ExpectedArgs(); len(args) > 0 {
		fmt.Fprintln(env.Out, "\nArguments:")
		for _, arg := range args {
			required := ""
			if arg.Required {
				required = " (required)"
			}
			fmt.Fprintf(env.Out, "  %-18s %s%s\n", arg.Name, arg.Description, required)
		}
	}

	if flags := cmd.ExpectedFlags(); len(flags) > 0 {
		fmt.Fprintln(env.Out, "\nFlags:")
		for _, flag := range flags {
			flagUsage := "--" + flag.Name
			if flag.ShortName != "" {
				flagUsage += ", -" + flag.ShortName
			}
			if flag.HasValue {
				flagUsage += " <value>"
			}
			fmt.Fprintf(env.Out, "  %-18s %s\n", flagUsage, flag.Description)
		}
	}
}
