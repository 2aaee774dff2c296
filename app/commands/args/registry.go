package args

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ArgDef defines an expected positional argument.
type ArgDef struct {
	Name        string
	Description string
	Required    bool
	Variadic    bool // consumes every remaining argument; must be last
}

// FlagDef defines an expected flag.
type FlagDef struct {
	Name        string
	ShortName   string
	Description string
	HasValue    bool
	Repeatable  bool // only with HasValue
	Default     string
}

// Invocation carries the arguments and flags a command was called with.
type Invocation struct {
	Args      []string
	Flags     map[string][]string
	BoolFlags map[string]bool
}

// Flag returns the last value given for a flag, or "".
func (inv Invocation) Flag(name string) string {
	values := inv.Flags[name]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// FlagValues returns every value given for a repeatable flag.
func (inv Invocation) FlagValues(name string) []string {
	return inv.Flags[name]
}

// Command represents a CLI command that can be executed directly.
type Command interface {
	// Name returns the command's name. Words separated by a space form a
	// command group, e.g. "config get".
	Name() string
	// Description returns a brief help description for the command.
	Description() string
	// Usage returns a brief usage string (e.g., "<verb> <noun> [flags]").
	Usage() string
	// ExpectedArgs returns definitions for expected positional arguments.
	ExpectedArgs() []ArgDef
	// ExpectedFlags returns definitions for expected flags.
	ExpectedFlags() []FlagDef
	// Execute runs the command logic.
	Execute(ctx context.Context, env *Env, inv Invocation) error
}

// commandRegistry holds all registered CLI commands.
var commandRegistry = make(map[string]Command)

// RegisterCommand adds a command to the registry. It is called from the
// init() function of each command's file.
func RegisterCommand(cmd Command) {
	if _, exists := commandRegistry[cmd.Name()]; exists {
		panic(fmt.Sprintf("Command already registered: %s", cmd.Name()))
	}
	commandRegistry[cmd.Name()] = cmd
}

// GetCommand retrieves a command from the registry by its name.
func GetCommand(name string) (Command, bool) {
	cmd, found := commandRegistry[name]
	return cmd, found
}

// GetAllCommands returns every registered command sorted by name.
func GetAllCommands() []Command {
	cmds := make([]Command, 0, len(commandRegistry))
	for _, cmd := range commandRegistry {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// usageLine renders "psb <name> <usage>".
func usageLine(cmd Command) string {
	return strings.TrimSpace("psb " + cmd.Name() + " " + cmd.Usage())
}
