package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// Errors returned by FromCommandLine, wrapped with the offending name.
var (
	ErrUnknownCmdlet      = errors.New("unknown cmdlet")
	ErrUnknownParameter   = errors.New("unknown parameter")
	ErrPositionalArgument = errors.New("positional arguments are not supported")
	ErrSwitchValue        = errors.New("switch parameter does not take a value")
)

// FromCommandLine parses a command line and replays it through the selection
// state machine, one segment per pipeline stage. Cmdlet and parameter names
// match case-insensitively and come back in the catalog's spelling.
func FromCommandLine(c *catalog.Catalog, line string) (Pipeline, error) {
	parsed, err := cli.ParseCommandLine(line)
	if err != nil {
		return Pipeline{}, err
	}

	var p Pipeline
	for i, inv := range parsed.Invocations {
		sel, err := selectionFor(c, inv)
		if err != nil {
			return Pipeline{}, fmt.Errorf("segment %d: %w", i+1, err)
		}
		if i == 0 {
			p = NewPipeline()
		} else {
			p = p.AddSegment()
		}
		p, _ = p.Update(func(Selection) (Selection, bool) { return sel, true })
	}
	return p.Focus(0), nil
}

func selectionFor(c *catalog.Catalog, inv cli.Invocation) (Selection, error) {
	if len(inv.Positional) > 0 {
		return Selection{}, fmt.Errorf("%s %s: %w", inv.Command, strings.Join(inv.Positional, " "), ErrPositionalArgument)
	}
	cmdlet, ok := c.ResolveCmdlet(inv.Command)
	if !ok {
		return Selection{}, fmt.Errorf("%q: %w", inv.Command, ErrUnknownCmdlet)
	}

	sel, _ := Selection{}.ChooseVerb(c, cmdlet.Verb)
	sel, ok = sel.ChooseNoun(c, cmdlet.Noun)
	if !ok {
		return Selection{}, fmt.Errorf("%q: %w", inv.Command, ErrUnknownCmdlet)
	}

	for _, arg := range inv.Named {
		param, ok := cmdlet.LookupParameter(arg.Name)
		if !ok {
			return Selection{}, fmt.Errorf("%s -%s: %w", cmdlet.Name(), arg.Name, ErrUnknownParameter)
		}
		if param.IsSwitch() {
			if arg.HasValue {
				return Selection{}, fmt.Errorf("%s -%s %s: %w", cmdlet.Name(), param.Name, arg.Value, ErrSwitchValue)
			}
			sel, _ = sel.ToggleParameter(param.Name, true)
			continue
		}
		sel, _ = sel.ToggleParameter(param.Name, true)
		// "<value>" is what EmptyPlaceholder prints for a blank value.
		if arg.HasValue && arg.Value != ValuePlaceholder {
			sel, _ = sel.SetParameterValue(param.Name, arg.Value)
		}
	}
	return sel, nil
}
