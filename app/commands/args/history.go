package args

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// HistoryListCommand lists copied commands, newest first.
type HistoryListCommand struct{}

// HistoryFavoriteCommand toggles the favorite flag of a copied command.
type HistoryFavoriteCommand struct{}

func init() {
	RegisterCommand(&HistoryListCommand{})
	RegisterCommand(&HistoryFavoriteCommand{})
}

func (c *HistoryListCommand) Name() string { return "history" }

func (c *HistoryListCommand) Description() string {
	return "Lists the commands you have copied, newest first."
}

func (c *HistoryListCommand) Usage() string { return "[--favorites]" }

func (c *HistoryListCommand) ExpectedArgs() []ArgDef { return []ArgDef{} }

func (c *HistoryListCommand) ExpectedFlags() []FlagDef {
	return []FlagDef{
		{Name: "favorites", ShortName: "f", Description: "Only list favorites."},
	}
}

func (c *HistoryListCommand) Execute(_ context.Context, env *Env, inv Invocation) error {
	store, err := env.History()
	if err != nil {
		return err
	}
	entries := store.List()
	if inv.BoolFlags["favorites"] {
		entries = store.Favorites()
	}
	if len(entries) == 0 {
		fmt.Fprintln(env.Out, "No copied commands yet.")
		return nil
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		star := " "
		if e.IsFavorite {
			star = "*"
		}
		when := time.Unix(e.Timestamp, 0).Format("2006-01-02 15:04")
		fmt.Fprintf(env.Out, "%s %s  %s  (x%d)\n", star, when, e.Command, e.Uses)
	}
	return nil
}

func (c *HistoryFavoriteCommand) Name() string { return "history favorite" }

func (c *HistoryFavoriteCommand) Description() string {
	return "Marks or unmarks a copied command as favorite."
}

func (c *HistoryFavoriteCommand) Usage() string { return "<command line>" }

func (c *HistoryFavoriteCommand) ExpectedArgs() []ArgDef {
	return []ArgDef{
		{Name: "line", Description: "The command exactly as copied.", Required: true, Variadic: true},
	}
}

func (c *HistoryFavoriteCommand) ExpectedFlags() []FlagDef { return []FlagDef{} }

func (c *HistoryFavoriteCommand) Execute(_ context.Context, env *Env, inv Invocation) error {
	store, err := env.History()
	if err != nil {
		return err
	}
	command := strings.Join(inv.Args, " ")
	found := false
	for _, e := range store.List() {
		if e.Command == command {
			found = true
			break
		}
	}
	if !found {
		return cli.NewArgumentError(fmt.Sprintf("%q is not in the history", command),
			"Run 'psb history' to see the recorded commands")
	}
	if store.ToggleFavorite(command) {
		fmt.Fprintf(env.Out, "Added to favorites: %s\n", command)
	} else {
		fmt.Fprintf(env.Out, "Removed from favorites: %s\n", command)
	}
	if err := store.Save(); err != nil {
		return cli.Wrap(err, cli.Runtime)
	}
	return nil
}
