package args

import (
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
	"github.com/Guerrilla-Interactive/psbuilder/app/cli"
)

// resolveVerb finds a catalog verb ignoring case.
func resolveVerb(c *catalog.Catalog, verb string) (string, error) {
	for _, v := range c.Verbs() {
		if strings.EqualFold(v, verb) {
			return v, nil
		}
	}
	return "", cli.NewArgumentError(fmt.Sprintf("unknown verb %q", verb),
		"Run 'psb verbs' to list the available verbs")
}

// resolveNoun finds a noun of verb ignoring case.
func resolveNoun(c *catalog.Catalog, verb, noun string) (string, error) {
	for _, n := range c.Nouns(verb) {
		if strings.EqualFold(n, noun) {
			return n, nil
		}
	}
	return "", cli.NewArgumentError(fmt.Sprintf("unknown noun %q for verb %s", noun, verb),
		fmt.Sprintf("Run 'psb nouns %s' to list its nouns", verb))
}

// resolveCmdlet accepts either "Verb-Noun" or a verb and a noun.
func resolveCmdlet(c *catalog.Catalog, words []string) (catalog.Cmdlet, error) {
	if len(words) == 1 {
		if cmdlet, ok := c.ResolveCmdlet(words[0]); ok {
			return cmdlet, nil
		}
		return catalog.Cmdlet{}, cli.NewArgumentError(fmt.Sprintf("unknown cmdlet %q", words[0]),
			"Run 'psb cmdlets' to list the available cmdlets")
	}
	verb, err := resolveVerb(c, words[0])
	if err != nil {
		return catalog.Cmdlet{}, err
	}
	noun, err := resolveNoun(c, verb, words[1])
	if err != nil {
		return catalog.Cmdlet{}, err
	}
	cmdlet, _ := c.Cmdlet(catalog.CmdletName(verb, noun))
	return cmdlet, nil
}
