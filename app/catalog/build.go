package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// LoadError lists every problem that made a catalog unusable.
type LoadError struct {
	Problems []string
}

func (e *LoadError) Error() string {
	switch len(e.Problems) {
	case 0:
		return "invalid catalog"
	case 1:
		return "invalid catalog: " + e.Problems[0]
	default:
		return fmt.Sprintf("invalid catalog: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
	}
}

type problems struct {
	errs     []string
	warnings []string
}

func (p *problems) fail(format string, args ...any) {
	p.errs = append(p.errs, fmt.Sprintf(format, args...))
}

func (p *problems) warn(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

// build validates both raw documents and produces the typed catalog. Either
// the whole catalog is valid or a *LoadError is returned.
func build(verbs verbDocument, schemas schemaDocument) (*Catalog, error) {
	var p problems
	c := &Catalog{
		nouns:     make(map[string][]string),
		cmdlets:   make(map[string]Cmdlet),
		foldIndex: make(map[string]string),
	}

	if verbs.Verbs == nil {
		p.fail(`verb index: missing "verbs" object`)
	} else {
		for _, e := range *verbs.Verbs {
			verb := e.Key
			if !isIdentifier(verb) || strings.Contains(verb, "-") {
				p.fail("verb index: invalid verb %q", verb)
				continue
			}
			if len(e.Value) == 0 {
				p.warn("verb %q lists no nouns", verb)
			}
			seen := make(map[string]bool, len(e.Value))
			nouns := make([]string, 0, len(e.Value))
			for _, noun := range e.Value {
				if !isIdentifier(noun) {
					p.fail("verb index: invalid noun %q under verb %q", noun, verb)
					continue
				}
				if seen[noun] {
					p.fail("verb index: duplicate noun %q under verb %q", noun, verb)
					continue
				}
				seen[noun] = true
				nouns = append(nouns, noun)
			}
			c.verbs = append(c.verbs, verb)
			c.nouns[verb] = nouns
		}
	}

	declared := make(map[string]cmdletDocument)
	if schemas.Cmdlets == nil {
		p.fail(`parameter schema: missing "cmdlets" object`)
	} else {
		for _, e := range *schemas.Cmdlets {
			if _, _, ok := SplitCmdletName(e.Key); !ok {
				p.fail("parameter schema: cmdlet key %q is not shaped Verb-Noun", e.Key)
				continue
			}
			declared[e.Key] = e.Value
		}
	}

	for _, verb := range c.verbs {
		for _, noun := range c.nouns[verb] {
			name := CmdletName(verb, noun)
			cmdlet := Cmdlet{Verb: verb, Noun: noun}
			if doc, ok := declared[name]; ok {
				cmdlet.Description = strings.TrimSpace(doc.Description)
				cmdlet.Category = strings.TrimSpace(doc.Category)
				cmdlet.Parameters = buildParameters(name, doc.Parameters, &p)
				delete(declared, name)
			}
			if prev, dup := c.foldIndex[strings.ToLower(name)]; dup {
				p.warn("cmdlet %q differs from %q only by case", name, prev)
			} else {
				c.foldIndex[strings.ToLower(name)] = name
			}
			c.cmdlets[name] = cmdlet
		}
	}

	if schemas.Cmdlets != nil {
		for _, e := range *schemas.Cmdlets {
			if _, orphan := declared[e.Key]; orphan {
				p.warn("parameter schema for %q has no entry in the verb index and is ignored", e.Key)
			}
		}
	}

	if len(p.errs) > 0 {
		return nil, &LoadError{Problems: p.errs}
	}
	c.Warnings = p.warnings
	return c, nil
}

func buildParameters(cmdlet string, docs ordered[parameterDocument], p *problems) []Parameter {
	params := make([]Parameter, 0, len(docs))
	for _, e := range docs {
		if !isIdentifier(e.Key) {
			p.fail("parameter schema: %s has invalid parameter name %q", cmdlet, e.Key)
			continue
		}
		typ := strings.TrimSpace(e.Value.Type)
		if typ == "" {
			p.warn("%s -%s declares no type; treated as %s", cmdlet, e.Key, TypeString)
			typ = TypeString
		}
		params = append(params, Parameter{
			Name:        e.Key,
			Type:        typ,
			Placeholder: e.Value.Placeholder,
			Description: strings.TrimSpace(e.Value.Description),
		})
	}
	return params
}

// isIdentifier accepts verbs, nouns and parameter names: non-empty, no
// whitespace, no leading hyphen.
func isIdentifier(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' {
			return false
		}
	}
	return true
}
