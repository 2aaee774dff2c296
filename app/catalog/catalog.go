package catalog

import (
	"sort"
	"strings"
)

// Declared parameter types that get special treatment.
const (
	TypeString          = "String"
	TypeSwitch          = "SwitchParameter"
	TypeSwitchQualified = "System.Management.Automation.SwitchParameter"
)

// IsSwitchType reports whether a declared type is a switch (presence-only) type.
func IsSwitchType(t string) bool {
	return strings.EqualFold(t, TypeSwitch) || strings.EqualFold(t, TypeSwitchQualified)
}

// Parameter is a single entry of a cmdlet's parameter schema.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsSwitch reports whether the parameter is rendered by presence alone.
func (p Parameter) IsSwitch() bool { return IsSwitchType(p.Type) }

// Cmdlet is a Verb-Noun action with its ordered parameter schema.
type Cmdlet struct {
	Verb        string      `json:"verb"`
	Noun        string      `json:"noun"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Parameters  []Parameter `json:"parameters"`
}

// Name returns the hyphen-joined cmdlet identifier, e.g. "Get-Process".
func (c Cmdlet) Name() string { return CmdletName(c.Verb, c.Noun) }

// Parameter returns the schema entry with exactly the given name.
func (c Cmdlet) Parameter(name string) (Parameter, bool) {
	for _, p := range c.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// LookupParameter is like Parameter but ignores case, the way the shell does.
func (c Cmdlet) LookupParameter(name string) (Parameter, bool) {
	if p, ok := c.Parameter(name); ok {
		return p, true
	}
	for _, p := range c.Parameters {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Parameter{}, false
}

// CmdletName joins a verb and a noun into a cmdlet identifier.
func CmdletName(verb, noun string) string { return verb + "-" + noun }

// SplitCmdletName splits "Verb-Noun" at the first hyphen.
func SplitCmdletName(name string) (verb, noun string, ok bool) {
	verb, noun, ok = strings.Cut(name, "-")
	if !ok || verb == "" || noun == "" {
		return "", "", false
	}
	return verb, noun, true
}

// Catalog is the validated, read-only combination of the verb index and the
// parameter schemas. Build one with New or Loader.Load.
type Catalog struct {
	verbs     []string            // document order
	nouns     map[string][]string // document order per verb
	cmdlets   map[string]Cmdlet
	foldIndex map[string]string // lower-cased name -> canonical name

	// Warnings lists non-fatal oddities found while building the catalog.
	Warnings []string
}

// Verbs returns all verbs sorted alphabetically.
func (c *Catalog) Verbs() []string {
	out := append([]string(nil), c.verbs...)
	sort.Strings(out)
	return out
}

// HasVerb reports whether verb is in the verb index.
func (c *Catalog) HasVerb(verb string) bool {
	_, ok := c.nouns[verb]
	return ok
}

// Nouns returns the nouns listed under verb, sorted alphabetically.
func (c *Catalog) Nouns(verb string) []string {
	out := append([]string(nil), c.nouns[verb]...)
	sort.Strings(out)
	return out
}

// HasNoun reports whether noun is listed under verb.
func (c *Catalog) HasNoun(verb, noun string) bool {
	for _, n := range c.nouns[verb] {
		if n == noun {
			return true
		}
	}
	return false
}

// Cmdlet returns the cmdlet with exactly the given name. Every verb/noun pair
// of the index resolves, with an empty schema when none was declared.
func (c *Catalog) Cmdlet(name string) (Cmdlet, bool) {
	cmdlet, ok := c.cmdlets[name]
	return cmdlet, ok
}

// ResolveCmdlet looks a cmdlet up ignoring case.
func (c *Catalog) ResolveCmdlet(name string) (Cmdlet, bool) {
	if cmdlet, ok := c.cmdlets[name]; ok {
		return cmdlet, true
	}
	canonical, ok := c.foldIndex[strings.ToLower(name)]
	if !ok {
		return Cmdlet{}, false
	}
	return c.cmdlets[canonical], true
}

// Cmdlets returns every reachable cmdlet sorted by name.
func (c *Catalog) Cmdlets() []Cmdlet {
	out := make([]Cmdlet, 0, len(c.cmdlets))
	for _, cmdlet := range c.cmdlets {
		out = append(out, cmdlet)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Len returns the number of reachable cmdlets.
func (c *Catalog) Len() int { return len(c.cmdlets) }
