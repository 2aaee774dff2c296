// Package builder holds the selection state machine and the command renderer.
//
// A Selection is a value: every transition returns a new Selection and leaves
// the receiver untouched, so callers can keep the previous state around (undo,
// pipelines, tests) without copying anything themselves.
package builder

import (
	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
)

// Lookup is the read-only part of the catalog the state machine needs.
type Lookup interface {
	HasVerb(verb string) bool
	HasNoun(verb, noun string) bool
	Cmdlet(name string) (catalog.Cmdlet, bool)
}

// Stage is the position of a Selection in the verb -> noun pipeline.
type Stage int

const (
	StageNoVerb Stage = iota
	StageVerbChosen
	StageNounChosen
)

func (s Stage) String() string {
	switch s {
	case StageVerbChosen:
		return "verb chosen"
	case StageNounChosen:
		return "noun chosen"
	default:
		return "no verb"
	}
}

// ParamState is the user's choice for one parameter of the active cmdlet.
type ParamState struct {
	Name     string
	Type     string
	Selected bool
	Value    string
}

// IsSwitch reports whether the parameter renders by presence alone.
func (p ParamState) IsSwitch() bool { return catalog.IsSwitchType(p.Type) }

// Selection is the chosen verb, noun and parameter states.
type Selection struct {
	verb   string
	noun   string
	params []ParamState
}

func (s Selection) Verb() string { return s.verb }
func (s Selection) Noun() string { return s.noun }

// Stage reports how far the selection has progressed.
func (s Selection) Stage() Stage {
	switch {
	case s.verb == "":
		return StageNoVerb
	case s.noun == "":
		return StageVerbChosen
	default:
		return StageNounChosen
	}
}

// Cmdlet returns the resolved "Verb-Noun" name, or "" before a noun is chosen.
func (s Selection) Cmdlet() string {
	if s.Stage() != StageNounChosen {
		return ""
	}
	return catalog.CmdletName(s.verb, s.noun)
}

// Params returns a copy of the parameter states in schema order.
func (s Selection) Params() []ParamState {
	return append([]ParamState(nil), s.params...)
}

// Param returns the state of the named parameter.
func (s Selection) Param(name string) (ParamState, bool) {
	if i := s.index(name); i >= 0 {
		return s.params[i], true
	}
	return ParamState{}, false
}

// SelectedCount returns how many parameters are currently selected.
func (s Selection) SelectedCount() int {
	n := 0
	for _, p := range s.params {
		if p.Selected {
			n++
		}
	}
	return n
}

func (s Selection) index(name string) int {
	for i, p := range s.params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// ChooseVerb selects a verb from the catalog and clears the noun and every
// parameter choice. Unknown verbs leave the selection unchanged and report false.
func (s Selection) ChooseVerb(c Lookup, verb string) (Selection, bool) {
	if c == nil || !c.HasVerb(verb) {
		return s, false
	}
	return Selection{verb: verb}, true
}

// ChooseNoun selects a noun listed under the current verb. The parameter
// states are rebuilt from the cmdlet schema, all unselected and empty.
func (s Selection) ChooseNoun(c Lookup, noun string) (Selection, bool) {
	if c == nil || s.Stage() == StageNoVerb || !c.HasNoun(s.verb, noun) {
		return s, false
	}
	next := Selection{verb: s.verb, noun: noun}
	if cmdlet, ok := c.Cmdlet(catalog.CmdletName(s.verb, noun)); ok {
		next.params = make([]ParamState, 0, len(cmdlet.Parameters))
		for _, p := range cmdlet.Parameters {
			next.params = append(next.params, ParamState{Name: p.Name, Type: p.Type})
		}
	}
	return next, true
}

// ToggleParameter marks a schema parameter selected or not. Unchecking a
// value parameter also clears its value.
func (s Selection) ToggleParameter(name string, checked bool) (Selection, bool) {
	if s.Stage() != StageNounChosen {
		return s, false
	}
	i := s.index(name)
	if i < 0 {
		return s, false
	}
	next := s.clone()
	next.params[i].Selected = checked
	if !checked && !next.params[i].IsSwitch() {
		next.params[i].Value = ""
	}
	return next, true
}

// SetParameterValue stores raw text for a non-switch parameter. The text is
// kept as typed: no trimming, escaping or validation happens here.
func (s Selection) SetParameterValue(name, text string) (Selection, bool) {
	if s.Stage() != StageNounChosen {
		return s, false
	}
	i := s.index(name)
	if i < 0 || s.params[i].IsSwitch() {
		return s, false
	}
	next := s.clone()
	next.params[i].Value = text
	return next, true
}

func (s Selection) clone() Selection {
	s.params = append([]ParamState(nil), s.params...)
	return s
}
