package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse failures. Wrapped in a *SyntaxError carrying the byte offset.
var (
	ErrEmptyCommand      = errors.New("empty command line")
	ErrEmptySegment      = errors.New("empty pipeline segment")
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// UnbalancedQuoteHint explains why a rendered command may not parse back.
// Values are quoted without escaping, so a value holding a quote (it's)
// produces a line with an unterminated quote.
const UnbalancedQuoteHint = "a value contains an unbalanced quote; such commands can be copied but not loaded back into the builder"

// SyntaxError points at the offset in the line where parsing failed.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// NamedArg is a "-Name [value]" pair as typed. Quoted values keep their quotes.
type NamedArg struct {
	Name     string // without the leading hyphen
	Value    string
	HasValue bool
}

// Invocation is one pipeline segment: a command and its arguments.
type Invocation struct {
	Command    string
	Named      []NamedArg
	Positional []string
}

// CommandLine is a parsed pipeline.
type CommandLine struct {
	Raw         string
	Invocations []Invocation
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenPipe
)

type token struct {
	kind   tokenKind
	text   string
	quoted bool // started with a quote character
	offset int
}

// ParseCommandLine splits a PowerShell-style command line into invocations.
//
// The parser knows nothing about parameter types: a word following "-Name"
// is taken as its value unless it is itself a parameter or a pipe. Callers
// holding a schema decide whether that was right (see builder.FromCommandLine).
func ParseCommandLine(line string) (CommandLine, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return CommandLine{}, err
	}
	if len(tokens) == 0 {
		return CommandLine{}, &SyntaxError{Offset: 0, Err: ErrEmptyCommand}
	}

	parsed := CommandLine{Raw: line}
	var segment []token
	flush := func(offset int) error {
		if len(segment) == 0 {
			return &SyntaxError{Offset: offset, Err: ErrEmptySegment}
		}
		parsed.Invocations = append(parsed.Invocations, parseInvocation(segment))
		segment = nil
		return nil
	}

	for _, tok := range tokens {
		if tok.kind == tokenPipe {
			if err := flush(tok.offset); err != nil {
				return CommandLine{}, err
			}
			continue
		}
		segment = append(segment, tok)
	}
	if err := flush(len(line)); err != nil {
		return CommandLine{}, err
	}
	return parsed, nil
}

func parseInvocation(tokens []token) Invocation {
	inv := Invocation{Command: tokens[0].text}
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		if !isParameterToken(tok) {
			inv.Positional = append(inv.Positional, tok.text)
			continue
		}
		name := strings.TrimPrefix(tok.text, "-")
		// -Name:value binds without a space.
		if before, after, found := strings.Cut(name, ":"); found {
			inv.Named = append(inv.Named, NamedArg{Name: before, Value: after, HasValue: true})
			continue
		}
		arg := NamedArg{Name: name}
		if i+1 < len(tokens) && !isParameterToken(tokens[i+1]) {
			arg.Value = tokens[i+1].text
			arg.HasValue = true
			i++ // Consume the value
		}
		inv.Named = append(inv.Named, arg)
	}
	return inv
}

// isParameterToken matches unquoted words like -Name. "-5" is a value.
func isParameterToken(tok token) bool {
	if tok.quoted || len(tok.text) < 2 || tok.text[0] != '-' {
		return false
	}
	r := rune(tok.text[1])
	return unicode.IsLetter(r) || r == '_'
}

func tokenize(line string) ([]token, error) {
	var (
		tokens  []token
		current strings.Builder
		start   = -1
		quoted  bool
	)
	emit := func() {
		if start >= 0 {
			tokens = append(tokens, token{kind: tokenWord, text: current.String(), quoted: quoted, offset: start})
		}
		current.Reset()
		start = -1
		quoted = false
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '\'' || ch == '"':
			if start < 0 {
				start = i
				quoted = true
			}
			end, err := scanQuoted(line, i)
			if err != nil {
				return nil, err
			}
			current.WriteString(line[i : end+1])
			i = end
		case ch == '|':
			emit()
			tokens = append(tokens, token{kind: tokenPipe, text: "|", offset: i})
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			emit()
		default:
			if start < 0 {
				start = i
			}
			current.WriteByte(ch)
		}
	}
	emit()
	return tokens, nil
}

// scanQuoted returns the index of the quote closing the one at open.
// Inside single quotes '' is a literal quote; inside double quotes a
// backtick escapes the next character.
func scanQuoted(line string, open int) (int, error) {
	q := line[open]
	for i := open + 1; i < len(line); i++ {
		switch {
		case q == '"' && line[i] == '`':
			i++
		case line[i] == q:
			if q == '\'' && i+1 < len(line) && line[i+1] == '\'' {
				i++
				continue
			}
			return i, nil
		}
	}
	return 0, &SyntaxError{Offset: open, Err: ErrUnterminatedQuote}
}
