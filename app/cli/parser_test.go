package cli

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		expected []Invocation
	}{
		{
			name:     "Bare Cmdlet",
			line:     "Get-Process",
			expected: []Invocation{{Command: "Get-Process"}},
		},
		{
			name: "Named Value",
			line: "Get-Process -Name chrome",
			expected: []Invocation{{
				Command: "Get-Process",
				Named:   []NamedArg{{Name: "Name", Value: "chrome", HasValue: true}},
			}},
		},
		{
			name: "Switch Then Value",
			line: "Get-ChildItem -Recurse -Path C:\\Users",
			expected: []Invocation{{
				Command: "Get-ChildItem",
				Named: []NamedArg{
					{Name: "Recurse"},
					{Name: "Path", Value: "C:\\Users", HasValue: true},
				},
			}},
		},
		{
			name: "Quoted Value Keeps Quotes",
			line: "Out-File -FilePath 'my file.txt'",
			expected: []Invocation{{
				Command: "Out-File",
				Named:   []NamedArg{{Name: "FilePath", Value: "'my file.txt'", HasValue: true}},
			}},
		},
		{
			name: "Double Quotes With Backtick Escape",
			line: "Write-Output -InputObject \"say `\"hi`\"\"",
			expected: []Invocation{{
				Command: "Write-Output",
				Named:   []NamedArg{{Name: "InputObject", Value: "\"say `\"hi`\"\"", HasValue: true}},
			}},
		},
		{
			name: "Doubled Single Quote",
			line: "Set-Content -Value 'it''s'",
			expected: []Invocation{{
				Command: "Set-Content",
				Named:   []NamedArg{{Name: "Value", Value: "'it''s'", HasValue: true}},
			}},
		},
		{
			name: "Colon Binding",
			line: "Stop-Process -Force:true -Id:42",
			expected: []Invocation{{
				Command: "Stop-Process",
				Named: []NamedArg{
					{Name: "Force", Value: "true", HasValue: true},
					{Name: "Id", Value: "42", HasValue: true},
				},
			}},
		},
		{
			name: "Negative Number Is A Value",
			line: "Select-Object -Last -5",
			expected: []Invocation{{
				Command: "Select-Object",
				Named:   []NamedArg{{Name: "Last", Value: "-5", HasValue: true}},
			}},
		},
		{
			name: "Quoted Hyphen Is A Value",
			line: "Where-Object -Value '-Name'",
			expected: []Invocation{{
				Command: "Where-Object",
				Named:   []NamedArg{{Name: "Value", Value: "'-Name'", HasValue: true}},
			}},
		},
		{
			name: "Positional Arguments",
			line: "Get-Item foo bar",
			expected: []Invocation{{
				Command:    "Get-Item",
				Positional: []string{"foo", "bar"},
			}},
		},
		{
			name: "Pipeline",
			line: "Get-Process -Name 'chrome' | Stop-Process -Force",
			expected: []Invocation{
				{
					Command: "Get-Process",
					Named:   []NamedArg{{Name: "Name", Value: "'chrome'", HasValue: true}},
				},
				{
					Command: "Stop-Process",
					Named:   []NamedArg{{Name: "Force"}},
				},
			},
		},
		{
			name: "Pipe Without Spaces",
			line: "Get-Service|Sort-Object",
			expected: []Invocation{
				{Command: "Get-Service"},
				{Command: "Sort-Object"},
			},
		},
		{
			name: "Pipe Inside Quotes",
			line: "Where-Object -Value 'a | b'",
			expected: []Invocation{{
				Command: "Where-Object",
				Named:   []NamedArg{{Name: "Value", Value: "'a | b'", HasValue: true}},
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseCommandLine(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.line, parsed.Raw)
			if diff := cmp.Diff(tc.expected, parsed.Invocations); diff != "" {
				t.Errorf("invocations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCommandLineErrors(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		err    error
		offset int
	}{
		{name: "Empty", line: "", err: ErrEmptyCommand, offset: 0},
		{name: "Whitespace", line: "   ", err: ErrEmptyCommand, offset: 0},
		{name: "Leading Pipe", line: "| Sort-Object", err: ErrEmptySegment, offset: 0},
		{name: "Trailing Pipe", line: "Get-Process |", err: ErrEmptySegment, offset: 13},
		{name: "Double Pipe", line: "Get-Process || Sort-Object", err: ErrEmptySegment, offset: 13},
		{name: "Unterminated Single", line: "Get-Item -Path 'abc", err: ErrUnterminatedQuote, offset: 15},
		{name: "Unterminated Double", line: "Get-Item -Path \"abc`\"", err: ErrUnterminatedQuote, offset: 15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCommandLine(tc.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tc.offset, syntaxErr.Offset)
		})
	}
}

func TestFormatError(t *testing.T) {
	err := NewArgumentErrorWithUsage("missing verb", "psb nouns <verb>", "run 'psb verbs' to list verbs")
	out := FormatError(err, false)

	assert.Contains(t, out, "Error [Argument Error]: missing verb")
	assert.Contains(t, out, "Usage: psb nouns <verb>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• run 'psb verbs' to list verbs")

	plain := FormatError(errors.New("boom"), false)
	assert.Equal(t, "Error [Runtime Error]: boom\n", plain)

	assert.Empty(t, FormatError(nil, false))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("no such file")
	wrapped := WrapWithMessage(cause, Catalog, "load catalog")

	assert.Equal(t, "load catalog: no such file", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, Wrap(nil, Runtime))
}
