package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVerbs = `{
	"verbs": {
		"Stop": ["Process"],
		"Get": ["Process", "ChildItem"]
	}
}`

const testSchemas = `{
	"cmdlets": {
		"Get-Process": {
			"description": "Gets processes.",
			"category": "processes",
			"parameters": {
				"Name": {"type": "String[]", "placeholder": "chrome"},
				"Id": {"type": "Int32[]"},
				"Module": {"type": "SwitchParameter"}
			}
		},
		"Stop-Process": {
			"parameters": {
				"Force": {"type": "System.Management.Automation.SwitchParameter"},
				"Name": {}
			}
		}
	}
}`

func mustParse(t *testing.T, verbs, schemas string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(verbs), FormatJSON, []byte(schemas), FormatJSON)
	require.NoError(t, err)
	return c
}

func TestParseKeepsDeclarationOrder(t *testing.T) {
	c := mustParse(t, testVerbs, testSchemas)

	cmdlet, ok := c.Cmdlet("Get-Process")
	require.True(t, ok)

	var names []string
	for _, p := range cmdlet.Parameters {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"Name", "Id", "Module"}, names); diff != "" {
		t.Errorf("parameter order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Gets processes.", cmdlet.Description)
	assert.Equal(t, "processes", cmdlet.Category)
	assert.Equal(t, "chrome", cmdlet.Parameters[0].Placeholder)
}

func TestVerbsAndNounsAreSorted(t *testing.T) {
	c := mustParse(t, testVerbs, testSchemas)

	assert.Equal(t, []string{"Get", "Stop"}, c.Verbs())
	assert.Equal(t, []string{"ChildItem", "Process"}, c.Nouns("Get"))
	assert.Empty(t, c.Nouns("Remove"))
	assert.True(t, c.HasVerb("Stop"))
	assert.False(t, c.HasVerb("stop"))
	assert.True(t, c.HasNoun("Get", "ChildItem"))
	assert.False(t, c.HasNoun("Stop", "ChildItem"))
}

func TestSwitchTypes(t *testing.T) {
	c := mustParse(t, testVerbs, testSchemas)

	stop, ok := c.Cmdlet("Stop-Process")
	require.True(t, ok)
	force, ok := stop.Parameter("Force")
	require.True(t, ok)
	assert.True(t, force.IsSwitch())

	get, _ := c.Cmdlet("Get-Process")
	module, _ := get.Parameter("Module")
	name, _ := get.Parameter("Name")
	assert.True(t, module.IsSwitch())
	assert.False(t, name.IsSwitch())
	assert.True(t, IsSwitchType("switchparameter"))
}

func TestMissingTypeBecomesStringWithWarning(t *testing.T) {
	c := mustParse(t, testVerbs, testSchemas)

	stop, _ := c.Cmdlet("Stop-Process")
	name, ok := stop.Parameter("Name")
	require.True(t, ok)
	assert.Equal(t, TypeString, name.Type)
	assert.False(t, name.IsSwitch())
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "Stop-Process -Name declares no type")
}

func TestCmdletWithoutSchemaHasNoParameters(t *testing.T) {
	c := mustParse(t, testVerbs, testSchemas)

	cmdlet, ok := c.Cmdlet("Get-ChildItem")
	require.True(t, ok)
	assert.Empty(t, cmdlet.Parameters)
	assert.Equal(t, 3, c.Len())
}

func TestResolveCmdletIgnoresCase(t *testing.T) {
	c := mustParse(t, testVerbs, testSchemas)

	cmdlet, ok := c.ResolveCmdlet("get-process")
	require.True(t, ok)
	assert.Equal(t, "Get-Process", cmdlet.Name())

	p, ok := cmdlet.LookupParameter("name")
	require.True(t, ok)
	assert.Equal(t, "Name", p.Name)

	_, ok = c.ResolveCmdlet("Get-Nothing")
	assert.False(t, ok)
}

func TestOrphanSchemaIsWarned(t *testing.T) {
	schemas := `{"cmdlets": {"Remove-Item": {"parameters": {"Path": {"type": "String"}}}}}`
	c := mustParse(t, `{"verbs": {"Get": ["Process"]}}`, schemas)

	_, ok := c.Cmdlet("Remove-Item")
	assert.False(t, ok)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "Remove-Item")
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		verbs   string
		schemas string
		problem string
	}{
		{
			name:    "missing verbs object",
			verbs:   `{}`,
			schemas: `{"cmdlets": {}}`,
			problem: `missing "verbs" object`,
		},
		{
			name:    "missing cmdlets object",
			verbs:   `{"verbs": {"Get": ["Process"]}}`,
			schemas: `{}`,
			problem: `missing "cmdlets" object`,
		},
		{
			name:    "duplicate noun",
			verbs:   `{"verbs": {"Get": ["Process", "Process"]}}`,
			schemas: `{"cmdlets": {}}`,
			problem: `duplicate noun "Process"`,
		},
		{
			name:    "noun with space",
			verbs:   `{"verbs": {"Get": ["Child Item"]}}`,
			schemas: `{"cmdlets": {}}`,
			problem: `invalid noun "Child Item"`,
		},
		{
			name:    "hyphenated verb",
			verbs:   `{"verbs": {"Get-Thing": ["Process"]}}`,
			schemas: `{"cmdlets": {}}`,
			problem: `invalid verb "Get-Thing"`,
		},
		{
			name:    "cmdlet key without hyphen",
			verbs:   `{"verbs": {"Get": ["Process"]}}`,
			schemas: `{"cmdlets": {"GetProcess": {}}}`,
			problem: `"GetProcess" is not shaped Verb-Noun`,
		},
		{
			name:    "empty parameter name",
			verbs:   `{"verbs": {"Get": ["Process"]}}`,
			schemas: `{"cmdlets": {"Get-Process": {"parameters": {"": {"type": "String"}}}}}`,
			problem: `invalid parameter name ""`,
		},
		{
			name:    "parameters is a list",
			verbs:   `{"verbs": {"Get": ["Process"]}}`,
			schemas: `{"cmdlets": {"Get-Process": {"parameters": ["Name"]}}}`,
			problem: `expected an object`,
		},
		{
			name:    "duplicate cmdlet key",
			verbs:   `{"verbs": {"Get": ["Process"]}}`,
			schemas: `{"cmdlets": {"Get-Process": {}, "Get-Process": {}}}`,
			problem: `duplicate key "Get-Process"`,
		},
		{
			name:    "not json",
			verbs:   `verbs: [`,
			schemas: `{"cmdlets": {}}`,
			problem: `decode verb index`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.verbs), FormatJSON, []byte(tt.schemas), FormatJSON)
			require.Error(t, err)
			assert.Nil(t, c)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Contains(t, loadErr.Error(), tt.problem)
		})
	}
}

func TestParseYAMLDocuments(t *testing.T) {
	verbs := `
verbs:
  Get:
    - Process
`
	schemas := `
cmdlets:
  Get-Process:
    description: Gets processes.
    parameters:
      Name:
        type: String[]
      IncludeUserName:
        type: SwitchParameter
      Id:
        type: Int32[]
`
	c, err := Parse([]byte(verbs), FormatYAML, []byte(schemas), FormatYAML)
	require.NoError(t, err)

	cmdlet, ok := c.Cmdlet("Get-Process")
	require.True(t, ok)
	require.Len(t, cmdlet.Parameters, 3)
	assert.Equal(t, "Name", cmdlet.Parameters[0].Name)
	assert.Equal(t, "IncludeUserName", cmdlet.Parameters[1].Name)
	assert.True(t, cmdlet.Parameters[1].IsSwitch())
	assert.Equal(t, "Id", cmdlet.Parameters[2].Name)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("data/verbs.json"))
	assert.Equal(t, FormatYAML, FormatFor("catalog/verbs.YAML"))
	assert.Equal(t, FormatYAML, FormatFor("https://example.com/p.yml?rev=2"))
	assert.Equal(t, FormatJSON, FormatFor("https://example.com/params"))
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Empty(t, c.Warnings)

	stop, ok := c.Cmdlet("Stop-Process")
	require.True(t, ok)
	force, ok := stop.Parameter("Force")
	require.True(t, ok)
	assert.True(t, force.IsSwitch())

	location, ok := c.Cmdlet("Get-Location")
	require.True(t, ok)
	assert.Empty(t, location.Parameters)
}
