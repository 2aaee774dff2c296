// Package examples lists the ready-made pipelines offered on the examples
// screen and by "psb examples".
package examples

import (
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
)

// Example is a named pipeline that loads into the builder.
type Example struct {
	ID          string
	Title       string
	Description string
	Command     string
}

var all = []Example{
	{
		ID:          "file-ops",
		Title:       "File Operations",
		Description: "List every file below the current directory as a table.",
		Command:     "Get-ChildItem -Recurse -File | Format-Table -Property Name -AutoSize",
	},
	{
		ID:          "data-process",
		Title:       "Data Processing",
		Description: "Filter rows of a CSV file and keep one column.",
		Command:     "Import-Csv -Path 'data.csv' | Where-Object -Property Name -Value 'Value' -EQ | Select-Object -Property Name",
	},
	{
		ID:          "system-mgmt",
		Title:       "System Management",
		Description: "Force-stop every Chrome process.",
		Command:     "Get-Process -Name 'chrome' | Stop-Process -Force",
	},
}

// All returns the built-in examples in display order.
func All() []Example {
	return append([]Example(nil), all...)
}

// Find returns the example with the given id, ignoring case.
func Find(id string) (Example, bool) {
	for _, ex := range all {
		if strings.EqualFold(ex.ID, id) {
			return ex, true
		}
	}
	return Example{}, false
}

// Load replays the example through the builder against c.
func (e Example) Load(c *catalog.Catalog) (builder.Pipeline, error) {
	p, err := builder.FromCommandLine(c, e.Command)
	if err != nil {
		return builder.Pipeline{}, fmt.Errorf("example %s: %w", e.ID, err)
	}
	return p, nil
}
