package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guerrilla-Interactive/psbuilder/app/builder"
	"github.com/Guerrilla-Interactive/psbuilder/app/catalog"
)

func TestExamplesRoundTripThroughDefaultCatalog(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	for _, ex := range All() {
		t.Run(ex.ID, func(t *testing.T) {
			p, err := ex.Load(c)
			require.NoError(t, err)

			out, ok := builder.RenderPipeline(p, builder.EmptyOmit)
			assert.True(t, ok)
			assert.Equal(t, ex.Command, out)
		})
	}
}

func TestFind(t *testing.T) {
	ex, ok := Find("SYSTEM-MGMT")
	require.True(t, ok)
	assert.Equal(t, "System Management", ex.Title)

	_, ok = Find("nope")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	list := All()
	require.Len(t, list, 3)
	list[0].Command = "changed"
	assert.NotEqual(t, "changed", All()[0].Command)
}

func TestLoadReportsUnknownCmdlet(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	_, err = Example{ID: "bad", Command: "Get-Frob"}.Load(c)
	assert.ErrorIs(t, err, builder.ErrUnknownCmdlet)
}
