package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowKeepsCursorVisible(t *testing.T) {
	testCases := []struct {
		name              string
		n, cursor, height int
		start, end        int
	}{
		{name: "Fits", n: 5, cursor: 4, height: 10, start: 0, end: 5},
		{name: "Top", n: 20, cursor: 1, height: 6, start: 0, end: 6},
		{name: "Middle", n: 20, cursor: 10, height: 6, start: 7, end: 13},
		{name: "Bottom", n: 20, cursor: 19, height: 6, start: 14, end: 20},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := Window(tc.n, tc.cursor, tc.height)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
			assert.True(t, tc.cursor >= start && tc.cursor < end)
		})
	}
}

func TestColumnWidths(t *testing.T) {
	v, n, p := ColumnWidths(0)
	assert.Equal(t, 18, v)
	assert.Equal(t, 18, n)
	assert.Equal(t, 44, p)

	v, n, p = ColumnWidths(120)
	assert.Equal(t, 26, v)
	assert.Equal(t, v, n)
	assert.Equal(t, 120-2*(26+4)-4, p)

	_, _, p = ColumnWidths(60)
	assert.Equal(t, 30, p)
}

func TestWrapAndTruncate(t *testing.T) {
	assert.Equal(t, "Gets the\nprocesses", WrapText("Gets the processes", 9))
	assert.Equal(t, "a\nb", TruncateLines("a\nb\nc", 2))
	assert.Equal(t, "Get-Pr…", Truncate("Get-Process", 7))
	assert.Equal(t, "Get", Truncate("Get", 7))
}
