package qrsvg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Deterministic(t *testing.T) {
	first, err := Render("https://example.com", DefaultSize)
	require.NoError(t, err)
	second, err := Render("https://example.com", DefaultSize)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_HonorsSize(t *testing.T) {
	svg, err := Render("https://example.com", 512)
	require.NoError(t, err)

	assert.Contains(t, svg, `width="512"`)
	assert.Contains(t, svg, `height="512"`)
}

func TestRender_DefaultsInvalidSize(t *testing.T) {
	svg, err := Render("https://example.com", 0)
	require.NoError(t, err)

	assert.Contains(t, svg, fmt.Sprintf(`width="%d"`, DefaultSize))
}

func TestRender_WellFormedDocument(t *testing.T) {
	svg, err := Render("https://example.com/some/long/path?with=query", DefaultSize)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `<path fill="#000000"`)
	assert.Contains(t, svg, `shape-rendering="crispEdges"`)
}

func TestRender_DifferentContentDiffers(t *testing.T) {
	a, err := Render("https://example.com/a", DefaultSize)
	require.NoError(t, err)
	b, err := Render("https://example.com/b", DefaultSize)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
