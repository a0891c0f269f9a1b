package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestRenderer(t *testing.T) {
	render, err := NewRenderer(40)
	require.NoError(t, err)

	out, err := render("# Gallery\n\nPut the headset on.")
	require.NoError(t, err)
	assert.Contains(t, out, "Gallery")
	assert.Contains(t, out, "headset")
}
