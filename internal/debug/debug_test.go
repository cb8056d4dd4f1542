package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	h := New(true)
	assert.Equal(t, []string{"FPS: 60", "Heap: 2.0 MiB"}, h.format(60, 2<<20))

	h.SetLabel("light=spot  500 triangles")
	lines := h.format(144, 512)
	assert.Equal(t, "light=spot  500 triangles", lines[0])
	assert.Equal(t, "FPS: 144", lines[1])
	assert.Equal(t, "Heap: 512 B", lines[2])
}

func TestDisabledDrawIsNoop(t *testing.T) {
	h := New(false)
	h.Draw()
	assert.Zero(t, h.frameCount)
	assert.Nil(t, h.lines)
}
