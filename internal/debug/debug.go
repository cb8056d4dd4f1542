package debug

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations
	// inside the measured loop.
	updateInterval = 30
)

// HUD draws the configuration under test, the frame rate and heap usage in the
// top-left corner. Disabled HUDs draw nothing.
type HUD struct {
	Enabled bool

	label      string
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a HUD; enabled controls whether Draw does anything.
func New(enabled bool) *HUD {
	return &HUD{Enabled: enabled}
}

// SetLabel sets the first HUD line, e.g. "light=spot  500 triangles", and forces a refresh.
func (h *HUD) SetLabel(label string) {
	h.label = label
	h.lines = nil
}

// Draw renders the overlay. Call after EndMode3D and before EndDrawing.
func (h *HUD) Draw() {
	if !h.Enabled {
		return
	}
	h.frameCount++
	if h.lines == nil || h.frameCount%updateInterval == 0 {
		runtime.ReadMemStats(&h.memStats)
		h.lines = h.format(rl.GetFPS(), h.memStats.HeapAlloc)
	}
	y := int32(padding)
	for _, text := range h.lines {
		rl.DrawText(text, padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}

func (h *HUD) format(fps int32, heap uint64) []string {
	lines := make([]string, 0, 3)
	if h.label != "" {
		lines = append(lines, h.label)
	}
	return append(lines,
		fmt.Sprintf("FPS: %d", fps),
		"Heap: "+humanize.IBytes(heap),
	)
}
