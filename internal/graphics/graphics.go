package graphics

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"

	"render-bench/internal/bench"
	"render-bench/internal/debug"
	"render-bench/internal/primitives"
	"render-bench/internal/scene"
)

// Projection and camera used by every benchmark window.
const (
	FovY      = 45
	NearPlane = 0.1
	FarPlane  = 50
	CameraZ   = 5
)

// Options configures the window. TargetFPS 0 leaves the frame rate uncapped,
// which is what the benchmarks want.
type Options struct {
	Width     int
	Height    int
	Title     string
	HUD       bool
	TargetFPS int
}

// Window is the raylib context the benchmarks render into. It satisfies
// bench.Renderer; all methods must be called from the goroutine that opened it.
type Window struct {
	camera     rl.Camera3D
	projection rl.Matrix
	registry   *primitives.Registry
	hud        *debug.HUD
}

var _ bench.Renderer = (*Window)(nil)

// Window lifecycle calls, swapped out in tests that run without a display.
var (
	initWindow  = rl.InitWindow
	windowReady = rl.IsWindowReady
	closeWindow = rl.CloseWindow
)

// Open creates the window and GL context. Close must be called to release it.
func Open(opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.Errorf("graphics: window size %dx%d must be positive", opts.Width, opts.Height)
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	initWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !windowReady() {
		// release whatever the platform layer managed to set up
		closeWindow()
		return nil, errors.Errorf("graphics: could not create a %dx%d window", opts.Width, opts.Height)
	}
	rl.SetTargetFPS(int32(opts.TargetFPS))
	rl.DisableBackfaceCulling()

	aspect := float32(opts.Width) / float32(opts.Height)
	return &Window{
		camera: rl.Camera3D{
			Position:   rl.NewVector3(0, 0, CameraZ),
			Target:     rl.NewVector3(0, 0, 0),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       FovY,
			Projection: rl.CameraPerspective,
		},
		projection: rl.MatrixPerspective(FovY*rl.Deg2rad, aspect, NearPlane, FarPlane),
		registry:   primitives.NewRegistry(),
		hud:        debug.New(opts.HUD),
	}, nil
}

// Configure selects lights and uploads the texture the variant needs.
func (w *Window) Configure(v bench.Variant, count int) error {
	viewPos := [3]float32{0, 0, CameraZ}
	if v.Kind == bench.KindLighting {
		w.registry.SetLights(v.Light.Lights(), viewPos)
	} else {
		w.registry.SetLights(nil, viewPos)
	}
	if v.Kind == bench.KindTexture {
		if err := w.registry.EnsureTexture(v.Texture); err != nil {
			return err
		}
	}
	w.hud.SetLabel(fmt.Sprintf("%s  %d triangles", v, count))
	return nil
}

// ShouldQuit reports a close request (window button or ESC).
func (w *Window) ShouldQuit() bool {
	return rl.WindowShouldClose()
}

// Render clears the frame, draws every primitive and presents.
func (w *Window) Render(prims []scene.Primitive) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.BeginMode3D(w.camera)
	// BeginMode3D uses raylib's default clip planes; replace them with ours.
	rl.SetMatrixProjection(w.projection)
	w.registry.Draw(prims)
	rl.EndMode3D()

	w.hud.Draw()
	rl.EndDrawing()
}

// Close releases GPU resources and the window.
func (w *Window) Close() {
	w.registry.Unload()
	closeWindow()
}

// DemoResult is what the quick demo measured.
type DemoResult struct {
	Frames  int
	Elapsed time.Duration
}

// MeanFPS is frames over wall time.
func (d DemoResult) MeanFPS() float64 {
	if d.Elapsed <= 0 {
		return 0
	}
	return float64(d.Frames) / d.Elapsed.Seconds()
}

// DemoRotationStep is how far the demo triangle turns each frame, in degrees.
const DemoRotationStep = 2

// Demo opens a window and spins the colour triangle for d (default 5s) at up to
// 60 FPS. It is a smoke test of the graphics stack, not a benchmark.
func Demo(opts Options, d time.Duration) (DemoResult, error) {
	if d <= 0 {
		d = 5 * time.Second
	}
	if opts.TargetFPS == 0 {
		opts.TargetFPS = 60
	}
	w, err := Open(opts)
	if err != nil {
		return DemoResult{}, err
	}
	defer w.Close()

	var (
		res   DemoResult
		angle float32
	)
	start := time.Now()
	for time.Since(start) < d && !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.BeginMode3D(w.camera)
		rl.SetMatrixProjection(w.projection)
		primitives.DrawDemo(angle)
		rl.EndMode3D()
		w.hud.Draw()
		rl.EndDrawing()

		angle += DemoRotationStep
		res.Frames++
	}
	res.Elapsed = time.Since(start)
	return res, nil
}
