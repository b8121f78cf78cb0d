package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window. Zero Width/Height fall back to 1000x1000.
type Options struct {
	Title  string
	Width  int32
	Height int32
}

// targetFPS drives frame pacing; one full simulation step runs per frame.
const targetFPS = 60

// Run opens the window and drives the main loop. Each frame it calls update
// (input and simulation stepping), then clears the screen and calls draw.
// This keeps the graphics layer separate from simulation and HUD content.
// Close via the window button or ESC.
func Run(opts Options, update, draw func()) {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 1000
	}
	if h <= 0 {
		h = 1000
	}
	rl.InitWindow(w, h, opts.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(targetFPS)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
