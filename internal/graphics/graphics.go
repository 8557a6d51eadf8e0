package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// maxFrameTime caps the simulation step after a stall (window drag, breakpoint) so the body does
// not tunnel through walls.
const maxFrameTime = 0.1

// Window describes the window Run opens.
type Window struct {
	Width, Height int
	Title         string
	TargetFPS     int
	Fullscreen    bool
}

// Run opens the window and runs the main loop. Each frame it calls update with the frame time in
// seconds, then clears the screen and calls draw. Escape is left to the caller (it closes panels);
// quit via the window button.
func Run(w Window, update func(dt float32), draw func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(int32(w.TargetFPS))
	}

	for !rl.WindowShouldClose() {
		update(min(rl.GetFrameTime(), maxFrameTime))

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(20, 20, 24, 255))
		draw()
		rl.EndDrawing()
	}
}
