package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window is the editor window configuration.
type Window struct {
	Title  string
	Width  int32
	Height int32
	// OnClose runs after the loop ends, while the GL context still exists (e.g. to unload textures).
	OnClose func()
}

// Run opens a resizable window and runs the main loop until it is closed. Each frame it calls
// update (input), then clears the screen and calls draw. ESC belongs to the terminal, so it does
// not close the window.
func Run(w Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(32, 32, 36, 255))
		draw()
		rl.EndDrawing()
	}
	if w.OnClose != nil {
		w.OnClose()
	}
}
