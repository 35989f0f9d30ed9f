package render

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"reconstruct-editor/internal/logger"
)

var (
	bannerBg   = rl.NewColor(30, 30, 30, 235)
	bannerEdge = rl.NewColor(200, 80, 80, 255)
	hintEdge   = rl.NewColor(90, 140, 220, 255)
)

// Banner is the window's alert surface. Alert may be called from any goroutine; the message
// stays on screen, blocking sidebar clicks, until the user clicks once.
type Banner struct {
	mu    sync.Mutex
	queue []string
	hint  string
	log   *logger.Logger
}

func NewBanner(log *logger.Logger) *Banner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Banner{log: log}
}

// Alert queues msg. Alerts are shown one at a time in arrival order.
func (b *Banner) Alert(msg string) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()
	b.log.Warn("alert: " + msg)
}

// Hint shows a non-blocking message (e.g. the drop prompt); "" clears it.
func (b *Banner) Hint(msg string) {
	b.mu.Lock()
	b.hint = msg
	b.mu.Unlock()
}

// Dismiss removes the current alert and reports whether there was one.
func (b *Banner) Dismiss() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return false
	}
	b.queue = b.queue[1:]
	return true
}

func (b *Banner) Draw() {
	b.mu.Lock()
	var msg string
	if len(b.queue) > 0 {
		msg = b.queue[0]
	}
	hint := b.hint
	b.mu.Unlock()

	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if hint != "" {
		w := rl.MeasureText(hint, fontSize) + 2*margin
		x := (sw - w) / 2
		rl.DrawRectangle(x, margin, w, lineHeight+margin, bannerBg)
		rl.DrawRectangleLines(x, margin, w, lineHeight+margin, hintEdge)
		rl.DrawText(hint, x+margin, margin+margin/2+3, fontSize, rl.White)
	}
	if msg == "" {
		return
	}
	const footer = "click to dismiss"
	w := rl.MeasureText(msg, fontSize)
	if fw := rl.MeasureText(footer, fontSize); fw > w {
		w = fw
	}
	w += 4 * margin
	h := int32(2*lineHeight + 3*margin)
	x, y := (sw-w)/2, (sh-h)/2
	rl.DrawRectangle(x, y, w, h, bannerBg)
	rl.DrawRectangleLines(x, y, w, h, bannerEdge)
	rl.DrawText(msg, x+2*margin, y+margin, fontSize, rl.White)
	rl.DrawText(footer, x+2*margin, y+2*margin+lineHeight, fontSize, rl.Gray)
}

// DropPicker stands in for a native file dialog: Open shows a prompt, and files dropped onto
// the window afterwards are handed to the OnFile callback by Poll.
type DropPicker struct {
	Banner *Banner
	OnFile func(path string)
}

func (p *DropPicker) Open(accept string) {
	p.Banner.Hint("Drop an image (" + accept + ") onto the window")
}

// Poll forwards dropped files. Files are accepted even without a prior Open. Main thread only.
func (p *DropPicker) Poll() {
	if !rl.IsFileDropped() {
		return
	}
	files := rl.LoadDroppedFiles()
	rl.UnloadDroppedFiles()
	p.Banner.Hint("")
	if len(files) == 0 || p.OnFile == nil {
		return
	}
	// single-file picker: the last dropped file wins
	p.OnFile(files[len(files)-1])
}
