package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"reconstruct-editor/internal/ui"
)

const (
	fontSize   = 18
	lineHeight = 24
	rowGap     = 6
	margin     = 10
)

// texture is the GPU copy of an image node, keyed by the image's source reference.
type texture struct {
	src string
	tex rl.Texture2D
}

// Overlay lays out and draws a ui.Node tree in screen space and routes mouse clicks to its
// buttons and selects. Layout is recomputed every frame because panel actions change labels
// and visibility from other goroutines.
type Overlay struct {
	tk       *ui.Toolkit
	root     *ui.Node
	buttons  map[*ui.Node]*ui.Button
	selects  map[*ui.Node]*ui.Select
	textures map[*ui.Node]*texture
	images   map[*ui.Node]*ui.Image
	banner   *Banner
}

// NewOverlay draws root at the top-left corner. banner may be nil.
func NewOverlay(tk *ui.Toolkit, root *ui.Node, banner *Banner) *Overlay {
	return &Overlay{
		tk:       tk,
		root:     root,
		buttons:  make(map[*ui.Node]*ui.Button),
		selects:  make(map[*ui.Node]*ui.Select),
		textures: make(map[*ui.Node]*texture),
		images:   make(map[*ui.Node]*ui.Image),
		banner:   banner,
	}
}

func (o *Overlay) AddButtons(bs ...*ui.Button) {
	for _, b := range bs {
		o.buttons[b.Node] = b
	}
}

func (o *Overlay) AddSelects(ss ...*ui.Select) {
	for _, s := range ss {
		o.selects[s.Node] = s
	}
}

func (o *Overlay) AddImages(ims ...*ui.Image) {
	for _, im := range ims {
		o.images[im.Node] = im
	}
}

// Update handles a left click: the banner swallows it while shown, otherwise the clicked
// button fires or the clicked select advances to its next option.
func (o *Overlay) Update() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	if o.banner != nil && o.banner.Dismiss() {
		return
	}
	m := rl.GetMousePosition()
	o.root.Walk(func(n *ui.Node) {
		if n.Hidden() || !contains(n.Bounds(), m.X, m.Y) {
			return
		}
		if b, ok := o.buttons[n]; ok {
			b.Click()
		}
		if s, ok := o.selects[n]; ok {
			next(s)
		}
	})
}

func next(s *ui.Select) {
	opts := s.Options()
	for i, opt := range opts {
		if opt.Value == s.Value() {
			s.SetValue(opts[(i+1)%len(opts)].Value)
			return
		}
	}
}

func contains(r ui.Rect, x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Draw lays out the tree and draws it, then the banner on top.
func (o *Overlay) Draw() {
	if !o.root.Hidden() {
		width := o.tk.Style(o.root).Width
		if width <= 0 {
			width = 320
		}
		o.layout(o.root, margin, margin, float32(width))
		o.draw(o.root)
	}
	if o.banner != nil {
		o.banner.Draw()
	}
}

// layout sets bounds for n and its children and returns n's height.
func (o *Overlay) layout(n *ui.Node, x, y, width float32) float32 {
	if n.Hidden() {
		n.SetBounds(ui.Rect{})
		return 0
	}
	style := o.tk.Style(n)
	pad := float32(style.Padding)
	children := n.Children()
	var h float32
	switch {
	case n.Type == "row":
		if len(children) > 0 {
			w := (width - rowGap*float32(len(children)-1)) / float32(len(children))
			for i, c := range children {
				if ch := o.layout(c, x+float32(i)*(w+rowGap), y, w); ch > h {
					h = ch
				}
			}
		}
	case len(children) > 0:
		cy := y + pad
		for _, c := range children {
			if ch := o.layout(c, x+pad, cy, width-2*pad); ch > 0 {
				cy += ch + rowGap
			}
		}
		h = cy - y + pad - rowGap
	case n.Type == "image":
		h = o.imageHeight(n, style, width)
	default:
		h = float32(style.Height)
		if h <= 0 {
			h = lineHeight
		}
	}
	h += float32(style.MarginTop)
	n.SetBounds(ui.Rect{X: x, Y: y + float32(style.MarginTop), Width: width, Height: h - float32(style.MarginTop)})
	return h
}

func (o *Overlay) imageHeight(n *ui.Node, style ui.ComputedStyle, width float32) float32 {
	im, ok := o.images[n]
	if !ok || im.Image() == nil {
		return 0
	}
	b := im.Image().Bounds()
	h := float32(b.Dy())
	if b.Dx() > 0 && float32(b.Dx()) > width {
		h = h * width / float32(b.Dx())
	}
	if style.Height > 0 && h > float32(style.Height) {
		h = float32(style.Height)
	}
	return h
}

func (o *Overlay) draw(n *ui.Node) {
	if n.Hidden() {
		return
	}
	style := o.tk.Style(n)
	r := n.Bounds()
	x, y, w, h := int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)
	if style.Background.A > 0 {
		rl.DrawRectangle(x, y, w, h, fade(style.Background, style.Opacity))
	}
	if style.HasBorder && w > 0 && h > 0 {
		rl.DrawRectangleLines(x, y, w, h, fade(style.Border, style.Opacity))
	}
	if n.Type == "image" {
		o.drawImage(n, r)
	}
	if text := n.Text(); text != "" {
		rl.DrawText(text, x+style.Padding, y+(h-fontSize)/2, fontSize, fade(style.Color, style.Opacity))
	}
	for _, c := range n.Children() {
		o.draw(c)
	}
}

func (o *Overlay) drawImage(n *ui.Node, r ui.Rect) {
	im, ok := o.images[n]
	if !ok || im.Image() == nil {
		return
	}
	t := o.textures[n]
	if src := im.Src(); t == nil || t.src != src {
		if t != nil {
			rl.UnloadTexture(t.tex)
		}
		t = &texture{src: src, tex: rl.LoadTextureFromImage(rl.NewImageFromImage(im.Image()))}
		o.textures[n] = t
	}
	src := rl.NewRectangle(0, 0, float32(t.tex.Width), float32(t.tex.Height))
	scale := r.Height / float32(t.tex.Height)
	dst := rl.NewRectangle(r.X, r.Y, float32(t.tex.Width)*scale, r.Height)
	rl.DrawTexturePro(t.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Unload frees GPU textures. Call before the window closes.
func (o *Overlay) Unload() {
	for n, t := range o.textures {
		rl.UnloadTexture(t.tex)
		delete(o.textures, n)
	}
}

func fade(c color.RGBA, opacity float32) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, uint8(float32(c.A)*opacity))
}
