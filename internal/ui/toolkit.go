package ui

import (
	"image"
	"sync"
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// FilePicker opens the host's native file selection dialog. accept is a MIME pattern such as "image/*".
// The chosen file is delivered back through the panel's SelectFile.
type FilePicker interface {
	Open(accept string)
}

// Toolkit creates widgets styled by one stylesheet.
type Toolkit struct {
	Sheet *Stylesheet
}

// NewToolkit returns a toolkit using sheet, or the default stylesheet when sheet is nil.
func NewToolkit(sheet *Stylesheet) *Toolkit {
	if sheet == nil {
		sheet = DefaultStylesheet()
	}
	return &Toolkit{Sheet: sheet}
}

// Style resolves the computed style of n.
func (tk *Toolkit) Style(n *Node) ComputedStyle {
	return tk.Sheet.Resolve(n)
}

func (tk *Toolkit) Panel(class string) *Node {
	return NewNode("panel", class, "", "")
}

func (tk *Toolkit) Row() *Node {
	return NewNode("row", "row", "", "")
}

func (tk *Toolkit) Label(class, text string) *Node {
	return NewNode("label", class, "", text)
}

// Button is a clickable label. Clicks are ignored while the stylesheet makes it non-interactive.
type Button struct {
	Node *Node
	tk   *Toolkit

	mu      sync.Mutex
	onClick func()
}

func (tk *Toolkit) Button(id, label string) *Button {
	return &Button{Node: NewNode("button", "button", id, label), tk: tk}
}

func (b *Button) Label() string {
	return b.Node.Text()
}

func (b *Button) SetLabel(s string) {
	b.Node.SetText(s)
}

// SetEnabled toggles the "disabled" class.
func (b *Button) SetEnabled(enabled bool) {
	if enabled {
		b.Node.RemoveClass("disabled")
	} else {
		b.Node.AddClass("disabled")
	}
}

// Enabled reports whether the button currently accepts clicks.
func (b *Button) Enabled() bool {
	return b.tk.Style(b.Node).Interactive
}

// Opacity is the rendered opacity (1 when idle, dimmed when disabled).
func (b *Button) Opacity() float32 {
	return b.tk.Style(b.Node).Opacity
}

func (b *Button) OnClick(fn func()) {
	b.mu.Lock()
	b.onClick = fn
	b.mu.Unlock()
}

// Click runs the click handler when the button is enabled and reports whether it ran.
func (b *Button) Click() bool {
	b.mu.Lock()
	fn := b.onClick
	b.mu.Unlock()
	if fn == nil || !b.Enabled() {
		return false
	}
	fn()
	return true
}

// TextInput is a single-line text field.
type TextInput struct {
	Node     *Node
	ReadOnly bool
}

func (tk *Toolkit) Input(id, value string) *TextInput {
	return &TextInput{Node: NewNode("input", "input", id, value)}
}

func (in *TextInput) Value() string {
	return in.Node.Text()
}

func (in *TextInput) SetValue(s string) {
	in.Node.SetText(s)
}

// Option is one entry of a Select.
type Option struct {
	Value string
	Label string
}

// Select is a drop-down choice among fixed options.
type Select struct {
	Node    *Node
	options []Option

	mu       sync.Mutex
	value    string
	onChange func(string)
}

func (tk *Toolkit) Select(id string, options []Option) *Select {
	s := &Select{Node: NewNode("select", "select", id, ""), options: options}
	if len(options) > 0 {
		s.value = options[0].Value
		s.Node.SetText(options[0].Label)
	}
	return s
}

func (s *Select) Options() []Option {
	return append([]Option(nil), s.options...)
}

func (s *Select) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// SetValue selects the option with value v. Unknown values are rejected.
func (s *Select) SetValue(v string) bool {
	for _, o := range s.options {
		if o.Value != v {
			continue
		}
		s.mu.Lock()
		s.value = v
		fn := s.onChange
		s.mu.Unlock()
		s.Node.SetText(o.Label)
		if fn != nil {
			fn(v)
		}
		return true
	}
	return false
}

func (s *Select) OnChange(fn func(string)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Image shows a picture; hidden until one is set.
type Image struct {
	Node *Node

	mu  sync.RWMutex
	img image.Image
	src string
}

func (tk *Toolkit) Image(id string) *Image {
	n := NewNode("image", "image", id, "")
	n.SetHidden(true)
	return &Image{Node: n}
}

// SetImage shows img. src is the source reference (e.g. a data URL).
func (im *Image) SetImage(img image.Image, src string) {
	im.mu.Lock()
	im.img, im.src = img, src
	im.mu.Unlock()
	im.Node.SetHidden(img == nil)
}

func (im *Image) Image() image.Image {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.img
}

func (im *Image) Src() string {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.src
}
