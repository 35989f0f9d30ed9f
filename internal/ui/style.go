package ui

import (
	"image/color"
	"strconv"
	"strings"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".disabled" or "#upload"
	Props    map[string]string // e.g. "opacity" -> "0.5"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for drawing and interaction.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Interactive is false when pointer-events is none.
type ComputedStyle struct {
	Background  color.RGBA
	Color       color.RGBA
	Border      color.RGBA
	HasBorder   bool
	Width       int32
	Height      int32
	Left        int32
	Top         int32
	LeftPct     int32
	TopPct      int32
	Padding     int32
	MarginTop   int32
	Opacity     float32
	Interactive bool
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, fully opaque and interactive).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:       white,
		Border:      black,
		LeftPct:     -1,
		TopPct:      -1,
		Padding:     4,
		Opacity:     1,
		Interactive: true,
	}
}

// Matches reports whether the rule's selector matches n (".class" or "#id").
func (r Rule) Matches(n *Node) bool {
	sel := r.Selector
	if len(sel) < 2 {
		return false
	}
	switch sel[0] {
	case '.':
		return n.HasClass(sel[1:])
	case '#':
		return n.ID == sel[1:]
	}
	return n.Type == sel
}

// Resolve merges the properties of every rule matching n (later rules win) into a ComputedStyle.
func (s *Stylesheet) Resolve(n *Node) ComputedStyle {
	merged := make(map[string]string)
	if s != nil {
		for _, rule := range s.Rules {
			if rule.Matches(n) {
				for k, v := range rule.Props {
					merged[k] = v
				}
			}
		}
	}
	return ResolveProps(merged)
}

// ParseHexColor parses #RGB or #RRGGBB into an opaque colour. Returns black and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return black, false
	}
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		return color.RGBA{R: uint8(v>>8&0xf) * 17, G: uint8(v>>4&0xf) * 17, B: uint8(v&0xf) * 17, A: 255}, true
	case 6:
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	}
	return black, false
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "margin-top":
			if n, ok := ParsePx(v); ok {
				out.MarginTop = n
			}
		case "opacity":
			if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 && f <= 1 {
				out.Opacity = float32(f)
			}
		case "pointer-events":
			out.Interactive = v != "none"
		}
	}
	return out
}
