package flyer

import (
	"image/color"

	"flyer_builder/internal/model"
)

// Logical canvas size. Exports and previews both start from this size.
const (
	CanvasWidth  = 1080
	CanvasHeight = 1350
)

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Right() float64  { return r.X + r.W }

type NodeKind string

const (
	KindBox         NodeKind = "box"
	KindText        NodeKind = "text"
	KindImage       NodeKind = "image"
	KindPlaceholder NodeKind = "placeholder"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Node is one element of the flyer tree. Children paint after their parent, in order.
type Node struct {
	Kind NodeKind `json:"kind"`
	Role string   `json:"role,omitempty"`
	Rect Rect     `json:"rect"`

	Fill   color.NRGBA `json:"fill"`
	Radius float64     `json:"radius,omitempty"`

	Text     string      `json:"text,omitempty"`
	FontSize float64     `json:"fontSize,omitempty"`
	Bold     bool        `json:"bold,omitempty"`
	Color    color.NRGBA `json:"color"`
	Align    Align       `json:"align,omitempty"`
	Middle   bool        `json:"middle,omitempty"`
	MaxLines int         `json:"maxLines,omitempty"`

	// Src is a data URI drawn with cover cropping.
	Src string `json:"src,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// Walk visits n and its descendants depth first.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindRole returns every node in the tree with the given role, in paint order.
func (n Node) FindRole(role string) []Node {
	var out []Node
	n.Walk(func(c Node) {
		if c.Role == role {
			out = append(out, c)
		}
	})
	return out
}

// Layout is the fully resolved flyer for one template.
type Layout struct {
	Template model.TemplateKind `json:"template"`
	Width    float64            `json:"width"`
	Height   float64            `json:"height"`
	Derived  Derived            `json:"derived"`
	Photos   Arrangement        `json:"photos"`
	Root     Node               `json:"root"`
}

var (
	transparent = color.NRGBA{}
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gray50      = color.NRGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 0xff}
	gray100     = color.NRGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	gray400     = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	gray500     = color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	gray600     = color.NRGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
	gray700     = color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	gray800     = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	gray900     = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	white70     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb3}
	white85     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xd9}
	white10     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x1a}
	white20     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
	black40     = color.NRGBA{A: 0x66}
	sand        = color.NRGBA{R: 0xc8, G: 0xa2, B: 0x7d, A: 0xff}
	cream       = color.NRGBA{R: 0xf7, G: 0xf3, B: 0xee, A: 0xff}
	sandLight   = color.NRGBA{R: 0xc8, G: 0xa2, B: 0x7d, A: 0x99}
)

func box(role string, r Rect, fill color.NRGBA, radius float64, children ...Node) Node {
	return Node{Kind: KindBox, Role: role, Rect: r, Fill: fill, Radius: radius, Children: children}
}

func text(role string, r Rect, s string, size float64, bold bool, c color.NRGBA, align Align, maxLines int) Node {
	return Node{
		Kind:     KindText,
		Role:     role,
		Rect:     r,
		Text:     s,
		FontSize: size,
		Bold:     bold,
		Color:    c,
		Align:    align,
		MaxLines: maxLines,
	}
}

func picture(role string, r Rect, src string, radius float64) Node {
	return Node{Kind: KindImage, Role: role, Rect: r, Src: src, Radius: radius}
}

// placeholder is a tinted panel with a centered label, used wherever media is missing.
func placeholder(role string, r Rect, label string, fill, labelColor color.NRGBA, radius, size float64) Node {
	return Node{
		Kind:     KindPlaceholder,
		Role:     role,
		Rect:     r,
		Fill:     fill,
		Radius:   radius,
		Text:     label,
		FontSize: size,
		Color:    labelColor,
		Align:    AlignCenter,
		Middle:   true,
		MaxLines: 1,
	}
}
