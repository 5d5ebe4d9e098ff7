package scene

import (
	"fmt"

	"github.com/gogpu/shapebatch"
)

// Builder provides a fluent API for assembling a Scene in code.
//
// Example:
//
//	s := NewBuilder(320, 240).
//	    Background(shapebatch.Black).
//	    FillRect(10, 10, 100, 50, shapebatch.Red).
//	    StrokeCircle(160, 120, 40, shapebatch.White, 2).
//	    Build()
type Builder struct {
	scene Scene
	style shapebatch.Style
}

// NewBuilder creates a builder for a width x height scene.
func NewBuilder(width, height int) *Builder {
	return &Builder{scene: Scene{Width: width, Height: height}}
}

// Background sets the clear color.
func (b *Builder) Background(c shapebatch.RGBA) *Builder {
	b.scene.Background = FormatColor(c)
	return b
}

// Translate sets the scene translation.
func (b *Builder) Translate(x, y float32) *Builder {
	b.transform().Translate = []float32{x, y}
	return b
}

// Scale sets the scene scale.
func (b *Builder) Scale(x, y float32) *Builder {
	b.transform().Scale = []float32{x, y}
	return b
}

// Rotate sets the scene rotation in radians.
func (b *Builder) Rotate(angle float32) *Builder {
	b.transform().Rotate = angle
	return b
}

func (b *Builder) transform() *Transform {
	if b.scene.Transform == nil {
		b.scene.Transform = &Transform{}
	}
	return b.scene.Transform
}

// Segments sets the circle tessellation used by later circles.
func (b *Builder) Segments(n int) *Builder {
	b.style.Segments = n
	return b
}

// Line adds a line segment.
func (b *Builder) Line(x1, y1, x2, y2 float32, c shapebatch.RGBA, thickness float32) *Builder {
	return b.add(Shape{
		Kind:      KindLine,
		Color:     FormatColor(c),
		Thickness: thickness,
		From:      []float32{x1, y1},
		To:        []float32{x2, y2},
	})
}

// FillRect adds a filled rectangle.
func (b *Builder) FillRect(x, y, w, h float32, c shapebatch.RGBA) *Builder {
	return b.add(Shape{Kind: KindRect, Color: FormatColor(c), Fill: true, Rect: []float32{x, y, w, h}})
}

// StrokeRect adds a rectangle outline.
func (b *Builder) StrokeRect(x, y, w, h float32, c shapebatch.RGBA, thickness float32) *Builder {
	return b.add(Shape{Kind: KindRect, Color: FormatColor(c), Thickness: thickness, Rect: []float32{x, y, w, h}})
}

// FillCircle adds a filled circle.
func (b *Builder) FillCircle(cx, cy, r float32, c shapebatch.RGBA) *Builder {
	return b.add(Shape{
		Kind:     KindCircle,
		Color:    FormatColor(c),
		Fill:     true,
		Segments: b.style.Segments,
		Center:   []float32{cx, cy},
		Radius:   r,
	})
}

// StrokeCircle adds a circle outline.
func (b *Builder) StrokeCircle(cx, cy, r float32, c shapebatch.RGBA, thickness float32) *Builder {
	return b.add(Shape{
		Kind:      KindCircle,
		Color:     FormatColor(c),
		Thickness: thickness,
		Segments:  b.style.Segments,
		Center:    []float32{cx, cy},
		Radius:    r,
	})
}

// Polygon adds a convex polygon, filled or outlined per s.
func (b *Builder) Polygon(points []shapebatch.Point, c shapebatch.RGBA, s shapebatch.Style) *Builder {
	pts := make([][]float32, len(points))
	for i, p := range points {
		pts[i] = []float32{p.X, p.Y}
	}
	return b.add(Shape{
		Kind:      KindPolygon,
		Color:     FormatColor(c),
		Fill:      s.Fill,
		Thickness: s.Thickness,
		Points:    pts,
	})
}

func (b *Builder) add(s Shape) *Builder {
	b.scene.Shapes = append(b.scene.Shapes, s)
	return b
}

// Len returns the number of shapes added so far.
func (b *Builder) Len() int {
	return len(b.scene.Shapes)
}

// Build returns a copy of the assembled scene.
func (b *Builder) Build() *Scene {
	s := b.scene
	s.Shapes = append([]Shape(nil), b.scene.Shapes...)
	if b.scene.Transform != nil {
		t := *b.scene.Transform
		s.Transform = &t
	}
	return &s
}

// FormatColor returns c as an 8-digit hex string.
func FormatColor(c shapebatch.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A))
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
