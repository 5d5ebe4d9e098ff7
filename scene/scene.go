package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/shapebatch"
)

// Errors returned by Validate and the decoders.
var (
	// ErrInvalidShape is returned for a shape with missing or malformed
	// fields.
	ErrInvalidShape = errors.New("scene: invalid shape")

	// ErrInvalidColor is returned for a color that is neither a known name
	// nor a hex string.
	ErrInvalidColor = errors.New("scene: invalid color")

	// ErrInvalidSize is returned for a scene with non-positive dimensions.
	ErrInvalidSize = errors.New("scene: invalid size")
)

// Kind names a shape type.
type Kind string

// Shape kinds.
const (
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindPolygon Kind = "polygon"
)

// Scene is a list of shapes drawn in order with one transform.
type Scene struct {
	Width      int        `yaml:"width" toml:"width"`
	Height     int        `yaml:"height" toml:"height"`
	Background string     `yaml:"background,omitempty" toml:"background,omitempty"`
	Transform  *Transform `yaml:"transform,omitempty" toml:"transform,omitempty"`
	Shapes     []Shape    `yaml:"shapes" toml:"shapes"`
}

// Transform positions the whole scene. It is applied as
// translate * rotate * scale, so shapes are scaled first.
type Transform struct {
	Translate []float32 `yaml:"translate,omitempty" toml:"translate,omitempty"`
	Scale     []float32 `yaml:"scale,omitempty" toml:"scale,omitempty"`
	// Rotate is in radians.
	Rotate float32 `yaml:"rotate,omitempty" toml:"rotate,omitempty"`
}

// Shape is one drawing command. Which geometry fields apply depends on
// Kind:
//   - line: From, To, Thickness
//   - rect: Rect as [x, y, w, h], Fill, Thickness
//   - circle: Center, Radius, Fill, Thickness, Segments
//   - polygon: Points, Fill, Thickness
type Shape struct {
	Kind      Kind        `yaml:"kind" toml:"kind"`
	Color     string      `yaml:"color,omitempty" toml:"color,omitempty"`
	Fill      bool        `yaml:"fill,omitempty" toml:"fill,omitempty"`
	Thickness float32     `yaml:"thickness,omitempty" toml:"thickness,omitempty"`
	Segments  int         `yaml:"segments,omitempty" toml:"segments,omitempty"`
	From      []float32   `yaml:"from,omitempty" toml:"from,omitempty"`
	To        []float32   `yaml:"to,omitempty" toml:"to,omitempty"`
	Rect      []float32   `yaml:"rect,omitempty" toml:"rect,omitempty"`
	Center    []float32   `yaml:"center,omitempty" toml:"center,omitempty"`
	Radius    float32     `yaml:"radius,omitempty" toml:"radius,omitempty"`
	Points    [][]float32 `yaml:"points,omitempty" toml:"points,omitempty"`
}

// Matrix returns the affine transform, or the identity for a nil Transform.
func (t *Transform) Matrix() (shapebatch.Matrix, error) {
	m := shapebatch.Identity()
	if t == nil {
		return m, nil
	}
	if t.Translate != nil {
		p, err := point(t.Translate)
		if err != nil {
			return m, fmt.Errorf("scene: translate: %w", err)
		}
		m = m.Multiply(shapebatch.Translate(p.X, p.Y))
	}
	if t.Rotate != 0 {
		m = m.Multiply(shapebatch.Rotate(t.Rotate))
	}
	if t.Scale != nil {
		p, err := point(t.Scale)
		if err != nil {
			return m, fmt.Errorf("scene: scale: %w", err)
		}
		m = m.Multiply(shapebatch.Scale(p.X, p.Y))
	}
	return m, nil
}

// Validate checks the scene size, the transform and every shape.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	if s.Background != "" {
		if _, err := ParseColor(s.Background); err != nil {
			return fmt.Errorf("scene: background: %w", err)
		}
	}
	if _, err := s.Transform.Matrix(); err != nil {
		return err
	}
	for i := range s.Shapes {
		if _, err := s.Shapes[i].resolve(); err != nil {
			return fmt.Errorf("scene: shape %d: %w", i, err)
		}
	}
	return nil
}

// BackgroundColor returns the parsed background, or transparent when unset.
func (s *Scene) BackgroundColor() (shapebatch.RGBA, error) {
	if s.Background == "" {
		return shapebatch.Transparent, nil
	}
	return ParseColor(s.Background)
}

// Draw replays the shapes onto an active batch. Shapes after the first
// failing one are not drawn.
func (s *Scene) Draw(b *shapebatch.Batch) error {
	for i := range s.Shapes {
		r, err := s.Shapes[i].resolve()
		if err != nil {
			return fmt.Errorf("scene: shape %d: %w", i, err)
		}
		if err := r.draw(b); err != nil {
			return fmt.Errorf("scene: draw shape %d (%s): %w", i, s.Shapes[i].Kind, err)
		}
	}
	return nil
}

// Render begins b in screen space with the scene transform as the view,
// draws every shape and ends the batch.
func (s *Scene) Render(b *shapebatch.Batch) error {
	m, err := s.Transform.Matrix()
	if err != nil {
		return err
	}
	if err := b.BeginTransform(shapebatch.Mat4FromAffine(m)); err != nil {
		return err
	}
	if err := s.Draw(b); err != nil {
		_ = b.End()
		return err
	}
	return b.End()
}

// resolved is a Shape with parsed color, style and geometry.
type resolved struct {
	kind   Kind
	color  shapebatch.RGBA
	style  shapebatch.Style
	from   shapebatch.Point
	to     shapebatch.Point
	rect   shapebatch.Rect
	radius float32
	points []shapebatch.Point
}

func (sh *Shape) resolve() (resolved, error) {
	r := resolved{
		kind:  sh.Kind,
		color: shapebatch.White,
		style: shapebatch.Style{Fill: sh.Fill, Thickness: sh.Thickness, Segments: sh.Segments},
	}
	if sh.Color != "" {
		c, err := ParseColor(sh.Color)
		if err != nil {
			return r, err
		}
		r.color = c
	}
	if sh.Thickness < 0 {
		return r, fmt.Errorf("%w: negative thickness %v", ErrInvalidShape, sh.Thickness)
	}

	var err error
	switch sh.Kind {
	case KindLine:
		if r.from, err = point(sh.From); err != nil {
			return r, fmt.Errorf("from: %w", err)
		}
		if r.to, err = point(sh.To); err != nil {
			return r, fmt.Errorf("to: %w", err)
		}
	case KindRect:
		if len(sh.Rect) != 4 {
			return r, fmt.Errorf("%w: rect needs [x, y, w, h], got %d values", ErrInvalidShape, len(sh.Rect))
		}
		r.rect = shapebatch.R(sh.Rect[0], sh.Rect[1], sh.Rect[2], sh.Rect[3])
	case KindCircle:
		if r.from, err = point(sh.Center); err != nil {
			return r, fmt.Errorf("center: %w", err)
		}
		if sh.Radius <= 0 {
			return r, fmt.Errorf("%w: radius %v", ErrInvalidShape, sh.Radius)
		}
		r.radius = sh.Radius
	case KindPolygon:
		if len(sh.Points) < 3 {
			return r, fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrInvalidShape, len(sh.Points))
		}
		r.points = make([]shapebatch.Point, len(sh.Points))
		for i, p := range sh.Points {
			if r.points[i], err = point(p); err != nil {
				return r, fmt.Errorf("points[%d]: %w", i, err)
			}
		}
	default:
		return r, fmt.Errorf("%w: unknown kind %q", ErrInvalidShape, sh.Kind)
	}
	return r, nil
}

func (r *resolved) draw(b *shapebatch.Batch) error {
	switch r.kind {
	case KindLine:
		thickness := r.style.Thickness
		if thickness == 0 {
			thickness = shapebatch.DefaultThickness
		}
		return b.DrawLine(r.from, r.to, r.color, thickness)
	case KindRect:
		return b.DrawRectangle(r.rect, r.color, r.style)
	case KindCircle:
		return b.DrawCircle(r.from, r.radius, r.color, r.style)
	default:
		return b.DrawPolygon(r.points, r.color, r.style)
	}
}

func point(v []float32) (shapebatch.Point, error) {
	if len(v) != 2 {
		return shapebatch.Point{}, fmt.Errorf("%w: want [x, y], got %d values", ErrInvalidShape, len(v))
	}
	return shapebatch.Pt(v[0], v[1]), nil
}

var namedColors = map[string]shapebatch.RGBA{
	"black":       shapebatch.Black,
	"white":       shapebatch.White,
	"red":         shapebatch.Red,
	"green":       shapebatch.Green,
	"blue":        shapebatch.Blue,
	"yellow":      shapebatch.Yellow,
	"cyan":        shapebatch.Cyan,
	"magenta":     shapebatch.Magenta,
	"transparent": shapebatch.Transparent,
}

// ParseColor parses a color name or a hex string with 3, 4, 6 or 8 digits
// and an optional leading '#'.
func ParseColor(s string) (shapebatch.RGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return shapebatch.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, ch := range hex {
		if !isHexDigit(ch) {
			return shapebatch.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return shapebatch.Hex(hex), nil
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
