package shapebatch

// Style defaults.
const (
	// DefaultThickness is the stroke width used when Style.Thickness is zero.
	DefaultThickness = 1

	// DefaultSegments is the circle tessellation used when Style.Segments
	// is zero.
	DefaultSegments = 10

	// MinSegments is the smallest circle tessellation; lower counts are
	// clamped up to it.
	MinSegments = 3
)

// Style selects how a rectangle, circle or polygon is drawn.
//
// The zero value strokes with a one-unit line and tessellates circles with
// DefaultSegments.
type Style struct {
	// Fill draws the interior instead of the outline. Thickness is ignored
	// when Fill is set.
	Fill bool

	// Thickness is the stroke width, centered on the outline.
	Thickness float32

	// Segments is the number of straight edges approximating a circle.
	Segments int
}

// Filled is the style for solid shapes with default tessellation.
var Filled = Style{Fill: true}

// Stroke returns an outline style with the given width.
func Stroke(thickness float32) Style {
	return Style{Thickness: thickness}
}

func (s Style) thickness() float32 {
	if s.Thickness == 0 {
		return DefaultThickness
	}
	return s.Thickness
}

func (s Style) segments() int {
	if s.Segments == 0 {
		return DefaultSegments
	}
	return clampSegments(s.Segments)
}

func clampSegments(n int) int {
	if n < MinSegments {
		return MinSegments
	}
	return n
}
