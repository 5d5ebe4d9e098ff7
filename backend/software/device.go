package software

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/vector"

	"github.com/gogpu/shapebatch"
)

// Software device errors.
var (
	// ErrNoEffect is returned when a draw is submitted before any effect
	// pass was applied.
	ErrNoEffect = errors.New("software: no effect pass applied")

	// ErrInvalidRange is returned when a draw references vertices or
	// indices outside the supplied slices.
	ErrInvalidRange = errors.New("software: draw range out of bounds")

	// ErrEffectClosed is returned when a pass of a closed effect is applied.
	ErrEffectClosed = errors.New("software: effect is closed")
)

// Device rasterizes indexed triangle lists into an *image.RGBA.
//
// Device is not safe for concurrent use.
type Device struct {
	img      *image.RGBA
	viewport shapebatch.Viewport

	blend  gputypes.BlendState
	depth  shapebatch.DepthStencilState
	raster shapebatch.RasterizerState

	// current is the effect whose pass was applied last.
	current *Effect

	rast *vector.Rasterizer
	mask *image.Alpha
	tri  []screenTriangle

	draws     int
	triangles int
}

// NewDevice creates a device drawing into a new transparent image of the
// given size.
func NewDevice(width, height int) *Device {
	return NewDeviceForImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewDeviceForImage creates a device drawing into img. The viewport covers
// the whole image.
func NewDeviceForImage(img *image.RGBA) *Device {
	b := img.Bounds()
	d := &Device{
		img:    img,
		blend:  shapebatch.BlendOpaque,
		depth:  shapebatch.DepthStencilDefault,
		raster: shapebatch.RasterizerCullNone,
	}
	d.SetViewport(shapebatch.Viewport{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()})
	return d
}

// Image returns the target image.
func (d *Device) Image() *image.RGBA {
	return d.img
}

// Clear fills the whole target image with c.
func (d *Device) Clear(c shapebatch.RGBA) {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(c.Color()), image.Point{}, draw.Src)
}

// Viewport returns the area clip space is mapped to.
func (d *Device) Viewport() shapebatch.Viewport {
	return d.viewport
}

// SetViewport changes the area clip space is mapped to.
func (d *Device) SetViewport(vp shapebatch.Viewport) {
	d.viewport = vp
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	if d.rast == nil {
		d.rast = vector.NewRasterizer(vp.Width, vp.Height)
	}
	if d.mask == nil || d.mask.Bounds().Dx() != vp.Width || d.mask.Bounds().Dy() != vp.Height {
		d.mask = image.NewAlpha(image.Rect(0, 0, vp.Width, vp.Height))
	}
}

// SetBlendState sets how drawn pixels combine with the image.
func (d *Device) SetBlendState(s gputypes.BlendState) {
	d.blend = s
}

// SetDepthStencilState stores s. Depth is not evaluated.
func (d *Device) SetDepthStencilState(s shapebatch.DepthStencilState) {
	d.depth = s
}

// SetRasterizerState sets the cull mode and front face.
func (d *Device) SetRasterizerState(s shapebatch.RasterizerState) {
	d.raster = s
}

// DepthStencilState returns the last depth/stencil state set.
func (d *Device) DepthStencilState() shapebatch.DepthStencilState {
	return d.depth
}

// NewEffect creates a single-pass effect. Applying its pass makes it the
// effect used by subsequent draws.
func (d *Device) NewEffect() (shapebatch.Effect, error) {
	e := &Effect{
		device:     d,
		world:      shapebatch.Identity4(),
		view:       shapebatch.Identity4(),
		projection: shapebatch.Identity4(),
	}
	e.pass = []shapebatch.EffectPass{effectPass{e}}
	return e, nil
}

// DrawIndexedPrimitives rasterizes primitiveCount triangles. Indices are
// relative to vertexOffset.
func (d *Device) DrawIndexedPrimitives(vertices []shapebatch.Vertex, vertexOffset, numVertices int,
	indices []shapebatch.Index, indexOffset, primitiveCount int) error {
	if d.current == nil {
		return ErrNoEffect
	}
	if vertexOffset < 0 || numVertices < 0 || vertexOffset+numVertices > len(vertices) {
		return fmt.Errorf("%w: vertices [%d, %d) of %d",
			ErrInvalidRange, vertexOffset, vertexOffset+numVertices, len(vertices))
	}
	if indexOffset < 0 || primitiveCount < 0 || indexOffset+3*primitiveCount > len(indices) {
		return fmt.Errorf("%w: indices [%d, %d) of %d",
			ErrInvalidRange, indexOffset, indexOffset+3*primitiveCount, len(indices))
	}
	verts := vertices[vertexOffset : vertexOffset+numVertices]
	idx := indices[indexOffset : indexOffset+3*primitiveCount]
	for i, n := range idx {
		if int(n) >= numVertices {
			return fmt.Errorf("%w: index[%d] = %d, vertices %d", ErrInvalidRange, i, n, numVertices)
		}
	}
	if d.rast == nil || d.viewport.Width <= 0 || d.viewport.Height <= 0 {
		return nil
	}

	d.draws++
	d.triangles += primitiveCount
	d.rasterize(verts, idx)
	return nil
}

// Stats returns the number of draw calls and triangles submitted since the
// device was created.
func (d *Device) Stats() (draws, triangles int) {
	return d.draws, d.triangles
}
