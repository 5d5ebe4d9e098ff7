package software

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapebatch"
)

// guardBand bounds vertex coordinates, in viewport sizes, before they reach
// the rasterizer. The rasterizer walks every scanline between a segment's
// endpoints, so unclipped far-away vertices would stall it.
const guardBand = 4

// screenTriangle is a triangle in viewport pixel coordinates with positive
// area in y-down space.
type screenTriangle struct {
	p     [3]shapebatch.Point
	color shapebatch.RGBA
}

// rasterize projects the indexed triangles through the current effect and
// fills them, batching consecutive triangles of the same color into one
// rasterizer path.
func (d *Device) rasterize(verts []shapebatch.Vertex, idx []shapebatch.Index) {
	e := d.current
	mvp := e.mvp()
	w, h := float32(d.viewport.Width), float32(d.viewport.Height)
	limit := guardBand * max(w, h)

	d.tri = d.tri[:0]
	for t := 0; t+2 < len(idx); t += 3 {
		var ndc, px [3]shapebatch.Point
		visible := true
		for k := 0; k < 3; k++ {
			v := verts[idx[t+k]]
			c := mvp.Transform(v.Position[0], v.Position[1], v.Position[2], 1)
			if c[3] <= 0 {
				visible = false
				break
			}
			ndc[k] = shapebatch.Pt(c[0]/c[3], c[1]/c[3])
			px[k] = shapebatch.Pt(
				clampf((ndc[k].X+1)*0.5*w, -limit, limit),
				clampf((1-ndc[k].Y)*0.5*h, -limit, limit),
			)
		}
		if !visible {
			continue
		}

		area := signedArea(ndc)
		if area == 0 || d.culled(area) {
			continue
		}
		// Flipping Y reverses the winding; keep every path positive so
		// overlapping triangles accumulate instead of cancelling.
		if signedArea(px) < 0 {
			px[1], px[2] = px[2], px[1]
		}

		c := shapebatch.White
		if e.vertexColor {
			c = verts[idx[t]].Color
		}
		d.tri = append(d.tri, screenTriangle{p: px, color: c})
	}

	start := 0
	for i := 1; i <= len(d.tri); i++ {
		if i == len(d.tri) || d.tri[i].color != d.tri[start].color {
			d.fill(d.tri[start:i])
			start = i
		}
	}
}

// culled reports whether a triangle with the given clip-space signed area is
// removed by the rasterizer state.
func (d *Device) culled(area float32) bool {
	front := (area > 0) == (d.raster.FrontFace == gputypes.FrontFaceCCW)
	switch d.raster.CullMode {
	case gputypes.CullModeBack:
		return !front
	case gputypes.CullModeFront:
		return front
	default:
		return false
	}
}

// fill rasterizes tris, which share one color, into the mask and composites
// the covered area onto the image.
func (d *Device) fill(tris []screenTriangle) {
	if len(tris) == 0 {
		return
	}
	vp := d.viewport
	z := d.rast
	z.Reset(vp.Width, vp.Height)

	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for _, t := range tris {
		z.MoveTo(t.p[0].X, t.p[0].Y)
		z.LineTo(t.p[1].X, t.p[1].Y)
		z.LineTo(t.p[2].X, t.p[2].Y)
		z.ClosePath()
		for _, p := range t.p {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}

	bounds := image.Rect(
		int(math32.Floor(minX)), int(math32.Floor(minY)),
		int(math32.Ceil(maxX)), int(math32.Ceil(maxY)),
	).Intersect(d.mask.Bounds())
	if bounds.Empty() {
		return
	}

	z.DrawOp = draw.Src
	z.Draw(d.mask, d.mask.Bounds(), image.Opaque, image.Point{})
	d.composite(bounds, tris[0].color)
}

// composite blends c through the coverage mask over bounds, given in
// viewport coordinates.
func (d *Device) composite(bounds image.Rectangle, c shapebatch.RGBA) {
	offset := image.Pt(d.viewport.X, d.viewport.Y)
	dst := bounds.Add(offset).Intersect(d.img.Bounds())
	if dst.Empty() {
		return
	}
	maskPt := dst.Min.Sub(offset)

	switch d.blend {
	case gputypes.BlendStateReplace():
		d.replace(dst, maskPt, c)
	case gputypes.BlendStatePremultiplied():
		src := color.RGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
		draw.DrawMask(d.img, dst, image.NewUniform(src), image.Point{}, d.mask, maskPt, draw.Over)
	default:
		draw.DrawMask(d.img, dst, image.NewUniform(c.Color()), image.Point{}, d.mask, maskPt, draw.Over)
	}
}

// replace writes c over the destination, weighted only by coverage, so the
// source alpha is stored rather than blended.
func (d *Device) replace(dst image.Rectangle, maskPt image.Point, c shapebatch.RGBA) {
	pc := c.Premultiply()
	src := [4]uint32{uint32(unit8(pc.R)), uint32(unit8(pc.G)), uint32(unit8(pc.B)), uint32(unit8(pc.A))}
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		my := maskPt.Y + y - dst.Min.Y
		for x := dst.Min.X; x < dst.Max.X; x++ {
			m := uint32(d.mask.Pix[d.mask.PixOffset(maskPt.X+x-dst.Min.X, my)])
			if m == 0 {
				continue
			}
			i := d.img.PixOffset(x, y)
			for k := 0; k < 4; k++ {
				old := uint32(d.img.Pix[i+k])
				d.img.Pix[i+k] = uint8((old*(255-m) + src[k]*m + 127) / 255)
			}
		}
	}
}

func signedArea(p [3]shapebatch.Point) float32 {
	return (p[1].X-p[0].X)*(p[2].Y-p[0].Y) - (p[2].X-p[0].X)*(p[1].Y-p[0].Y)
}

func clampf(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}

// unit8 maps a [0, 1] component to [0, 255].
func unit8(x float32) uint8 {
	return uint8(clampf(x, 0, 1)*255 + 0.5)
}
