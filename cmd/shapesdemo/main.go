// Command shapesdemo draws shapes with shapebatch and writes the result as a
// PNG.
//
// Without -scene it renders a built-in demo. With -dump it writes the
// built-in demo as a scene file instead of rendering.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/chewxy/math32"
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/backend"
	"github.com/gogpu/shapebatch/backend/recorder"
	"github.com/gogpu/shapebatch/backend/software"
	"github.com/gogpu/shapebatch/scene"
)

func main() {
	var (
		width     = flag.Int("width", 800, "image width (built-in demo only)")
		height    = flag.Int("height", 600, "image height (built-in demo only)")
		output    = flag.String("output", "shapes.png", "output PNG file")
		scenePath = flag.String("scene", "", "scene file to render (.yaml, .yml or .toml)")
		dump      = flag.String("dump", "", "write the built-in demo to this scene file and exit")
		backendID = flag.String("backend", backend.NameSoftware, "device backend: software or recorder")
		capacity  = flag.Int("vertices", 1024, "batch vertex capacity")
		verbose   = flag.Bool("v", false, "log flushes to stderr")
	)
	flag.Parse()

	if *verbose {
		shapebatch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s := demoScene(*width, *height)
	if *dump != "" {
		if err := scene.Save(*dump, s); err != nil {
			log.Fatalf("Failed to write scene: %v", err)
		}
		log.Printf("Scene written to %s (%d shapes)\n", *dump, len(s.Shapes))
		return
	}
	if *scenePath != "" {
		loaded, err := scene.Load(*scenePath)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
		s = loaded
	}

	if err := run(s, *backendID, *capacity, *output); err != nil {
		log.Fatal(err)
	}
}

func run(s *scene.Scene, backendID string, capacity int, output string) error {
	dev, err := backend.NewDevice(backendID, s.Width, s.Height)
	if err != nil {
		return err
	}
	bg, err := s.BackgroundColor()
	if err != nil {
		return err
	}
	if sw, ok := dev.(*software.Device); ok {
		sw.Clear(bg)
	}

	b, err := shapebatch.NewBatch(dev, shapebatch.WithMaxVertices(capacity))
	if err != nil {
		return err
	}
	defer b.Close()

	if err := s.Render(b); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	st := b.Stats()
	log.Printf("Rendered %d shapes: %d triangles in %d draw calls\n",
		len(s.Shapes), st.Triangles, st.DrawCalls)

	switch d := dev.(type) {
	case *software.Device:
		return savePNG(output, d)
	case *recorder.Device:
		rec := d.Finish()
		log.Printf("Recorded %d commands\n", rec.Len())
		return nil
	default:
		return nil
	}
}

func savePNG(path string, d *software.Device) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, d.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("Image saved to %s\n", path)
	return nil
}

// demoScene lays out rows of each shape kind across a w x h canvas.
func demoScene(w, h int) *scene.Scene {
	fw, fh := float32(w), float32(h)
	b := scene.NewBuilder(w, h).
		Background(shapebatch.RGB(0.1, 0.12, 0.18)).
		Segments(32)

	// Gradient bands.
	const bands = 20
	for i := 0; i < bands; i++ {
		t := float32(i) / bands
		b.FillRect(0, fh*t, fw, fh/bands+1, shapebatch.RGB(0.1+t*0.3, 0.15+t*0.2, 0.3+t*0.1))
	}

	// Overlapping circles.
	b.FillCircle(fw*0.2, fh*0.25, 60, shapebatch.RGBA2(1, 0.3, 0.3, 1)).
		FillCircle(fw*0.2+50, fh*0.25, 60, shapebatch.RGBA2(0.3, 1, 0.3, 1)).
		StrokeCircle(fw*0.2+25, fh*0.25+40, 60, shapebatch.White, 4)

	// Rectangles.
	b.FillRect(fw*0.5, fh*0.15, 120, 80, shapebatch.RGB(1, 0.8, 0)).
		StrokeRect(fw*0.5, fh*0.15, 120, 80, shapebatch.White, 4)

	// Fan of lines.
	cx, cy := fw*0.25, fh*0.7
	for i := 0; i < 12; i++ {
		sin, cos := math32.Sincos(float32(i) * math32.Pi / 6)
		b.Line(cx, cy, cx+cos*100, cy+sin*100, shapebatch.RGB(0.5+cos*0.5, 0.5+sin*0.5, 1), 3)
	}

	// Star from a filled pentagon and outline triangles.
	b.Polygon(regularPolygon(fw*0.7, fh*0.7, 60, 5), shapebatch.Yellow, shapebatch.Filled)
	for i := 0; i < 5; i++ {
		a0 := float32(i)*2*math32.Pi/5 - math32.Pi/2
		a1 := a0 + 2*math32.Pi/5
		tip := a0 + math32.Pi/5
		b.Polygon([]shapebatch.Point{
			shapebatch.Pt(fw*0.7+60*math32.Cos(a0), fh*0.7+60*math32.Sin(a0)),
			shapebatch.Pt(fw*0.7+120*math32.Cos(tip), fh*0.7+120*math32.Sin(tip)),
			shapebatch.Pt(fw*0.7+60*math32.Cos(a1), fh*0.7+60*math32.Sin(a1)),
		}, shapebatch.RGB(1, 0.6, 0), shapebatch.Stroke(2))
	}
	return b.Build()
}

func regularPolygon(cx, cy, r float32, n int) []shapebatch.Point {
	pts := make([]shapebatch.Point, n)
	for i := range pts {
		a := float32(i)*2*math32.Pi/float32(n) - math32.Pi/2
		pts[i] = shapebatch.Pt(cx+r*math32.Cos(a), cy+r*math32.Sin(a))
	}
	return pts
}
