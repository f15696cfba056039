// Command ggpaintdemo exercises the infinite canvas headless: it paints
// strokes and text across chunk borders, undoes a gesture, saves the
// canvas, reloads it and exports the visible region as a PNG.
package main

import (
	"bytes"
	"flag"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/ggpaint"
	"github.com/gogpu/ggpaint/brush"
	"github.com/gogpu/ggpaint/grid"
)

func main() {
	var (
		width   = flag.Int("width", 1280, "exported image width")
		height  = flag.Int("height", 720, "exported image height")
		output  = flag.String("output", "canvas.png", "output PNG file")
		save    = flag.String("save", "", "also save the canvas file here")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		ggpaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	c, err := ggpaint.New()
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	defer c.Close()

	view := grid.Rect{Min: grid.Pt(0, 0), Max: grid.Pt(float64(*width), float64(*height))}
	if _, err := c.Tick(view); err != nil {
		log.Fatalf("Failed to sweep viewport: %v", err)
	}

	drawWave(c, *width)
	drawSpiral(c)
	drawLabels(c)
	undoScribble(c)

	// Round-trip the canvas through its binary format.
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if err := c.Load(bytes.NewReader(buf.Bytes())); err != nil {
		log.Fatalf("Failed to reload: %v", err)
	}
	if *save != "" {
		if err := c.SaveFile(*save); err != nil {
			log.Fatalf("Failed to save canvas file: %v", err)
		}
		log.Printf("Canvas saved to %s", *save)
	}

	img, err := c.Render(view)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %d chunks resident, %d cached)",
		*output, *width, *height, c.Resident(), c.Cached())
}

// drawWave strokes a sine wave across the full width, crossing chunk
// borders, as one undoable gesture.
func drawWave(c *ggpaint.Canvas, width int) {
	c.BeginGesture()
	prev := grid.Pt(0, 360)
	for x := 8; x <= width; x += 8 {
		p := grid.Pt(float64(x), 360+120*math.Sin(float64(x)/90))
		err := brush.StrokeSegment(c, prev, p, brush.Params{
			Radius: 7,
			Color:  color.RGBA{R: 30, G: 80, B: 200, A: 255},
		})
		if err != nil {
			log.Fatalf("Failed to stroke wave: %v", err)
		}
		prev = p
	}
	c.EndGesture()
}

// drawSpiral dots a spiral of shrinking circles.
func drawSpiral(c *ggpaint.Canvas) {
	c.BeginGesture()
	for i := 0; i < 60; i++ {
		t := float64(i) / 60
		angle := t * 6 * math.Pi
		r := 200 * (1 - t)
		p := grid.Pt(640+r*math.Cos(angle), 360+r*math.Sin(angle))
		err := brush.Dot(c, p, brush.Params{
			Radius: 3 + 9*(1-t),
			Color:  color.RGBA{R: uint8(200 * t), G: 60, B: uint8(220 * (1 - t)), A: 255},
		})
		if err != nil {
			log.Fatalf("Failed to dot spiral: %v", err)
		}
	}
	c.EndGesture()
}

func drawLabels(c *ggpaint.Canvas) {
	c.BeginGesture()
	err := brush.StampText(c, grid.Pt(60, 80), "ggpaint infinite canvas", brush.TextParams{
		Size:  48,
		Color: color.RGBA{R: 20, G: 20, B: 20, A: 255},
	})
	if err != nil {
		log.Fatalf("Failed to stamp text: %v", err)
	}
	c.EndGesture()
}

// undoScribble paints a scribble and immediately undoes it, leaving the
// exported image clean.
func undoScribble(c *ggpaint.Canvas) {
	c.BeginGesture()
	err := brush.StrokeSegment(c, grid.Pt(100, 600), grid.Pt(1100, 150), brush.Params{
		Radius: 20,
		Color:  color.RGBA{R: 255, A: 255},
	})
	if err != nil {
		log.Fatalf("Failed to scribble: %v", err)
	}
	c.EndGesture()

	if ok, err := c.Undo(); err != nil || !ok {
		log.Fatalf("Failed to undo scribble: ok=%v err=%v", ok, err)
	}
}
