// Package annotate draws located-control markers onto screenshots, so a
// diagnosis can be checked visually against what the target application
// actually renders.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"uidriver/internal/uia"
)

// Box is one marker: a control's screen bounds plus its label (typically the
// descriptor key).
type Box struct {
	Rect  uia.Rect
	Label string
}

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Mark draws every box onto a copy of img. Box coordinates are screen
// absolute; origin is the screenshot's top-left corner in screen coordinates
// (zero for a full-screen capture).
func Mark(img image.Image, origin image.Point, boxes []Box) *image.RGBA {
	rgba := toRGBA(img)
	for _, b := range boxes {
		x := b.Rect.X - origin.X
		y := b.Rect.Y - origin.Y
		drawRect(rgba, x, y, x+b.Rect.W, y+b.Rect.H, boxColor)
		if b.Label != "" {
			drawLabel(rgba, b.Label, x+b.Rect.W/2, y+b.Rect.H/2)
		}
	}
	return rgba
}

// MarkFile reads a PNG screenshot, draws the boxes, and writes the result.
func MarkFile(inPath, outPath string, origin image.Point, boxes []Box) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open screenshot: %w", err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode screenshot: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create annotated image: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, Mark(img, origin, boxes)); err != nil {
		return fmt.Errorf("encode annotated image: %w", err)
	}
	return nil
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRect draws a one-pixel rectangle outline, clamped to the image.
func drawRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawLabel centers outlined text at (x, y). Face7x13 glyphs are 7 pixels
// wide and 13 tall.
func drawLabel(img *image.RGBA, text string, x, y int) {
	offsetX := x - len(text)*7/2
	offsetY := y + 13/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outlineColor)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
}
