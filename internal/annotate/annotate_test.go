package annotate

import (
	"image"
	"image/color"
	"testing"

	"uidriver/internal/uia"
)

func TestMarkDrawsBoxOutline(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	got := Mark(src, image.Point{}, []Box{
		{Rect: uia.Rect{X: 10, Y: 10, W: 30, H: 20}},
	})

	red := color.RGBA{R: 255, A: 255}
	corners := []image.Point{{10, 10}, {39, 10}, {10, 29}, {39, 29}}
	for _, p := range corners {
		if got.RGBAAt(p.X, p.Y) != red {
			t.Errorf("pixel (%d,%d) = %v, want box color", p.X, p.Y, got.RGBAAt(p.X, p.Y))
		}
	}
	if got.RGBAAt(20, 20) == red {
		t.Error("box interior should not be filled")
	}
}

func TestMarkOffsetsByOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	got := Mark(src, image.Point{X: 100, Y: 200}, []Box{
		{Rect: uia.Rect{X: 110, Y: 210, W: 10, H: 10}},
	})

	red := color.RGBA{R: 255, A: 255}
	if got.RGBAAt(10, 10) != red {
		t.Errorf("pixel (10,10) = %v, want box color", got.RGBAAt(10, 10))
	}
}

func TestMarkClampsOutOfBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	// Must not panic on a box larger than the image.
	Mark(src, image.Point{}, []Box{
		{Rect: uia.Rect{X: -10, Y: -10, W: 100, H: 100}, Label: "big"},
	})
}
