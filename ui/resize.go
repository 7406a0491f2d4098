package ui

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales source by an integer ratio with nearest neighbour sampling,
// keeping the pixels square. A ratio below 1 is treated as 1.
func Resize(source *image.RGBA, ratio int) *image.RGBA {
	if ratio < 1 {
		ratio = 1
	}
	b := source.Bounds()
	target := image.NewRGBA(image.Rect(0, 0, b.Dx()*ratio, b.Dy()*ratio))
	draw.NearestNeighbor.Scale(target, target.Bounds(), source, b, draw.Src, nil)
	return target
}
