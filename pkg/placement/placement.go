// Package placement centers a fixed aspect bitmap in a target region at the
// largest integral scale that keeps it inside.
package placement

import (
	"image"

	"github.com/pkg/errors"
)

var (
	ErrEmptyBitmap = errors.New("bitmap has no pixels")
	ErrNoFit       = errors.New("region smaller than bitmap")
)

// Placement is where and how large a bitmap is drawn: the top left corner
// and the number of device pixels per bitmap pixel.
type Placement struct {
	X     int
	Y     int
	Scale int
}

// Bounds is the area covered by a w x h bitmap drawn at p.
func (p Placement) Bounds(w, h int) image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+w*p.Scale, p.Y+h*p.Scale)
}

// Box is the square region of the given side with its top left at x, y.
func Box(x, y, size int) image.Rectangle {
	return image.Rect(x, y, x+size, y+size)
}

// Fit grows the scale one step at a time, centering the scaled bitmap on the
// middle of region, and keeps the last scale at which it still lies inside.
// The offset is the center minus half the scaled size, (w*scale)/2, so the
// result is the largest scale with w*scale and h*scale within the region.
//
// Regions need not be square; each axis is checked on its own.
func Fit(w, h int, region image.Rectangle) (Placement, error) {
	if w <= 0 || h <= 0 {
		return Placement{}, ErrEmptyBitmap
	}

	region = region.Canon()
	cx := (region.Min.X + region.Max.X) / 2
	cy := (region.Min.Y + region.Max.Y) / 2

	var last Placement
	for scale := 1; ; scale++ {
		p := Placement{
			X:     cx - (w*scale)/2,
			Y:     cy - (h*scale)/2,
			Scale: scale,
		}
		if !p.Bounds(w, h).In(region) {
			break
		}
		last = p
	}

	if last.Scale == 0 {
		return Placement{}, errors.Wrapf(ErrNoFit, "%dx%d bitmap in %s", w, h, region)
	}

	return last, nil
}
