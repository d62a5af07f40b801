package raster

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	Foreground byte = 0x00
	Background byte = 0xFF
)

// Grid is an immutable single channel pixel grid stored row-major.
type Grid struct {
	width  int
	height int
	pix    []byte
}

// NewGrid copies pix, which must hold exactly width*height intensities.
func NewGrid(width, height int, pix []byte) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, errors.Errorf("negative grid size %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, errors.Errorf("grid %dx%d needs %d pixels, got %d", width, height, width*height, len(pix))
	}

	return &Grid{
		width:  width,
		height: height,
		pix:    append([]byte(nil), pix...),
	}, nil
}

// FromQR encodes content as a QR symbol without quiet zone, one pixel per
// module: Foreground for dark modules and Background for light ones.
func FromQR(content string, level qrcode.RecoveryLevel) (*Grid, error) {
	q, err := qrcode.New(content, level)
	if err != nil {
		return nil, errors.Wrap(err, "qr encode failed")
	}
	q.DisableBorder = true

	bm := q.Bitmap()
	h := len(bm)
	if h == 0 {
		return &Grid{}, nil
	}
	w := len(bm[0])

	pix := make([]byte, 0, w*h)
	for _, row := range bm {
		for _, dark := range row {
			if dark {
				pix = append(pix, Foreground)
			} else {
				pix = append(pix, Background)
			}
		}
	}

	return &Grid{width: w, height: h, pix: pix}, nil
}

// FromImage reduces img to two tones. Pixels whose luminance is below
// threshold become Foreground, all others Background.
func FromImage(img image.Image, threshold uint8) *Grid {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()

	g := &Grid{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]byte, b.Dx()*b.Dy()),
	}

	// Grayscale returns an NRGBA with equal channels, so R is the luminance.
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if gray.Pix[y*gray.Stride+x*4] < threshold {
				g.pix[y*g.width+x] = Foreground
			} else {
				g.pix[y*g.width+x] = Background
			}
		}
	}

	return g
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) Size() image.Point {
	return image.Pt(g.width, g.height)
}

// At returns the intensity at x, y. Out of range reads return Background.
func (g *Grid) At(x, y int) byte {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return Background
	}
	return g.pix[y*g.width+x]
}

// String renders the grid with '1' for Foreground and '.' for anything else,
// one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.pix[y*g.width+x] == Foreground {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
