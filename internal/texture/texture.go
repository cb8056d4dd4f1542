package texture

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/pkg/errors"
)

// Size is one of the fixed checkerboard textures. None means untextured.
type Size int

const (
	None Size = iota
	Size64
	Size128
	Size256
)

// Sizes lists the texture variants in suite order, untextured first.
var Sizes = []Size{None, Size64, Size128, Size256}

// Squares is the number of checker squares along each edge.
const Squares = 8

var (
	// Light and dark checker colours.
	ColorA = color.RGBA{R: 255, G: 200, B: 100, A: 255}
	ColorB = color.RGBA{R: 100, G: 150, B: 200, A: 255}
)

// Pixels returns the edge length in pixels, 0 for None.
func (s Size) Pixels() int {
	switch s {
	case Size64:
		return 64
	case Size128:
		return 128
	case Size256:
		return 256
	}
	return 0
}

func (s Size) String() string {
	if s == None {
		return "none"
	}
	if px := s.Pixels(); px > 0 {
		return fmt.Sprintf("%dx%d", px, px)
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

// Parse accepts "none", "64x64", "64" and the like.
func Parse(label string) (Size, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" || l == "none" {
		return None, nil
	}
	for _, s := range Sizes[1:] {
		if l == s.String() || l == fmt.Sprint(s.Pixels()) {
			return s, nil
		}
	}
	return None, errors.Errorf("texture: unknown size %q", label)
}

// Checkerboard builds the Squares×Squares checker pattern at the given size.
// The pattern is drawn at one pixel per square and scaled up with nearest-neighbour
// sampling so square edges stay hard.
func Checkerboard(s Size) (*image.RGBA, error) {
	px := s.Pixels()
	if px == 0 {
		return nil, errors.Errorf("texture: no image for %s", s)
	}
	base := image.NewRGBA(image.Rect(0, 0, Squares, Squares))
	for i := 0; i < Squares; i++ {
		for j := 0; j < Squares; j++ {
			c := ColorB
			if (i+j)%2 == 0 {
				c = ColorA
			}
			base.SetRGBA(j, i, c)
		}
	}
	return transform.Resize(base, px, px, transform.NearestNeighbor), nil
}

// RGB returns the image as tightly packed 8-bit RGB rows, the layout uploaded to the GPU.
func RGB(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}

// Dump writes every checkerboard as a PNG under dir and returns the written paths.
func Dump(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "texture: creating %s", dir)
	}
	var paths []string
	for _, s := range Sizes[1:] {
		img, err := Checkerboard(s)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, "checker_"+s.String()+".png")
		if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
			return paths, errors.Wrapf(err, "texture: writing %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
