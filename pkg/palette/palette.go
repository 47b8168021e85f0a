// Package palette maps escape counts to colors.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/willbeason/escapetime/pkg/escape"
)

// Size is the number of entries in every palette's lookup table.
const Size = 256

// ErrUnknownPalette is returned by Lookup for names not in Names.
var ErrUnknownPalette = errors.New("unknown palette")

// A Palette is a named lookup table running from low counts to high counts.
type Palette struct {
	Name  string
	table [Size]color.RGBA
}

// New builds a palette by blending evenly spaced anchor colors in CIE-L*a*b* space.
func New(name string, anchors ...colorful.Color) *Palette {
	p := &Palette{Name: name}
	if len(anchors) == 0 {
		return p
	}
	if len(anchors) == 1 {
		for i := range p.table {
			p.table[i] = rgba(anchors[0])
		}
		return p
	}

	segments := float64(len(anchors) - 1)
	for i := range p.table {
		t := float64(i) / (Size - 1) * segments
		k := int(t)
		if k >= len(anchors)-1 {
			k = len(anchors) - 2
		}
		p.table[i] = rgba(anchors[k].BlendLab(anchors[k+1], t-float64(k)))
	}
	return p
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// At returns the color for t in [0, 1]; t outside the range is clamped.
func (p *Palette) At(t float64) color.RGBA {
	switch {
	case !(t > 0):
		return p.table[0]
	case t >= 1:
		return p.table[Size-1]
	}
	return p.table[int(t*Size)]
}

// Count returns the color for an escape count normalized against maxIter.
func (p *Palette) Count(n uint32, maxIter int) color.RGBA {
	if maxIter <= 0 {
		return p.table[Size-1]
	}
	return p.At(float64(n) / float64(maxIter))
}

// Colorize paints g into a new image, normalizing counts from 0 to maxIter.
// Cell (i, j) lands on pixel (i, Height-1-j) so the imaginary axis points up.
func Colorize(g *escape.Grid, maxIter int, p *Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	ColorizeInto(img, g, maxIter, p)
	return img
}

// ColorizeInto is Colorize onto an existing image with the grid's bounds.
func ColorizeInto(img *image.RGBA, g *escape.Grid, maxIter int, p *Palette) {
	for i := 0; i < g.Width; i++ {
		for j, n := range g.Column(i) {
			img.SetRGBA(i, g.Height-1-j, p.Count(n, maxIter))
		}
	}
}

func (p *Palette) String() string {
	return p.Name
}

// Lookup returns the builtin palette with the given name.
func Lookup(name string) (*Palette, error) {
	for _, p := range builtin {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownPalette, name, Names())
}

// Index returns the position of name in Names, or -1.
func Index(name string) int {
	for i, p := range builtin {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the i-th builtin palette, wrapping in both directions.
func Get(i int) *Palette {
	n := len(builtin)
	return builtin[((i%n)+n)%n]
}

// Len is the number of builtin palettes.
func Len() int {
	return len(builtin)
}

// Names lists the builtin palettes in cycling order.
func Names() []string {
	names := make([]string, len(builtin))
	for i, p := range builtin {
		names[i] = p.Name
	}
	return names
}
