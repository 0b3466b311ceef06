// Package palette is the canonical in-memory palette model shared by every
// format codec. Color components are always stored in [0,1]; codecs remap to
// and from their native ranges at the edges (see remap.go).
package palette

// RGB is a red/green/blue triple.
type RGB struct {
	R, G, B float64
}

// CMYK is a cyan/magenta/yellow/key quadruple.
type CMYK struct {
	C, M, Y, K float64
}

// Lab is a lightness/a/b triple, normalized into [0,1].
type Lab struct {
	L, A, B float64
}

// Gray is a single-channel grayscale value.
type Gray struct {
	K float64
}

// Swatch is one named color. A swatch may carry the same color in several
// spaces at once; nil means the space is absent.
type Swatch struct {
	Name string
	Spot bool
	RGB  *RGB
	CMYK *CMYK
	Lab  *Lab
	Gray *Gray
}

// Group is a named run of swatches.
type Group struct {
	Name     string
	Swatches []Swatch
}

// Palette is a full document: loose swatches plus named groups, in source
// order.
type Palette struct {
	Name     string
	Groups   []Group
	Swatches []Swatch
}

// Count returns the total number of swatches, grouped and loose.
func (p *Palette) Count() int {
	n := len(p.Swatches)
	for _, group := range p.Groups {
		n += len(group.Swatches)
	}
	return n
}
