package qrc

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Placement locates one symbol inside a row composition.
type Placement struct {
	Symbol *Symbol
	Grid   ModuleGrid
	X      int
}

// Composition is the left-to-right layout of symbols at one pixel per module.
// Width is the sum of the symbols' module widths.
type Composition struct {
	Placements []Placement
	Width      int
}

// LayoutRow encodes symbols and lays them out left to right without gaps.
func LayoutRow(symbols []*Symbol) (*Composition, error) {
	if len(symbols) == 0 {
		return nil, newError(KindEmptyInput, "no QR codes to combine")
	}
	c := &Composition{Placements: make([]Placement, 0, len(symbols))}
	for i, s := range symbols {
		g, err := s.Grid()
		if err != nil {
			return nil, wrapError(KindEncoding, err, "symbol %d", i)
		}
		c.Placements = append(c.Placements, Placement{Symbol: s, Grid: g, X: c.Width})
		c.Width += g.Width()
	}
	return c, nil
}

// Combine concatenates symbols horizontally onto one square canvas whose side
// is the sum of their module widths. Each symbol is drawn at one pixel per
// module with DefaultPalette, top-aligned; the rest stays transparent.
func Combine(symbols []*Symbol) (*image.NRGBA, error) {
	layout, err := LayoutRow(symbols)
	if err != nil {
		return nil, err
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, layout.Width, layout.Width))
	for _, p := range layout.Placements {
		tile, err := RasterizeNative(p.Grid, DefaultPalette)
		if err != nil {
			return nil, err
		}
		canvas = imaging.Paste(canvas, tile, image.Pt(p.X, 0))
	}
	Logger().Debug("qrc: combined symbols", "count", len(symbols), "width", layout.Width)
	return canvas, nil
}

// OverlayImage renders the symbol at one pixel per module with
// DefaultPalette and copies fg over its top-left corner. Pixels are replaced,
// not blended. fg must fit inside the symbol.
func (s *Symbol) OverlayImage(fg image.Image) (*image.NRGBA, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	if fg == nil {
		return nil, newError(KindDimension, "nil overlay")
	}
	n := g.Width()
	fb := fg.Bounds()
	if fb.Dx() > n || fb.Dy() > n {
		return nil, newError(KindOutOfBounds, "overlay %dx%d exceeds symbol %dx%d", fb.Dx(), fb.Dy(), n, n)
	}
	canvas, err := RasterizeNative(g, DefaultPalette)
	if err != nil {
		return nil, err
	}
	return imaging.Paste(canvas, fg, image.Point{}), nil
}

// LayoutGrid arranges images, all sized like the first, in a square-ish grid
// on a white background with padding pixels between tiles and around the border.
func LayoutGrid(images []image.Image, padding int) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, newError(KindEmptyInput, "no images to create a grid from")
	}
	if padding < 0 {
		return nil, newError(KindDimension, "negative padding %d", padding)
	}
	tileW := images[0].Bounds().Dx()
	tileH := images[0].Bounds().Dy()

	cols := int(math.Ceil(math.Sqrt(float64(len(images)))))
	rows := (len(images) + cols - 1) / cols
	gridW := cols*tileW + (cols+1)*padding
	gridH := rows*tileH + (rows+1)*padding
	if err := checkSize(gridW, gridH); err != nil {
		return nil, err
	}

	canvas := imaging.New(gridW, gridH, color.White)
	for i, img := range images {
		b := img.Bounds()
		if b.Dx() > tileW || b.Dy() > tileH {
			return nil, newError(KindOutOfBounds, "image %d is %dx%d, tiles are %dx%d", i, b.Dx(), b.Dy(), tileW, tileH)
		}
		x := padding + (i%cols)*(tileW+padding)
		y := padding + (i/cols)*(tileH+padding)
		canvas = imaging.Paste(canvas, img, image.Pt(x, y))
	}
	Logger().Debug("qrc: grid layout", "tiles", len(images), "cols", cols, "rows", rows)
	return canvas, nil
}
