package qrc

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RenderBatch renders every symbol as a width×width canvas coloured by p.
// Symbols are rendered in parallel; the result keeps input order. The first
// failure is returned.
func RenderBatch(symbols []*Symbol, width int, p Palette) ([]*image.NRGBA, error) {
	if len(symbols) == 0 {
		return nil, newError(KindEmptyInput, "no symbols to render")
	}
	out := make([]*image.NRGBA, len(symbols))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range symbols {
		g.Go(func() error {
			grid, err := s.Grid()
			if err != nil {
				return err
			}
			img, err := Rasterize(grid, width, width, p)
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
