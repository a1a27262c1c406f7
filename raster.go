package qrc

import (
	"image"
)

// scaleTable maps each of size destination pixels to a source module index
// in [0, n) by nearest-neighbour sampling: floor(i*n/size).
func scaleTable(size, n int) []int {
	t := make([]int, size)
	for i := range t {
		src := i * n / size
		if src >= n {
			src = n - 1
		}
		t[i] = src
	}
	return t
}

func checkGrid(grid ModuleGrid) error {
	if grid == nil || grid.Width() < 1 {
		return newError(KindDimension, "module grid is empty")
	}
	return nil
}

func checkSize(width, height int) error {
	if width < 1 || height < 1 {
		return newError(KindDimension, "invalid canvas size %dx%d (both must be > 0)", width, height)
	}
	return nil
}

// Rasterize samples grid onto a width×height canvas using nearest-neighbour
// mapping and colours each pixel from p. When the canvas is smaller than the
// grid some modules are skipped entirely; that loss is accepted.
func Rasterize(grid ModuleGrid, width, height int, p Palette) (*image.NRGBA, error) {
	if err := checkGrid(grid); err != nil {
		return nil, err
	}
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	n := grid.Width()
	cols := scaleTable(width, n)
	rows := scaleTable(height, n)

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y, row := range rows {
		line := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x, col := range cols {
			c := p.Map(grid.At(col, row))
			i := x * 4
			line[i+0] = c.R
			line[i+1] = c.G
			line[i+2] = c.B
			line[i+3] = c.A
		}
	}
	Logger().Debug("qrc: rasterized", "modules", n, "width", width, "height", height)
	return img, nil
}

// RasterizeNative renders grid at one pixel per module.
func RasterizeNative(grid ModuleGrid, p Palette) (*image.NRGBA, error) {
	if err := checkGrid(grid); err != nil {
		return nil, err
	}
	return Rasterize(grid, grid.Width(), grid.Width(), p)
}
