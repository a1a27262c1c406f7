package qrc

import (
	"image/color"
	"testing"
)

// checker returns an n×n grid with dark modules where col+row is even.
func checker(n int) BoolGrid {
	g := make(BoolGrid, n)
	for row := range g {
		g[row] = make([]bool, n)
		for col := range g[row] {
			g[row][col] = (col+row)%2 == 0
		}
	}
	return g
}

func TestRasterizeDimensions(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for width := 1; width <= 40; width++ {
			img, err := Rasterize(checker(n), width, width, DefaultPalette)
			if err != nil {
				t.Fatalf("n=%d width=%d: %v", n, width, err)
			}
			b := img.Bounds()
			if b.Dx() != width || b.Dy() != width {
				t.Fatalf("n=%d width=%d: got %dx%d", n, width, b.Dx(), b.Dy())
			}
			if len(img.Pix) != width*width*4 {
				t.Fatalf("n=%d width=%d: buffer length %d", n, width, len(img.Pix))
			}
		}
	}
}

func TestRasterizeNonSquareCanvas(t *testing.T) {
	img, err := Rasterize(checker(3), 7, 11, DefaultPalette)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 11 {
		t.Fatalf("got %v", img.Bounds())
	}
}

func TestRasterizeNativeMatchesGrid(t *testing.T) {
	palettes := []Palette{
		DefaultPalette,
		AccentPalette(color.NRGBA{R: 0xff, A: 0xff}),
		{Dark: Black, Light: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
	}
	grid := checker(5)
	grid[1][3] = true
	grid[4][0] = false
	for _, p := range palettes {
		img, err := Rasterize(grid, 5, 5, p)
		if err != nil {
			t.Fatal(err)
		}
		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				want := p.Map(grid.At(c, r))
				if got := img.NRGBAAt(c, r); got != want {
					t.Errorf("pixel (%d,%d) = %v, want %v", c, r, got, want)
				}
			}
		}
	}
}

func TestRasterizeUpscaleBlocks(t *testing.T) {
	grid := BoolGrid{
		{true, false},
		{false, false},
	}
	img, err := Rasterize(grid, 4, 4, DefaultPalette)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := White
			if x < 2 && y < 2 {
				want = Transparent
			}
			if got := img.NRGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestScaleTable(t *testing.T) {
	tests := []struct {
		size, n int
		want    []int
	}{
		{size: 4, n: 2, want: []int{0, 0, 1, 1}},
		{size: 3, n: 7, want: []int{0, 2, 4}},
		{size: 5, n: 3, want: []int{0, 0, 1, 1, 2}},
		{size: 1, n: 21, want: []int{0}},
	}
	for _, tt := range tests {
		got := scaleTable(tt.size, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("scaleTable(%d, %d) = %v, want %v", tt.size, tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("scaleTable(%d, %d) = %v, want %v", tt.size, tt.n, got, tt.want)
			}
		}
	}
}

func TestRasterizeInvalid(t *testing.T) {
	cases := []struct {
		name          string
		grid          ModuleGrid
		width, height int
	}{
		{"zero width", checker(3), 0, 3},
		{"negative height", checker(3), 3, -1},
		{"empty grid", BoolGrid{}, 3, 3},
		{"nil grid", nil, 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Rasterize(tc.grid, tc.width, tc.height, DefaultPalette)
			if !IsKind(err, KindDimension) {
				t.Fatalf("expected KindDimension, got %v", err)
			}
		})
	}
}

func TestPNGBufferLength(t *testing.T) {
	s := New([]byte{0x61, 0x62, 0x63})
	img, err := s.PNG(21)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 21 || b.Dy() != 21 {
		t.Fatalf("got %v, want 21x21", b)
	}
	if len(img.Pix) != 1764 {
		t.Fatalf("raw buffer length %d, want 1764", len(img.Pix))
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	s := FromString("https://minifunctions.com/")
	a, err := s.Resize(97, 53)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Resize(97, 53)
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Pix) != string(b.Pix) {
		t.Fatal("repeated renders differ")
	}
}
