package qrc

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// VectorQuietZone is the light border, in modules, around a vector symbol.
const VectorQuietZone = 4

// Default colours of vector output. They are literal values and do not
// follow DefaultPalette.
var (
	VectorDark  = color.NRGBA{A: 0xff}
	VectorLight = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Run is a horizontal stretch of dark modules, in module coordinates
// without the quiet zone.
type Run struct {
	Col, Row, Len int
}

// VectorDocument is a resolution-independent description of a symbol.
// Every module edge lies on a multiple of ModuleSize.
type VectorDocument struct {
	Modules    int
	QuietZone  int
	ModuleSize int
	Dark       color.NRGBA
	Light      color.NRGBA
	Runs       []Run
}

// Size is the side length of the document in user units, quiet zone included.
func (d *VectorDocument) Size() int {
	return (d.Modules + 2*d.QuietZone) * d.ModuleSize
}

// RenderVector describes grid as dark runs over a light square whose side is
// at least minDimension units. Module size is the smallest integer that
// satisfies the minimum, and never less than one.
func RenderVector(grid ModuleGrid, minDimension int, dark, light color.NRGBA) (*VectorDocument, error) {
	if err := checkGrid(grid); err != nil {
		return nil, err
	}
	if minDimension < 0 {
		return nil, newError(KindDimension, "negative minimum dimension %d", minDimension)
	}
	n := grid.Width()
	span := n + 2*VectorQuietZone
	unit := (minDimension + span - 1) / span
	if unit < 1 {
		unit = 1
	}

	doc := &VectorDocument{
		Modules:    n,
		QuietZone:  VectorQuietZone,
		ModuleSize: unit,
		Dark:       dark,
		Light:      light,
	}
	for row := 0; row < n; row++ {
		start := -1
		for col := 0; col <= n; col++ {
			on := col < n && grid.At(col, row) == Dark
			switch {
			case on && start < 0:
				start = col
			case !on && start >= 0:
				doc.Runs = append(doc.Runs, Run{Col: start, Row: row, Len: col - start})
				start = -1
			}
		}
	}
	return doc, nil
}

func (d *VectorDocument) pathData() string {
	var sb strings.Builder
	u := d.ModuleSize
	for _, r := range d.Runs {
		x := (d.QuietZone + r.Col) * u
		y := (d.QuietZone + r.Row) * u
		w := r.Len * u
		fmt.Fprintf(&sb, "M%d %dh%dv%dh-%dz", x, y, w, u, w)
	}
	return sb.String()
}

func fillAttr(c color.NRGBA) string {
	s := fmt.Sprintf(`fill="#%02x%02x%02x"`, c.R, c.G, c.B)
	if c.A != 0xff {
		s += fmt.Sprintf(` fill-opacity="%.3f"`, float64(c.A)/255)
	}
	return s
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	_, e.err = e.w.Write(p)
	return len(p), nil
}

// WriteSVG serializes the document as a standalone SVG image.
func (d *VectorDocument) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	size := d.Size()
	s := svg.New(ew)
	s.Start(size, size,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, size, size),
		`shape-rendering="crispEdges"`)
	s.Rect(0, 0, size, size, fillAttr(d.Light))
	if len(d.Runs) > 0 {
		s.Path(d.pathData(), fillAttr(d.Dark))
	}
	s.End()
	return ew.err
}

// SVG returns the serialized document.
func (d *VectorDocument) SVG() []byte {
	var buf bytes.Buffer
	_ = d.WriteSVG(&buf) // bytes.Buffer writes do not fail
	return buf.Bytes()
}
