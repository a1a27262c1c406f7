package qrc

import (
	"image"
	"image/color"
	"sync"
)

// EncodingUTF8 is the only text encoding label a Symbol accepts.
const EncodingUTF8 = "utf-8"

// Symbol pairs a payload with its encoded module grid and an advisory text
// encoding label. It is immutable; the grid is encoded on first use.
type Symbol struct {
	data     []byte
	encoding string
	opts     []Option

	once sync.Once
	grid ModuleGrid
	err  error
}

// New returns a symbol for data. The slice is copied.
func New(data []byte, opts ...Option) *Symbol {
	return &Symbol{
		data:     append([]byte(nil), data...),
		encoding: EncodingUTF8,
		opts:     opts,
	}
}

// FromBytes is New.
func FromBytes(data []byte, opts ...Option) *Symbol {
	return New(data, opts...)
}

// FromString returns a symbol for the UTF-8 bytes of s.
func FromString(s string, opts ...Option) *Symbol {
	return New([]byte(s), opts...)
}

// Data returns a copy of the payload.
func (s *Symbol) Data() []byte {
	return append([]byte(nil), s.data...)
}

// EncodingFormat returns the text encoding label.
func (s *Symbol) EncodingFormat() string {
	return s.encoding
}

// WithEncodingFormat returns a copy of s labelled with format. Only
// EncodingUTF8 is accepted.
func (s *Symbol) WithEncodingFormat(format string) (*Symbol, error) {
	if format != EncodingUTF8 {
		return nil, newError(KindUnsupportedEncodingLabel, "unsupported encoding format %q", format)
	}
	return &Symbol{data: s.Data(), encoding: format, opts: s.opts}, nil
}

// Grid returns the encoded module grid.
func (s *Symbol) Grid() (ModuleGrid, error) {
	s.once.Do(func() {
		s.grid, s.err = Encode(s.data, s.opts...)
	})
	return s.grid, s.err
}

// Width returns the side length of the symbol in modules.
func (s *Symbol) Width() (int, error) {
	g, err := s.Grid()
	if err != nil {
		return 0, err
	}
	return g.Width(), nil
}

// Resize renders the symbol on a width×height canvas with DefaultPalette.
func (s *Symbol) Resize(width, height int) (*image.NRGBA, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	return Rasterize(g, width, height, DefaultPalette)
}

// PNG renders a width×width canvas intended for a PNG codec.
func (s *Symbol) PNG(width int) (*image.NRGBA, error) { return s.Resize(width, width) }

// JPG renders a width×width canvas intended for a JPEG codec.
func (s *Symbol) JPG(width int) (*image.NRGBA, error) { return s.Resize(width, width) }

// GIF renders a width×width canvas intended for a GIF codec.
func (s *Symbol) GIF(width int) (*image.NRGBA, error) { return s.Resize(width, width) }

// Colorize renders the symbol at one pixel per module with dark modules
// painted c and light modules opaque white.
func (s *Symbol) Colorize(c color.NRGBA) (*image.NRGBA, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	return RasterizeNative(g, AccentPalette(c))
}

// Vector describes the symbol as a vector document of at least minDimension
// units, in VectorDark on VectorLight.
func (s *Symbol) Vector(minDimension int) (*VectorDocument, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	return RenderVector(g, minDimension, VectorDark, VectorLight)
}

// SVG serializes Vector(minDimension).
func (s *Symbol) SVG(minDimension int) ([]byte, error) {
	doc, err := s.Vector(minDimension)
	if err != nil {
		return nil, err
	}
	return doc.SVG(), nil
}

// BatchGenerate returns one symbol per string, in order.
func BatchGenerate(data []string, opts ...Option) []*Symbol {
	out := make([]*Symbol, 0, len(data))
	for _, d := range data {
		out = append(out, FromString(d, opts...))
	}
	return out
}
