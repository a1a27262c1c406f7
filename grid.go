package qrc

import (
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
	"github.com/makiuchi-d/gozxing/qrcode/encoder"
)

// Module is the state of one cell of a QR symbol.
type Module bool

const (
	Light Module = false
	Dark  Module = true
)

func (m Module) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// ModuleGrid is a read-only square grid of modules.
// Coordinates are zero-based with col, row in [0, Width()).
type ModuleGrid interface {
	Width() int
	At(col, row int) Module
}

// ErrorCorrection selects the redundancy level of the encoded symbol.
type ErrorCorrection int

const (
	ErrorCorrectionL ErrorCorrection = iota
	ErrorCorrectionM
	ErrorCorrectionQ
	ErrorCorrectionH
)

func (l ErrorCorrection) level() decoder.ErrorCorrectionLevel {
	switch l {
	case ErrorCorrectionL:
		return decoder.ErrorCorrectionLevel_L
	case ErrorCorrectionQ:
		return decoder.ErrorCorrectionLevel_Q
	case ErrorCorrectionH:
		return decoder.ErrorCorrectionLevel_H
	default:
		return decoder.ErrorCorrectionLevel_M
	}
}

type encodeConfig struct {
	ecl ErrorCorrection
}

// Option configures how a payload is encoded into a ModuleGrid.
type Option func(*encodeConfig)

// WithErrorCorrection sets the error correction level. The default is M.
func WithErrorCorrection(l ErrorCorrection) Option {
	return func(c *encodeConfig) { c.ecl = l }
}

func newEncodeConfig(opts []Option) encodeConfig {
	cfg := encodeConfig{ecl: ErrorCorrectionM}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// matrixGrid adapts a gozxing byte matrix to ModuleGrid.
type matrixGrid struct {
	m *encoder.ByteMatrix
}

func (g matrixGrid) Width() int { return g.m.GetWidth() }

func (g matrixGrid) At(col, row int) Module {
	return g.m.Get(col, row) == 1
}

// Encode runs the QR encoder over payload and returns its module grid,
// without quiet zone.
func Encode(payload []byte, opts ...Option) (ModuleGrid, error) {
	cfg := newEncodeConfig(opts)

	// ISO-8859-1 maps every byte to one rune, so arbitrary binary payloads
	// survive the encoder's string interface unchanged.
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_CHARACTER_SET: "ISO-8859-1",
	}
	code, err := encoder.Encoder_encode(latin1(payload), cfg.ecl.level(), hints)
	if err != nil {
		return nil, wrapError(KindEncoding, err, "encode %d byte payload", len(payload))
	}
	m := code.GetMatrix()
	if m == nil || m.GetWidth() < 1 {
		return nil, newError(KindEncoding, "encoder produced no matrix")
	}
	return matrixGrid{m: m}, nil
}

func latin1(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}

// BoolGrid is a ModuleGrid over a caller-supplied row-major slice,
// true meaning Dark. Every row must hold len(g) entries.
type BoolGrid [][]bool

func (g BoolGrid) Width() int { return len(g) }

func (g BoolGrid) At(col, row int) Module { return Module(g[row][col]) }
