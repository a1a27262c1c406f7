package qrc

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/kettek/apng"
)

// Format is a raster output format.
type Format int

const (
	PNG Format = iota
	JPG
	GIF
)

var formatNames = map[string]Format{
	"png": PNG,
	"jpg": JPG,
	"gif": GIF,
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPG:
		return "jpg"
	case GIF:
		return "gif"
	}
	return "unknown"
}

// ParseFormat resolves a format name. Only "png", "jpg" and "gif" are known;
// note that "jpeg" is rejected.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[name]
	if !ok {
		return 0, newError(KindUnsupportedFormat, "invalid format %q", name)
	}
	return f, nil
}

// RenderAs renders data as a width×width canvas for the named format.
func RenderAs(data []byte, format string, width int, opts ...Option) (*image.NRGBA, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	s := FromBytes(data, opts...)
	switch f {
	case JPG:
		return s.JPG(width)
	case GIF:
		return s.GIF(width)
	default:
		return s.PNG(width)
	}
}

// EncodeImage writes img to w in format f.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	var target imaging.Format
	switch f {
	case PNG:
		target = imaging.PNG
	case JPG:
		target = imaging.JPEG
	case GIF:
		target = imaging.GIF
	default:
		return newError(KindUnsupportedFormat, "invalid format %d", int(f))
	}
	return imaging.Encode(w, img, target)
}

// EncodeAnimation writes frames as an animated PNG, showing each frame for delayMs.
func EncodeAnimation(w io.Writer, frames []image.Image, delayMs int) error {
	if len(frames) == 0 {
		return newError(KindEmptyInput, "no frames to animate")
	}
	if delayMs < 0 || delayMs > 0xffff {
		return newError(KindDimension, "frame delay %dms out of range", delayMs)
	}
	a := apng.APNG{Frames: make([]apng.Frame, 0, len(frames))}
	for _, img := range frames {
		a.Frames = append(a.Frames, apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(delayMs),
			DelayDenominator: 1000, // milliseconds
		})
	}
	return apng.Encode(w, a)
}
