package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/kettek/apng"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
)

// decodeSingleQR returns the payload of the longest QR found in the image,
// trying the hybrid binarizer first and the global histogram one second.
func decodeSingleQR(img image.Image) ([]byte, error) {
	payloads, err := decodeAll(img)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payloads, func(i, j int) bool {
		return len(payloads[i]) > len(payloads[j])
	})
	return payloads[0], nil
}

func decodeAll(img image.Image) ([][]byte, error) {
	src := gozxing.NewLuminanceSourceFromImage(img)
	reader := qrcode.NewQRCodeMultiReader()
	binarizers := []gozxing.Binarizer{
		gozxing.NewHybridBinarizer(src),
		gozxing.NewGlobalHistgramBinarizer(src),
	}
	for _, b := range binarizers {
		bmp, err := gozxing.NewBinaryBitmap(b)
		if err != nil {
			continue
		}
		results, err := reader.DecodeMultiple(bmp, nil)
		if err != nil || len(results) == 0 {
			continue
		}
		payloads := make([][]byte, 0, len(results))
		for _, r := range results {
			payloads = append(payloads, payloadOf(r))
		}
		return payloads, nil
	}
	return nil, errors.New("no QR code found")
}

// payloadOf prefers the raw byte-mode segments over the decoded text, whose
// charset the decoder only guesses. Numeric and alphanumeric symbols carry no
// segments and are plain ASCII.
func payloadOf(r *gozxing.Result) []byte {
	if segs, ok := r.GetResultMetadata()[gozxing.ResultMetadataType_BYTE_SEGMENTS].([][]byte); ok && len(segs) > 0 {
		var out []byte
		for _, seg := range segs {
			out = append(out, seg...)
		}
		return out
	}
	return []byte(r.GetText())
}

// detectAllQRCodes tries several preprocessing and rotation variants and
// returns the payloads of the first variant that decodes.
func detectAllQRCodes(img image.Image) ([][]byte, error) {
	cropped := cropMargins(img)
	contrast := boostContrast(img)
	variants := []image.Image{img, cropped, imaging.Grayscale(img), contrast}
	for _, im := range []image.Image{img, cropped, contrast} {
		variants = append(variants, imaging.Rotate90(im), imaging.Rotate180(im), imaging.Rotate270(im))
	}
	for _, im := range variants {
		if payloads, err := decodeAll(im); err == nil {
			return payloads, nil
		}
	}
	return nil, errors.New("no QR codes detected")
}

// boostContrast applies a linear contrast stretch around mid-grey.
func boostContrast(src image.Image) image.Image {
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		apply := func(v uint8) uint8 {
			f := (float64(v)-128)*1.5 + 128
			return uint8(max(0, min(255, f)))
		}
		return color.NRGBA{R: apply(c.R), G: apply(c.G), B: apply(c.B), A: c.A}
	})
}

// cropMargins trims uniform light margins around the content, keeping a small pad.
func cropMargins(src image.Image) image.Image {
	b := src.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y

	isContent := func(c color.Color) bool {
		r, g, bl, _ := c.RGBA()
		return uint8(r>>8) < 240 || uint8(g>>8) < 240 || uint8(bl>>8) < 240
	}

	stepX := max(1, b.Dx()/400)
	stepY := max(1, b.Dy()/400)
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			if isContent(src.At(x, y)) {
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
			}
		}
	}
	if minX >= maxX || minY >= maxY {
		return src
	}
	padX := max(4, b.Dx()/100)
	padY := max(4, b.Dy()/100)
	r := image.Rect(
		max(b.Min.X, minX-padX), max(b.Min.Y, minY-padY),
		min(b.Max.X, maxX+padX), min(b.Max.Y, maxY+padY),
	)
	return imaging.Crop(src, r)
}

// decodeFile decodes every QR in path. Animated PNGs are read frame by frame;
// framed payloads are reassembled. It returns the data and the frame count.
func decodeFile(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	if a, err := apng.DecodeAll(f); err == nil && len(a.Frames) > 1 {
		var frames [][]byte
		for i, fr := range a.Frames {
			b, err := decodeSingleQR(fr.Image)
			if err != nil {
				logger.Debug("frame without QR", "frame", i, "err", err)
				continue
			}
			frames = append(frames, b)
		}
		if len(frames) == 0 {
			return nil, 0, errors.New("no data decoded from APNG frames")
		}
		return reassembleFrames(frames)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open image: %w", err)
	}
	payloads, err := detectAllQRCodes(img)
	if err != nil {
		return nil, 0, err
	}
	if len(payloads) == 1 {
		return payloads[0], 1, nil
	}
	return reassembleFrames(payloads)
}
