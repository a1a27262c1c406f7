package qrc

import (
	"image"

	"github.com/disintegration/imaging"
)

// OverlayWatermark alpha-blends watermark onto the bottom-right corner of
// base, in place, using non-premultiplied "over" compositing:
//
//	out.rgb = (1-α)·base.rgb + α·wm.rgb
//	out.a   = base.a + α·(255-base.a)
//
// with α = wm.a/255 and each channel truncated on store. A watermark larger
// than base in either dimension is rejected and base is left untouched.
func OverlayWatermark(base *image.NRGBA, watermark image.Image) error {
	if base == nil || watermark == nil {
		return newError(KindDimension, "nil canvas")
	}
	bb := base.Bounds()
	wb := watermark.Bounds()
	if wb.Dx() > bb.Dx() || wb.Dy() > bb.Dy() {
		return newError(KindOutOfBounds, "watermark %dx%d exceeds canvas %dx%d",
			wb.Dx(), wb.Dy(), bb.Dx(), bb.Dy())
	}

	wm := imaging.Clone(watermark)
	ox := bb.Max.X - wb.Dx()
	oy := bb.Max.Y - wb.Dy()
	for dy := 0; dy < wb.Dy(); dy++ {
		src := wm.Pix[dy*wm.Stride:]
		dst := base.Pix[base.PixOffset(ox, oy+dy):]
		for dx := 0; dx < wb.Dx(); dx++ {
			i := dx * 4
			blendOver(dst[i:i+4:i+4], src[i:i+4:i+4])
		}
	}
	Logger().Debug("qrc: watermark applied", "x", ox, "y", oy, "width", wb.Dx(), "height", wb.Dy())
	return nil
}

// blendOver composites one non-premultiplied RGBA pixel src over dst.
func blendOver(dst, src []uint8) {
	a := float32(src[3]) / 255
	dst[0] = uint8((1-a)*float32(dst[0]) + a*float32(src[0]))
	dst[1] = uint8((1-a)*float32(dst[1]) + a*float32(src[1]))
	dst[2] = uint8((1-a)*float32(dst[2]) + a*float32(src[2]))
	dst[3] = uint8(float32(dst[3]) + a*(255-float32(dst[3])))
}
