package qrc

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"png", "jpg", "gif"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if f.String() != name {
			t.Fatalf("%s round-tripped to %s", name, f)
		}
	}
	for _, name := range []string{"jpeg", "PNG", "svg", "", "bmp"} {
		if _, err := ParseFormat(name); !IsKind(err, KindUnsupportedFormat) {
			t.Errorf("%q: expected KindUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestRenderAs(t *testing.T) {
	data := []byte{0x61, 0x62, 0x63}
	got, err := RenderAs(data, "png", 512)
	if err != nil {
		t.Fatal(err)
	}
	want, err := FromBytes(data).PNG(512)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatal("RenderAs differs from PNG render")
	}
	for _, f := range []string{"jpg", "gif"} {
		img, err := RenderAs([]byte(testURL), f, 512)
		if err != nil {
			t.Fatal(err)
		}
		if len(img.Pix) != 1048576 {
			t.Fatalf("%s: buffer length %d", f, len(img.Pix))
		}
	}
}

func TestRenderAsInvalidFormat(t *testing.T) {
	_, err := RenderAs([]byte{0, 1, 2, 3}, "jpeg", 512)
	if !IsKind(err, KindUnsupportedFormat) {
		t.Fatalf("expected KindUnsupportedFormat, got %v", err)
	}
}

func TestEncodeImage(t *testing.T) {
	img, err := FromString("codec").Colorize(Black)
	if err != nil {
		t.Fatal(err)
	}
	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PNG: func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		JPG: func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
		GIF: func(r *bytes.Reader) (image.Image, error) { return gif.Decode(r) },
	}
	for f, decode := range decoders {
		var buf bytes.Buffer
		if err := EncodeImage(&buf, img, f); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		out, err := decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("%s: decode: %v", f, err)
		}
		if out.Bounds().Size() != img.Bounds().Size() {
			t.Fatalf("%s: size %v, want %v", f, out.Bounds().Size(), img.Bounds().Size())
		}
	}
	if err := EncodeImage(&bytes.Buffer{}, img, Format(42)); !IsKind(err, KindUnsupportedFormat) {
		t.Fatalf("expected KindUnsupportedFormat, got %v", err)
	}
}

func TestEncodeAnimation(t *testing.T) {
	frames, err := RenderBatch(BatchGenerate([]string{"one", "two", "three"}), 64, AccentPalette(Black))
	if err != nil {
		t.Fatal(err)
	}
	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f
	}
	var buf bytes.Buffer
	if err := EncodeAnimation(&buf, imgs, 500); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("output is not a PNG stream")
	}
	if !bytes.Contains(buf.Bytes(), []byte("acTL")) {
		t.Fatal("output has no animation control chunk")
	}
	if err := EncodeAnimation(&buf, nil, 500); !IsKind(err, KindEmptyInput) {
		t.Fatalf("expected KindEmptyInput, got %v", err)
	}
}
