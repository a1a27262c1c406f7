package qrc

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// newCompressor is swapped in tests to exercise the fallback path.
var newCompressor = func(w io.Writer) (io.WriteCloser, error) {
	return zlib.NewWriterLevel(w, zlib.DefaultCompression)
}

// Compress deflates payload into a zlib stream at the default level, for use
// before encoding. If compression fails for any reason the original payload
// is returned unchanged; that outcome is not an error.
func Compress(payload []byte) []byte {
	var buf bytes.Buffer
	zw, err := newCompressor(&buf)
	if err != nil {
		return fallback(payload, err)
	}
	if _, err := zw.Write(payload); err != nil {
		return fallback(payload, err)
	}
	if err := zw.Close(); err != nil {
		return fallback(payload, err)
	}
	return buf.Bytes()
}

func fallback(payload []byte, err error) []byte {
	Logger().Warn("qrc: compression failed, using raw payload", "bytes", len(payload), "err", err)
	return append([]byte(nil), payload...)
}
