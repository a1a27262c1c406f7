package qrc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
)

func TestCompressRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte("abc"),
		[]byte(strings.Repeat("https://minifunctions.com/ ", 40)),
	}
	for _, p := range payloads {
		out := Compress(p)
		zr, err := zlib.NewReader(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("%d bytes: not a zlib stream: %v", len(p), err)
		}
		got, err := io.ReadAll(zr)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("round trip mismatch for %q", p)
		}
	}
}

func TestCompressShrinksRepetitiveInput(t *testing.T) {
	p := []byte(strings.Repeat("qr", 500))
	if out := Compress(p); len(out) >= len(p) {
		t.Fatalf("compressed %d bytes into %d", len(p), len(out))
	}
}

type brokenWriter struct{ failOnClose bool }

func (b brokenWriter) Write(p []byte) (int, error) {
	if b.failOnClose {
		return len(p), nil
	}
	return 0, errors.New("write failed")
}

func (b brokenWriter) Close() error {
	if b.failOnClose {
		return errors.New("close failed")
	}
	return nil
}

func TestCompressFallback(t *testing.T) {
	payload := []byte("fallback payload")
	cases := []struct {
		name    string
		factory func(io.Writer) (io.WriteCloser, error)
	}{
		{"constructor", func(io.Writer) (io.WriteCloser, error) { return nil, errors.New("no encoder") }},
		{"write", func(io.Writer) (io.WriteCloser, error) { return brokenWriter{}, nil }},
		{"close", func(io.Writer) (io.WriteCloser, error) { return brokenWriter{failOnClose: true}, nil }},
	}
	orig := newCompressor
	defer func() { newCompressor = orig }()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			newCompressor = tc.factory
			got := Compress(payload)
			if !bytes.Equal(got, payload) {
				t.Fatalf("got %q, want original payload", got)
			}
			got[0] = 'X'
			if payload[0] == 'X' {
				t.Fatal("fallback aliases the caller's slice")
			}
		})
	}
}
