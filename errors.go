package qrc

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
// Callers should branch on Kind rather than on error strings.
type Kind string

const (
	// KindEncoding reports that the QR encoder rejected the payload,
	// for example because it exceeds the capacity of the largest symbol.
	KindEncoding Kind = "Encoding"
	// KindUnsupportedFormat reports a raster format outside png, jpg and gif.
	KindUnsupportedFormat Kind = "UnsupportedFormat"
	// KindEmptyInput reports a composition over zero symbols or images.
	KindEmptyInput Kind = "EmptyInput"
	// KindUnsupportedEncodingLabel reports a text encoding label other than EncodingUTF8.
	KindUnsupportedEncodingLabel Kind = "UnsupportedEncodingLabel"
	// KindOutOfBounds reports an overlay or watermark larger than its base canvas.
	KindOutOfBounds Kind = "OutOfBounds"
	// KindDimension reports a non-positive canvas size or an empty module grid.
	KindDimension Kind = "Dimension"
)

// Error is the structured error returned by every fallible operation in this package.
// Use errors.As to extract it, or IsKind to test the category.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return "qrc: " + e.Message + ": " + e.Cause.Error()
	}
	return "qrc: " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
