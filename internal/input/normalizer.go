package input

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyInput      = errors.New("empty image input")
	ErrUnsupportedType = errors.New("unsupported image input type")
	ErrReadFailure     = errors.New("failed to read image input")
)

// Source is the closed set of accepted image representations. Each
// variant normalizes to one canonical byte payload.
type Source interface {
	isSource()
}

// Bytes is a raw, already-encoded image payload.
type Bytes []byte

// Path references an image file on disk, read fully.
type Path string

// Stream wraps a readable image source. Seekable streams are rewound
// to start before reading.
type Stream struct {
	Reader io.Reader
}

// Bitmap is an in-memory decoded image, re-encoded to PNG before
// transmission.
type Bitmap struct {
	Image image.Image
}

func (Bytes) isSource()  {}
func (Path) isSource()   {}
func (Stream) isSource() {}
func (Bitmap) isSource() {}

// Normalize coerces any accepted image representation into the
// canonical byte payload. It never returns partial data: a failed or
// empty read is an error, not a truncated slice.
func Normalize(src Source) ([]byte, error) {
	switch s := src.(type) {
	case Bytes:
		if len(s) == 0 {
			return nil, ErrEmptyInput
		}
		return []byte(s), nil

	case Path:
		if s == "" {
			return nil, ErrEmptyInput
		}
		data, err := os.ReadFile(string(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
		}
		if len(data) == 0 {
			return nil, ErrEmptyInput
		}
		return data, nil

	case Stream:
		if s.Reader == nil {
			return nil, ErrEmptyInput
		}
		if seeker, ok := s.Reader.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return nil, fmt.Errorf("%w: rewind: %v", ErrReadFailure, err)
			}
		}
		data, err := io.ReadAll(s.Reader)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
		}
		if len(data) == 0 {
			return nil, ErrEmptyInput
		}
		return data, nil

	case Bitmap:
		if s.Image == nil {
			return nil, ErrEmptyInput
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, s.Image); err != nil {
			return nil, fmt.Errorf("%w: png encode: %v", ErrReadFailure, err)
		}
		return buf.Bytes(), nil

	case nil:
		return nil, ErrUnsupportedType

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, src)
	}
}

// DetectFormat sniffs the encoded payload's raster format (png, jpeg,
// gif, bmp, webp). Returns "unknown" when no registered decoder
// recognizes it; the provider gets the payload either way.
func DetectFormat(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "unknown"
	}
	return format
}
