package input

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize_Bytes(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}

	got, err := Normalize(Bytes(payload))
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload changed: %v", got)
	}
}

func TestNormalize_EmptyBytes(t *testing.T) {
	if _, err := Normalize(Bytes(nil)); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalize_Path(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	payload := []byte("fake image data")
	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	got, err := Normalize(Path(path))
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload changed: %v", got)
	}
}

func TestNormalize_PathMissing(t *testing.T) {
	_, err := Normalize(Path(filepath.Join(t.TempDir(), "missing.png")))
	if !errors.Is(err, ErrReadFailure) {
		t.Errorf("expected ErrReadFailure, got %v", err)
	}
}

func TestNormalize_PathEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := Normalize(Path(path)); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalize_StreamRewindsToStart(t *testing.T) {
	reader := strings.NewReader("stream payload")
	// Simulate a caller that already consumed part of the stream.
	if _, err := io.CopyN(io.Discard, reader, 7); err != nil {
		t.Fatalf("failed to advance reader: %v", err)
	}

	got, err := Normalize(Stream{Reader: reader})
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if string(got) != "stream payload" {
		t.Errorf("expected full payload from start, got %q", got)
	}
}

func TestNormalize_NilStream(t *testing.T) {
	if _, err := Normalize(Stream{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalize_EmptyStream(t *testing.T) {
	if _, err := Normalize(Stream{Reader: strings.NewReader("")}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalize_BitmapEncodesPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	got, err := Normalize(Bitmap{Image: img})
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("payload is not valid PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds changed: %v", decoded.Bounds())
	}
}

func TestNormalize_NilBitmap(t *testing.T) {
	if _, err := Normalize(Bitmap{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalize_NilSource(t *testing.T) {
	if _, err := Normalize(nil); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	if got := DetectFormat(buf.Bytes()); got != "png" {
		t.Errorf("DetectFormat(png) = %q", got)
	}
	if got := DetectFormat([]byte("definitely not an image")); got != "unknown" {
		t.Errorf("DetectFormat(garbage) = %q", got)
	}
}
