// Package image adapts on-disk image files to and from the in-memory
// representation the converter works on. Decoding dispatches on the file
// extension and falls back to content sniffing; encoding dispatches on the
// output extension and defaults to JPEG.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrDecode is returned when an input file cannot be opened or decoded.
	ErrDecode = errors.New("image: decode failed")

	// ErrEncode is returned when a result cannot be encoded or written.
	ErrEncode = errors.New("image: encode failed")
)

// LoadImage loads an image from the given file path. The format is chosen
// by extension; unknown extensions are sniffed from the content. Supported
// formats: PNG, JPEG, BMP, TIFF.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return DecodePNG(f)
	case ".jpg", ".jpeg":
		return DecodeJPEG(f)
	case ".bmp":
		return DecodeBMP(f)
	case ".tif", ".tiff":
		return DecodeTIFF(f)
	default:
		return Decode(f)
	}
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// DecodePNG decodes a PNG image from the given reader.
func DecodePNG(r io.Reader) (image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// DecodeJPEG decodes a JPEG image from the given reader.
func DecodeJPEG(r io.Reader) (image.Image, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// DecodeBMP decodes a BMP image from the given reader.
func DecodeBMP(r io.Reader) (image.Image, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// DecodeTIFF decodes a TIFF image from the given reader.
func DecodeTIFF(r io.Reader) (image.Image, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// SaveImage writes the image to the given path. The format is chosen by the
// output extension; unrecognized extensions encode JPEG. The file is created
// only here, so failures in earlier pipeline stages never leave output on
// disk. quality applies to JPEG only (1-100).
func SaveImage(path string, img image.Image, quality int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	var encErr error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encErr = EncodePNG(f, img)
	case ".bmp":
		encErr = EncodeBMP(f, img)
	case ".tif", ".tiff":
		encErr = EncodeTIFF(f, img)
	default:
		encErr = EncodeJPEG(f, img, quality)
	}
	if encErr != nil {
		_ = f.Close()
		return encErr
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// EncodePNG encodes the image as PNG to the given writer.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// EncodeJPEG encodes the image as JPEG to the given writer with the given
// quality (1-100, clamped).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// EncodeBMP encodes the image as BMP to the given writer.
func EncodeBMP(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// EncodeTIFF encodes the image as TIFF to the given writer.
func EncodeTIFF(w io.Writer, img image.Image) error {
	if err := tiff.Encode(w, img, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}
