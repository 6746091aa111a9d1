package ggray

import (
	"errors"

	"github.com/disintegration/imaging"

	"github.com/gogpu/ggray/internal/gpu"
	intImage "github.com/gogpu/ggray/internal/image"
)

var errNilPixmap = errors.New("ggray: nil pixmap")

// Converter owns a GPU session and the grayscale kernel compiled against
// it, reused across conversions. A Converter must be closed; Close
// releases the kernel and the session in reverse order of acquisition.
type Converter struct {
	accel *gpu.Accelerator
	opts  convertOptions
}

// NewConverter opens a GPU session and builds the grayscale kernel.
//
// Failure kinds, in pipeline order: ErrNoBackend when no GPU backend is
// available, ErrNoDevice when no discrete or integrated GPU exists,
// ErrSessionInit when the device cannot be opened, and ErrKernelBuild
// when the kernel fails to compile.
func NewConverter(opts ...Option) (*Converter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	accel, err := gpu.New(gpu.Config{Provider: o.provider})
	if err != nil {
		return nil, err
	}
	return &Converter{accel: accel, opts: o}, nil
}

// AdapterName returns the name of the GPU adapter in use, or an empty
// string after Close.
func (c *Converter) AdapterName() string {
	return c.accel.AdapterName()
}

// Convert runs the grayscale kernel over src and returns the result as a
// new Pixmap of the same dimensions. src is not modified.
func (c *Converter) Convert(src *Pixmap) (*Pixmap, error) {
	if src == nil {
		return nil, errNilPixmap
	}
	out, err := c.accel.Convert(src.Data(), src.Width(), src.Height())
	if err != nil {
		return nil, err
	}
	return &Pixmap{width: src.Width(), height: src.Height(), data: out}, nil
}

// ConvertFile decodes the image at inPath, converts it on the GPU, and
// encodes the result to outPath. The output format follows the outPath
// extension, defaulting to JPEG. The returned pixmap holds the converted
// pixels already written to disk.
//
// The output file is created only after a successful readback, so a
// failing conversion never leaves partial output behind.
func (c *Converter) ConvertFile(inPath, outPath string) (*Pixmap, error) {
	img, err := intImage.LoadImage(inPath)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	Logger().Debug("grayscale: input decoded",
		"path", inPath, "width", b.Dx(), "height", b.Dy())

	if m := c.opts.maxDimension; m > 0 && (b.Dx() > m || b.Dy() > m) {
		img = imaging.Fit(img, m, m, imaging.Lanczos)
		b = img.Bounds()
		Logger().Debug("grayscale: input downscaled",
			"max", m, "width", b.Dx(), "height", b.Dy())
	}

	dst, err := c.Convert(FromImage(img))
	if err != nil {
		return nil, err
	}

	if err := intImage.SaveImage(outPath, dst.ToImage(), c.opts.jpegQuality); err != nil {
		return nil, err
	}
	Logger().Info("grayscale: output written", "path", outPath)
	return dst, nil
}

// Close releases the kernel and the GPU session. Close is idempotent;
// Convert after Close returns ErrClosed.
func (c *Converter) Close() {
	c.accel.Close()
}

// Convert converts a single pixmap with a freshly opened GPU session,
// which is closed again before returning.
func Convert(src *Pixmap, opts ...Option) (*Pixmap, error) {
	c, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Convert(src)
}

// ConvertFile converts the image file at inPath into a grayscale image at
// outPath with a freshly opened GPU session, which is closed again before
// returning. See Converter.ConvertFile for the pipeline details.
func ConvertFile(inPath, outPath string, opts ...Option) error {
	c, err := NewConverter(opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.ConvertFile(inPath, outPath)
	return err
}
