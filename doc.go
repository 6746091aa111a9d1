// Package ggray converts images to grayscale on the GPU.
//
// # Overview
//
// ggray is a pure Go GPU image converter built on the GoGPU ecosystem.
// It decodes an image file into a tightly packed RGBA buffer, uploads it
// to the first available GPU, runs a compute kernel that replaces every
// pixel with the average of its three color channels, reads the result
// back, and encodes it to disk. The alpha channel passes through
// untouched.
//
// # Quick Start
//
//	import "github.com/gogpu/ggray"
//
//	// One-shot file conversion (opens and closes a GPU session):
//	err := ggray.ConvertFile("photo.png", "GreyScaledImage.jpg")
//
//	// Reusing one GPU session for several images:
//	c, err := ggray.NewConverter(ggray.WithJPEGQuality(85))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//	for _, path := range paths {
//	    _, err := c.ConvertFile(path, grayName(path))
//	    // ...
//	}
//
// # Pipeline
//
// A conversion walks a fixed sequence: session open, kernel build, decode,
// upload, dispatch, blocking readback, encode. Each stage fails with a
// distinct sentinel error (ErrNoBackend, ErrKernelBuild, ErrDecode, ...)
// so callers can tell stages apart with errors.Is. GPU resources are
// released in reverse order of acquisition on every path, success or
// failure, and the output file is only created after a successful
// readback.
//
// # Kernel semantics
//
// Every pixel becomes g = (R+G+B)/3 with integer truncation; R, G and B
// are replaced by g and A is preserved. The division is exact for already
// gray pixels, so converting twice is the identity.
//
// # Logging
//
// By default ggray produces no log output. Call SetLogger with a
// log/slog logger to see lifecycle and diagnostic messages; pass nil to
// silence it again.
package ggray
