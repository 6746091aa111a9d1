package ggray

import (
	"github.com/gogpu/ggray/internal/gpu"
	intImage "github.com/gogpu/ggray/internal/image"
)

// Conversion errors, one per pipeline stage. Every error returned by
// ConvertFile, Convert, and NewConverter wraps exactly one of these, in
// pipeline order, so callers can map a failure to its stage with
// errors.Is:
//
//	if errors.Is(err, ggray.ErrNoDevice) {
//	    // host has no usable GPU
//	}
var (
	// ErrDecode reports that the input file is missing, unreadable, or
	// not a decodable image.
	ErrDecode = intImage.ErrDecode

	// ErrNoBackend reports that no GPU backend is available on this host.
	ErrNoBackend = gpu.ErrNoBackend

	// ErrNoDevice reports that no discrete or integrated GPU was found.
	ErrNoDevice = gpu.ErrNoDevice

	// ErrSessionInit reports that the GPU session could not be opened.
	ErrSessionInit = gpu.ErrSessionInit

	// ErrKernelBuild reports that the grayscale kernel failed to compile
	// or its pipeline could not be constructed.
	ErrKernelBuild = gpu.ErrKernelBuild

	// ErrBufferAlloc reports that a device buffer could not be created.
	ErrBufferAlloc = gpu.ErrBufferAlloc

	// ErrArgBind reports that kernel arguments could not be bound.
	ErrArgBind = gpu.ErrArgBind

	// ErrEnqueue reports that the kernel dispatch could not be enqueued.
	ErrEnqueue = gpu.ErrEnqueue

	// ErrReadback reports that the result could not be read back from
	// the GPU.
	ErrReadback = gpu.ErrReadback

	// ErrEncode reports that the result could not be encoded or written.
	ErrEncode = intImage.ErrEncode

	// ErrClosed reports use of a Converter after Close.
	ErrClosed = gpu.ErrSessionClosed
)
