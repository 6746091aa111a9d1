package gpu

import "errors"

// Pipeline errors. Each stage of the compute pipeline fails with exactly
// one of these; callers classify with errors.Is.
var (
	// ErrNoBackend is returned when no GPU backend is registered.
	ErrNoBackend = errors.New("gpu: no backend available")

	// ErrNoDevice is returned when the backend exposes no GPU-class adapter.
	ErrNoDevice = errors.New("gpu: no GPU-class adapter found")

	// ErrSessionInit is returned when instance creation or adapter open fails.
	ErrSessionInit = errors.New("gpu: session initialization failed")

	// ErrKernelBuild is returned when the kernel source fails to compile
	// or pipeline construction is refused.
	ErrKernelBuild = errors.New("gpu: kernel build failed")

	// ErrBufferAlloc is returned when a device buffer cannot be created.
	ErrBufferAlloc = errors.New("gpu: buffer allocation failed")

	// ErrArgBind is returned when kernel arguments cannot be bound.
	ErrArgBind = errors.New("gpu: argument binding failed")

	// ErrEnqueue is returned when the dispatch cannot be encoded or submitted.
	ErrEnqueue = errors.New("gpu: dispatch enqueue failed")

	// ErrReadback is returned when the blocking result read fails or times out.
	ErrReadback = errors.New("gpu: result readback failed")

	// ErrSessionClosed is returned when converting after Close.
	ErrSessionClosed = errors.New("gpu: session is closed")
)
