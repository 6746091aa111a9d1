package gpu

import (
	"fmt"
	"sync"
)

// Config configures the accelerator.
type Config struct {
	// Provider optionally shares an external GPU device; see SessionConfig.
	Provider any
}

// Accelerator owns a session and the grayscale kernel built against it.
// One accelerator converts any number of images sequentially; a mutex
// serializes Convert and Close.
type Accelerator struct {
	mu      sync.Mutex
	session *Session
	kernel  *Kernel
}

// New opens a session and builds the grayscale kernel. On kernel build
// failure the session is closed again before the error returns.
func New(cfg Config) (*Accelerator, error) {
	session, err := OpenSession(SessionConfig{Provider: cfg.Provider})
	if err != nil {
		return nil, err
	}
	kernel, err := BuildKernel(session, grayShaderSource, grayEntryPoint)
	if err != nil {
		session.Close()
		return nil, err
	}
	return &Accelerator{session: session, kernel: kernel}, nil
}

// AdapterName returns the selected adapter's name for diagnostics.
// Empty after Close.
func (a *Accelerator) AdapterName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ""
	}
	return a.session.AdapterName()
}

// Convert runs the grayscale kernel over a tightly packed RGBA buffer of
// w*h pixels and returns the converted buffer. The input slice is not
// modified. Per-image buffers are created, dispatched over, read back,
// and released before Convert returns, on failure paths included.
func (a *Accelerator) Convert(pixels []byte, w, h int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, ErrSessionClosed
	}
	if w <= 0 || h <= 0 || len(pixels) != w*h*4 {
		return nil, fmt.Errorf("gpu: invalid pixel buffer: %d bytes for %dx%d RGBA", len(pixels), w, h)
	}

	count := w * h
	packed := packPixels(pixels, count)

	bufs, err := a.session.createImageBuffers(packed, w, h)
	if err != nil {
		return nil, err
	}
	defer a.session.destroyImageBuffers(bufs)

	readback, err := a.session.dispatch(a.kernel, bufs, w, h)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(pixels))
	unpackPixels(readback, out, count)
	return out, nil
}

// Close releases the kernel then the session, reverse of construction.
// Idempotent and safe after partial construction.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.kernel != nil {
		a.kernel.Release(a.session)
		a.kernel = nil
	}
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
}
