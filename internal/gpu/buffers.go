package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// paramsSize is the byte size of the params uniform: two u32 fields plus
// two pad words, matching the WGSL Params struct.
const paramsSize = 16

// dispatchParams is the uniform consumed by the kernel.
type dispatchParams struct {
	Width  uint32
	Height uint32
}

// toBytes serializes dispatchParams to a little-endian byte slice.
func (p dispatchParams) toBytes() []byte {
	buf := make([]byte, paramsSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], p.Width)
	le.PutUint32(buf[4:8], p.Height)
	return buf
}

// imageBuffers are the per-image device allocations: read-only input
// pixels, write-only output pixels, the CPU-readable staging window for
// readback, and the params uniform.
type imageBuffers struct {
	Input   hal.Buffer
	Output  hal.Buffer
	Staging hal.Buffer
	Params  hal.Buffer

	pixelBytes uint64
}

// createImageBuffers allocates the buffer set for a WxH image and uploads
// the packed host pixels and dispatch params. Any creation failure wraps
// ErrBufferAlloc naming the buffer and releases whatever was already
// created, in reverse order.
func (s *Session) createImageBuffers(pixels []byte, w, h int) (*imageBuffers, error) {
	pixelBytes := uint64(len(pixels))
	bufs := &imageBuffers{pixelBytes: pixelBytes}

	// bufSpec maps a label and size to a target pointer and usage flags.
	type bufSpec struct {
		target *hal.Buffer
		label  string
		size   uint64
		usage  gputypes.BufferUsage
	}
	specs := []bufSpec{
		{&bufs.Input, "gray_input", pixelBytes, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst},
		{&bufs.Output, "gray_output", pixelBytes, gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc},
		{&bufs.Staging, "gray_staging", pixelBytes, gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst},
		{&bufs.Params, "gray_params", paramsSize, gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst},
	}

	for _, spec := range specs {
		buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
			Label: spec.label, Size: spec.size, Usage: spec.usage,
		})
		if err != nil {
			s.destroyImageBuffers(bufs)
			return nil, fmt.Errorf("%w: create %s buffer: %w", ErrBufferAlloc, spec.label, err)
		}
		*spec.target = buf
	}

	// Copy-on-create: input pixels and params are staged before any
	// dispatch referencing them is enqueued on the in-order queue.
	s.queue.WriteBuffer(bufs.Input, 0, pixels)
	s.queue.WriteBuffer(bufs.Params, 0, dispatchParams{Width: uint32(w), Height: uint32(h)}.toBytes()) //nolint:gosec // dimensions always fit uint32

	slogger().Debug("grayscale: buffers allocated",
		"target", fmt.Sprintf("%dx%d", w, h),
		"pixel_bytes", pixelBytes)
	return bufs, nil
}

// destroyImageBuffers releases the buffer set in reverse allocation order.
// Safe on partially created sets and idempotent.
func (s *Session) destroyImageBuffers(bufs *imageBuffers) {
	if bufs == nil || s.device == nil {
		return
	}
	for _, buf := range []*hal.Buffer{&bufs.Params, &bufs.Staging, &bufs.Output, &bufs.Input} {
		if *buf != nil {
			s.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
}

// packPixels converts tightly packed RGBA bytes into the little-endian u32
// layout the kernel addresses (R in the low byte).
func packPixels(data []uint8, pixelCount int) []byte {
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		srcIdx := i * 4
		r := uint32(data[srcIdx+0])
		g := uint32(data[srcIdx+1])
		b := uint32(data[srcIdx+2])
		a := uint32(data[srcIdx+3])
		packed := r | (g << 8) | (b << 16) | (a << 24)
		binary.LittleEndian.PutUint32(out[i*4:], packed)
	}
	return out
}

// unpackPixels converts packed u32 results back into RGBA bytes.
func unpackPixels(packed []byte, dst []uint8, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		val := binary.LittleEndian.Uint32(packed[i*4:])
		dstIdx := i * 4
		dst[dstIdx+0] = uint8(val & 0xFF)         //nolint:gosec // masked to 8 bits
		dst[dstIdx+1] = uint8((val >> 8) & 0xFF)  //nolint:gosec // masked to 8 bits
		dst[dstIdx+2] = uint8((val >> 16) & 0xFF) //nolint:gosec // masked to 8 bits
		dst[dstIdx+3] = uint8((val >> 24) & 0xFF) //nolint:gosec // masked to 8 bits
	}
}
