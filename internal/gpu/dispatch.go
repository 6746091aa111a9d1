package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout bounds the wait for GPU work to complete. A single-image
// dispatch finishes in milliseconds; expiry surfaces as ErrReadback.
const fenceTimeout = 5 * time.Second

// dispatchResources tracks per-dispatch GPU objects for cleanup.
type dispatchResources struct {
	device    hal.Device
	bindGroup hal.BindGroup
	cmdBuf    hal.CommandBuffer
	fence     hal.Fence
}

// cleanup destroys all tracked per-dispatch resources.
func (r *dispatchResources) cleanup() {
	if r.fence != nil {
		r.device.DestroyFence(r.fence)
	}
	if r.cmdBuf != nil {
		r.device.FreeCommandBuffer(r.cmdBuf)
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
	}
}

// dispatch binds the kernel arguments, encodes one compute pass over a
// ceil(W/8) x ceil(H/8) workgroup grid, copies the output into staging,
// submits, and performs the blocking readback into a fresh byte slice.
//
// Failure kinds: ErrArgBind for bind group creation, ErrEnqueue for the
// encode and submit chain, ErrReadback for the fence wait and the staging
// read. Per-dispatch resources are destroyed on every path.
func (s *Session) dispatch(k *Kernel, bufs *imageBuffers, w, h int) ([]byte, error) {
	res := &dispatchResources{device: s.device}
	defer res.cleanup()

	bg, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "grayscale_bind",
		Layout: k.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: bufs.Params.NativeHandle(), Offset: 0, Size: paramsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: bufs.Input.NativeHandle(), Offset: 0, Size: bufs.pixelBytes}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: bufs.Output.NativeHandle(), Offset: 0, Size: bufs.pixelBytes}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create bind group: %w", ErrArgBind, err)
	}
	res.bindGroup = bg

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "grayscale_encoder"})
	if err != nil {
		return nil, fmt.Errorf("%w: create command encoder: %w", ErrEnqueue, err)
	}
	if err := encoder.BeginEncoding("grayscale"); err != nil {
		return nil, fmt.Errorf("%w: begin encoding: %w", ErrEnqueue, err)
	}

	gw, gh := uint32(w), uint32(h) //nolint:gosec // dimensions always fit uint32
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "grayscale_pass"})
	pass.SetPipeline(k.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch((gw+7)/8, (gh+7)/8, 1)
	pass.End()

	encoder.CopyBufferToBuffer(bufs.Output, bufs.Staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: bufs.pixelBytes},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("%w: end encoding: %w", ErrEnqueue, err)
	}
	res.cmdBuf = cmdBuf

	fence, err := s.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("%w: create fence: %w", ErrEnqueue, err)
	}
	res.fence = fence
	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("%w: submit: %w", ErrEnqueue, err)
	}

	// Blocking read: fence wait plus staging read. The in-order queue
	// guarantees the dispatch completed before the read returns.
	ok, err := s.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: wait for GPU: %w", ErrReadback, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: GPU timeout after %v", ErrReadback, fenceTimeout)
	}
	readback := make([]byte, bufs.pixelBytes)
	if err := s.queue.ReadBuffer(bufs.Staging, 0, readback); err != nil {
		return nil, fmt.Errorf("%w: read staging buffer: %w", ErrReadback, err)
	}

	slogger().Debug("grayscale: dispatch complete",
		"workgroups_x", (gw+7)/8,
		"workgroups_y", (gh+7)/8)
	return readback, nil
}
