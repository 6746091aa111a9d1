// Package gpu runs the grayscale compute kernel on a WebGPU device.
//
// This is an internal package used by the ggray library. It talks to the
// GPU via the gogpu/wgpu Pure Go WebGPU HAL (zero CGO), with the Vulkan
// backend registered by blank import.
//
// # Pipeline
//
// A conversion walks a fixed acquisition chain, released strictly in
// reverse order:
//
//	Backend -> Instance -> Adapter -> Device/Queue        (Session)
//	WGSL -> SPIR-V -> ShaderModule -> ComputePipeline     (Kernel)
//	Input/Output/Staging/Params buffers                   (per image)
//	BindGroup -> Encoder -> Dispatch -> Fence -> ReadBuffer
//
// Key components:
//
//   - Session: backend probe, GPU-class adapter selection, device open
//   - Kernel: WGSL compilation via naga and compute pipeline construction
//   - Accelerator: one session plus one kernel, converting images
//     sequentially
//
// The kernel replaces every pixel with the truncating average of its
// three color channels; alpha is carried through unchanged. Dispatches
// are rounded up to whole 8x8 workgroups and the shader bounds-checks
// against the image dimensions.
//
// # Error Handling
//
// Each pipeline stage fails with exactly one sentinel from errors.go
// (ErrNoBackend, ErrNoDevice, ErrSessionInit, ErrKernelBuild,
// ErrBufferAlloc, ErrArgBind, ErrEnqueue, ErrReadback), wrapped around
// the underlying HAL error.
//
// # Thread Safety
//
// Accelerator is safe for concurrent use; a mutex serializes Convert and
// Close. Session and Kernel on their own are not.
//
// # Requirements
//
//   - gogpu/wgpu module (github.com/gogpu/wgpu)
//   - A GPU that supports Vulkan with a discrete or integrated adapter
package gpu
