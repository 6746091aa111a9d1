package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Kernel holds a compiled compute kernel: the shader module and the
// pipeline objects built from it. Release order is the reverse of
// construction: pipeline, pipeline layout, bind group layout, module.
type Kernel struct {
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

// BuildKernel compiles WGSL source for the session's device and builds the
// compute pipeline around it. The bind group layout is fixed: binding 0 a
// uniform (dispatch params), binding 1 a read-only storage buffer (input
// pixels), binding 2 a storage buffer (output pixels).
//
// Compilation goes through naga (WGSL to SPIR-V) so that a malformed
// kernel fails with the compiler diagnostics wrapped in ErrKernelBuild
// before any device object exists.
func BuildKernel(s *Session, source, entryPoint string) (*Kernel, error) {
	spirv, err := compileToSPIRV(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKernelBuild, err)
	}

	k := &Kernel{}
	k.module, err = s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "grayscale",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create shader module: %w", ErrKernelBuild, err)
	}

	k.bindLayout, err = s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "grayscale_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		k.Release(s)
		return nil, fmt.Errorf("%w: create bind group layout: %w", ErrKernelBuild, err)
	}

	k.pipeLayout, err = s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "grayscale_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{k.bindLayout},
	})
	if err != nil {
		k.Release(s)
		return nil, fmt.Errorf("%w: create pipeline layout: %w", ErrKernelBuild, err)
	}

	k.pipeline, err = s.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "grayscale_pipeline",
		Layout:  k.pipeLayout,
		Compute: hal.ComputeState{Module: k.module, EntryPoint: entryPoint},
	})
	if err != nil {
		k.Release(s)
		return nil, fmt.Errorf("%w: create compute pipeline: %w", ErrKernelBuild, err)
	}

	slogger().Debug("grayscale: kernel built", "entry", entryPoint, "spirv_words", len(spirv))
	return k, nil
}

// compileToSPIRV compiles WGSL source to SPIR-V 32-bit words via naga.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Release destroys the kernel's device objects in reverse construction
// order. Safe on partially built kernels and idempotent.
func (k *Kernel) Release(s *Session) {
	if k == nil || s == nil || s.device == nil {
		return
	}
	if k.pipeline != nil {
		s.device.DestroyComputePipeline(k.pipeline)
		k.pipeline = nil
	}
	if k.pipeLayout != nil {
		s.device.DestroyPipelineLayout(k.pipeLayout)
		k.pipeLayout = nil
	}
	if k.bindLayout != nil {
		s.device.DestroyBindGroupLayout(k.bindLayout)
		k.bindLayout = nil
	}
	if k.module != nil {
		s.device.DestroyShaderModule(k.module)
		k.module = nil
	}
}
