package gpu

import _ "embed"

// Embedded WGSL kernel source. Compiled to SPIR-V by naga when the
// kernel is built against a device.

//go:embed shaders/grayscale.wgsl
var grayShaderSource string

// grayEntryPoint is the kernel entry function in grayscale.wgsl.
const grayEntryPoint = "main"

// GrayShaderSource returns the WGSL source of the grayscale kernel.
func GrayShaderSource() string { return grayShaderSource }
