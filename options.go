package ggray

import "github.com/gogpu/gpucontext"

// defaultJPEGQuality is the encode quality used when WithJPEGQuality is
// not given, matching common photo-export defaults.
const defaultJPEGQuality = 90

// Option configures a conversion or a Converter.
// Use functional options to customize behavior.
//
// Example:
//
//	// Default settings
//	err := ggray.ConvertFile("in.png", "out.jpg")
//
//	// Lower JPEG quality, cap input size
//	err := ggray.ConvertFile("in.png", "out.jpg",
//	    ggray.WithJPEGQuality(75),
//	    ggray.WithMaxDimension(4096))
type Option func(*convertOptions)

// convertOptions holds optional configuration for conversions.
type convertOptions struct {
	jpegQuality  int
	maxDimension int
	provider     gpucontext.DeviceProvider
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		jpegQuality: defaultJPEGQuality,
	}
}

// WithJPEGQuality sets the JPEG encode quality (1-100, clamped at encode
// time). It only affects JPEG output; PNG, BMP and TIFF ignore it.
func WithJPEGQuality(q int) Option {
	return func(o *convertOptions) {
		o.jpegQuality = q
	}
}

// WithMaxDimension downscales inputs whose longest side exceeds px before
// conversion, preserving aspect ratio (Lanczos resampling). Zero disables
// downscaling; images already within the bound are never resampled.
func WithMaxDimension(px int) Option {
	return func(o *convertOptions) {
		o.maxDimension = px
	}
}

// WithDeviceProvider shares an external GPU device instead of opening a
// new session. The provider must also expose HalDevice() any and
// HalQueue() any returning wgpu/hal types; a Converter built over a
// provider borrows the device and never destroys it on Close.
//
// Example:
//
//	// Inside a gogpu application:
//	c, err := ggray.NewConverter(ggray.WithDeviceProvider(app.GPUContextProvider()))
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *convertOptions) {
		o.provider = p
	}
}
