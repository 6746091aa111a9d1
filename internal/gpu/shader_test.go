package gpu

import (
	"strings"
	"testing"
)

// TestGrayShaderCompiles verifies the embedded WGSL source passes the
// naga frontend. This runs entirely on the CPU, no adapter required.
func TestGrayShaderCompiles(t *testing.T) {
	words, err := compileToSPIRV(grayShaderSource)
	if err != nil {
		t.Fatalf("compileToSPIRV() failed: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("compileToSPIRV() returned no code")
	}
	// SPIR-V modules always begin with the magic number.
	if words[0] != 0x07230203 {
		t.Errorf("SPIR-V magic = %#x, want 0x07230203", words[0])
	}
}

func TestGrayShaderEntryPoint(t *testing.T) {
	if !strings.Contains(grayShaderSource, "fn "+grayEntryPoint) {
		t.Errorf("shader source does not define entry point %q", grayEntryPoint)
	}
	if !strings.Contains(grayShaderSource, "@workgroup_size(8, 8)") {
		t.Error("shader source does not declare an 8x8 workgroup")
	}
}

func TestCompileToSPIRVRejectsBadSource(t *testing.T) {
	if _, err := compileToSPIRV("fn broken( {"); err == nil {
		t.Error("compileToSPIRV() accepted malformed WGSL")
	}
}

func TestGrayShaderSourceAccessor(t *testing.T) {
	if GrayShaderSource() != grayShaderSource {
		t.Error("GrayShaderSource() does not match embedded source")
	}
}
