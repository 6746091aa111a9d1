package gpu

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

// newTestAccelerator opens a real GPU accelerator or skips the test when
// no adapter is available (expected in CI environments).
func newTestAccelerator(t *testing.T) *Accelerator {
	t.Helper()
	a, err := New(Config{})
	if err != nil {
		t.Skipf("GPU not available: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

// cpuGrayscale is the reference model: per pixel, g = (R+G+B)/3 with
// integer truncation, alpha carried through.
func cpuGrayscale(pixels []byte) []byte {
	out := make([]byte, len(pixels))
	for i := 0; i < len(pixels); i += 4 {
		g := byte((uint32(pixels[i]) + uint32(pixels[i+1]) + uint32(pixels[i+2])) / 3)
		out[i], out[i+1], out[i+2] = g, g, g
		out[i+3] = pixels[i+3]
	}
	return out
}

func TestConvertScenarios(t *testing.T) {
	a := newTestAccelerator(t)

	tests := []struct {
		name string
		w, h int
		in   []byte
		want []byte
	}{
		{
			name: "averages channels",
			w:    1, h: 1,
			in:   []byte{90, 150, 210, 255},
			want: []byte{150, 150, 150, 255},
		},
		{
			name: "truncates toward zero",
			w:    1, h: 1,
			in:   []byte{0, 0, 1, 128},
			want: []byte{0, 0, 0, 128},
		},
		{
			name: "white stays white, alpha untouched",
			w:    1, h: 1,
			in:   []byte{255, 255, 255, 0},
			want: []byte{255, 255, 255, 0},
		},
		{
			name: "independent pixels in one row",
			w:    2, h: 1,
			in:   []byte{30, 60, 90, 255, 255, 0, 0, 10},
			want: []byte{60, 60, 60, 255, 85, 85, 85, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Convert(tt.in, tt.w, tt.h)
			if err != nil {
				t.Fatalf("Convert() failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Convert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertMatchesReferenceModel(t *testing.T) {
	a := newTestAccelerator(t)

	// Odd dimensions exercise the shader's bounds check: the dispatch is
	// rounded up to whole 8x8 workgroups.
	const w, h = 33, 17
	rng := rand.New(rand.NewSource(42))
	in := make([]byte, w*h*4)
	for i := range in {
		in[i] = byte(rng.Intn(256))
	}

	got, err := a.Convert(in, w, h)
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	want := cpuGrayscale(in)
	if !bytes.Equal(got, want) {
		for i := 0; i < len(got); i += 4 {
			if !bytes.Equal(got[i:i+4], want[i:i+4]) {
				t.Fatalf("pixel %d: got %v, want %v (in %v)",
					i/4, got[i:i+4], want[i:i+4], in[i:i+4])
			}
		}
	}
}

func TestConvertPreservesAlphaAndLength(t *testing.T) {
	a := newTestAccelerator(t)

	const w, h = 64, 48
	rng := rand.New(rand.NewSource(7))
	in := make([]byte, w*h*4)
	for i := range in {
		in[i] = byte(rng.Intn(256))
	}

	got, err := a.Convert(in, w, h)
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("output length = %d, want %d", len(got), len(in))
	}
	for i := 3; i < len(got); i += 4 {
		if got[i] != in[i] {
			t.Fatalf("pixel %d: alpha = %d, want %d", i/4, got[i], in[i])
		}
	}
	for i := 0; i < len(got); i += 4 {
		if got[i] != got[i+1] || got[i+1] != got[i+2] {
			t.Fatalf("pixel %d: channels not equal: %v", i/4, got[i:i+3])
		}
	}
}

func TestConvertIdempotentOnGrayInput(t *testing.T) {
	a := newTestAccelerator(t)

	// (g+g+g)/3 == g exactly, so a second pass must be the identity.
	const w, h = 16, 16
	rng := rand.New(rand.NewSource(3))
	in := make([]byte, w*h*4)
	for i := range in {
		in[i] = byte(rng.Intn(256))
	}

	once, err := a.Convert(in, w, h)
	if err != nil {
		t.Fatalf("first Convert() failed: %v", err)
	}
	twice, err := a.Convert(once, w, h)
	if err != nil {
		t.Fatalf("second Convert() failed: %v", err)
	}
	if !bytes.Equal(once, twice) {
		t.Error("second pass over gray output changed pixels")
	}
}

func TestConvertDeterministic(t *testing.T) {
	a := newTestAccelerator(t)

	const w, h = 31, 9
	rng := rand.New(rand.NewSource(11))
	in := make([]byte, w*h*4)
	for i := range in {
		in[i] = byte(rng.Intn(256))
	}

	first, err := a.Convert(in, w, h)
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	second, err := a.Convert(in, w, h)
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same input produced different outputs")
	}
}

func TestConvertDoesNotModifyInput(t *testing.T) {
	a := newTestAccelerator(t)

	in := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	orig := bytes.Clone(in)
	if _, err := a.Convert(in, 2, 1); err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if !bytes.Equal(in, orig) {
		t.Error("Convert() modified the input slice")
	}
}

func TestConvertRejectsBadDimensions(t *testing.T) {
	a := newTestAccelerator(t)

	tests := []struct {
		name string
		w, h int
		n    int
	}{
		{"zero width", 0, 4, 16},
		{"negative height", 4, -1, 16},
		{"short buffer", 2, 2, 12},
		{"long buffer", 2, 2, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Convert(make([]byte, tt.n), tt.w, tt.h)
			if err == nil {
				t.Error("Convert() accepted invalid dimensions")
			}
		})
	}
}

func TestConvertAfterClose(t *testing.T) {
	a, err := New(Config{})
	if err != nil {
		t.Skipf("GPU not available: %v", err)
	}
	a.Close()

	if _, err := a.Convert(make([]byte, 4), 1, 1); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Convert() after Close = %v, want ErrSessionClosed", err)
	}
	if name := a.AdapterName(); name != "" {
		t.Errorf("AdapterName() after Close = %q, want empty", name)
	}

	// Close is idempotent.
	a.Close()
}

func TestAdapterNameAfterOpen(t *testing.T) {
	a := newTestAccelerator(t)
	if a.AdapterName() == "" {
		t.Error("AdapterName() is empty on an open accelerator")
	}
}
