package ggray

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

var _ image.Image = (*Pixmap)(nil)

func TestNewPixmap(t *testing.T) {
	p := NewPixmap(7, 3)
	if p.Width() != 7 || p.Height() != 3 {
		t.Errorf("Dimensions = (%d, %d), want (7, 3)", p.Width(), p.Height())
	}
	if len(p.Data()) != 7*3*4 {
		t.Errorf("len(Data()) = %d, want %d", len(p.Data()), 7*3*4)
	}
	for i, b := range p.Data() {
		if b != 0 {
			t.Fatalf("Data()[%d] = %d, want 0", i, b)
		}
	}
}

func TestNewPixmap_ClampsNegative(t *testing.T) {
	p := NewPixmap(-4, -2)
	if p.Width() != 0 || p.Height() != 0 {
		t.Errorf("Dimensions = (%d, %d), want (0, 0)", p.Width(), p.Height())
	}
	if len(p.Data()) != 0 {
		t.Errorf("len(Data()) = %d, want 0", len(p.Data()))
	}
}

func TestFromImage_NRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	p := FromImage(src)
	if p.Width() != 4 || p.Height() != 2 {
		t.Fatalf("Dimensions = (%d, %d), want (4, 2)", p.Width(), p.Height())
	}
	i := (1*4 + 2) * 4
	got := p.Data()[i : i+4]
	if !bytes.Equal(got, []byte{200, 100, 50, 128}) {
		t.Errorf("Pixel = %v, want [200 100 50 128]", got)
	}
}

func TestFromImage_RGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	src.SetRGBA(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	p := FromImage(src)
	i := (1*3 + 1) * 4
	got := p.Data()[i : i+4]
	if !bytes.Equal(got, []byte{10, 20, 30, 255}) {
		t.Errorf("Pixel = %v, want [10 20 30 255]", got)
	}
}

func TestFromImage_SubImage(t *testing.T) {
	// A sub-image has a non-zero Min and a parent stride; the row copy
	// must respect both.
	base := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	base.SetNRGBA(3, 2, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
	sub := base.SubImage(image.Rect(2, 2, 6, 5)).(*image.NRGBA)

	p := FromImage(sub)
	if p.Width() != 4 || p.Height() != 3 {
		t.Fatalf("Dimensions = (%d, %d), want (4, 3)", p.Width(), p.Height())
	}
	// (3,2) in base coordinates is (1,0) in the sub-image.
	got := p.Data()[1*4 : 1*4+4]
	if !bytes.Equal(got, []byte{9, 8, 7, 6}) {
		t.Errorf("Pixel = %v, want [9 8 7 6]", got)
	}
}

func TestFromImage_GrayGainsOpaqueAlpha(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 77})

	p := FromImage(src)
	got := p.Data()[0:4]
	if !bytes.Equal(got, []byte{77, 77, 77, 255}) {
		t.Errorf("Pixel = %v, want [77 77 77 255]", got)
	}
}

func TestFromImage_TranslucentGeneric(t *testing.T) {
	// A non-fast-path source with alpha must come through non-premultiplied.
	src := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	src.SetNRGBA64(0, 0, color.NRGBA64{R: 0xFFFF, G: 0, B: 0, A: 0x8080})

	p := FromImage(src)
	got := p.Data()[0:4]
	if !bytes.Equal(got, []byte{255, 0, 0, 128}) {
		t.Errorf("Pixel = %v, want [255 0 0 128]", got)
	}
}

func TestToImage(t *testing.T) {
	p := NewPixmap(2, 2)
	copy(p.Data(), []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	})

	img := p.ToImage()
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("Bounds = %v, want 2x2", b)
	}
	if c := img.NRGBAAt(1, 1); c != (color.NRGBA{R: 13, G: 14, B: 15, A: 16}) {
		t.Errorf("Pixel (1,1) = %v, want {13 14 15 16}", c)
	}
}

func TestFromImageToImageRoundTrip(t *testing.T) {
	p := NewPixmap(5, 4)
	for i := range p.Data() {
		p.Data()[i] = byte(i * 3)
	}

	back := FromImage(p.ToImage())
	if !bytes.Equal(back.Data(), p.Data()) {
		t.Error("ToImage/FromImage round trip altered pixels")
	}
}

func TestPixmapAt(t *testing.T) {
	p := NewPixmap(2, 1)
	copy(p.Data(), []byte{10, 20, 30, 40, 50, 60, 70, 80})

	if c := p.At(1, 0); c != (color.NRGBA{R: 50, G: 60, B: 70, A: 80}) {
		t.Errorf("At(1,0) = %v, want {50 60 70 80}", c)
	}
	// Out of range returns transparent black.
	if c := p.At(-1, 0); c != (color.NRGBA{}) {
		t.Errorf("At(-1,0) = %v, want zero color", c)
	}
	if c := p.At(0, 5); c != (color.NRGBA{}) {
		t.Errorf("At(0,5) = %v, want zero color", c)
	}
}

func TestPixmapBounds(t *testing.T) {
	p := NewPixmap(6, 9)
	if b := p.Bounds(); b != image.Rect(0, 0, 6, 9) {
		t.Errorf("Bounds() = %v, want (0,0)-(6,9)", b)
	}
	if p.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBAModel")
	}
}
