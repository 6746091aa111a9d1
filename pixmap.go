package ggray

import (
	"image"
	"image/color"
)

// Pixmap is a tightly packed 8-bit RGBA pixel buffer, row-major with no
// row padding (stride = width*4). It is the host-side representation the
// converter uploads to the GPU.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a zeroed pixmap with the given dimensions.
// Zero or negative dimensions yield an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// FromImage converts any image.Image into a Pixmap. Three-channel sources
// gain an opaque alpha of 255; four-channel sources keep their alpha
// untouched. *image.RGBA and *image.NRGBA take a row-copy fast path; other
// types go through the color model.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	p := NewPixmap(w, h)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(p.data[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(p.data[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
		}
	default:
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				p.data[i+0] = c.R
				p.data[i+1] = c.G
				p.data[i+2] = c.B
				p.data[i+3] = c.A
				i += 4
			}
		}
	}
	return p
}

// ToImage copies the pixmap into a standard library *image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	if img.Stride == p.width*4 {
		copy(img.Pix, p.data)
		return img
	}
	for y := 0; y < p.height; y++ {
		copy(img.Pix[y*img.Stride:], p.data[y*p.width*4:(y+1)*p.width*4])
	}
	return img
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// At implements image.Image. Out-of-range coordinates return transparent
// black.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}
