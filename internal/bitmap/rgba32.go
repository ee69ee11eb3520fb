package bitmap

import "image"
import "image/color"

// RGBA32 is a hand-rolled 32-bit RGBA image with one byte per channel,
// since the mapper this package serves produces full RGBA triples.
type RGBA32 struct {
	Pix    []byte // 4 bytes per pixel: R, G, B, A
	Stride int
	Rect   image.Rectangle
}

// NewRGBA32 returns a new RGBA32 image covering r.
func NewRGBA32(r image.Rectangle) *RGBA32 {
	w, h := r.Dx(), r.Dy()
	stride := w * 4
	return &RGBA32{Pix: make([]byte, stride*h), Stride: stride, Rect: r}
}

func (p *RGBA32) ColorModel() color.Model { return color.RGBAModel }

func (p *RGBA32) Bounds() image.Rectangle { return p.Rect }

func (p *RGBA32) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *RGBA32) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	o := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[o], G: p.Pix[o+1], B: p.Pix[o+2], A: p.Pix[o+3]}
}

func (p *RGBA32) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	o := p.PixOffset(x, y)
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p.Pix[o], p.Pix[o+1], p.Pix[o+2], p.Pix[o+3] = rgba.R, rgba.G, rgba.B, rgba.A
}

// SetRGB sets an opaque pixel directly from separate channel bytes,
// avoiding the color.Color boxing/conversion Set needs; the color
// mapper's hot path calls this once per grid cell.
func (p *RGBA32) SetRGB(x, y int, r, g, b byte) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	o := p.PixOffset(x, y)
	p.Pix[o], p.Pix[o+1], p.Pix[o+2], p.Pix[o+3] = r, g, b, 255
}

// SubImage returns a view of p restricted to r, sharing the backing Pix.
func (p *RGBA32) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &RGBA32{}
	}
	offset := p.PixOffset(r.Min.X, r.Min.Y)
	return &RGBA32{Pix: p.Pix[offset:], Stride: p.Stride, Rect: r}
}
