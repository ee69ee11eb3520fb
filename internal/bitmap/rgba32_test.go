package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBA32_SetAndAt(t *testing.T) {
	img := NewRGBA32(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	got := img.At(1, 2).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, got)
}

func TestRGBA32_SetRGB_IsOpaque(t *testing.T) {
	img := NewRGBA32(image.Rect(0, 0, 2, 2))
	img.SetRGB(0, 0, 1, 2, 3)
	got := img.At(0, 0).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, got)
}

func TestRGBA32_OutOfBoundsIsNoop(t *testing.T) {
	img := NewRGBA32(image.Rect(0, 0, 2, 2))
	img.Set(10, 10, color.RGBA{R: 1, G: 1, B: 1, A: 1})
	assert.Equal(t, color.RGBA{}, img.At(10, 10).(color.RGBA))
}

func TestRGBA32_SubImageSharesBacking(t *testing.T) {
	img := NewRGBA32(image.Rect(0, 0, 4, 4))
	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*RGBA32)
	sub.SetRGB(2, 2, 9, 9, 9)
	got := img.At(2, 2).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 9, G: 9, B: 9, A: 255}, got)
}

func TestRGBA32_Bounds(t *testing.T) {
	r := image.Rect(0, 0, 3, 5)
	img := NewRGBA32(r)
	assert.Equal(t, r, img.Bounds())
}
