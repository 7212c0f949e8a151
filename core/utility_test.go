// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"image"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/korugfx/core"
)

var testImage = func() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 512, 512))
	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}()

func TestSliceUint32(t *testing.T) {
	c := qt.New(t)
	data := []byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00, 0xff}
	words := core.SliceUint32(data)
	c.Assert(words, qt.HasLen, 2)
	c.Assert(words[1], qt.Equals, uint32(1))

	c.Assert(core.SliceUint32([]byte{1, 2}), qt.HasLen, 0)
}

func TestSafeStrings(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.SafeString("main"), qt.Equals, "main\x00")
	c.Assert(core.SafeStrings([]string{"a", "b"}), qt.DeepEquals, []string{"a\x00", "b\x00"})
	c.Assert(core.SafeStrings(nil), qt.HasLen, 0)
}

func TestGetPixels(t *testing.T) {
	c := qt.New(t)
	img := image.NewNRGBA(image.Rect(2, 2, 4, 3))
	img.SetNRGBA(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetNRGBA(3, 2, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	pixels := core.GetPixels(img)
	c.Assert(pixels, qt.DeepEquals, []uint8{1, 2, 3, 255, 4, 5, 6, 255})
}

func TestImageData(t *testing.T) {
	c := qt.New(t)
	data := core.ImageData(testImage)
	c.Assert(data.Width, qt.Equals, uint32(512))
	c.Assert(data.Height, qt.Equals, uint32(512))
	c.Assert(data.Channels, qt.Equals, uint32(4))
	c.Assert(data.Pixels, qt.HasLen, 512*512*4)
}

func TestFitImage(t *testing.T) {
	c := qt.New(t)
	fitted := core.FitImage(testImage, 256, 128)
	c.Assert(fitted.Bounds().Dx(), qt.Equals, 128)
	c.Assert(fitted.Bounds().Dy(), qt.Equals, 128)

	c.Assert(core.FitImage(testImage, 1024, 1024), qt.Equals, testImage)
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Medium(b *testing.B) {
	data := make([]byte, 1000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkGetPixels(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage)
	}
}
