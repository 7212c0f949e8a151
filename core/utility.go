// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/image/draw"

	"github.com/devblok/korugfx/gfx"
)

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}

// SliceUint32 reslices bytes into uint32 words without copying, which
// is the form vulkan takes shader code in. Trailing bytes that do not
// make up a whole word are dropped.
func SliceUint32(data []byte) []uint32 {
	if len(data) < 4 {
		return nil
	}
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer((*sliceHeader)(unsafe.Pointer(&data)).Data))[:len(data)/4]
}

// SafeString null terminates s for the C api.
func SafeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

// SafeStrings null terminates every string in sgs.
func SafeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, SafeString(s))
	}
	return safe
}

// GetPixels transforms a given image into tightly packed RGBA pixels
// by drawing the decoded image onto a controlled RGBA canvas.
func GetPixels(img image.Image) []uint8 {
	bounds := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*bounds.Dx() && bounds.Min == image.ZP {
		return rgba.Pix
	}
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	return canvas.Pix
}

// ImageData converts a decoded image into texture upload data.
func ImageData(img image.Image) gfx.ImageData {
	bounds := img.Bounds()
	return gfx.ImageData{
		Pixels:   GetPixels(img),
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		Channels: 4,
	}
}

// FitImage scales img to fit within width x height keeping the aspect ratio.
// Images already within the bounds are returned unchanged.
func FitImage(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= width && bounds.Dy() <= height {
		return img
	}
	w, h := width, bounds.Dy()*width/bounds.Dx()
	if h > height {
		w, h = bounds.Dx()*height/bounds.Dy(), height
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), img, bounds, draw.Src, nil)
	return canvas
}
