// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"sync/atomic"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// window adapts an SDL window to gfx.Window. Size and resize state are
// written by the event loop on the main thread and read by the renderer.
type window struct {
	sdl *sdl.Window

	width   int32
	height  int32
	resized int32
}

func newWindow(title string, width, height uint32) (*window, error) {
	w, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(width),
		int32(height),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, err
	}
	win := &window{sdl: w}
	win.updateSize()
	return win, nil
}

// CreateSurface implements gfx.Window.
func (w *window) CreateSurface(instance interface{}) (unsafe.Pointer, error) {
	return w.sdl.VulkanCreateSurface(instance)
}

// FramebufferSize implements gfx.Window.
func (w *window) FramebufferSize() (int, int) {
	return int(atomic.LoadInt32(&w.width)), int(atomic.LoadInt32(&w.height))
}

// ConsumeResize implements gfx.Window.
func (w *window) ConsumeResize() bool {
	return atomic.SwapInt32(&w.resized, 0) == 1
}

// Aspect is the drawable width over height, 1 for an empty area.
func (w *window) Aspect() float32 {
	width, height := w.FramebufferSize()
	if width == 0 || height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Must be called on the main thread.
func (w *window) updateSize() {
	width, height := w.sdl.VulkanGetDrawableSize()
	if w.sdl.GetFlags()&sdl.WINDOW_MINIMIZED != 0 {
		width, height = 0, 0
	}
	atomic.StoreInt32(&w.width, width)
	atomic.StoreInt32(&w.height, height)
}

func (w *window) handle(event *sdl.WindowEvent) {
	switch event.Event {
	case sdl.WINDOWEVENT_SIZE_CHANGED, sdl.WINDOWEVENT_MINIMIZED, sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_MAXIMIZED:
		w.updateSize()
		atomic.StoreInt32(&w.resized, 1)
	}
}

func (w *window) Destroy() {
	w.sdl.Destroy()
}
