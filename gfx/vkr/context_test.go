// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"testing"

	vk "github.com/devblok/vulkan"
	qt "github.com/frankban/quicktest"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/korugfx/gfx"
)

// newTestBackend creates an initialised backend over driver with a
// default window of 800x600.
func newTestBackend(c *qt.C, driver *fakeDriver, frames uint32) *Backend {
	b := NewBackend(driver)
	c.Assert(b.CreateContext(gfx.ContextInfo{ApplicationName: "test", Validation: true}), qt.IsNil)
	devices := make([]gfx.PhysicalDeviceInfo, 1)
	n, err := b.PhysicalDevices(devices)
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 1)
	c.Assert(b.RenderInit(gfx.RenderInitInfo{
		Device:            devices[0].Device,
		MaxFramesInFlight: frames,
		ProbeWindow:       &testWindow{width: 800, height: 600},
	}), qt.IsNil)
	c.Defer(b.Shutdown)
	return b
}

func warnings(hook *test.Hook) []*log.Entry {
	var entries []*log.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel {
			entries = append(entries, e)
		}
	}
	return entries
}

func TestValidationLayerMissing(t *testing.T) {
	c := qt.New(t)
	hook := test.NewGlobal()
	driver := newFakeDriver()
	driver.layers = []string{"VK_LAYER_LUNARG_monitor"}

	dc, err := NewDeviceContext(driver, gfx.ContextInfo{Validation: true})
	c.Assert(err, qt.IsNil)
	defer dc.Shutdown()

	c.Assert(driver.instanceInfo.EnabledLayerCount, qt.Equals, uint32(0))
	c.Assert(driver.count("CreateDebugReportCallback"), qt.Equals, 0)
	entries := warnings(hook)
	c.Assert(entries, qt.HasLen, 1)
	c.Assert(entries[0].Data["layer"], qt.Equals, validationLayer)
}

func TestValidationLayerEnabled(t *testing.T) {
	c := qt.New(t)
	driver := newFakeDriver()

	dc, err := NewDeviceContext(driver, gfx.ContextInfo{
		Validation: true,
		Extensions: []string{"VK_KHR_surface"},
	})
	c.Assert(err, qt.IsNil)

	c.Assert(driver.instanceInfo.EnabledLayerCount, qt.Equals, uint32(1))
	c.Assert(driver.instanceInfo.EnabledExtensionCount, qt.Equals, uint32(2))
	c.Assert(driver.count("CreateDebugReportCallback"), qt.Equals, 1)

	dc.Shutdown()
	c.Assert(driver.live["DebugReportCallback"], qt.Equals, 0)
	c.Assert(driver.live["Instance"], qt.Equals, 0)
}

func TestPhysicalDevices(t *testing.T) {
	c := qt.New(t)
	driver := newFakeDriver()
	driver.devices = 2

	dc, err := NewDeviceContext(driver, gfx.ContextInfo{})
	c.Assert(err, qt.IsNil)
	defer dc.Shutdown()

	count, err := dc.PhysicalDevices(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(count, qt.Equals, 2)

	dst := make([]gfx.PhysicalDeviceInfo, 1)
	written, err := dc.PhysicalDevices(dst)
	c.Assert(err, qt.IsNil)
	c.Assert(written, qt.Equals, 1)
	c.Assert(dst[0].Name, qt.Equals, "Fake GPU")
	c.Assert(dst[0].Type, qt.Equals, gfx.PhysicalDeviceTypeDiscrete)
	c.Assert(dst[0].VendorID, qt.Equals, uint32(0x10de))
	c.Assert(dst[0].Memory, qt.Equals, uint64(1<<30+1<<28))
	c.Assert(dst[0].Device.Backend(), qt.Equals, Name)

	dst = make([]gfx.PhysicalDeviceInfo, 5)
	written, err = dc.PhysicalDevices(dst)
	c.Assert(err, qt.IsNil)
	c.Assert(written, qt.Equals, 2)
}

func TestInitializeZeroFramesInFlight(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	b := newTestBackend(c, newFakeDriver(), 0)
	c.Assert(b.DeviceContext().maxFramesInFlight, qt.Equals, uint32(1))
	c.Assert(b.DeviceContext().anisotropy, qt.Equals, true)
}

func TestQueueScanStopsEarly(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	driver := newFakeDriver()
	graphics := vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit), QueueCount: 1}
	driver.families = []vk.QueueFamilyProperties{graphics, graphics, graphics, graphics}
	driver.present = map[uint32]bool{1: true, 2: true, 3: true}

	b := newTestBackend(c, driver, 2)
	dc := b.DeviceContext()
	c.Assert(dc.graphicsFamily, qt.Equals, uint32(0))
	c.Assert(dc.presentFamily, qt.Equals, uint32(1))
	c.Assert(driver.count("SurfaceSupport 0"), qt.Equals, 1)
	c.Assert(driver.count("SurfaceSupport 1"), qt.Equals, 1)
	c.Assert(driver.count("SurfaceSupport 2"), qt.Equals, 0)
	c.Assert(driver.deviceInfo.QueueCreateInfoCount, qt.Equals, uint32(2))
	c.Assert(driver.live["Surface"], qt.Equals, 0)
}

func TestInitializeSharedQueueFamily(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	driver := newFakeDriver()
	b := newTestBackend(c, driver, 2)
	c.Assert(b.DeviceContext().presentFamily, qt.Equals, uint32(0))
	c.Assert(driver.deviceInfo.QueueCreateInfoCount, qt.Equals, uint32(1))
}

func TestInitializeFailures(t *testing.T) {
	tests := []struct {
		about  string
		modify func(*fakeDriver)
		err    string
	}{{
		about:  "no family presents",
		modify: func(d *fakeDriver) { d.present = nil },
		err:    ".*no queue family can present",
	}, {
		about: "no graphics family",
		modify: func(d *fakeDriver) {
			d.families = []vk.QueueFamilyProperties{{QueueFlags: vk.QueueFlags(vk.QueueComputeBit)}}
		},
		err: ".*no graphics queue family",
	}, {
		about:  "swapchain extension missing",
		modify: func(d *fakeDriver) { d.extensions = []string{"VK_KHR_maintenance1"} },
		err:    ".*is not supported",
	}}

	for _, tt := range tests {
		t.Run(tt.about, func(t *testing.T) {
			c := qt.New(t)
			driver := newFakeDriver()
			tt.modify(driver)

			b := NewBackend(driver)
			c.Assert(b.CreateContext(gfx.ContextInfo{}), qt.IsNil)
			defer b.Shutdown()
			devices := make([]gfx.PhysicalDeviceInfo, 1)
			_, err := b.PhysicalDevices(devices)
			c.Assert(err, qt.IsNil)

			err = b.RenderInit(gfx.RenderInitInfo{
				Device:      devices[0].Device,
				ProbeWindow: &testWindow{width: 1, height: 1},
			})
			c.Assert(err, qt.ErrorMatches, tt.err)
			c.Assert(gfx.IsFailure(err), qt.Equals, true)
			c.Assert(driver.live["Device"], qt.Equals, 0)
			c.Assert(driver.live["Surface"], qt.Equals, 0)
		})
	}
}

func TestRenderInitRejectsForeignHandle(t *testing.T) {
	c := qt.New(t)
	b := NewBackend(newFakeDriver())
	c.Assert(b.RenderInit(gfx.RenderInitInfo{}), qt.Equals, gfx.ErrNotInitialized)

	c.Assert(b.CreateContext(gfx.ContextInfo{}), qt.IsNil)
	defer b.Shutdown()
	err := b.RenderInit(gfx.RenderInitInfo{
		Device: gfx.PhysicalDevice{Handle: gfx.NewHandle(Name, "not a device")},
	})
	c.Assert(err, qt.Equals, gfx.ErrInvalidHandle)
}

func TestShutdownOrder(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	driver := newFakeDriver()
	b := newTestBackend(c, driver, 2)

	mark := len(driver.calls)
	b.Shutdown()
	c.Assert(driver.since(mark), qt.DeepEquals, []string{
		"DeviceWaitIdle",
		"DestroyCommandPool",
		"DestroyDevice",
		"DestroyDebugReportCallback",
		"DestroyInstance",
	})
	c.Assert(b.DeviceContext(), qt.IsNil)

	// A second shutdown has nothing left to destroy.
	b.Shutdown()
	c.Assert(driver.since(mark), qt.HasLen, 5)
}

func TestShutdownDestroysSurfacesFirst(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	driver := newFakeDriver()
	b := newTestBackend(c, driver, 2)
	_, err := b.CreateWindowSurface(&testWindow{width: 640, height: 480})
	c.Assert(err, qt.IsNil)

	mark := len(driver.calls)
	b.Shutdown()
	calls := driver.since(mark)
	c.Assert(calls[len(calls)-1], qt.Equals, "DestroyInstance")
	c.Assert(calls[len(calls)-3], qt.Equals, "DestroyDevice")
	surface, device := -1, -1
	for idx, call := range calls {
		switch call {
		case "DestroySurface":
			surface = idx
		case "DestroyDevice":
			device = idx
		}
	}
	c.Assert(surface >= 0 && surface < device, qt.Equals, true)
	for _, kind := range []string{"Semaphore", "Fence", "Swapchain", "Framebuffer", "ImageView", "Image", "Memory", "RenderPass"} {
		c.Assert(driver.live[kind], qt.Equals, 0, qt.Commentf(kind))
	}
}

func TestDepthFormat(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	driver := newFakeDriver()
	driver.depthFormats = map[vk.Format]bool{vk.FormatD24UnormS8Uint: true}
	b := newTestBackend(c, driver, 1)

	format, err := b.DeviceContext().depthFormat()
	c.Assert(err, qt.IsNil)
	c.Assert(format, qt.Equals, vk.FormatD24UnormS8Uint)
	c.Assert(hasStencil(format), qt.Equals, true)

	driver.depthFormats = nil
	_, err = b.DeviceContext().depthFormat()
	c.Assert(gfx.IsFailure(err), qt.Equals, true)
}

func TestMaxUsableSampleCount(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	driver := newFakeDriver()
	b := newTestBackend(c, driver, 1)
	c.Assert(b.DeviceContext().maxUsableSampleCount(), qt.Equals, vk.SampleCount8Bit)

	b.DeviceContext().properties.Limits.FramebufferDepthSampleCounts = vk.SampleCountFlags(vk.SampleCount1Bit | vk.SampleCount2Bit)
	c.Assert(b.DeviceContext().maxUsableSampleCount(), qt.Equals, vk.SampleCount2Bit)
}
