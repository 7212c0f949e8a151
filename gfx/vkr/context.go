// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	vk "github.com/devblok/vulkan"

	"github.com/devblok/korugfx/core"
	"github.com/devblok/korugfx/gfx"
)

const (
	validationLayer      = "VK_LAYER_KHRONOS_validation"
	debugReportExtension = "VK_EXT_debug_report"
	engineName           = "koru"
)

// DeviceContext owns the instance, the logical device and everything
// shared between window surfaces and resources.
type DeviceContext struct {
	driver Driver

	instance        vk.Instance
	debugCallback   vk.DebugReportCallback
	physicalDevices []vk.PhysicalDevice

	physicalDevice vk.PhysicalDevice
	properties     vk.PhysicalDeviceProperties
	features       vk.PhysicalDeviceFeatures
	anisotropy     bool

	device         vk.Device
	graphicsFamily uint32
	presentFamily  uint32
	graphicsQueue  vk.Queue
	presentQueue   vk.Queue
	commandPool    vk.CommandPool
	allocator      *MemoryAllocator

	maxFramesInFlight uint32
	initialized       bool
}

// NewDeviceContext loads the api, creates the instance and discovers
// the physical devices.
func NewDeviceContext(driver Driver, info gfx.ContextInfo) (*DeviceContext, error) {
	if err := driver.Init(info.ProcAddr); err != nil {
		return nil, err
	}

	extensions := append([]string(nil), info.Extensions...)
	var layers []string
	validation := false
	if info.Validation {
		available, err := driver.InstanceLayers()
		if err != nil {
			return nil, err
		}
		for _, layer := range available {
			if layer == validationLayer {
				validation = true
				break
			}
		}
		if validation {
			layers = append(layers, validationLayer)
			extensions = append(extensions, debugReportExtension)
		} else {
			logger.WithField("layer", validationLayer).Warn("validation requested but the layer is not available")
		}
	}

	appName := info.ApplicationName
	if appName == "" {
		appName = engineName
	}
	instanceInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         vk.MakeVersion(1, 0, 0),
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			PApplicationName:   core.SafeString(appName),
			PEngineName:        core.SafeString(engineName),
		},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: core.SafeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     core.SafeStrings(layers),
	}

	instance, err := driver.CreateInstance(&instanceInfo)
	if err != nil {
		return nil, err
	}
	dc := &DeviceContext{
		driver:   driver,
		instance: instance,
	}

	if err := driver.InitInstance(instance); err != nil {
		dc.Shutdown()
		return nil, err
	}

	if validation {
		callback, err := driver.CreateDebugReportCallback(instance, &vk.DebugReportCallbackCreateInfo{
			SType: vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
				vk.DebugReportPerformanceWarningBit),
			PfnCallback: debugReport,
		})
		if err != nil {
			dc.Shutdown()
			return nil, err
		}
		dc.debugCallback = callback
	}

	devices, err := driver.EnumeratePhysicalDevices(instance)
	if err != nil {
		dc.Shutdown()
		return nil, err
	}
	dc.physicalDevices = devices

	logger.WithField("devices", len(devices)).Debug("instance created")
	return dc, nil
}

// PhysicalDevices fills dst with the discovered devices and returns the
// number written, a nil dst returns the device count.
func (dc *DeviceContext) PhysicalDevices(dst []gfx.PhysicalDeviceInfo) (int, error) {
	if dst == nil {
		return len(dc.physicalDevices), nil
	}

	n := len(dst)
	if len(dc.physicalDevices) < n {
		n = len(dc.physicalDevices)
	}
	for idx := 0; idx < n; idx++ {
		pd := dc.physicalDevices[idx]
		props := dc.driver.PhysicalDeviceProperties(pd)
		memProps := dc.driver.PhysicalDeviceMemoryProperties(pd)
		extensions, err := dc.driver.DeviceExtensions(pd)
		if err != nil {
			return idx, err
		}

		var memory uint64
		for heap := uint32(0); heap < memProps.MemoryHeapCount; heap++ {
			memory += uint64(memProps.MemoryHeaps[heap].Size)
		}

		dst[idx] = gfx.PhysicalDeviceInfo{
			Device:        gfx.PhysicalDevice{Handle: gfx.NewHandle(Name, pd)},
			Name:          vk.ToString(props.DeviceName[:]),
			Type:          physicalDeviceType(props.DeviceType),
			APIVersion:    props.ApiVersion,
			DriverVersion: props.DriverVersion,
			VendorID:      props.VendorID,
			DeviceID:      props.DeviceID,
			Memory:        memory,
			Extensions:    extensions,
		}
	}
	return n, nil
}

// Initialize creates the logical device on pd. The probe window is used
// to find a queue family that can present and is released afterwards.
func (dc *DeviceContext) Initialize(pd vk.PhysicalDevice, maxFramesInFlight uint32, probe gfx.Window) error {
	if maxFramesInFlight == 0 {
		maxFramesInFlight = 1
	}

	surface, err := dc.driver.CreateWindowSurface(dc.instance, probe)
	if err != nil {
		return err
	}
	defer dc.driver.DestroySurface(dc.instance, surface)

	graphics, present, err := dc.findQueueFamilies(pd, surface)
	if err != nil {
		return err
	}

	extensions, err := dc.driver.DeviceExtensions(pd)
	if err != nil {
		return err
	}
	swapchainSupported := false
	for _, ext := range extensions {
		if ext == vk.KhrSwapchainExtensionName {
			swapchainSupported = true
			break
		}
	}
	if !swapchainSupported {
		return gfx.Failuref("vk.CreateDevice(): %s is not supported", vk.KhrSwapchainExtensionName)
	}

	features := dc.driver.PhysicalDeviceFeatures(pd)
	anisotropy := features.SamplerAnisotropy == vk.True

	families := []uint32{graphics}
	if present != graphics {
		families = append(families, present)
	}
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(families))
	for _, family := range families {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1},
		})
	}

	var enabled vk.PhysicalDeviceFeatures
	if anisotropy {
		enabled.SamplerAnisotropy = vk.True
	}
	deviceExtensions := []string{vk.KhrSwapchainExtensionName}
	device, err := dc.driver.CreateDevice(pd, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(deviceExtensions)),
		PpEnabledExtensionNames: core.SafeStrings(deviceExtensions),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{enabled},
	})
	if err != nil {
		return err
	}

	commandPool, err := dc.driver.CreateCommandPool(device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: graphics,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	})
	if err != nil {
		dc.driver.DestroyDevice(device)
		return err
	}

	dc.physicalDevice = pd
	dc.properties = dc.driver.PhysicalDeviceProperties(pd)
	dc.features = features
	dc.anisotropy = anisotropy
	dc.device = device
	dc.graphicsFamily = graphics
	dc.presentFamily = present
	dc.graphicsQueue = dc.driver.DeviceQueue(device, graphics)
	dc.presentQueue = dc.driver.DeviceQueue(device, present)
	dc.commandPool = commandPool
	dc.allocator = NewMemoryAllocator(dc.driver, device, pd)
	dc.maxFramesInFlight = maxFramesInFlight
	dc.initialized = true

	logger.WithFields(map[string]interface{}{
		"device":   vk.ToString(dc.properties.DeviceName[:]),
		"graphics": graphics,
		"present":  present,
		"frames":   maxFramesInFlight,
	}).Info("device initialized")
	return nil
}

// findQueueFamilies scans the families in driver order and stops as soon
// as both a graphics and a present family are known.
func (dc *DeviceContext) findQueueFamilies(pd vk.PhysicalDevice, surface vk.Surface) (uint32, uint32, error) {
	var (
		graphics, present           uint32
		graphicsFound, presentFound bool
	)
	for idx, family := range dc.driver.QueueFamilies(pd) {
		if !graphicsFound && family.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			graphics = uint32(idx)
			graphicsFound = true
		}
		if !presentFound {
			supported, err := dc.driver.SurfaceSupport(pd, uint32(idx), surface)
			if err != nil {
				return 0, 0, err
			}
			if supported {
				present = uint32(idx)
				presentFound = true
			}
		}
		if graphicsFound && presentFound {
			return graphics, present, nil
		}
	}
	if !graphicsFound {
		return 0, 0, gfx.Failuref("vk.GetPhysicalDeviceQueueFamilyProperties(): no graphics queue family")
	}
	return 0, 0, gfx.Failuref("vk.GetPhysicalDeviceSurfaceSupport(): no queue family can present")
}

// Shutdown destroys everything in reverse order of creation.
func (dc *DeviceContext) Shutdown() {
	if dc.device != nil {
		if err := dc.driver.DeviceWaitIdle(dc.device); err != nil {
			logger.WithError(err).Warn("waiting for the device on shutdown")
		}
		if dc.commandPool != nil {
			dc.driver.DestroyCommandPool(dc.device, dc.commandPool)
			dc.commandPool = nil
		}
		if dc.allocator != nil {
			dc.allocator.Release()
			dc.allocator = nil
		}
		dc.driver.DestroyDevice(dc.device)
		dc.device = nil
	}
	if dc.debugCallback != nil {
		dc.driver.DestroyDebugReportCallback(dc.instance, dc.debugCallback)
		dc.debugCallback = nil
	}
	if dc.instance != nil {
		dc.driver.DestroyInstance(dc.instance)
		dc.instance = nil
	}
	dc.initialized = false
}

// waitIdle waits for all submitted work before a resource is destroyed.
func (dc *DeviceContext) waitIdle() {
	if err := dc.driver.DeviceWaitIdle(dc.device); err != nil {
		logger.WithError(err).Warn("waiting for the device")
	}
}

func (dc *DeviceContext) findSupportedFormat(candidates []vk.Format, tiling vk.ImageTiling, features vk.FormatFeatureFlags) (vk.Format, error) {
	for _, format := range candidates {
		props := dc.driver.FormatProperties(dc.physicalDevice, format)
		switch {
		case tiling == vk.ImageTilingLinear && props.LinearTilingFeatures&features == features:
			return format, nil
		case tiling == vk.ImageTilingOptimal && props.OptimalTilingFeatures&features == features:
			return format, nil
		}
	}
	return vk.FormatUndefined, gfx.Failuref("vk.GetPhysicalDeviceFormatProperties(): no supported format among %d candidates", len(candidates))
}

func (dc *DeviceContext) depthFormat() (vk.Format, error) {
	return dc.findSupportedFormat(
		[]vk.Format{vk.FormatD32Sfloat, vk.FormatD32SfloatS8Uint, vk.FormatD24UnormS8Uint},
		vk.ImageTilingOptimal,
		vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit),
	)
}

func hasStencil(format vk.Format) bool {
	return format == vk.FormatD32SfloatS8Uint || format == vk.FormatD24UnormS8Uint
}

// maxUsableSampleCount is the highest count supported for both color and
// depth framebuffer attachments.
func (dc *DeviceContext) maxUsableSampleCount() vk.SampleCountFlagBits {
	counts := dc.properties.Limits.FramebufferColorSampleCounts & dc.properties.Limits.FramebufferDepthSampleCounts
	for _, bit := range []vk.SampleCountFlagBits{
		vk.SampleCount64Bit,
		vk.SampleCount32Bit,
		vk.SampleCount16Bit,
		vk.SampleCount8Bit,
		vk.SampleCount4Bit,
		vk.SampleCount2Bit,
	} {
		if counts&vk.SampleCountFlags(bit) != 0 {
			return bit
		}
	}
	return vk.SampleCount1Bit
}
