// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/korugfx/core"
	"github.com/devblok/korugfx/gfx"
	_ "github.com/devblok/korugfx/gfx/vkr"
	"github.com/devblok/korugfx/utility/asset"
)

func init() {
	runtime.LockOSThread()
}

var frameCounter int64

// Profiling
var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
)

var (
	envFile  = flag.String("env", ".env", "Configuration file, the environment takes precedence")
	meshName = flag.String("mesh", "", "Collada mesh asset to draw instead of a triangle")
)

func main() {
	flag.Parse()

	configuration, err := core.LoadConfiguration(*envFile)
	if err != nil {
		log.WithError(err).Fatal("configuration not loaded")
	}
	if err := configuration.Apply(); err != nil {
		log.WithError(err).Fatal("configuration not applied")
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := trace.Start(f); err != nil {
			log.Fatal(err)
		}
		defer trace.Stop()
	}

	if err := run(configuration); err != nil {
		log.WithError(err).Error("koru exited with an error")
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
	}
}

func run(configuration core.Configuration) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return err
	}
	defer sdl.VulkanUnloadLibrary()

	win, err := newWindow("Koru3D", configuration.Renderer.ScreenWidth, configuration.Renderer.ScreenHeight)
	if err != nil {
		return err
	}
	defer win.Destroy()

	ctx, err := gfx.NewContext(gfx.ContextInfo{
		Backend:         configuration.Renderer.Backend,
		ApplicationName: "Koru3D",
		Validation:      configuration.Renderer.Validation,
		ProcAddr:        sdl.VulkanGetVkGetInstanceProcAddr(),
		Extensions:      win.sdl.VulkanGetInstanceExtensions(),
	})
	if err != nil {
		return err
	}
	defer ctx.Close()

	devices, err := ctx.PhysicalDevices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return errors.New("no physical devices")
	}
	device := pickDevice(devices)
	log.WithFields(log.Fields{
		"device": device.Name,
		"type":   device.Type,
	}).Info("rendering device selected")

	if err := ctx.RenderInit(gfx.RenderInitInfo{
		Device:            device.Device,
		MaxFramesInFlight: configuration.Renderer.FramesInFlight,
		ProbeWindow:       win,
	}); err != nil {
		return err
	}

	ws, err := ctx.CreateWindowSurface(win)
	if err != nil {
		return err
	}
	defer ctx.DestroyWindowSurface(ws)

	assets := configuration.Assets
	if assets == "" {
		assets = "assets"
	}
	loader, err := asset.Open(assets)
	if err != nil {
		return err
	}
	defer loader.Close()

	s, err := newScene(ctx, ws, loader, *meshName)
	if err != nil {
		return err
	}
	defer s.destroy()

	timeService := core.NewTime(configuration.Time)
	defer timeService.Stop()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var programSync sync.WaitGroup

	/* Frame counter loop */
	programSync.Add(1)
	go func() {
		defer programSync.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				log.WithFields(log.Fields{
					"fps":       atomic.SwapInt64(&frameCounter, 0),
					"cgo_calls": runtime.NumCgoCall(),
				}).Debug("frame statistics")
			}
		}
	}()

	/* Renderer loop */
	programSync.Add(1)
	go func() {
		defer programSync.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		for {
			select {
			case <-runCtx.Done():
				log.Info("render loop exited")
				return
			case <-timeService.FpsTicker().C:
				if err := s.draw(timeService.Elapsed(), win.Aspect()); err != nil {
					log.WithError(err).Error("frame not drawn")
					if gfx.IsFailure(err) {
						cancel()
						return
					}
				}
				atomic.AddInt64(&frameCounter, 1)
			}
		}
	}()

	/* Event loop */
EventLoop:
	for {
		select {
		case <-runCtx.Done():
			break EventLoop
		case <-timeService.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						cancel()
					}
				case *sdl.WindowEvent:
					win.handle(et)
				case *sdl.QuitEvent:
					cancel()
				}
			}
		}
	}

	programSync.Wait()
	return nil
}

// pickDevice prefers a discrete GPU, then the first one listed.
func pickDevice(devices []gfx.PhysicalDeviceInfo) gfx.PhysicalDeviceInfo {
	for _, d := range devices {
		if d.Type == gfx.PhysicalDeviceTypeDiscrete {
			return d
		}
	}
	return devices[0]
}
