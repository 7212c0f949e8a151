// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/korugfx/core"
)

var configKeys = []string{
	core.EnvBackend,
	core.EnvValidation,
	core.EnvFramesInFlight,
	core.EnvScreenWidth,
	core.EnvScreenHeight,
	core.EnvFramesPerSecond,
	core.EnvEventPollDelay,
	core.EnvAssets,
	core.EnvLogLevel,
	core.EnvLogFormat,
}

// cleanEnv unsets every configuration variable for the duration of a test.
func cleanEnv(c *qt.C) {
	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok {
			key, value := key, value
			c.Defer(func() { os.Setenv(key, value) })
		}
		os.Unsetenv(key)
	}
	c.Defer(func() {
		for _, key := range configKeys {
			os.Unsetenv(key)
		}
	})
}

func TestLoadConfigurationDefaults(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	cleanEnv(c)

	cfg, err := core.LoadConfiguration("does-not-exist.env")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, core.DefaultConfiguration())
	c.Assert(cfg.Renderer.Backend, qt.Equals, "vulkan")
	c.Assert(cfg.Renderer.FramesInFlight, qt.Equals, uint32(2))
	c.Assert(cfg.Time.EventPollDelay, qt.Equals, 50)
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	cleanEnv(c)

	os.Setenv(core.EnvFramesInFlight, "3")
	os.Setenv(core.EnvValidation, "true")
	os.Setenv(core.EnvScreenWidth, "1024")
	os.Setenv(core.EnvAssets, "assets.kar")

	cfg, err := core.LoadConfiguration()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Renderer.FramesInFlight, qt.Equals, uint32(3))
	c.Assert(cfg.Renderer.Validation, qt.Equals, true)
	c.Assert(cfg.Renderer.ScreenWidth, qt.Equals, uint32(1024))
	c.Assert(cfg.Renderer.ScreenHeight, qt.Equals, uint32(600))
	c.Assert(cfg.Assets, qt.Equals, "assets.kar")
}

func TestLoadConfigurationFile(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	cleanEnv(c)

	dir, err := ioutil.TempDir("", "core")
	c.Assert(err, qt.IsNil)
	c.Defer(func() { os.RemoveAll(dir) })

	file := filepath.Join(dir, "koru.env")
	c.Assert(ioutil.WriteFile(file, []byte("KORU_FPS=60\nKORU_LOG_FORMAT=json\n"), 0644), qt.IsNil)
	os.Setenv(core.EnvFramesPerSecond, "30")

	cfg, err := core.LoadConfiguration(file)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Time.FramesPerSecond, qt.Equals, 30)
	c.Assert(cfg.Log.Format, qt.Equals, "json")
}

func TestLoadConfigurationInvalidNumber(t *testing.T) {
	c := qt.New(t)
	defer c.Done()
	cleanEnv(c)

	os.Setenv(core.EnvScreenHeight, "tall")
	_, err := core.LoadConfiguration()
	c.Assert(err, qt.ErrorMatches, `KORU_SCREEN_HEIGHT: invalid number "tall"`)

	os.Unsetenv(core.EnvScreenHeight)
	os.Setenv(core.EnvFramesPerSecond, "-1")
	_, err = core.LoadConfiguration()
	c.Assert(err, qt.ErrorMatches, `KORU_FPS: invalid number "-1"`)
}

func TestConfigurationApply(t *testing.T) {
	c := qt.New(t)
	level := log.GetLevel()
	defer log.SetLevel(level)

	cfg := core.DefaultConfiguration()
	cfg.Log.Level = "debug"
	c.Assert(cfg.Apply(), qt.IsNil)
	c.Assert(log.GetLevel(), qt.Equals, log.DebugLevel)

	cfg.Log.Level = "chatty"
	c.Assert(cfg.Apply(), qt.Not(qt.IsNil))

	cfg.Log.Level = "info"
	cfg.Log.Format = "xml"
	c.Assert(cfg.Apply(), qt.ErrorMatches, `KORU_LOG_FORMAT: unknown format "xml"`)

	log.SetFormatter(&log.TextFormatter{})
}
