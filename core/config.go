// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Environment variables read by LoadConfiguration.
const (
	EnvBackend         = "KORU_BACKEND"
	EnvValidation      = "KORU_VALIDATION"
	EnvFramesInFlight  = "KORU_FRAMES_IN_FLIGHT"
	EnvScreenWidth     = "KORU_SCREEN_WIDTH"
	EnvScreenHeight    = "KORU_SCREEN_HEIGHT"
	EnvFramesPerSecond = "KORU_FPS"
	EnvEventPollDelay  = "KORU_EVENT_POLL_DELAY"
	EnvAssets          = "KORU_ASSETS"
	EnvLogLevel        = "KORU_LOG_LEVEL"
	EnvLogFormat       = "KORU_LOG_FORMAT"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Renderer RendererConfiguration
	Log      LogConfiguration

	// Assets is an asset directory or a kar archive.
	Assets string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the window event polling interval in milliseconds.
	EventPollDelay int
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	Backend        string
	Validation     bool
	FramesInFlight uint32

	ScreenWidth  uint32
	ScreenHeight uint32
}

// LogConfiguration selects the log level and output format.
type LogConfiguration struct {
	Level  string
	Format string
}

// DefaultConfiguration returns the configuration used when nothing is set.
func DefaultConfiguration() Configuration {
	return Configuration{
		Time: TimeConfiguration{
			EventPollDelay: 50,
		},
		Renderer: RendererConfiguration{
			Backend:        "vulkan",
			FramesInFlight: 2,
			ScreenWidth:    800,
			ScreenHeight:   600,
		},
		Log: LogConfiguration{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfiguration loads the given .env files, missing ones are skipped,
// and builds the configuration from the environment. Variables that are
// already set take precedence over the files.
func LoadConfiguration(files ...string) (Configuration, error) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Configuration{}, fmt.Errorf("godotenv.Load(%s): %s", file, err.Error())
		}
	}
	envy.Reload()

	cfg := DefaultConfiguration()
	cfg.Renderer.Backend = envy.Get(EnvBackend, cfg.Renderer.Backend)
	cfg.Assets = envy.Get(EnvAssets, cfg.Assets)
	cfg.Log.Level = envy.Get(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Format = envy.Get(EnvLogFormat, cfg.Log.Format)

	var err error
	if cfg.Renderer.Validation, err = envBool(EnvValidation, cfg.Renderer.Validation); err != nil {
		return Configuration{}, err
	}
	if cfg.Renderer.FramesInFlight, err = envUint32(EnvFramesInFlight, cfg.Renderer.FramesInFlight); err != nil {
		return Configuration{}, err
	}
	if cfg.Renderer.ScreenWidth, err = envUint32(EnvScreenWidth, cfg.Renderer.ScreenWidth); err != nil {
		return Configuration{}, err
	}
	if cfg.Renderer.ScreenHeight, err = envUint32(EnvScreenHeight, cfg.Renderer.ScreenHeight); err != nil {
		return Configuration{}, err
	}
	if cfg.Time.FramesPerSecond, err = envInt(EnvFramesPerSecond, cfg.Time.FramesPerSecond); err != nil {
		return Configuration{}, err
	}
	if cfg.Time.EventPollDelay, err = envInt(EnvEventPollDelay, cfg.Time.EventPollDelay); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	value, err := envy.MustGet(key)
	if err != nil {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid number %q", key, value)
	}
	return n, nil
}

func envUint32(key string, fallback uint32) (uint32, error) {
	value, err := envy.MustGet(key)
	if err != nil {
		return fallback, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, value)
	}
	return uint32(n), nil
}

func envBool(key string, fallback bool) (bool, error) {
	value, err := envy.MustGet(key)
	if err != nil {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}

// Apply configures the standard logger.
func (c Configuration) Apply() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("%s: %s", EnvLogLevel, err.Error())
	}
	log.SetLevel(level)

	switch c.Log.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("%s: unknown format %q", EnvLogFormat, c.Log.Format)
	}
	return nil
}
