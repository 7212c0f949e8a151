// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/korugfx/core"
	"github.com/devblok/korugfx/gfx"
	_ "github.com/devblok/korugfx/gfx/vkr"
)

var (
	envFile  = flag.String("env", ".env", "Configuration file, the environment takes precedence")
	backend  = flag.String("backend", "", "Backend to query, overrides the configuration")
	pretty   = flag.Bool("pretty", false, "Indent the JSON output")
	backends = flag.Bool("backends", false, "List the available backends and exit")
)

func main() {
	flag.Parse()

	if *backends {
		for _, name := range gfx.Available() {
			fmt.Println(name)
		}
		return
	}

	configuration, err := core.LoadConfiguration(*envFile)
	if err != nil {
		log.WithError(err).Fatal("configuration not loaded")
	}
	if err := configuration.Apply(); err != nil {
		log.WithError(err).Fatal("configuration not applied")
	}
	if *backend != "" {
		configuration.Renderer.Backend = *backend
	}

	if err := dump(os.Stdout, configuration.Renderer); err != nil {
		log.WithError(err).Fatal("device dump failed")
	}
}

func dump(w io.Writer, cfg core.RendererConfiguration) error {
	ctx, err := gfx.NewContext(gfx.ContextInfo{
		Backend:         cfg.Backend,
		ApplicationName: "korucli",
		Validation:      cfg.Validation,
	})
	if err != nil {
		return err
	}
	defer ctx.Close()

	devices, err := ctx.PhysicalDevices()
	if err != nil {
		return err
	}
	return encode(w, devices)
}

func encode(w io.Writer, devices []gfx.PhysicalDeviceInfo) error {
	enc := json.NewEncoder(w)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(devices)
}
