// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/korugfx/gfx"
)

func TestRegistry(t *testing.T) {
	c := qt.New(t)

	c.Assert(gfx.Get("registry-test"), qt.IsNil)

	gfx.Register("registry-test", func() gfx.Backend { return &stubBackend{} })
	defer gfx.Unregister("registry-test")

	c.Assert(gfx.Get("registry-test"), qt.Not(qt.IsNil))

	var found bool
	for _, name := range gfx.Available() {
		if name == "registry-test" {
			found = true
		}
	}
	c.Assert(found, qt.Equals, true)
}

func TestRegistryNewInstances(t *testing.T) {
	c := qt.New(t)
	first := gfx.Get(stubName)
	second := gfx.Get(stubName)
	c.Assert(first == second, qt.Equals, false)
}

func TestHandleTags(t *testing.T) {
	c := qt.New(t)

	var empty gfx.Pipeline
	c.Assert(empty.IsNil(), qt.Equals, true)

	native := new(int)
	p := gfx.Pipeline{Handle: gfx.NewHandle("vulkan", native)}
	c.Assert(p.IsNil(), qt.Equals, false)
	c.Assert(p.Backend(), qt.Equals, "vulkan")
	c.Assert(p.Native(), qt.Equals, interface{}(native))
}
