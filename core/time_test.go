// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/korugfx/core"
)

func TestNewTime(t *testing.T) {
	c := qt.New(t)
	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 60, EventPollDelay: 20})
	defer tm.Stop()

	c.Assert(tm.Fps(), qt.Equals, 60)
	c.Assert(tm.EventPollDelay(), qt.Equals, 20*time.Millisecond)

	select {
	case <-tm.EventTicker().C:
	case <-time.After(time.Second):
		c.Fatal("event ticker did not fire")
	}
}

func TestNewTimeUnlimited(t *testing.T) {
	c := qt.New(t)
	tm := core.NewTime(core.TimeConfiguration{})
	defer tm.Stop()

	c.Assert(tm.Fps(), qt.Equals, 0)
	c.Assert(tm.EventPollDelay(), qt.Equals, time.Millisecond)
	<-tm.FpsTicker().C
}
