// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core holds engine services shared by the renderer and the
// programs: configuration, time keeping and data conversion helpers.
package core
