// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package asset resolves shaders and images by name from
// a kar archive or an asset directory.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Registered image decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gobuffalo/packd"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/korugfx/core"
	"github.com/devblok/korugfx/gfx"
	"github.com/devblok/korugfx/utility/kar"
)

// ErrEmpty is returned for assets that resolve to no data.
var ErrEmpty = errors.New("asset is empty")

// Loader finds assets by name in a packd.Finder.
type Loader struct {
	finder packd.Finder
	closer io.Closer

	// MaxTextureSize bounds texture dimensions, larger images are
	// scaled down keeping the aspect ratio. Zero disables scaling.
	MaxTextureSize int
}

// NewLoader creates a Loader over any finder, a packr box, a kar archive
// or a packd.MemoryBox.
func NewLoader(finder packd.Finder) *Loader {
	return &Loader{finder: finder}
}

// Open creates a Loader for path. Files are opened as memory mapped
// kar archives, directories as packr boxes.
func Open(path string) (*Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		log.WithField("dir", abs).Debug("assets from directory")
		return NewLoader(packr.NewBox(abs)), nil
	}

	ar, err := kar.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset.Open(%s): %w", path, err)
	}
	log.WithFields(log.Fields{
		"archive": path,
		"files":   len(ar.Names()),
	}).Debug("assets from kar archive")
	loader := NewLoader(ar)
	loader.closer = ar
	return loader, nil
}

// Close releases the underlying archive, if any.
func (l *Loader) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Bytes returns the raw contents of an asset.
func (l *Loader) Bytes(name string) ([]byte, error) {
	data, err := l.finder.Find(normalize(name))
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("asset %s: %w", name, ErrEmpty)
	}
	return data, nil
}

// Shader loads a compiled SPIR-V shader pair.
func (l *Loader) Shader(vertex, fragment string) (gfx.ShaderInfo, error) {
	vert, err := l.Bytes(vertex)
	if err != nil {
		return gfx.ShaderInfo{}, err
	}
	frag, err := l.Bytes(fragment)
	if err != nil {
		return gfx.ShaderInfo{}, err
	}
	return gfx.ShaderInfo{Vertex: vert, Fragment: frag}, nil
}

// Image decodes an image asset. The format is sniffed from the data.
func (l *Loader) Image(name string) (image.Image, error) {
	data, err := l.Bytes(name)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("asset %s: image.Decode(): %w", name, err)
	}
	log.WithFields(log.Fields{
		"asset":  name,
		"format": format,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("image decoded")
	return img, nil
}

// Texture decodes an image asset into RGBA texture info sampled
// linearly with repeating wrap mode.
func (l *Loader) Texture(name string) (gfx.TextureInfo, error) {
	img, err := l.Image(name)
	if err != nil {
		return gfx.TextureInfo{}, err
	}
	if l.MaxTextureSize > 0 {
		img = core.FitImage(img, l.MaxTextureSize, l.MaxTextureSize)
	}
	return gfx.TextureInfo{
		Image:     core.ImageData(img),
		MinFilter: gfx.TextureFilterLinear,
		MagFilter: gfx.TextureFilterLinear,
		WrapMode:  gfx.TextureModeRepeat,
	}, nil
}

func normalize(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "/")
}
