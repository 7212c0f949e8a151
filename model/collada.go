// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"errors"
	"fmt"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/korugfx/utility/collada"
)

// ErrNoGeometry is returned for documents without triangle geometry.
var ErrNoGeometry = errors.New("no triangle geometry")

// DefaultColor is given to imported vertices, Collada colors are not read.
var DefaultColor = glm.Vec4{1.0, 1.0, 0.0, 1.0}

// ImportCollada reads the first geometry of a Collada document into an
// indexed Mesh. Triangle corners sharing all of their attributes
// become one vertex.
func ImportCollada(fileContents []byte) (*Mesh, error) {
	doc, err := collada.Decode(fileContents)
	if err != nil {
		return nil, err
	}
	if len(doc.Geometries) == 0 {
		return nil, ErrNoGeometry
	}

	mesh := doc.Geometries[0].Mesh
	triangles := mesh.Triangles
	stride := triangles.Stride()
	if stride == 0 || len(triangles.Index) == 0 {
		return nil, ErrNoGeometry
	}
	if len(triangles.Index)%(3*stride) != 0 {
		return nil, fmt.Errorf("collada: %d indices do not make whole triangles", len(triangles.Index))
	}

	positions, err := attribute(&mesh, collada.SemanticVertex, 3, true)
	if err != nil {
		return nil, err
	}
	normals, err := attribute(&mesh, collada.SemanticNormal, 3, false)
	if err != nil {
		return nil, err
	}
	texCoords, err := attribute(&mesh, collada.SemanticTexCoord, 2, false)
	if err != nil {
		return nil, err
	}

	var (
		vertices []Vertex
		indices  []uint32
		seen     = make(map[[3]int]uint32)
	)
	for corner := 0; corner < len(triangles.Index)/stride; corner++ {
		element := triangles.Index[corner*stride : (corner+1)*stride]
		key := [3]int{positions.index(element), normals.index(element), texCoords.index(element)}
		if idx, ok := seen[key]; ok {
			indices = append(indices, idx)
			continue
		}

		vert := Vertex{Color: DefaultColor}
		p, err := positions.at(key[0])
		if err != nil {
			return nil, err
		}
		vert.Pos = glm.Vec3{p[0], p[1], p[2]}
		if n, err := normals.at(key[1]); err != nil {
			return nil, err
		} else if n != nil {
			vert.Normal = glm.Vec3{n[0], n[1], n[2]}
		}
		if t, err := texCoords.at(key[2]); err != nil {
			return nil, err
		} else if t != nil {
			vert.TexCoord = glm.Vec2{t[0], 1 - t[1]}
		}

		idx := uint32(len(vertices))
		seen[key] = idx
		vertices = append(vertices, vert)
		indices = append(indices, idx)
	}
	return NewMesh(vertices, indices), nil
}

type source struct {
	semantic string
	offset   int
	width    int
	data     []float32
}

func attribute(mesh *collada.Mesh, semantic string, width int, required bool) (*source, error) {
	input, ok := mesh.Triangles.Input(semantic)
	if !ok {
		if required {
			return nil, fmt.Errorf("collada: no %s input", semantic)
		}
		return nil, nil
	}
	src, ok := mesh.Source(input.Source)
	if !ok {
		return nil, fmt.Errorf("collada: %s source %s not found", semantic, input.Source)
	}
	if src.Accessor.Stride > width {
		width = src.Accessor.Stride
	}
	return &source{
		semantic: semantic,
		offset:   int(input.Offset),
		width:    width,
		data:     src.Floats.Data,
	}, nil
}

func (s *source) index(element []int) int {
	if s == nil {
		return -1
	}
	return element[s.offset]
}

func (s *source) at(idx int) ([]float32, error) {
	if s == nil {
		return nil, nil
	}
	if idx < 0 || (idx+1)*s.width > len(s.data) {
		return nil, fmt.Errorf("collada: %s index %d out of range", s.semantic, idx)
	}
	return s.data[idx*s.width : (idx+1)*s.width], nil
}
