// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package model holds vertex and uniform data and describes
// their layout to the gfx pipeline.
package model

import (
	"bytes"
	"encoding/binary"
	"sync"
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/korugfx/gfx"
)

// Object represents the engine supported model
type Object interface {

	// SetPosition sets the object's current position in space.
	// Has to be thread-safe
	SetPosition(glm.Mat4)

	// Position gets the object's current position in space.
	// Has to be thread-safe
	Position() glm.Mat4

	// SetRotation sets the object's rotation matrix.
	// Has to be thread-safe
	SetRotation(glm.Mat4)

	// Rotation gets the object's rotation matrix.
	// Has to be thread-safe
	Rotation() glm.Mat4

	// Vertices returns the vertices for Renderer use,
	// so it has to match the descriptors exactly
	Vertices() []Vertex

	// Indices returns the index list, nil for non indexed objects.
	Indices() []uint32
}

// Vertex is a model vertex
type Vertex struct {
	Pos      glm.Vec3
	Normal   glm.Vec3
	Color    glm.Vec4
	TexCoord glm.Vec2
}

// Uniform defines a model-view-projection object
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

// UniformSize is the byte size of Uniform as uploaded.
const UniformSize = uint64(unsafe.Sizeof(Uniform{}))

// Bytes returns the uniform as tightly packed little endian floats.
func (u Uniform) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, UniformSize))
	binary.Write(buf, binary.LittleEndian, &u)
	return buf.Bytes()
}

// NewUniform builds a perspective camera uniform for a given aspect ratio.
func NewUniform(model glm.Mat4, aspect float32) Uniform {
	projection := glm.Perspective(glm.DegToRad(45), aspect, 0.1, 100)
	// Vulkan clip space has y pointing down.
	projection[5] *= -1
	return Uniform{
		Model:      model,
		View:       glm.LookAtV(glm.Vec3{2, 2, 2}, glm.Vec3{0, 0, 0}, glm.Vec3{0, 0, 1}),
		Projection: projection,
	}
}

// VertexBindings describes the vertex buffer binding of Vertex.
func VertexBindings() []gfx.VertexBinding {
	return []gfx.VertexBinding{{
		Binding: 0,
		Stride:  uint32(unsafe.Sizeof(Vertex{})),
	}}
}

// VertexAttributes describes every attribute of Vertex.
func VertexAttributes() []gfx.VertexAttribute {
	return []gfx.VertexAttribute{
		{
			Binding:  0,
			Location: 0,
			Type:     gfx.VertexDataVec3,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Binding:  0,
			Location: 1,
			Type:     gfx.VertexDataVec3,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Normal)),
		},
		{
			Binding:  0,
			Location: 2,
			Type:     gfx.VertexDataVec4,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
		{
			Binding:  0,
			Location: 3,
			Type:     gfx.VertexDataVec2,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.TexCoord)),
		},
	}
}

// VertexBytes packs vertices the way VertexBindings describes them.
func VertexBytes(vertices []Vertex) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(vertices)*int(unsafe.Sizeof(Vertex{}))))
	binary.Write(buf, binary.LittleEndian, vertices)
	return buf.Bytes()
}

// IndexBytes packs 32 bit indices.
func IndexBytes(indices []uint32) []byte {
	bts := make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(bts[4*i:], idx)
	}
	return bts
}

// BufferInfo describes a vertex buffer holding the object, with its
// index data appended when the object is indexed.
func BufferInfo(obj Object) gfx.BufferInfo {
	info := gfx.BufferInfo{
		Type:     gfx.BufferTypeVertex,
		Vertices: VertexBytes(obj.Vertices()),
	}
	if indices := obj.Indices(); len(indices) > 0 {
		info.Type |= gfx.BufferTypeIndex
		info.Indices = IndexBytes(indices)
	}
	return info
}

// Mesh is an Object held in memory.
type Mesh struct {
	mutex    sync.RWMutex
	position glm.Mat4
	rotation glm.Mat4

	vertices []Vertex
	indices  []uint32
}

// NewMesh creates a mesh at the origin.
func NewMesh(vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{
		position: glm.Ident4(),
		rotation: glm.Ident4(),
		vertices: vertices,
		indices:  indices,
	}
}

// SetPosition implements Object
func (m *Mesh) SetPosition(pos glm.Mat4) {
	m.mutex.Lock()
	m.position = pos
	m.mutex.Unlock()
}

// Position implements Object
func (m *Mesh) Position() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.position
}

// SetRotation implements Object
func (m *Mesh) SetRotation(rot glm.Mat4) {
	m.mutex.Lock()
	m.rotation = rot
	m.mutex.Unlock()
}

// Rotation implements Object
func (m *Mesh) Rotation() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.rotation
}

// Transform is the model matrix, position applied after rotation.
func (m *Mesh) Transform() glm.Mat4 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.position.Mul4(m.rotation)
}

// Vertices implements Object
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices implements Object
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Triangle is a single colored triangle facing +z.
func Triangle() *Mesh {
	normal := glm.Vec3{0, 0, 1}
	return NewMesh([]Vertex{
		{Pos: glm.Vec3{0, -0.5, 0}, Normal: normal, Color: glm.Vec4{1, 0, 0, 1}, TexCoord: glm.Vec2{0.5, 0}},
		{Pos: glm.Vec3{0.5, 0.5, 0}, Normal: normal, Color: glm.Vec4{0, 1, 0, 1}, TexCoord: glm.Vec2{1, 1}},
		{Pos: glm.Vec3{-0.5, 0.5, 0}, Normal: normal, Color: glm.Vec4{0, 0, 1, 1}, TexCoord: glm.Vec2{0, 1}},
	}, nil)
}
