// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"image"
	"image/color"
	"time"

	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/korugfx/core"
	"github.com/devblok/korugfx/gfx"
	"github.com/devblok/korugfx/model"
	"github.com/devblok/korugfx/utility/asset"
)

// Asset names the demo looks for.
const (
	vertexShader   = "shaders/mesh.vert.spv"
	fragmentShader = "shaders/mesh.frag.spv"
	albedoTexture  = "textures/albedo.png"
)

// scene owns every gfx object the demo draws with.
type scene struct {
	ctx *gfx.Context
	ws  gfx.WindowSurface

	mesh     *model.Mesh
	shader   gfx.Shader
	layout   gfx.DescriptorLayout
	uniform  gfx.UniformBuffer
	texture  gfx.Texture
	buffer   gfx.Buffer
	pipeline gfx.Pipeline
}

func loadMesh(loader *asset.Loader, name string) (*model.Mesh, error) {
	if name == "" {
		return model.Triangle(), nil
	}
	data, err := loader.Bytes(name)
	if err != nil {
		return nil, err
	}
	return model.ImportCollada(data)
}

func loadTexture(loader *asset.Loader) gfx.TextureInfo {
	info, err := loader.Texture(albedoTexture)
	if err == nil {
		return info
	}
	log.WithError(err).Warn("albedo texture not loaded, using plain white")
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return gfx.TextureInfo{
		Image:     core.ImageData(img),
		MinFilter: gfx.TextureFilterNearest,
		MagFilter: gfx.TextureFilterNearest,
		WrapMode:  gfx.TextureModeRepeat,
	}
}

func newScene(ctx *gfx.Context, ws gfx.WindowSurface, loader *asset.Loader, meshName string) (*scene, error) {
	s := &scene{ctx: ctx, ws: ws}
	var err error

	if s.mesh, err = loadMesh(loader, meshName); err != nil {
		return nil, err
	}

	shaderInfo, err := loader.Shader(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}
	if s.shader, err = ctx.CreateShaderFromBytes(shaderInfo); err != nil {
		return nil, err
	}

	if s.layout, err = ctx.CreateDescriptorLayout(gfx.DescriptorLayoutInfo{
		Bindings: []gfx.DescriptorBinding{
			{Binding: 0, Type: gfx.DescriptorUniformBuffer, Stage: gfx.ShaderStageVertex, Count: 1},
			{Binding: 1, Type: gfx.DescriptorCombinedImageSampler, Stage: gfx.ShaderStageFragment, Count: 1},
		},
	}); err != nil {
		s.destroy()
		return nil, err
	}

	if s.uniform, err = ctx.CreateUniformBuffer(gfx.UniformBufferInfo{
		Type:    gfx.BufferTypeUniform,
		Binding: 0,
		Size:    model.UniformSize,
	}); err != nil {
		s.destroy()
		return nil, err
	}

	if s.texture, err = ctx.CreateTexture(loadTexture(loader)); err != nil {
		s.destroy()
		return nil, err
	}

	if err := ctx.UpdateDescriptorLayout(s.layout, []gfx.DescriptorUpdate{
		{Binding: 0, Type: gfx.DescriptorUniformBuffer, Count: 1, UniformBuffer: s.uniform},
		{Binding: 1, Type: gfx.DescriptorCombinedImageSampler, Count: 1, Texture: s.texture},
	}); err != nil {
		s.destroy()
		return nil, err
	}

	if s.buffer, err = ctx.CreateBuffer(model.BufferInfo(s.mesh)); err != nil {
		s.destroy()
		return nil, err
	}

	if s.pipeline, err = ctx.CreatePipeline(gfx.PipelineInfo{
		Shader:            s.shader,
		VertexBindings:    model.VertexBindings(),
		VertexAttributes:  model.VertexAttributes(),
		DescriptorLayouts: []gfx.DescriptorLayout{s.layout},
		Surface:           ws,
	}); err != nil {
		s.destroy()
		return nil, err
	}

	log.WithFields(log.Fields{
		"vertices": len(s.mesh.Vertices()),
		"indices":  len(s.mesh.Indices()),
	}).Info("scene ready")
	return s, nil
}

// draw records and submits one frame, rotating the mesh over time.
func (s *scene) draw(elapsed time.Duration, aspect float32) error {
	ctx, ws := s.ctx, s.ws
	if err := ctx.BeginNextFrame(ws); err != nil {
		return err
	}

	s.mesh.SetRotation(glm.HomogRotate3D(float32(elapsed.Seconds()), glm.Vec3{0, 0, 1}))
	if err := ctx.UpdateUniformBuffer(ws, s.uniform, model.NewUniform(s.mesh.Transform(), aspect).Bytes()); err != nil {
		return err
	}

	if err := ctx.BeginCommandRecording(ws); err != nil {
		return err
	}
	ctx.SetClearColor(ws, gfx.Color{R: 0.05, G: 0.05, B: 0.08, A: 1})
	ctx.BeginRenderPass(ws)
	ctx.BindPipeline(ws, s.pipeline)
	ctx.BindDescriptorLayout(ws, s.pipeline, s.layout)
	ctx.BindVertexBuffer(ws, s.buffer)
	if indices := s.mesh.Indices(); len(indices) > 0 {
		ctx.BindIndexBuffer(ws, s.buffer)
		ctx.DrawIndexed(ws, uint32(len(indices)))
	} else {
		ctx.Draw(ws, uint32(len(s.mesh.Vertices())))
	}
	ctx.EndRenderPass(ws)
	if err := ctx.EndCommandRecording(ws); err != nil {
		return err
	}
	return ctx.DrawSubmit(ws)
}

// destroy releases whatever was created, in reverse order.
func (s *scene) destroy() {
	if !s.pipeline.IsNil() {
		s.ctx.DestroyPipeline(s.pipeline)
	}
	if !s.buffer.IsNil() {
		s.ctx.DestroyBuffer(s.buffer)
	}
	if !s.texture.IsNil() {
		s.ctx.DestroyTexture(s.texture)
	}
	if !s.uniform.IsNil() {
		s.ctx.DestroyUniformBuffer(s.uniform)
	}
	if !s.layout.IsNil() {
		s.ctx.DestroyDescriptorLayout(s.layout)
	}
	if !s.shader.IsNil() {
		s.ctx.DestroyShader(s.shader)
	}
}
