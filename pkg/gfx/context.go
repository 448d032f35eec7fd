// Package gfx is the small slice of OpenGL the wallpaper draws with.
//
// Drawing code talks to a Context instead of calling the GL bindings
// directly, so the same code runs against the real driver (package glcore)
// and against an in-memory recorder in tests (package gltest). Every method
// must be called from the thread that owns the GL context.
package gfx

import "image"

// GL enums used by the wallpaper. The values match the OpenGL headers.
const (
	VertexShader   uint32 = 0x8B31
	FragmentShader uint32 = 0x8B30

	ArrayBuffer uint32 = 0x8892

	StaticDraw  uint32 = 0x88E4
	StreamDraw  uint32 = 0x88E0
	DynamicDraw uint32 = 0x88E8

	Points      uint32 = 0x0000
	Triangles   uint32 = 0x0004
	TriangleFan uint32 = 0x0006

	ColorBufferBit uint32 = 0x00004000
	DepthBufferBit uint32 = 0x00000100

	DepthTest        uint32 = 0x0B71
	Blend            uint32 = 0x0BE2
	ProgramPointSize uint32 = 0x8642

	Lequal uint32 = 0x0203

	SrcAlpha         uint32 = 0x0302
	OneMinusSrcAlpha uint32 = 0x0303
)

// Context is an OpenGL 3.3 core context.
type Context interface {
	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform4f(loc int32, x, y, z, w float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target, buf uint32)
	// BufferData allocates size floats of storage, filled from data when it
	// is not nil.
	BufferData(target uint32, size int, data []float32, usage uint32)
	// BufferSubData writes data starting at the float offset.
	BufferSubData(target uint32, offset int, data []float32)
	DeleteBuffer(buf uint32)

	// VertexAttribPointer describes a float attribute; stride and offset
	// count floats, not bytes.
	VertexAttribPointer(index uint32, size int32, stride, offset int)
	EnableVertexAttribArray(index uint32)
	DrawArrays(mode uint32, first, count int32)

	GenTexture() uint32
	BindTexture(tex uint32)
	// TexImage2D uploads img to the bound 2D texture with linear filtering.
	TexImage2D(img *image.RGBA)
	DeleteTexture(tex uint32)

	Enable(capability uint32)
	DepthFunc(fn uint32)
	BlendFunc(src, dst uint32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
}
