// Package glcore implements gfx.Context on top of the go-gl OpenGL 3.3 core
// bindings.
package glcore

import (
	"image"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"

	"github.com/supermuesli/dynwall/pkg/gfx"
)

const floatSize = 4

// Context is the real driver. The GL context must be current on the calling
// thread before New is called.
type Context struct{}

var _ gfx.Context = (*Context)(nil)

// New loads the GL function pointers for the current context.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "gl.Init")
	}
	gfx.Logger().Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Context{}, nil
}

func (*Context) CreateShader(kind uint32) uint32 {
	return gl.CreateShader(kind)
}

func (*Context) ShaderSource(shader uint32, src string) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	csources, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (*Context) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (*Context) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (*Context) ShaderInfoLog(shader uint32) string {
	var n int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetShaderInfoLog(shader, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (*Context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (*Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*Context) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (*Context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*Context) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (*Context) ProgramInfoLog(program uint32) string {
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetProgramInfoLog(program, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (*Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Context) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (*Context) Uniform4f(loc int32, x, y, z, w float32) {
	gl.Uniform4f(loc, x, y, z, w)
}

func (*Context) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*Context) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (*Context) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (*Context) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (*Context) BindBuffer(target, buf uint32) {
	gl.BindBuffer(target, buf)
}

func (*Context) BufferData(target uint32, size int, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, size*floatSize, nil, usage)
		return
	}
	gl.BufferData(target, size*floatSize, gl.Ptr(data), usage)
}

func (*Context) BufferSubData(target uint32, offset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(target, offset*floatSize, len(data)*floatSize, gl.Ptr(data))
}

func (*Context) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (*Context) VertexAttribPointer(index uint32, size int32, stride, offset int) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, int32(stride*floatSize), gl.PtrOffset(offset*floatSize))
}

func (*Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (*Context) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (*Context) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (*Context) BindTexture(tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (*Context) TexImage2D(img *image.RGBA) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

func (*Context) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (*Context) Enable(capability uint32) {
	gl.Enable(capability)
}

func (*Context) DepthFunc(fn uint32) {
	gl.DepthFunc(fn)
}

func (*Context) BlendFunc(src, dst uint32) {
	gl.BlendFunc(src, dst)
}

func (*Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*Context) Clear(mask uint32) {
	gl.Clear(mask)
}
