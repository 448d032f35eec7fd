// Package gltest provides an in-memory gfx.Context for tests that draw
// without a GPU.
package gltest

import (
	"fmt"
	"image"
	"strings"

	"github.com/supermuesli/dynwall/pkg/gfx"
)

// Kind of GL object tracked by the Recorder.
type Kind string

const (
	Shader      Kind = "shader"
	Program     Kind = "program"
	VertexArray Kind = "vertex array"
	Buffer      Kind = "buffer"
	Texture     Kind = "texture"
)

// Draw is a recorded DrawArrays call.
type Draw struct {
	Mode    uint32
	First   int32
	Count   int32
	Program uint32
	VAO     uint32
}

type shaderState struct {
	kind     uint32
	src      string
	compiled bool
	log      string
}

// Recorder is a fake GL context. Shaders whose source contains a rejected
// marker fail to compile, and programs fail to link while LinkLog is set.
type Recorder struct {
	// LinkLog, when not empty, makes every link fail with this diagnostic.
	LinkLog string

	// Draws, Clears and Uniforms record what was submitted.
	Draws    []Draw
	Clears   []uint32
	Uniforms map[string][]float32
	Enabled  map[uint32]bool

	ClearColorValue [4]float32
	ViewportValue   [4]int32
	DepthFuncValue  uint32
	Textures        map[uint32]*image.RGBA

	// Faults collects misuse such as deleting an object twice.
	Faults []string

	next     uint32
	live     map[uint32]Kind
	reject   map[string]string
	shaders  map[uint32]*shaderState
	linked   map[uint32]bool
	attached map[uint32][]uint32
	uniforms map[int32]string
	buffers  map[uint32][]float32

	program     uint32
	vao         uint32
	arrayBuffer uint32
	texture     uint32
}

var _ gfx.Context = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Uniforms: make(map[string][]float32),
		Enabled:  make(map[uint32]bool),
		Textures: make(map[uint32]*image.RGBA),
		live:     make(map[uint32]Kind),
		reject:   make(map[string]string),
		shaders:  make(map[uint32]*shaderState),
		linked:   make(map[uint32]bool),
		attached: make(map[uint32][]uint32),
		uniforms: make(map[int32]string),
		buffers:  make(map[uint32][]float32),
	}
}

// Reject makes shaders containing marker fail to compile with log.
func (r *Recorder) Reject(marker, log string) {
	r.reject[marker] = log
}

// Live counts the objects of kind that are allocated and not yet deleted.
func (r *Recorder) Live(kind Kind) int {
	n := 0
	for _, k := range r.live {
		if k == kind {
			n++
		}
	}
	return n
}

// BufferContents returns the floats stored in buf.
func (r *Recorder) BufferContents(buf uint32) []float32 {
	return r.buffers[buf]
}

// Source returns the source last given to shader.
func (r *Recorder) Source(shader uint32) string {
	if s, ok := r.shaders[shader]; ok {
		return s.src
	}
	return ""
}

func (r *Recorder) alloc(kind Kind) uint32 {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *Recorder) free(id uint32, kind Kind) {
	if id == 0 {
		return
	}
	if r.live[id] != kind {
		r.fault("delete %s %d: not live", kind, id)
		return
	}
	delete(r.live, id)
}

func (r *Recorder) fault(format string, args ...any) {
	r.Faults = append(r.Faults, fmt.Sprintf(format, args...))
}

func (r *Recorder) CreateShader(kind uint32) uint32 {
	id := r.alloc(Shader)
	r.shaders[id] = &shaderState{kind: kind}
	return id
}

func (r *Recorder) ShaderSource(shader uint32, src string) {
	s, ok := r.shaders[shader]
	if !ok {
		r.fault("source for unknown shader %d", shader)
		return
	}
	s.src = src
}

func (r *Recorder) CompileShader(shader uint32) {
	s, ok := r.shaders[shader]
	if !ok {
		r.fault("compile unknown shader %d", shader)
		return
	}
	s.compiled = strings.TrimSpace(s.src) != ""
	s.log = ""
	if !s.compiled {
		s.log = "ERROR: 0:1: empty source"
	}
	for marker, log := range r.reject {
		if strings.Contains(s.src, marker) {
			s.compiled = false
			s.log = log
		}
	}
}

func (r *Recorder) ShaderCompiled(shader uint32) bool {
	s, ok := r.shaders[shader]
	return ok && s.compiled
}

func (r *Recorder) ShaderInfoLog(shader uint32) string {
	if s, ok := r.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.free(shader, Shader)
}

func (r *Recorder) CreateProgram() uint32 {
	return r.alloc(Program)
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.attached[program] = append(r.attached[program], shader)
}

func (r *Recorder) LinkProgram(program uint32) {
	ok := r.LinkLog == "" && len(r.attached[program]) == 2
	for _, sh := range r.attached[program] {
		if !r.ShaderCompiled(sh) {
			ok = false
		}
	}
	r.linked[program] = ok
}

func (r *Recorder) ProgramLinked(program uint32) bool {
	return r.linked[program]
}

func (r *Recorder) ProgramInfoLog(program uint32) string {
	if r.linked[program] {
		return ""
	}
	if r.LinkLog != "" {
		return r.LinkLog
	}
	return "ERROR: one or more attached shaders not successfully compiled"
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.free(program, Program)
}

func (r *Recorder) UseProgram(program uint32) {
	if program != 0 && !r.linked[program] {
		r.fault("use of unlinked program %d", program)
	}
	r.program = program
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	loc := int32(program)<<8 | int32(len(r.uniforms)+1)
	for l, n := range r.uniforms {
		if n == name && l>>8 == int32(program) {
			return l
		}
	}
	r.uniforms[loc] = name
	return loc
}

func (r *Recorder) setUniform(loc int32, v ...float32) {
	name, ok := r.uniforms[loc]
	if !ok {
		r.fault("unknown uniform location %d", loc)
		return
	}
	if loc>>8 != int32(r.program) {
		r.fault("uniform %s set while program %d is bound", name, r.program)
	}
	r.Uniforms[name] = v
}

func (r *Recorder) Uniform1i(loc int32, v int32) {
	r.setUniform(loc, float32(v))
}

func (r *Recorder) Uniform4f(loc int32, x, y, z, w float32) {
	r.setUniform(loc, x, y, z, w)
}

func (r *Recorder) GenVertexArray() uint32 {
	return r.alloc(VertexArray)
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.vao = vao
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.free(vao, VertexArray)
}

func (r *Recorder) GenBuffer() uint32 {
	return r.alloc(Buffer)
}

func (r *Recorder) BindBuffer(target, buf uint32) {
	if target == gfx.ArrayBuffer {
		r.arrayBuffer = buf
	}
}

func (r *Recorder) BufferData(target uint32, size int, data []float32, usage uint32) {
	if r.arrayBuffer == 0 {
		r.fault("buffer data with no buffer bound")
		return
	}
	storage := make([]float32, size)
	copy(storage, data)
	r.buffers[r.arrayBuffer] = storage
}

func (r *Recorder) BufferSubData(target uint32, offset int, data []float32) {
	storage := r.buffers[r.arrayBuffer]
	if offset+len(data) > len(storage) {
		r.fault("buffer %d overflow: %d+%d > %d", r.arrayBuffer, offset, len(data), len(storage))
		return
	}
	copy(storage[offset:], data)
}

func (r *Recorder) DeleteBuffer(buf uint32) {
	r.free(buf, Buffer)
	delete(r.buffers, buf)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, stride, offset int) {
	if r.vao == 0 {
		r.fault("attribute %d described with no vertex array bound", index)
	}
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	if r.vao == 0 {
		r.fault("draw with no vertex array bound")
	}
	r.Draws = append(r.Draws, Draw{
		Mode:    mode,
		First:   first,
		Count:   count,
		Program: r.program,
		VAO:     r.vao,
	})
}

func (r *Recorder) GenTexture() uint32 {
	return r.alloc(Texture)
}

func (r *Recorder) BindTexture(tex uint32) {
	r.texture = tex
}

func (r *Recorder) TexImage2D(img *image.RGBA) {
	if r.texture == 0 {
		r.fault("texture upload with no texture bound")
		return
	}
	r.Textures[r.texture] = img
}

func (r *Recorder) DeleteTexture(tex uint32) {
	r.free(tex, Texture)
	delete(r.Textures, tex)
}

func (r *Recorder) Enable(capability uint32) {
	r.Enabled[capability] = true
}

func (r *Recorder) DepthFunc(fn uint32) {
	r.DepthFuncValue = fn
}

func (r *Recorder) BlendFunc(src, dst uint32) {}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.ViewportValue = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.ClearColorValue = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask uint32) {
	r.Clears = append(r.Clears, mask)
}

// ResetFrame forgets recorded draws and clears.
func (r *Recorder) ResetFrame() {
	r.Draws = r.Draws[:0]
	r.Clears = r.Clears[:0]
}
