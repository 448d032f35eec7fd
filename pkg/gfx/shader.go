package gfx

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxInfoLog caps the diagnostic kept from a failed compile or link.
const MaxInfoLog = 512

// CompileError reports a shader unit that failed to compile.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program: " + e.Log
}

// StageName names a shader kind for diagnostics.
func StageName(kind uint32) string {
	switch kind {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("0x%04x", kind)
	}
}

func clip(log string) string {
	if len(log) > MaxInfoLog {
		return log[:MaxInfoLog]
	}
	return log
}

// CompileShader compiles a single shader unit from src. The handle is
// returned even when compilation fails, together with a *CompileError, and
// the caller owns it either way.
func CompileShader(ctx Context, kind uint32, src string) (uint32, error) {
	shader := ctx.CreateShader(kind)
	ctx.ShaderSource(shader, src)
	ctx.CompileShader(shader)

	if !ctx.ShaderCompiled(shader) {
		err := &CompileError{Stage: StageName(kind), Log: clip(ctx.ShaderInfoLog(shader))}
		Logger().Error("shader compilation failed", "stage", err.Stage, "log", err.Log)
		return shader, err
	}
	return shader, nil
}

// Program is a linked vertex and fragment shader pair.
type Program struct {
	ID uint32

	ctx Context
}

// NewProgram compiles both units and links them. The units are released
// after linking. A failed compile or link is logged and returned, and the
// returned Program still holds the program handle so it can be deleted.
func NewProgram(ctx Context, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, vsErr := CompileShader(ctx, VertexShader, vertexSrc)
	fs, fsErr := CompileShader(ctx, FragmentShader, fragmentSrc)

	p := &Program{ID: ctx.CreateProgram(), ctx: ctx}
	ctx.AttachShader(p.ID, vs)
	ctx.AttachShader(p.ID, fs)
	ctx.LinkProgram(p.ID)

	var linkErr error
	if !ctx.ProgramLinked(p.ID) {
		le := &LinkError{Log: clip(ctx.ProgramInfoLog(p.ID))}
		Logger().Error("program linking failed", "log", le.Log)
		linkErr = le
	}

	ctx.DeleteShader(vs)
	ctx.DeleteShader(fs)

	switch {
	case vsErr != nil:
		return p, errors.WithStack(vsErr)
	case fsErr != nil:
		return p, errors.WithStack(fsErr)
	case linkErr != nil:
		return p, errors.WithStack(linkErr)
	}
	return p, nil
}

// Use makes p the current program.
func (p *Program) Use() {
	p.ctx.UseProgram(p.ID)
}

// Uniform looks up a uniform location by name.
func (p *Program) Uniform(name string) int32 {
	return p.ctx.UniformLocation(p.ID, name)
}

// Uniform4f sets a vec4 uniform. p must be in use.
func (p *Program) Uniform4f(loc int32, x, y, z, w float32) {
	p.ctx.Uniform4f(loc, x, y, z, w)
}

// Uniform1i sets an int or sampler uniform. p must be in use.
func (p *Program) Uniform1i(loc int32, v int32) {
	p.ctx.Uniform1i(loc, v)
}

// Delete releases the program. Further calls do nothing.
func (p *Program) Delete() {
	if p == nil || p.ID == 0 {
		return
	}
	p.ctx.DeleteProgram(p.ID)
	p.ID = 0
}
