// Package window opens the GLFW window the wallpaper renders into.
package window

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"

	"github.com/supermuesli/dynwall/pkg/config"
	"github.com/supermuesli/dynwall/pkg/gfx"
)

// Window is a GLFW window with a current OpenGL 3.3 core context.
type Window struct {
	*glfw.Window
}

// Open initializes GLFW and creates the window. It must be called from the
// main thread, which keeps the context for the rest of the program.
func Open(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}

	display, haveDisplay := displayBounds(cfg.Display)
	width, height := Size(cfg, display, haveDisplay)

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}

	if haveDisplay {
		x, y := Center(display, width, height)
		win.SetPos(x, y)
	}

	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	gfx.Logger().Info("window opened", "width", width, "height", height, "vsync", cfg.VSync)
	return &Window{Window: win}, nil
}

// Size picks the window size: a fraction of the display when cfg.Fit is set
// and the display is known, the configured size otherwise.
func Size(cfg config.Window, display image.Rectangle, haveDisplay bool) (width, height int) {
	if cfg.Fit > 0 && haveDisplay {
		return int(float64(display.Dx()) * cfg.Fit), int(float64(display.Dy()) * cfg.Fit)
	}
	return cfg.Width, cfg.Height
}

// Center returns the top-left corner placing a width x height window in the
// middle of display.
func Center(display image.Rectangle, width, height int) (x, y int) {
	return display.Min.X + (display.Dx()-width)/2, display.Min.Y + (display.Dy()-height)/2
}

func displayBounds(i int) (image.Rectangle, bool) {
	if i < 0 || i >= screenshot.NumActiveDisplays() {
		return image.Rectangle{}, false
	}
	b := screenshot.GetDisplayBounds(i)
	return b, !b.Empty()
}

// Time returns seconds since GLFW was initialized.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.GetFramebufferSize()
}

// PollEvents processes pending window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Close destroys the window and shuts GLFW down.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
