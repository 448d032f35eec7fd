package render

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/font"

	"github.com/supermuesli/dynwall/pkg/gfx"
)

const hudMargin = 8

// HUD is a one-line text overlay pinned to the top-left corner.
type HUD struct {
	ctx     gfx.Context
	program *gfx.Program
	sampler int32
	mesh    *gfx.Mesh
	tex     uint32
	face    font.Face
	color   color.Color

	text string
	img  *image.RGBA
}

// NewHUD compiles the overlay shader and allocates its quad and texture.
func NewHUD(ctx gfx.Context, face font.Face, c color.Color) (*HUD, error) {
	program, err := gfx.NewProgram(ctx, hudVertexShader, hudFragmentShader)
	if err != nil {
		program.Delete()
		return nil, errors.Wrap(err, "hud program")
	}

	return &HUD{
		ctx:     ctx,
		program: program,
		sampler: program.Uniform("uText"),
		mesh: gfx.NewMesh(ctx, 4, gfx.DynamicDraw,
			gfx.Attrib{Index: 0, Size: 2},
			gfx.Attrib{Index: 1, Size: 2},
		),
		tex:   ctx.GenTexture(),
		face:  face,
		color: c,
	}, nil
}

// Text returns the text currently on the overlay.
func (h *HUD) Text() string {
	return h.text
}

// Draw shows text on a framebuffer of the given size. The texture is only
// re-rasterized when text changes.
func (h *HUD) Draw(text string, width, height int) {
	if width <= 0 || height <= 0 || text == "" {
		return
	}
	if text != h.text || h.img == nil {
		h.text = text
		h.img = Rasterize(h.face, text, h.color)
		h.ctx.BindTexture(h.tex)
		h.ctx.TexImage2D(h.img)
	}

	b := h.img.Bounds()
	sx, sy := 2/float32(width), 2/float32(height)
	x0 := -1 + hudMargin*sx
	y1 := 1 - hudMargin*sy
	x1 := x0 + float32(b.Dx())*sx
	y0 := y1 - float32(b.Dy())*sy

	h.mesh.Upload([]float32{
		x0, y0, 0, 1,
		x1, y0, 1, 1,
		x1, y1, 1, 0,
		x0, y1, 0, 0,
	})

	h.program.Use()
	h.program.Uniform1i(h.sampler, 0)
	h.ctx.BindTexture(h.tex)
	h.mesh.Draw(gfx.TriangleFan, 4)
}

// Close frees the overlay's GPU objects.
func (h *HUD) Close() {
	if h.tex != 0 {
		h.ctx.DeleteTexture(h.tex)
		h.tex = 0
	}
	h.mesh.Delete()
	h.program.Delete()
}
