package render

import (
	"image"
	"image/color"

	"github.com/faiface/pixel"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/supermuesli/dynwall/pkg/gfx"
)

func loadTTF(data []byte, size float64) (font.Face, error) {
	font, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	return truetype.NewFace(font, &truetype.Options{
		Size:              size,
		GlyphCacheEntries: 64,
	}), nil
}

// DefaultFace returns Go Regular at size points, or the built-in 7x13 bitmap
// face if the TrueType data cannot be parsed.
func DefaultFace(size float64) font.Face {
	face, err := loadTTF(goregular.TTF, size)
	if err != nil {
		gfx.Logger().Warn("falling back to bitmap font", "err", err)
		return basicfont.Face7x13
	}
	return face
}

// Rasterize draws text in c onto a transparent image just large enough to
// hold it.
func Rasterize(face font.Face, text string, c color.Color) *image.RGBA {
	d := &font.Drawer{Face: face}
	m := face.Metrics()

	w := d.MeasureString(text).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	d.Dst = img
	d.Src = image.NewUniform(c)
	d.Dot = fixed.P(0, m.Ascent.Ceil())
	d.DrawString(text)
	return img
}

// rgba converts any color to the float components GL uniforms expect.
func rgba(c color.Color) (r, g, b, a float32) {
	v := pixel.ToRGBA(c)
	return float32(v.R), float32(v.G), float32(v.B), float32(v.A)
}
