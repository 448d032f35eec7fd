package render

import (
	_ "embed"
)

var (
	//go:embed shaders/solid.vert
	solidVertexShader string
	//go:embed shaders/solid.frag
	solidFragmentShader string

	//go:embed shaders/points.vert
	pointsVertexShader string
	//go:embed shaders/points.frag
	pointsFragmentShader string

	//go:embed shaders/hud.vert
	hudVertexShader string
	//go:embed shaders/hud.frag
	hudFragmentShader string
)
