package gfx

// Attrib describes one float vertex attribute of a Mesh.
type Attrib struct {
	Index uint32
	Size  int32
}

// Mesh is a vertex array with a single interleaved float buffer behind it.
type Mesh struct {
	VAO uint32
	VBO uint32

	ctx      Context
	stride   int
	capacity int
	usage    uint32
}

// NewMesh allocates a vertex array and a buffer of capacity vertices laid out
// as attribs, in that order.
func NewMesh(ctx Context, capacity int, usage uint32, attribs ...Attrib) *Mesh {
	m := &Mesh{ctx: ctx, usage: usage}
	for _, a := range attribs {
		m.stride += int(a.Size)
	}

	m.VAO = ctx.GenVertexArray()
	m.VBO = ctx.GenBuffer()
	ctx.BindVertexArray(m.VAO)
	ctx.BindBuffer(ArrayBuffer, m.VBO)
	m.capacity = capacity
	ctx.BufferData(ArrayBuffer, capacity*m.stride, nil, usage)

	offset := 0
	for _, a := range attribs {
		ctx.VertexAttribPointer(a.Index, a.Size, m.stride, offset)
		ctx.EnableVertexAttribArray(a.Index)
		offset += int(a.Size)
	}

	ctx.BindBuffer(ArrayBuffer, 0)
	ctx.BindVertexArray(0)
	return m
}

// Stride is the number of floats per vertex.
func (m *Mesh) Stride() int {
	return m.stride
}

// Capacity is the number of vertices the buffer currently holds room for.
func (m *Mesh) Capacity() int {
	return m.capacity
}

// Upload writes vertices to the start of the buffer, reallocating it when
// they do not fit. It returns the number of vertices written.
func (m *Mesh) Upload(vertices []float32) int {
	n := len(vertices) / m.stride
	if n == 0 {
		return 0
	}

	m.ctx.BindBuffer(ArrayBuffer, m.VBO)
	if n > m.capacity {
		for m.capacity < n {
			m.capacity = max(2*m.capacity, 1)
		}
		m.ctx.BufferData(ArrayBuffer, m.capacity*m.stride, nil, m.usage)
	}
	m.ctx.BufferSubData(ArrayBuffer, 0, vertices[:n*m.stride])
	m.ctx.BindBuffer(ArrayBuffer, 0)
	return n
}

// Draw issues a single draw call over the first count vertices.
func (m *Mesh) Draw(mode uint32, count int) {
	if count <= 0 {
		return
	}
	m.ctx.BindVertexArray(m.VAO)
	m.ctx.DrawArrays(mode, 0, int32(count))
	m.ctx.BindVertexArray(0)
}

// Delete frees the vertex array and buffer. Further calls do nothing.
func (m *Mesh) Delete() {
	if m == nil || m.VAO == 0 {
		return
	}
	m.ctx.DeleteBuffer(m.VBO)
	m.ctx.DeleteVertexArray(m.VAO)
	m.VAO, m.VBO = 0, 0
}
