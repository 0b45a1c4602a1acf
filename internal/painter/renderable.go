package painter

import "moss-painter/internal/mathutil"

// Renderable is the final displayed moss mesh: inflated positions, the soup's
// normals, and an identity index list (the soup is already one entry per corner).
type Renderable struct {
	Vertices []mathutil.Vec3
	Normals  []mathutil.Vec3
	Indices  []int
}

// Triangles returns the triangle count.
func (r Renderable) Triangles() int {
	return len(r.Indices) / 3
}

// BuildRenderable copies vertices and normals into a new Renderable.
func BuildRenderable(vertices, normals []mathutil.Vec3) Renderable {
	r := Renderable{
		Vertices: append([]mathutil.Vec3(nil), vertices...),
		Normals:  append([]mathutil.Vec3(nil), normals...),
		Indices:  make([]int, len(vertices)),
	}
	for i := range r.Indices {
		r.Indices[i] = i
	}
	return r
}

// Sink receives every renderable the painter produces. It is the rendering
// collaborator's entry point and runs on the loop goroutine.
type Sink interface {
	Commit(r Renderable)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r Renderable)

func (f SinkFunc) Commit(r Renderable) { f(r) }
