package brush

import "moss-painter/internal/mathutil"

// Intent is a batch of candidate triangles selected by one stroke, tagged add or
// erase. Vertices and Normals are index-aligned; each consecutive triple is one
// triangle.
type Intent struct {
	Add      bool
	Vertices []mathutil.Vec3
	Normals  []mathutil.Vec3
}

// Triangles returns the number of candidate triangles.
func (in Intent) Triangles() int {
	return len(in.Vertices) / 3
}

// Empty reports whether the intent selects nothing.
func (in Intent) Empty() bool {
	return len(in.Vertices) == 0
}

// Append adds one triangle in winding order.
func (in *Intent) Append(v, n [3]mathutil.Vec3) {
	in.Vertices = append(in.Vertices, v[0], v[1], v[2])
	in.Normals = append(in.Normals, n[0], n[1], n[2])
}

// Concat appends every triangle of other.
func (in *Intent) Concat(other Intent) {
	in.Vertices = append(in.Vertices, other.Vertices...)
	in.Normals = append(in.Normals, other.Normals...)
}

// Tri returns the positions of triangle t.
func (in Intent) Tri(t int) mathutil.Tri {
	return mathutil.Tri{in.Vertices[3*t], in.Vertices[3*t+1], in.Vertices[3*t+2]}
}

// Params are the brush settings shared by every frame of a stroke.
type Params struct {
	Radius float64
	Add    bool
	// Direction is compared against each triangle's first vertex normal.
	Direction mathutil.Vec3
	// AngleTolerance in degrees; triangles facing further away are rejected.
	AngleTolerance float64
}
