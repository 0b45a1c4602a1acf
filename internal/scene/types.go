package scene

import (
	"errors"

	"moss-painter/internal/mathutil"
)

// ErrInvalidMesh is returned when a mesh's index buffer cannot describe triangles.
var ErrInvalidMesh = errors.New("scene: invalid mesh")

// Mesh holds local-space source geometry. Normals are index-aligned with Vertices;
// Triangles is a flat list of vertex index triples.
type Mesh struct {
	Vertices  []mathutil.Vec3
	Normals   []mathutil.Vec3
	Triangles []int
}

// Validate checks index alignment and bounds.
func (m *Mesh) Validate() error {
	if len(m.Normals) != len(m.Vertices) {
		return errors.Join(ErrInvalidMesh, errNormalCount)
	}
	if len(m.Triangles)%3 != 0 {
		return errors.Join(ErrInvalidMesh, errIndexCount)
	}
	for _, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return errors.Join(ErrInvalidMesh, errIndexRange)
		}
	}
	return nil
}

var (
	errNormalCount = errors.New("normal count differs from vertex count")
	errIndexCount  = errors.New("index count is not a multiple of 3")
	errIndexRange  = errors.New("triangle index out of range")
)

// Renderer is the drawable half of a scene object.
type Renderer interface {
	// Bounds returns the world-space bounding box.
	Bounds() mathutil.Box
	// Material names the assigned material; "" means none.
	Material() string
	// Alive is false once the renderer has been destroyed by the host.
	Alive() bool
}

// Object is one scene entry offered as a paint source.
type Object struct {
	Name      string
	Mesh      *Mesh
	Transform mathutil.Mat4
	Renderer  Renderer
	Static    bool
}

// Baked is a source mesh transformed into world space. Immutable once cached.
type Baked struct {
	Vertices  []mathutil.Vec3
	Normals   []mathutil.Vec3
	Triangles []int
}

// TriangleCount returns the number of triangles.
func (b *Baked) TriangleCount() int {
	return len(b.Triangles) / 3
}

// Triangle returns the world-space corners and normals of triangle t.
func (b *Baked) Triangle(t int) (v, n [3]mathutil.Vec3) {
	i0, i1, i2 := b.Triangles[3*t], b.Triangles[3*t+1], b.Triangles[3*t+2]
	v = [3]mathutil.Vec3{b.Vertices[i0], b.Vertices[i1], b.Vertices[i2]}
	n = [3]mathutil.Vec3{b.Normals[i0], b.Normals[i1], b.Normals[i2]}
	return v, n
}

// Bake transforms mesh into world space: points by the full transform, normals by
// the normal matrix with their length kept. Indices are copied verbatim.
func Bake(mesh *Mesh, transform mathutil.Mat4) (*Baked, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	b := &Baked{
		Vertices:  make([]mathutil.Vec3, len(mesh.Vertices)),
		Normals:   make([]mathutil.Vec3, len(mesh.Normals)),
		Triangles: make([]int, len(mesh.Triangles)),
	}
	nm := transform.NormalMatrix()
	for k, v := range mesh.Vertices {
		b.Vertices[k] = transform.MulPoint(v)
		n := mesh.Normals[k]
		b.Normals[k] = nm.MulVec3(n).Normalize().Scale(n.Len())
	}
	copy(b.Triangles, mesh.Triangles)
	return b, nil
}

// MeshRenderer is a Renderer whose bounds are derived from a transformed mesh.
type MeshRenderer struct {
	bounds   mathutil.Box
	material string
	alive    bool
}

// NewMeshRenderer computes world bounds for mesh under transform.
func NewMeshRenderer(mesh *Mesh, transform mathutil.Mat4, material string) *MeshRenderer {
	world := make([]mathutil.Vec3, len(mesh.Vertices))
	for k, v := range mesh.Vertices {
		world[k] = transform.MulPoint(v)
	}
	bounds, _ := mathutil.PointsBounds(world)
	return &MeshRenderer{bounds: bounds, material: material, alive: true}
}

func (r *MeshRenderer) Bounds() mathutil.Box { return r.bounds }
func (r *MeshRenderer) Material() string     { return r.material }
func (r *MeshRenderer) Alive() bool          { return r.alive }

// Destroy marks the renderer as gone; queries skip it afterwards.
func (r *MeshRenderer) Destroy() { r.alive = false }

// NewObject builds a static object with a MeshRenderer.
func NewObject(name string, mesh *Mesh, transform mathutil.Mat4, material string) *Object {
	return &Object{
		Name:      name,
		Mesh:      mesh,
		Transform: transform,
		Renderer:  NewMeshRenderer(mesh, transform, material),
		Static:    true,
	}
}
