package main

import (
	"moss-painter/internal/mathutil"
	"moss-painter/internal/scene"
)

// groundMesh builds an n×n grid of unit cells on the XZ plane facing +Y.
func groundMesh(n int) *scene.Mesh {
	m := &scene.Mesh{}
	up := mathutil.Vec3{0, 1, 0}
	for x := 0; x <= n; x++ {
		for z := 0; z <= n; z++ {
			m.Vertices = append(m.Vertices, mathutil.Vec3{float64(x), 0, float64(z)})
			m.Normals = append(m.Normals, up)
		}
	}
	idx := func(x, z int) int { return x*(n+1) + z }
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			a, b, c, d := idx(x, z), idx(x+1, z), idx(x+1, z+1), idx(x, z+1)
			m.Triangles = append(m.Triangles, a, c, b, a, d, c)
		}
	}
	return m
}

// boxMesh builds an axis-aligned box from the origin with flat per-face normals.
func boxMesh(size mathutil.Vec3) *scene.Mesh {
	faces := []struct {
		n       mathutil.Vec3
		corners [4]mathutil.Vec3
	}{
		{mathutil.Vec3{0, 1, 0}, [4]mathutil.Vec3{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
		{mathutil.Vec3{0, -1, 0}, [4]mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
		{mathutil.Vec3{1, 0, 0}, [4]mathutil.Vec3{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
		{mathutil.Vec3{-1, 0, 0}, [4]mathutil.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
		{mathutil.Vec3{0, 0, 1}, [4]mathutil.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
		{mathutil.Vec3{0, 0, -1}, [4]mathutil.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
	}
	m := &scene.Mesh{}
	for _, f := range faces {
		base := len(m.Vertices)
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, mathutil.Vec3{c[0] * size[0], c[1] * size[1], c[2] * size[2]})
			m.Normals = append(m.Normals, f.n)
		}
		m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// demoScene returns the paintable objects and the object carrying the moss.
func demoScene() (objects []*scene.Object, self *scene.Object) {
	ground := scene.NewObject("ground", groundMesh(8), mathutil.Mat4Identity(), "stone")
	rock := scene.NewObject("rock", boxMesh(mathutil.Vec3{2, 1.5, 2}),
		mathutil.TRS(mathutil.Vec3{4, 0, 1}, mathutil.Vec3{0, 20, 0}, mathutil.Vec3{1, 1, 1}), "stone")
	self = &scene.Object{Name: "moss", Mesh: &scene.Mesh{}, Transform: mathutil.Mat4Identity(), Static: true}
	return []*scene.Object{ground, rock, self}, self
}
