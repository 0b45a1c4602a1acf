// Package soup stores the generated moss geometry as an unindexed triangle soup.
package soup

import (
	"errors"
	"fmt"

	"moss-painter/internal/brush"
	"moss-painter/internal/logging"
	"moss-painter/internal/mathutil"
)

// ErrMisaligned is returned for vertex/normal arrays that cannot form triangles.
var ErrMisaligned = errors.New("soup: misaligned triangle arrays")

// Soup is the persistent accumulator. Every consecutive triple of vertices is one
// triangle; after any merge no two triangles have identical positions in the
// same vertex order. Owned by the foreground loop; not safe for concurrent use.
type Soup struct {
	vertices []mathutil.Vec3
	normals  []mathutil.Vec3
}

// Result counts what a merge did.
type Result struct {
	Added   int
	Erased  int
	Skipped int
}

// Changed reports whether the soup's structure changed.
func (r Result) Changed() bool {
	return r.Added > 0 || r.Erased > 0
}

// New returns an empty soup.
func New() *Soup {
	return &Soup{}
}

// Len returns the vertex count (always a multiple of 3).
func (s *Soup) Len() int {
	return len(s.vertices)
}

// Triangles returns the triangle count.
func (s *Soup) Triangles() int {
	return len(s.vertices) / 3
}

// Tri returns the positions of triangle t.
func (s *Soup) Tri(t int) mathutil.Tri {
	return mathutil.Tri{s.vertices[3*t], s.vertices[3*t+1], s.vertices[3*t+2]}
}

// Vertices returns a copy of the vertex positions.
func (s *Soup) Vertices() []mathutil.Vec3 {
	return append([]mathutil.Vec3(nil), s.vertices...)
}

// Normals returns a copy of the vertex normals.
func (s *Soup) Normals() []mathutil.Vec3 {
	return append([]mathutil.Vec3(nil), s.normals...)
}

// Snapshot returns frozen copies of both arrays for a background job.
func (s *Soup) Snapshot() (vertices, normals []mathutil.Vec3) {
	return s.Vertices(), s.Normals()
}

// Reset empties the soup.
func (s *Soup) Reset() {
	s.vertices = nil
	s.normals = nil
}

// Restore replaces the contents with previously serialized arrays. The arrays are
// copied. No dedup pass is run over restored data.
func (s *Soup) Restore(vertices, normals []mathutil.Vec3) error {
	if err := checkAligned(vertices, normals); err != nil {
		return err
	}
	s.vertices = append([]mathutil.Vec3(nil), vertices...)
	s.normals = append([]mathutil.Vec3(nil), normals...)
	return nil
}

func checkAligned(vertices, normals []mathutil.Vec3) error {
	if len(vertices) != len(normals) {
		return fmt.Errorf("%w: %d vertices, %d normals", ErrMisaligned, len(vertices), len(normals))
	}
	if len(vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertices", ErrMisaligned, len(vertices))
	}
	return nil
}

// Find returns the vertex index of the first triangle matching tri exactly, or -1.
func (s *Soup) Find(tri mathutil.Tri) int {
	return FindTri(s.vertices, tri)
}

// FindTri scans vertices in triangle-aligned steps for the first exact, same-order
// match of tri. Returns its starting vertex index or -1.
func FindTri(vertices []mathutil.Vec3, tri mathutil.Tri) int {
	for b := 0; b+2 < len(vertices); b += 3 {
		if vertices[b] == tri[0] && vertices[b+1] == tri[1] && vertices[b+2] == tri[2] {
			return b
		}
	}
	return -1
}

// Merge applies an intent: additions append triangles not already present,
// erasures remove the first exact match of each candidate.
func (s *Soup) Merge(in brush.Intent) (Result, error) {
	return s.merge(in, func(t int, tri mathutil.Tri) int { return s.Find(tri) })
}

// MergeMatched is Merge with the cross-accumulator search already done.
// matches[t] is the vertex index of candidate t's exact match in the current
// contents, or -1; see package probe.
func (s *Soup) MergeMatched(in brush.Intent, matches []int) (Result, error) {
	if len(matches) != in.Triangles() {
		return Result{}, fmt.Errorf("%w: %d matches for %d candidates", ErrMisaligned, len(matches), in.Triangles())
	}
	return s.merge(in, func(t int, _ mathutil.Tri) int { return matches[t] })
}

func (s *Soup) merge(in brush.Intent, match func(t int, tri mathutil.Tri) int) (Result, error) {
	var res Result
	if err := checkAligned(in.Vertices, in.Normals); err != nil {
		return res, err
	}

	// Candidates are matched against the contents as they were before this
	// merge. Additions cannot collide with each other after the self-dedup pass
	// and erasures never see triangles appended by the same intent.
	seen := make(map[mathutil.Tri]struct{}, in.Triangles())
	var remove []int
	for t := 0; t < in.Triangles(); t++ {
		tri := in.Tri(t)
		if _, dup := seen[tri]; dup {
			res.Skipped++
			continue
		}
		seen[tri] = struct{}{}

		at := match(t, tri)
		if in.Add {
			if at >= 0 {
				res.Skipped++
				continue
			}
			s.vertices = append(s.vertices, tri[0], tri[1], tri[2])
			s.normals = append(s.normals, in.Normals[3*t], in.Normals[3*t+1], in.Normals[3*t+2])
			res.Added++
			continue
		}
		if at < 0 {
			res.Skipped++
			continue
		}
		remove = append(remove, at)
	}

	if len(remove) > 0 {
		res.Erased = s.removeTriangles(remove)
	}

	logging.For("soup").Debug("merged",
		"add", in.Add, "candidates", in.Triangles(),
		"added", res.Added, "erased", res.Erased, "skipped", res.Skipped,
		"triangles", s.Triangles())
	return res, nil
}

// removeTriangles drops the triangles starting at the given vertex indices by
// building fresh slices, so earlier removals never shift later indices.
func (s *Soup) removeTriangles(starts []int) int {
	drop := make(map[int]struct{}, len(starts))
	for _, b := range starts {
		drop[b] = struct{}{}
	}
	keep := len(s.vertices) - 3*len(drop)
	vertices := make([]mathutil.Vec3, 0, keep)
	normals := make([]mathutil.Vec3, 0, keep)
	for b := 0; b < len(s.vertices); b += 3 {
		if _, ok := drop[b]; ok {
			continue
		}
		vertices = append(vertices, s.vertices[b:b+3]...)
		normals = append(normals, s.normals[b:b+3]...)
	}
	s.vertices = vertices
	s.normals = normals
	return len(drop)
}
