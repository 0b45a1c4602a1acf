// Package inflate displaces a triangle soup outward along its vertex normals.
package inflate

import (
	"fmt"

	"moss-painter/internal/batch"
	"moss-painter/internal/mathutil"
)

// NormalMode decides how normals of coincident vertices are combined.
type NormalMode int

const (
	// Summed adds the normals of every coincident vertex without dividing, so a
	// position shared by more patches moves further. This bulges seams.
	Summed NormalMode = iota
	// Averaged divides the summed normal by the number of coincident vertices.
	Averaged
)

// DefaultMode is the combination used unless configured otherwise.
const DefaultMode = Summed

func (m NormalMode) String() string {
	switch m {
	case Summed:
		return "sum"
	case Averaged:
		return "average"
	}
	return fmt.Sprintf("NormalMode(%d)", int(m))
}

// ParseNormalMode maps a config string to a NormalMode.
func ParseNormalMode(s string) (NormalMode, error) {
	switch s {
	case "", "sum":
		return Summed, nil
	case "average":
		return Averaged, nil
	}
	return DefaultMode, fmt.Errorf("inflate: unknown normal mode %q", s)
}

// Vertex computes the displaced position of vertices[i]: every k with
// vertices[k] == vertices[i] (i included) contributes normals[k].
func Vertex(vertices, normals []mathutil.Vec3, i int, amount float64, mode NormalMode) mathutil.Vec3 {
	p := vertices[i]
	var dir mathutil.Vec3
	matches := 0
	for k := range vertices {
		if vertices[k] == p {
			dir = dir.Add(normals[k])
			matches++
		}
	}
	if mode == Averaged && matches > 0 {
		dir = dir.Scale(1 / float64(matches))
	}
	return p.Add(dir.Scale(amount))
}

// Compute inflates every vertex in parallel and waits for the result.
func Compute(pool batch.Config, vertices, normals []mathutil.Vec3, amount float64, mode NormalMode) []mathutil.Vec3 {
	j := Start(pool, vertices, normals, amount, mode)
	j.Wait()
	return j.Result()
}

// Job is an in-flight inflation. vertices and normals are read-only for the
// job's lifetime; out is written once per index by exactly one task.
type Job struct {
	vertices []mathutil.Vec3
	normals  []mathutil.Vec3
	out      []mathutil.Vec3
	handle   *batch.Handle
}

// Start launches the inflation and returns immediately. The job takes ownership
// of vertices and normals; callers must not modify them until Release.
func Start(pool batch.Config, vertices, normals []mathutil.Vec3, amount float64, mode NormalMode) *Job {
	j := &Job{
		vertices: vertices,
		normals:  normals,
		out:      make([]mathutil.Vec3, len(vertices)),
	}
	j.handle = batch.Run(pool, len(vertices), func(i int) {
		j.out[i] = Vertex(vertices, normals, i, amount, mode)
	})
	return j
}

// Done is closed when every vertex has been displaced.
func (j *Job) Done() <-chan struct{} { return j.handle.Done() }

// Wait blocks until the job finishes.
func (j *Job) Wait() { j.handle.Wait() }

// Handle exposes progress counters.
func (j *Job) Handle() *batch.Handle { return j.handle }

// Result returns the displaced positions. Only valid after completion and
// before Release.
func (j *Job) Result() []mathutil.Vec3 {
	return j.out
}

// Normals returns the input normals the job was started with.
func (j *Job) Normals() []mathutil.Vec3 {
	return j.normals
}

// Release drops every buffer the job owns.
func (j *Job) Release() {
	j.vertices = nil
	j.normals = nil
	j.out = nil
}
