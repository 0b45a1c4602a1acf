// Package probe finds, in parallel, which candidate triangles already exist in
// an accumulator.
package probe

import (
	"moss-painter/internal/batch"
	"moss-painter/internal/mathutil"
	"moss-painter/internal/soup"
)

// NoMatch marks a candidate without an exact counterpart.
const NoMatch = -1

// Job is an in-flight probe. existing and candidates are read-only for the job's
// lifetime; matches[t] is written by exactly one task.
type Job struct {
	existing   []mathutil.Vec3
	candidates []mathutil.Vec3
	matches    []int
	handle     *batch.Handle
}

// Start launches one task per candidate triangle (every consecutive triple of
// candidates). Each task scans existing in triangle-aligned steps and records
// the vertex index of the first exact same-order match, or NoMatch. A trailing
// partial triple in candidates is ignored.
func Start(pool batch.Config, existing, candidates []mathutil.Vec3) *Job {
	n := len(candidates) / 3
	j := &Job{
		existing:   existing,
		candidates: candidates,
		matches:    make([]int, n),
	}
	j.handle = batch.Run(pool, n, func(t int) {
		tri := mathutil.Tri{candidates[3*t], candidates[3*t+1], candidates[3*t+2]}
		j.matches[t] = soup.FindTri(existing, tri)
	})
	return j
}

// Compute runs a probe and waits for it.
func Compute(pool batch.Config, existing, candidates []mathutil.Vec3) []int {
	j := Start(pool, existing, candidates)
	j.Wait()
	return j.Matches()
}

// Done is closed when every candidate has been probed.
func (j *Job) Done() <-chan struct{} { return j.handle.Done() }

// Wait blocks until the probe finishes.
func (j *Job) Wait() { j.handle.Wait() }

// Matches returns per-candidate match indices. Only valid after completion and
// before Release.
func (j *Job) Matches() []int {
	return j.matches
}

// Release drops every buffer the job owns.
func (j *Job) Release() {
	j.existing = nil
	j.candidates = nil
	j.matches = nil
}
