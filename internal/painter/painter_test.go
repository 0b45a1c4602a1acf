package painter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moss-painter/internal/batch"
	"moss-painter/internal/brush"
	"moss-painter/internal/inflate"
	"moss-painter/internal/job"
	"moss-painter/internal/mathutil"
	"moss-painter/internal/scene"
	"moss-painter/internal/soup"
)

var up = mathutil.Vec3{0, 1, 0}

// strip builds w unit cells along X on the XZ plane, two triangles per cell.
func strip(w int) *scene.Mesh {
	m := &scene.Mesh{}
	for x := 0; x <= w; x++ {
		for z := 0; z <= 1; z++ {
			m.Vertices = append(m.Vertices, mathutil.Vec3{float64(x), 0, float64(z)})
			m.Normals = append(m.Normals, up)
		}
	}
	idx := func(x, z int) int { return x*2 + z }
	for x := 0; x < w; x++ {
		a, b, c, d := idx(x, 0), idx(x+1, 0), idx(x+1, 1), idx(x, 1)
		m.Triangles = append(m.Triangles, a, c, b, a, d, c)
	}
	return m
}

type commits struct {
	got []Renderable
}

func (c *commits) Commit(r Renderable) { c.got = append(c.got, r) }

func newPainter(t *testing.T, cells, threshold int) (*Painter, *commits) {
	t.Helper()
	sink := &commits{}
	p := New(Options{
		MossDistance:   0.01,
		NormalMode:     inflate.Summed,
		Pool:           batch.Config{Workers: 2, BatchSize: 4},
		ProbeThreshold: threshold,
		Loop:           job.NewLoop(),
		Sink:           sink,
	})
	ground := scene.NewObject("ground", strip(cells), mathutil.Mat4Identity(), "stone")
	require.Equal(t, 1, p.ConfigureSources([]*scene.Object{ground}, nil))
	t.Cleanup(p.Close)
	return p, sink
}

func brushAt(radius float64, add bool) brush.Params {
	return brush.Params{Radius: radius, Add: add, Direction: up, AngleTolerance: 2}
}

// settle ticks the loop until the painter has no outstanding work.
func settle(t *testing.T, p *Painter) {
	t.Helper()
	for i := 0; i < 2000 && p.Busy(); i++ {
		p.Loop().Tick()
		time.Sleep(time.Millisecond)
	}
	require.False(t, p.Busy(), "painter still busy")
}

var cell0 = mathutil.Vec3{0.5, 0, 0.5}

func TestPaintInflatesAndCommits(t *testing.T) {
	p, sink := newPainter(t, 1, 0)

	p.PaintAt(cell0, brushAt(1, true))
	assert.Zero(t, p.Triangles(), "selection is held until Apply")
	p.Apply()
	require.Equal(t, 2, p.Triangles())
	assert.Equal(t, job.Running, p.InflationState())

	settle(t, p)
	require.Len(t, sink.got, 1)
	r := p.Renderable()
	require.Equal(t, 2, r.Triangles())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, r.Indices)

	// Each vertex rises by 0.01 per triangle that shares its exact position.
	base := p.Vertices()
	for i, v := range base {
		shared := 0
		for _, w := range base {
			if w == v {
				shared++
			}
		}
		assert.InDelta(t, 0.01*float64(shared), r.Vertices[i][1], 1e-12, "vertex %d", i)
		assert.Equal(t, v[0], r.Vertices[i][0])
		assert.Equal(t, v[2], r.Vertices[i][2])
		assert.Equal(t, up, r.Normals[i])
	}
}

func TestRepaintIsIdempotent(t *testing.T) {
	p, sink := newPainter(t, 1, 0)
	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	settle(t, p)
	before := p.Vertices()

	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	assert.False(t, p.Busy(), "an unchanged soup launches nothing")
	assert.Equal(t, before, p.Vertices())
	assert.Equal(t, 1, p.Stats().Launches)
	assert.Len(t, sink.got, 1)
}

func TestApplyAddsBeforeErasing(t *testing.T) {
	p, _ := newPainter(t, 1, 0)
	p.PaintAt(cell0, brushAt(1, false))
	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	settle(t, p)

	assert.Zero(t, p.Triangles())
	st := p.Stats()
	assert.Equal(t, 2, st.Added)
	assert.Equal(t, 2, st.Erased)
}

func TestEraseRemovesPainted(t *testing.T) {
	p, sink := newPainter(t, 2, 0)
	p.PaintAt(mathutil.Vec3{1, 0, 0.5}, brushAt(1.2, true))
	p.Apply()
	settle(t, p)
	require.Equal(t, 4, p.Triangles())

	p.PaintAt(cell0, brushAt(1, false))
	p.Apply()
	settle(t, p)
	assert.Equal(t, 2, p.Triangles())
	for _, v := range p.Vertices() {
		assert.GreaterOrEqual(t, v[0], 1.0)
	}
	assert.Equal(t, 2, sink.got[len(sink.got)-1].Triangles())
}

func TestRelaunchRetiresInFlightInflation(t *testing.T) {
	p, sink := newPainter(t, 2, 0)

	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	require.Equal(t, job.Running, p.InflationState())

	p.PaintAt(mathutil.Vec3{1.5, 0, 0.5}, brushAt(1, true))
	p.Apply()
	assert.Equal(t, job.Cancelled, p.InflationState())
	assert.True(t, p.Busy())
	st := p.Stats()
	assert.Equal(t, 1, st.Launches)
	assert.Equal(t, 1, st.Retired)
	assert.Equal(t, 1, st.Discarded)
	assert.Empty(t, sink.got, "retired result must not be committed")

	settle(t, p)
	st = p.Stats()
	assert.Equal(t, 2, st.Launches)
	assert.Equal(t, 1, st.Commits)
	require.Len(t, sink.got, 1)
	assert.Equal(t, 4, sink.got[0].Triangles())
}

func TestProbeMergesLargeIntents(t *testing.T) {
	p, _ := newPainter(t, 2, 1)

	// First merge runs inline: nothing in the soup yet.
	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	assert.Zero(t, p.Stats().Probes)
	require.Equal(t, 2, p.Triangles())

	p.PaintAt(mathutil.Vec3{1, 0, 0.5}, brushAt(1.2, true))
	p.Apply()
	assert.Equal(t, 1, p.Stats().Probes)
	assert.Equal(t, 2, p.Triangles(), "merge waits for the probe")

	settle(t, p)
	assert.Equal(t, 4, p.Triangles())
	assert.Equal(t, 4, p.Stats().Added)
	assert.Equal(t, 4, p.Renderable().Triangles())
}

func TestFlushCompletesEverything(t *testing.T) {
	p, sink := newPainter(t, 2, 1)
	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	p.PaintAt(mathutil.Vec3{1, 0, 0.5}, brushAt(1.2, true))
	p.Apply()

	p.Flush()
	assert.False(t, p.Busy())
	assert.Equal(t, 4, p.Renderable().Triangles())
	assert.Equal(t, 4, sink.got[len(sink.got)-1].Triangles())
}

func TestResetDiscardsRunningWork(t *testing.T) {
	p, sink := newPainter(t, 1, 0)
	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	require.True(t, p.Busy())

	p.Reset()
	assert.False(t, p.Busy())
	assert.Zero(t, p.Triangles())
	assert.Equal(t, job.Cancelled, p.InflationState())
	assert.Equal(t, 1, p.Stats().Discarded)
	require.Len(t, sink.got, 1)
	assert.Zero(t, sink.got[0].Triangles())
}

func TestRestoreRegenerates(t *testing.T) {
	src, _ := newPainter(t, 2, 0)
	src.PaintAt(mathutil.Vec3{1, 0, 0.5}, brushAt(1.2, true))
	src.Apply()
	settle(t, src)

	dst, _ := newPainter(t, 2, 0)
	require.NoError(t, dst.Restore(src.Vertices(), src.Normals()))
	settle(t, dst)
	assert.Equal(t, src.Renderable(), dst.Renderable())

	err := dst.Restore(src.Vertices()[:4], src.Normals()[:4])
	assert.ErrorIs(t, err, soup.ErrMisaligned)
	assert.Equal(t, 4, dst.Triangles())
}

func TestSweptStrokeApplies(t *testing.T) {
	p, _ := newPainter(t, 3, 0)
	params := brushAt(1, true)
	p.BeginStroke(params, brush.Swept)
	for _, x := range []float64{0.5, 1.5, 2.5} {
		p.ExtendStroke(mathutil.Vec3{x, 0, 0.5}, up)
	}
	assert.Zero(t, p.Triangles())
	p.EndStroke()
	settle(t, p)
	assert.Equal(t, 6, p.Triangles())

	// A second EndStroke without BeginStroke is ignored.
	p.EndStroke()
	assert.Equal(t, 6, p.Triangles())
}

func TestCloseDetachesFromLoop(t *testing.T) {
	p, _ := newPainter(t, 1, 0)
	p.PaintAt(cell0, brushAt(1, true))
	p.Apply()
	require.Equal(t, 2, p.Loop().Len())

	p.Close()
	assert.Zero(t, p.Loop().Len())
	assert.False(t, p.Busy())
}

func TestBuildRenderableCopies(t *testing.T) {
	v := []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}
	n := []mathutil.Vec3{up, up, up}
	r := BuildRenderable(v, n)
	v[0] = mathutil.Vec3{9, 9, 9}
	assert.Equal(t, mathutil.Vec3{0, 0, 0}, r.Vertices[0])
	assert.Equal(t, 1, r.Triangles())

	var got Renderable
	SinkFunc(func(r Renderable) { got = r }).Commit(r)
	assert.Equal(t, r, got)
}
