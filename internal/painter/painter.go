// Package painter turns brush strokes into an inflated moss overlay.
//
// A Painter owns the source cache, the triangle soup and two background job
// controllers (duplicate probe and inflation). Every method must be called from
// the goroutine that ticks the Painter's job.Loop.
package painter

import (
	"log/slog"

	"moss-painter/internal/brush"
	"moss-painter/internal/inflate"
	"moss-painter/internal/job"
	"moss-painter/internal/logging"
	"moss-painter/internal/mathutil"
	"moss-painter/internal/probe"
	"moss-painter/internal/scene"
	"moss-painter/internal/soup"
)

// Computation kinds.
const (
	KindInflate = "inflate"
	KindProbe   = "probe"
)

// Stats counts painter activity since creation.
type Stats struct {
	Added     int
	Erased    int
	Probes    int
	Launches  int
	Retired   int
	Commits   int
	Discarded int
}

// Painter accumulates painted triangles and regenerates the inflated mesh.
type Painter struct {
	opts Options
	log  *slog.Logger

	sources  *scene.Cache
	selector *brush.Selector
	soup     *soup.Soup
	stroke   brush.Stroke

	// Selections waiting for the next Apply.
	painting brush.Intent
	erasing  brush.Intent

	// Intents waiting to be merged, in order; probing is the one whose matches
	// are being computed.
	queue   []brush.Intent
	probing *brush.Intent

	inflater *job.Controller
	prober   *job.Controller
	stale    bool
	token    job.Token

	renderable Renderable
	stats      Stats
}

// New returns a Painter with no sources and an empty soup.
func New(opts Options) *Painter {
	if opts.Loop == nil {
		opts.Loop = job.NewLoop()
	}
	opts.Pool = opts.Pool.Resolve()

	p := &Painter{
		opts:     opts,
		log:      logging.For("painter"),
		sources:  scene.NewCache(),
		soup:     soup.New(),
		inflater: job.NewController(KindInflate, opts.Loop),
		prober:   job.NewController(KindProbe, opts.Loop),
		painting: brush.Intent{Add: true},
		erasing:  brush.Intent{Add: false},
	}
	p.selector = brush.NewSelector(p.sources)
	p.selector.Debug = opts.Debug
	p.token = opts.Loop.Subscribe(p.tick)
	return p
}

// Loop returns the loop driving this painter's jobs.
func (p *Painter) Loop() *job.Loop {
	return p.opts.Loop
}

// Sources returns the source cache.
func (p *Painter) Sources() *scene.Cache {
	return p.sources
}

// ConfigureSources rescans the eligible paint sources; self is the object the
// moss is attached to and is never painted onto.
func (p *Painter) ConfigureSources(objects []*scene.Object, self *scene.Object) int {
	return p.sources.Configure(objects, self)
}

// PaintAt selects under the brush at position and holds the result until Apply.
func (p *Painter) PaintAt(position mathutil.Vec3, params brush.Params) {
	p.hold(p.selector.SelectAt(position, params))
}

// PaintSwept selects along frames as one swept stroke and holds the result
// until Apply.
func (p *Painter) PaintSwept(frames []mathutil.Vec3, params brush.Params) {
	p.hold(p.selector.SelectSwept(frames, params))
}

func (p *Painter) hold(in brush.Intent) {
	if in.Empty() {
		return
	}
	if in.Add {
		p.painting.Concat(in)
	} else {
		p.erasing.Concat(in)
	}
}

// BeginStroke starts a gesture.
func (p *Painter) BeginStroke(params brush.Params, mode brush.Mode) {
	p.stroke.Begin(params, mode)
}

// ExtendStroke adds a frame at position; direction is the surface normal under
// the pointer and is used by Immediate strokes.
func (p *Painter) ExtendStroke(position, direction mathutil.Vec3) {
	p.stroke.Extend(p.selector, position, direction)
}

// EndStroke finishes the gesture and applies everything it selected.
func (p *Painter) EndStroke() {
	if !p.stroke.Active() {
		return
	}
	p.hold(p.stroke.End(p.selector))
	p.Apply()
}

// Apply merges held additions, then held erasures, and regenerates the mesh if
// the soup changed.
func (p *Painter) Apply() {
	if !p.painting.Empty() {
		p.queue = append(p.queue, p.painting)
	}
	if !p.erasing.Empty() {
		p.queue = append(p.queue, p.erasing)
	}
	p.painting = brush.Intent{Add: true}
	p.erasing = brush.Intent{Add: false}
	p.drain()
}

// Merge queues an externally built intent and applies it.
func (p *Painter) Merge(in brush.Intent) {
	if in.Empty() {
		return
	}
	p.queue = append(p.queue, in)
	p.drain()
}

// drain merges queued intents until the queue is empty or a probe is started.
func (p *Painter) drain() {
	changed := false
	for len(p.queue) > 0 && !p.prober.IsRunning() {
		in := p.queue[0]
		p.queue = p.queue[1:]
		if p.useProbe(in) {
			err := p.startProbe(in)
			if err == nil {
				break
			}
			p.log.Error("probe not started, merging inline", "err", err)
		}
		res, err := p.soup.Merge(in)
		if err != nil {
			p.log.Warn("intent dropped", "err", err)
			continue
		}
		changed = p.record(res) || changed
	}
	if len(p.queue) == 0 {
		p.queue = nil
	}
	if changed {
		p.regenerate()
	}
}

func (p *Painter) record(res soup.Result) bool {
	p.stats.Added += res.Added
	p.stats.Erased += res.Erased
	return res.Changed()
}

func (p *Painter) useProbe(in brush.Intent) bool {
	if p.opts.ProbeThreshold <= 0 {
		return false
	}
	return in.Triangles()*p.soup.Triangles() > p.opts.ProbeThreshold
}

// startProbe computes exact matches for in against a frozen copy of the soup.
// The soup is not merged into until the probe finishes or is cancelled.
func (p *Painter) startProbe(in brush.Intent) error {
	if p.prober.IsRunning() {
		return job.ErrRunning
	}
	j := probe.Start(p.opts.Pool, p.soup.Vertices(), in.Vertices)
	p.probing = &in
	p.stats.Probes++

	return p.prober.Start(j, func(ok bool) {
		matches := append([]int(nil), j.Matches()...)
		j.Release()
		pending := p.probing
		p.probing = nil
		if !ok || pending == nil {
			p.stats.Discarded++
			return
		}
		res, err := p.soup.MergeMatched(*pending, matches)
		if err != nil {
			p.log.Warn("probed intent dropped", "err", err)
		} else if p.record(res) {
			p.regenerate()
		}
		p.drain()
	})
}

// regenerate launches inflation over a snapshot of the soup. If an inflation is
// already in flight it is retired instead and the launch happens on the next
// loop tick.
func (p *Painter) regenerate() {
	if p.inflater.Retire() {
		p.stats.Retired++
		p.stale = true
		return
	}
	p.stale = false

	vertices, normals := p.soup.Snapshot()
	j := inflate.Start(p.opts.Pool, vertices, normals, p.opts.MossDistance, p.opts.NormalMode)
	p.stats.Launches++
	err := p.inflater.Start(j, func(ok bool) {
		if ok {
			p.commit(BuildRenderable(j.Result(), j.Normals()))
		} else {
			p.stats.Discarded++
		}
		j.Release()
	})
	if err != nil {
		j.Wait()
		j.Release()
		p.stale = true
		p.log.Error("inflation not started", "err", err)
	}
}

func (p *Painter) commit(r Renderable) {
	p.renderable = r
	p.stats.Commits++
	p.log.Debug("mesh committed", "triangles", r.Triangles())
	if p.opts.Sink != nil {
		p.opts.Sink.Commit(r)
	}
}

// tick runs once per loop tick before or after the job polls.
func (p *Painter) tick() {
	if p.stale && !p.inflater.IsRunning() {
		p.regenerate()
	}
	if len(p.queue) > 0 && !p.prober.IsRunning() {
		p.drain()
	}
}

// Busy reports whether any merge or inflation work is outstanding.
func (p *Painter) Busy() bool {
	return p.stale || len(p.queue) > 0 || p.inflater.IsRunning() || p.prober.IsRunning()
}

// Flush blocks until every queued merge and the resulting inflation have
// completed, committing the final mesh.
func (p *Painter) Flush() {
	for {
		switch {
		case p.prober.IsRunning():
			p.prober.ForceComplete()
		case len(p.queue) > 0:
			p.drain()
		case p.stale:
			p.regenerate()
		case p.inflater.IsRunning():
			p.inflater.ForceComplete()
		default:
			return
		}
	}
}

// Reset clears all generated geometry, held selections and any stroke in
// progress, and cancels in-flight jobs.
func (p *Painter) Reset() {
	p.queue = nil
	p.painting = brush.Intent{Add: true}
	p.erasing = brush.Intent{Add: false}
	p.stroke = brush.Stroke{}
	p.stale = false
	p.prober.Cancel()
	p.inflater.Cancel()
	p.soup.Reset()
	p.renderable = Renderable{}
	if p.opts.Sink != nil {
		p.opts.Sink.Commit(p.renderable)
	}
	p.log.Debug("reset")
}

// Restore loads serialized soup arrays from a persistence collaborator and
// regenerates the mesh.
func (p *Painter) Restore(vertices, normals []mathutil.Vec3) error {
	p.queue = nil
	p.prober.Cancel()
	if err := p.soup.Restore(vertices, normals); err != nil {
		return err
	}
	p.regenerate()
	return nil
}

// Close cancels in-flight jobs and detaches from the loop. Callers tearing down
// while the loop no longer ticks must call Close to release job buffers.
func (p *Painter) Close() {
	p.prober.Cancel()
	p.inflater.Cancel()
	p.opts.Loop.Unsubscribe(p.token)
}

// Vertices returns a copy of the soup's un-inflated vertex positions.
func (p *Painter) Vertices() []mathutil.Vec3 {
	return p.soup.Vertices()
}

// Normals returns a copy of the soup's normals.
func (p *Painter) Normals() []mathutil.Vec3 {
	return p.soup.Normals()
}

// Triangles returns the number of triangles in the soup.
func (p *Painter) Triangles() int {
	return p.soup.Triangles()
}

// Renderable returns the last committed mesh.
func (p *Painter) Renderable() Renderable {
	return p.renderable
}

// Stats returns activity counters.
func (p *Painter) Stats() Stats {
	return p.stats
}

// InflationState exposes the inflation controller's lifecycle state.
func (p *Painter) InflationState() job.State {
	return p.inflater.State()
}
