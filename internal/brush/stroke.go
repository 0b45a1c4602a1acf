package brush

import (
	"fmt"

	"moss-painter/internal/mathutil"
)

// Mode selects how a stroke turns pointer frames into an intent.
type Mode int

const (
	// Immediate selects at every frame using that frame's surface direction.
	Immediate Mode = iota
	// Swept collects frames and selects once when the stroke ends.
	Swept
)

func (m Mode) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case Swept:
		return "swept"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "immediate":
		return Immediate, nil
	case "swept":
		return Swept, nil
	}
	return Immediate, fmt.Errorf("brush: unknown stroke mode %q", s)
}

// Stroke is one continuous paint gesture.
type Stroke struct {
	Params Params
	Mode   Mode

	frames []mathutil.Vec3
	bounds mathutil.Box
	intent Intent
	active bool
}

// Begin starts a new gesture, discarding any frames from a previous one.
func (st *Stroke) Begin(p Params, mode Mode) {
	st.Params = p
	st.Mode = mode
	st.frames = st.frames[:0]
	st.bounds = mathutil.Box{}
	st.intent = Intent{Add: p.Add}
	st.active = true
}

// Active reports whether a gesture is in progress.
func (st *Stroke) Active() bool {
	return st.active
}

// Frames returns the sampled positions so far.
func (st *Stroke) Frames() []mathutil.Vec3 {
	return st.frames
}

// Bounds returns the swept volume of every frame's brush bound.
func (st *Stroke) Bounds() mathutil.Box {
	return st.bounds
}

// Extend records a frame. In Immediate mode the frame is selected right away
// using direction; in Swept mode direction is ignored and the stroke's own
// direction is used at End.
func (st *Stroke) Extend(sel *Selector, position, direction mathutil.Vec3) {
	if !st.active {
		return
	}
	fb := mathutil.CubeBounds(position, st.Params.Radius)
	if len(st.frames) == 0 {
		st.bounds = fb
	} else {
		st.bounds.Join(&fb)
	}
	st.frames = append(st.frames, position)

	if st.Mode == Immediate {
		p := st.Params
		p.Direction = direction
		st.intent.Concat(sel.SelectAt(position, p))
	}
}

// End finishes the gesture and returns everything it selected.
func (st *Stroke) End(sel *Selector) Intent {
	if !st.active {
		return Intent{}
	}
	st.active = false
	if st.Mode == Swept {
		if sel.Sources == nil || st.Params.Radius <= 0 || len(st.frames) == 0 {
			return Intent{Add: st.Params.Add}
		}
		return sel.selectSwept(st.frames, st.bounds, st.Params)
	}
	out := st.intent
	st.intent = Intent{}
	return out
}
