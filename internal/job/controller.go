// Package job supervises background computations from a polling foreground loop.
package job

import (
	"errors"
	"fmt"

	"moss-painter/internal/logging"
)

// ErrRunning is returned by Start while a previous computation is still in flight.
var ErrRunning = errors.New("job: computation already running")

// Handle is a running parallel computation. Computations cannot be aborted; they
// can only be waited for.
type Handle interface {
	// Done is closed when the computation has finished.
	Done() <-chan struct{}
	// Wait blocks until the computation has finished.
	Wait()
}

// State is the lifecycle position of a Controller.
type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Controller drives one kind of background computation at a time. Once started,
// the computation is polled on every loop tick; exactly one of poll completion,
// ForceComplete or Cancel finishes it and calls onComplete once. A Controller is
// reusable and must only be used from the loop's goroutine.
type Controller struct {
	kind  string
	loop  *Loop
	state State

	handle     Handle
	onComplete func(success bool)
	token      Token
}

// NewController returns an idle controller for computations of the given kind.
func NewController(kind string, loop *Loop) *Controller {
	return &Controller{kind: kind, loop: loop}
}

// Kind returns the computation kind this controller supervises.
func (c *Controller) Kind() string {
	return c.kind
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// IsRunning reports whether a computation is in flight.
func (c *Controller) IsRunning() bool {
	return c.state == Running
}

// Start takes ownership of h and begins polling it. onComplete receives true when
// the result should be used and false when it was cancelled; it must release any
// buffers owned by the computation on both paths.
func (c *Controller) Start(h Handle, onComplete func(success bool)) error {
	if c.state == Running {
		return fmt.Errorf("%w: %s", ErrRunning, c.kind)
	}
	c.handle = h
	c.onComplete = onComplete
	c.state = Running
	c.token = c.loop.Subscribe(c.poll)
	logging.For("job").Debug("started", "kind", c.kind)
	return nil
}

// Poll checks the computation once without blocking. It reports whether the
// computation finished on this call. The loop calls it on every tick.
func (c *Controller) Poll() bool {
	if c.state != Running {
		return false
	}
	select {
	case <-c.handle.Done():
	default:
		return false
	}
	c.finish(Completed)
	return true
}

func (c *Controller) poll() {
	c.Poll()
}

// ForceComplete blocks until the computation finishes and reports success.
// No-op unless running.
func (c *Controller) ForceComplete() {
	if c.state != Running {
		return
	}
	c.handle.Wait()
	c.finish(Completed)
}

// Cancel blocks until the computation finishes and discards it: onComplete
// receives false. No-op unless running.
func (c *Controller) Cancel() {
	if c.state != Running {
		return
	}
	c.handle.Wait()
	c.finish(Cancelled)
}

func (c *Controller) finish(s State) {
	c.loop.Unsubscribe(c.token)
	c.state = s
	cb := c.onComplete
	c.handle = nil
	c.onComplete = nil

	logging.For("job").Debug("finished", "kind", c.kind, "state", s)
	if cb != nil {
		cb(s == Completed)
	}
}

// Retire enforces retire-before-relaunch: if a computation is in flight it is
// cancelled synchronously and Retire reports true, and the caller must abandon
// its launch for this tick rather than queue behind the old one.
func (c *Controller) Retire() bool {
	if c.state != Running {
		return false
	}
	logging.For("job").Warn("retiring in-flight computation", "kind", c.kind)
	c.Cancel()
	return true
}
