package job

import (
	"context"
	"time"
)

// Token identifies a Loop subscription.
type Token uint64

// Loop is a single-threaded foreground update loop. Subscribers are invoked once
// per Tick in subscription order. Loop must only be used from one goroutine.
type Loop struct {
	next Token
	subs []subscription
}

type subscription struct {
	token Token
	fn    func()
}

// NewLoop returns an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Subscribe registers fn to run on every tick.
func (l *Loop) Subscribe(fn func()) Token {
	l.next++
	l.subs = append(l.subs, subscription{token: l.next, fn: fn})
	return l.next
}

// Unsubscribe removes a subscription. Unknown tokens are ignored. It is safe to
// unsubscribe from inside a tick callback.
func (l *Loop) Unsubscribe(tok Token) {
	for i, s := range l.subs {
		if s.token == tok {
			l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of active subscriptions.
func (l *Loop) Len() int {
	return len(l.subs)
}

// Tick runs every subscriber registered before the tick began. Callbacks that
// unsubscribe themselves or others take effect immediately; subscriptions added
// during the tick first run on the next one.
func (l *Loop) Tick() {
	snapshot := l.subs
	for _, s := range snapshot {
		if !l.subscribed(s.token) {
			continue
		}
		s.fn()
	}
}

func (l *Loop) subscribed(tok Token) bool {
	for _, s := range l.subs {
		if s.token == tok {
			return true
		}
	}
	return false
}

// Run ticks the loop every interval until ctx is done or idle returns true
// after a tick. A nil idle never stops early.
func (l *Loop) Run(ctx context.Context, interval time.Duration, idle func() bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
			if idle != nil && idle() {
				return nil
			}
		}
	}
}
