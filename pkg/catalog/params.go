package catalog

import (
	"sync"
	"time"
)

func NewParams(interval time.Duration) *Params {
	return &Params{
		ErrorWait:  3 * time.Second,
		ChangeWait: interval,
		wakeup:     make(chan struct{}, 1),
		reset:      make(chan time.Duration, 1),
	}
}

type Params struct {
	l sync.RWMutex

	ErrorWait  time.Duration
	ChangeWait time.Duration

	wakeup chan struct{}
	reset  chan time.Duration
	paused bool
	next   int
}

func (p *Params) Paused() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) ResetChan() <-chan time.Duration {
	return p.reset
}

func (p *Params) Pause() {
	p.l.Lock()
	defer p.l.Unlock()
	p.paused = true
}

// Wakeup unpauses and asks the cycler to draw now. Pending wakeups coalesce.
func (p *Params) Wakeup() {
	p.l.Lock()
	p.paused = false
	p.l.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}

// Reset postpones the next draw by dur.
func (p *Params) Reset(dur time.Duration) {
	select {
	case p.reset <- dur:
	default:
	}
}

// Interval returns the wait between two draws.
func (p *Params) Interval() time.Duration {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.ChangeWait
}

func (p *Params) SetInterval(d time.Duration) {
	p.l.Lock()
	defer p.l.Unlock()
	p.ChangeWait = d
}

// Next returns the index to draw and advances it, wrapping at n.
func (p *Params) Next(n int) int {
	p.l.Lock()
	defer p.l.Unlock()
	if n <= 0 {
		return 0
	}
	i := p.next % n
	p.next = i + 1
	return i
}

// Seek makes i the next index Next returns.
func (p *Params) Seek(i int) {
	p.l.Lock()
	defer p.l.Unlock()
	p.next = i
}
