package concurrency

const (
	// DefaultMax default max
	DefaultMax = 16
)

// GoLimit bounds the number of goroutines running at once
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit, max <= 0 falls back to DefaultMax
func NewGoLimit(max int) *GoLimit {
	if max <= 0 {
		max = DefaultMax
	}

	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add blocks until a slot is free
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done frees a slot
func (g *GoLimit) Done() {
	<-g.ch
}

// Go runs fn in a new goroutine once a slot is free
func (g *GoLimit) Go(fn func()) {
	g.Add()
	go func() {
		defer g.Done()
		fn()
	}()
}
