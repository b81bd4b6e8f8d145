package client

import "sync"

// sliceMu guards a slice's fields. Completions of overlapping dispatches
// may interleave in either order; the later write wins.
type sliceMu struct {
	mu sync.Mutex
}

// phase tracks one request lifecycle: pending, then exactly one of
// fulfilled or rejected. It resets on every new dispatch and is shared
// last-write-wins when dispatches overlap.
type phase struct {
	Loading bool
	Error   string
	Success bool
}

func (p *phase) begin() {
	p.Loading = true
	p.Error = ""
}

func (p *phase) fulfill() {
	p.Loading = false
}

func (p *phase) reject(err error) {
	p.Loading = false
	p.Error = errorText(err)
}

func errorText(err error) string {
	if err == nil || err.Error() == "" {
		return "request failed"
	}
	return err.Error()
}
