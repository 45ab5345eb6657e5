package flock

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice of boids handed to one goroutine.
const minChunk = 64

// Tick computes the next state of every boid in snapshot and returns it as a
// new slice, index for index. snapshot is only read: every decision is made
// against the frozen state of the previous tick, so the result does not depend
// on the order in which boids are processed.
//
// The work is split across goroutines; identical inputs always give
// bit-identical outputs.
func Tick(snapshot []Boid, s Settings, bounds Bounds) ([]Boid, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	next := make([]Boid, len(snapshot))
	if len(snapshot) == 0 {
		return next, nil
	}

	var query NeighborQuery
	if s.SpatialIndex {
		query = NewGrid(snapshot, s.PerceptionRadius)
	} else {
		query = NewScan(snapshot, s.PerceptionRadius)
	}

	step := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			b := snapshot[i]
			force := Steer(b, query.Neighbors(i), s)
			Integrate(&b, force, s, bounds)
			next[i] = b
		}
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := max((len(snapshot)+workers-1)/workers, minChunk)
	if chunk >= len(snapshot) {
		step(0, len(snapshot))
		return next, nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < len(snapshot); lo += chunk {
		hi := min(lo+chunk, len(snapshot))
		g.Go(func() error {
			step(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}
