package flock

import "github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"

// Stats summarizes a population for overlays and logs.
type Stats struct {
	Count     int
	MeanSpeed float64
	Centroid  geometry.Vector2D
	// Polarization is |mean unit heading|: 1 when every boid flies the same
	// way, close to 0 for a disordered swarm.
	Polarization float64
}

// Summarize computes Stats over boids. An empty population gives zero Stats.
func Summarize(boids []Boid) Stats {
	st := Stats{Count: len(boids)}
	if len(boids) == 0 {
		return st
	}
	var speed float64
	var pos, heading geometry.Vector2D
	for _, b := range boids {
		speed += b.Vel.Len()
		pos = pos.Add(b.Pos)
		heading = heading.Add(b.Vel.Normalize())
	}
	n := float64(len(boids))
	st.MeanSpeed = speed / n
	st.Centroid = pos.Mul(1 / n)
	st.Polarization = heading.Mul(1 / n).Len()
	return st
}
