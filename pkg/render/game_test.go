package render

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
)

func TestScreenWorldConversion(t *testing.T) {
	bounds := flock.CenteredBounds(1280, 720)
	tests := []struct {
		name   string
		sx, sy int
		want   geometry.Vector2D
	}{
		{"Top left corner", 0, 0, geometry.Vector2D{X: -640, Y: 360}},
		{"Center is the origin", 640, 360, geometry.Vector2D{X: 0, Y: 0}},
		{"Bottom right corner", 1280, 720, geometry.Vector2D{X: 640, Y: -360}},
		{"Screen y grows downward", 100, 600, geometry.Vector2D{X: -540, Y: -240}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toWorld(tt.sx, tt.sy, bounds)
			if got != tt.want {
				t.Errorf("toWorld(%d, %d) = %v; want %v", tt.sx, tt.sy, got, tt.want)
			}
			x, y := toScreen(got, bounds)
			if x != float64(tt.sx) || y != float64(tt.sy) {
				t.Errorf("toScreen(%v) = (%v, %v); want (%d, %d)", got, x, y, tt.sx, tt.sy)
			}
		})
	}

	// A world shifted off the origin after a resize.
	shifted := flock.Bounds{Left: 100, Right: 300, Bottom: -50, Top: 50}
	if got := toWorld(20, 10, shifted); got != (geometry.Vector2D{X: 120, Y: 40}) {
		t.Errorf("toWorld on shifted bounds = %v; want (120, 40)", got)
	}
}
