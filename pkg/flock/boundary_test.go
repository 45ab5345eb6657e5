package flock

import (
	"errors"
	"testing"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
)

func TestContain(t *testing.T) {
	b := Bounds{Left: -640, Right: 640, Bottom: -360, Top: 360}
	tests := []struct {
		name string
		pos  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"Inside", geometry.Vector2D{X: 10, Y: -10}, geometry.Vector2D{X: 10, Y: -10}},
		{"On the edge stays", geometry.Vector2D{X: 640, Y: 360}, geometry.Vector2D{X: 640, Y: 360}},
		{"Past right", geometry.Vector2D{X: 641, Y: 0}, geometry.Vector2D{X: -640, Y: 0}},
		{"Past left", geometry.Vector2D{X: -700, Y: 0}, geometry.Vector2D{X: 640, Y: 0}},
		{"Past top", geometry.Vector2D{X: 0, Y: 361}, geometry.Vector2D{X: 0, Y: -360}},
		{"Past bottom", geometry.Vector2D{X: 0, Y: -361}, geometry.Vector2D{X: 0, Y: 360}},
		{"Corner", geometry.Vector2D{X: 641, Y: -361}, geometry.Vector2D{X: -640, Y: 360}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contain(tt.pos, b); got != tt.want {
				t.Errorf("Contain(%v) = %v; want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestBorderForce(t *testing.T) {
	b := Bounds{Left: 0, Right: 1000, Bottom: 0, Top: 800}
	tests := []struct {
		name string
		pos  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"Center", geometry.Vector2D{X: 500, Y: 400}, geometry.Zero},
		{"Near left", geometry.Vector2D{X: 50, Y: 400}, geometry.Vector2D{X: 10, Y: 0}},
		{"Near right", geometry.Vector2D{X: 950, Y: 400}, geometry.Vector2D{X: -10, Y: 0}},
		{"Near bottom", geometry.Vector2D{X: 500, Y: 50}, geometry.Vector2D{X: 0, Y: 10}},
		{"Near top", geometry.Vector2D{X: 500, Y: 750}, geometry.Vector2D{X: 0, Y: -10}},
		{"Corner", geometry.Vector2D{X: 950, Y: 750}, geometry.Vector2D{X: -10, Y: -10}},
		{"Outside", geometry.Vector2D{X: -20, Y: 400}, geometry.Vector2D{X: 10, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BorderForce(tt.pos, b, 100, 10); got != tt.want {
				t.Errorf("BorderForce(%v) = %v; want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := CenteredBounds(1280, 720)
	if b.Left != -640 || b.Right != 640 || b.Bottom != -360 || b.Top != 360 {
		t.Errorf("CenteredBounds(1280, 720) = %+v", b)
	}
	if b.Width() != 1280 || b.Height() != 720 {
		t.Errorf("Width/Height = %v/%v; want 1280/720", b.Width(), b.Height())
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v; want nil", err)
	}

	inverted := Bounds{Left: 10, Right: -10, Bottom: 0, Top: 10}
	if err := inverted.Validate(); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("Validate() = %v; want ErrInvalidBounds", err)
	}
}

func TestParseBoundary(t *testing.T) {
	for _, p := range []Boundary{Wrap, SoftTurn} {
		got, err := ParseBoundary(p.String())
		if err != nil || got != p {
			t.Errorf("ParseBoundary(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
	if _, err := ParseBoundary("bounce"); err == nil {
		t.Error("ParseBoundary(bounce) should fail")
	}
}
