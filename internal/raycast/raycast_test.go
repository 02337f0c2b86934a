package raycast

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func collect(ray Ray, limit int) []Step {
	var steps []Step
	for s := range Cast(ray) {
		steps = append(steps, s)
		if len(steps) >= limit {
			break
		}
	}
	return steps
}

func TestCastVisitsContiguousTiles(t *testing.T) {
	testCases := []struct {
		name string
		dir  vec.Vec2
	}{
		{"shallow", vec.Vec2{X: 1, Y: 0.3}},
		{"steep", vec.Vec2{X: -0.2, Y: 1}},
		{"diagonal", vec.Vec2{X: -1, Y: -1}},
		{"unnormalized", vec.Vec2{X: 3.7, Y: -2.1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ray := Ray{Origin: vec.Vec2{X: 5.3, Y: 4.6}, Dir: tc.dir, MaxDistance: 20}
			prevX, prevY := 5, 4
			prevDist := 0.0
			for i, s := range collect(ray, 200) {
				manhattan := abs(s.X-prevX) + abs(s.Y-prevY)
				if manhattan != 1 {
					t.Fatalf("Step %d jumped from (%d,%d) to (%d,%d)", i, prevX, prevY, s.X, s.Y)
				}
				if s.Distance < prevDist {
					t.Fatalf("Step %d distance decreased: %v < %v", i, s.Distance, prevDist)
				}
				prevX, prevY, prevDist = s.X, s.Y, s.Distance
			}
		})
	}
}

func TestCastAxisAlignedUnitSteps(t *testing.T) {
	testCases := []struct {
		name   string
		dir    vec.Vec2
		dx, dy int
	}{
		{"east", vec.Vec2{X: 1}, 1, 0},
		{"west", vec.Vec2{X: -1}, -1, 0},
		{"north", vec.Vec2{Y: 1}, 0, 1},
		{"south", vec.Vec2{Y: -2}, 0, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ray := Ray{Origin: vec.Vec2{X: 2.5, Y: 2.5}, Dir: tc.dir, MaxDistance: 50}
			steps := collect(ray, 6)
			if len(steps) != 6 {
				t.Fatalf("Expected 6 steps, got %d", len(steps))
			}
			for i, s := range steps {
				wantX := 2 + tc.dx*(i+1)
				wantY := 2 + tc.dy*(i+1)
				if s.X != wantX || s.Y != wantY {
					t.Errorf("Step %d: expected (%d,%d), got (%d,%d)", i, wantX, wantY, s.X, s.Y)
				}
			}
		})
	}
}

func TestCastDistanceToFirstWall(t *testing.T) {
	ray := Ray{Origin: vec.Vec2{X: 0.5, Y: 0.5}, Dir: vec.Vec2{X: 1}}
	for s := range Cast(ray) {
		if s.X == 3 {
			if math.Abs(s.Distance-2.5) > 1e-9 {
				t.Errorf("Expected distance 2.5, got %v", s.Distance)
			}
			if math.Abs(s.U()-0.5) > 1e-9 {
				t.Errorf("Expected face offset 0.5, got %v", s.U())
			}
			if s.Side != AxisX {
				t.Errorf("Expected AxisX crossing, got %v", s.Side)
			}
			return
		}
	}
	t.Fatal("Ray never reached tile 3")
}

func TestCastFractionsFollowPosition(t *testing.T) {
	ray := Ray{Origin: vec.Vec2{X: 1.2, Y: 1.7}, Dir: vec.Vec2{X: 0.8, Y: 0.35}, MaxDistance: 10}
	for i, s := range collect(ray, 30) {
		want := ray.Origin.Add(ray.Dir.Mul(s.Distance))
		if math.Abs(s.Pos.X-want.X) > 1e-9 || math.Abs(s.Pos.Y-want.Y) > 1e-9 {
			t.Fatalf("Step %d position %v, expected %v", i, s.Pos, want)
		}
		if s.U() < 0 || s.U() >= 1 {
			t.Errorf("Step %d face offset %v outside [0,1)", i, s.U())
		}
		if s.Side == AxisX && s.FracX != 0 {
			t.Errorf("Step %d crossed x but FracX = %v", i, s.FracX)
		}
		if s.Side == AxisY && s.FracY != 0 {
			t.Errorf("Step %d crossed y but FracY = %v", i, s.FracY)
		}
	}
}

func TestCastStopsAtMaxDistance(t *testing.T) {
	ray := Ray{Origin: vec.Vec2{X: 0.5, Y: 0.5}, Dir: vec.Vec2{X: 1, Y: 0.5}, MaxDistance: 4}
	count := 0
	var last Step
	for s := range Cast(ray) {
		count++
		last = s
	}
	if count == 0 {
		t.Fatal("Expected some steps")
	}
	// The step that crosses the limit is still reported, nothing after it.
	if last.Distance < 4 {
		t.Errorf("Expected last step at or beyond 4, got %v", last.Distance)
	}
	if count > 10 {
		t.Errorf("Expected a bounded walk, got %d steps", count)
	}
}

func TestCastZeroDirectionComponent(t *testing.T) {
	ray := Ray{Origin: vec.Vec2{X: 0.5, Y: 0.5}, Dir: vec.Vec2{X: 1e-9, Y: 1}, MaxDistance: 5}
	for s := range Cast(ray) {
		if s.X != 0 {
			t.Fatalf("Ray drifted to column %d", s.X)
		}
		if math.IsInf(s.Distance, 0) || math.IsNaN(s.Distance) {
			t.Fatalf("Bad distance %v", s.Distance)
		}
	}
}

func TestCastZeroDirectionYieldsNothing(t *testing.T) {
	for _, dir := range []vec.Vec2{{}, {X: 1e-9, Y: -1e-9}} {
		ray := Ray{Origin: vec.Vec2{X: 1.5, Y: 1.5}, Dir: dir}
		if steps := collect(ray, 4); len(steps) != 0 {
			t.Errorf("Dir %v: expected no steps, got %+v", dir, steps)
		}
	}
}

func TestCastEarlyBreak(t *testing.T) {
	ray := Ray{Origin: vec.Vec2{X: 0.5, Y: 0.5}, Dir: vec.Vec2{X: 1, Y: 1}}
	n := 0
	for range Cast(ray) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("Expected 3 steps before break, got %d", n)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
