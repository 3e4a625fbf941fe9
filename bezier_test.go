package roadnet

import (
	"testing"
)

func TestCubicBezierEndpoints(t *testing.T) {
	bez := cubicBezier{
		p0: Point3{X: 0, Y: 0},
		p1: Point3{X: 3, Y: 5},
		p2: Point3{X: 7, Y: 5},
		p3: Point3{X: 10, Y: 0},
	}
	if !pointsAlmostEqual(bez.evaluate(0), bez.p0) {
		t.Errorf("Curve at t=0 must equal p0")
	}
	if !pointsAlmostEqual(bez.evaluate(1), bez.p3) {
		t.Errorf("Curve at t=1 must equal p3")
	}
}

func TestCubicBezierTangent(t *testing.T) {
	bez := cubicBezier{
		p0: Point3{X: 0, Y: 0},
		p1: Point3{X: 3, Y: 0},
		p2: Point3{X: 7, Y: 0},
		p3: Point3{X: 10, Y: 0},
	}
	start := bez.tangent(0)
	if !pointsAlmostEqual(start.Normalize(), Point3{X: 1}) {
		t.Errorf("Tangent at t=0 must point along p0->p1, got %v", start)
	}
	end := bez.tangent(1)
	if !pointsAlmostEqual(end.Normalize(), Point3{X: 1}) {
		t.Errorf("Tangent at t=1 must point along p2->p3, got %v", end)
	}
}

func TestCubicBezierShift(t *testing.T) {
	bez := cubicBezier{
		p0: Point3{X: 0},
		p1: Point3{X: 3},
		p2: Point3{X: 7},
		p3: Point3{X: 10},
	}
	shifted := bez.shift(Point3{Y: 2})
	if !pointsAlmostEqual(shifted.evaluate(0.5), bez.evaluate(0.5).Add(Point3{Y: 2})) {
		t.Errorf("Shift must translate every curve point")
	}
}

func TestBezierSampleDensity(t *testing.T) {
	bez := cubicBezier{
		p0: Point3{X: 0},
		p1: Point3{X: 3},
		p2: Point3{X: 7},
		p3: Point3{X: 10},
	}
	samples := bez.sample(2.0)
	// 10 meters at 2 samples per meter gives 21 points
	if len(samples) != 21 {
		t.Errorf("Sample count must be 21, but got %d", len(samples))
	}
	if !pointsAlmostEqual(samples[0], bez.p0) || !pointsAlmostEqual(samples[len(samples)-1], bez.p3) {
		t.Errorf("Sampled polyline must keep exact curve endpoints")
	}
}

func TestSampleStraight(t *testing.T) {
	line := sampleStraight(Point3{X: 0}, Point3{X: 4}, 1.0)
	if len(line) != 5 {
		t.Errorf("Straight sampling must give 5 points, but got %d", len(line))
	}
	if !pointsAlmostEqual(line[2], Point3{X: 2}) {
		t.Errorf("Midpoint must be (2,0,0), but got %v", line[2])
	}
}

func TestCatmullRomPassesThroughControls(t *testing.T) {
	p0 := Point3{X: -5, Y: 1}
	p1 := Point3{X: 0, Y: 0}
	p2 := Point3{X: 5, Y: 2}
	p3 := Point3{X: 10, Y: 1}
	if !pointsAlmostEqual(catmullRom(p0, p1, p2, p3, 0), p1) {
		t.Errorf("Catmull-Rom at t=0 must equal p1")
	}
	if !pointsAlmostEqual(catmullRom(p0, p1, p2, p3, 1), p2) {
		t.Errorf("Catmull-Rom at t=1 must equal p2")
	}
}

func TestResampleByArcLength(t *testing.T) {
	line := []Point3{{X: 0}, {X: 1}, {X: 10}}
	resampled := resampleByArcLength(line, 1.0)
	if len(resampled) != 11 {
		t.Errorf("Resampled line must have 11 points, but got %d", len(resampled))
	}
	if !pointsAlmostEqual(resampled[0], line[0]) || !pointsAlmostEqual(resampled[len(resampled)-1], line[2]) {
		t.Errorf("Resampling must preserve endpoints")
	}
	if !pointsAlmostEqual(resampled[5], Point3{X: 5}) {
		t.Errorf("Resampled points must be uniform, got %v at index 5", resampled[5])
	}
}
