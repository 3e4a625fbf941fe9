package roadnet

import "testing"

func TestElasticCurvePassesThroughReference(t *testing.T) {
	cases := []struct {
		name    string
		s, e, r Point3
	}{
		{"symmetric", Point3{X: 0, Y: 0}, Point3{X: 20, Y: 0}, Point3{X: 10, Y: 6}},
		{"short drag", Point3{X: 0, Y: 0}, Point3{X: 3, Y: 1}, Point3{X: 8, Y: -4}},
		{"far drag", Point3{X: -5, Y: 2}, Point3{X: 40, Y: 15}, Point3{X: 7, Y: 7}},
		{"left side", Point3{X: 0, Y: 0}, Point3{X: 10, Y: -12}, Point3{X: 5, Y: 5}},
	}
	for _, tc := range cases {
		bez, ok := elasticBezier(tc.s, tc.e, tc.r)
		if !ok {
			t.Errorf("%s: elastic construction must succeed", tc.name)
			continue
		}
		mid := bez.evaluate(0.5)
		if !pointsAlmostEqual(mid, tc.r) {
			t.Errorf("%s: curve midpoint must equal the reference point %v, but got %v", tc.name, tc.r, mid)
		}
	}
}

func TestElasticCurveDegenerate(t *testing.T) {
	if _, ok := elasticBezier(Point3{X: 0}, Point3{X: 0}, Point3{X: 5}); ok {
		t.Errorf("Zero-length chord must be rejected")
	}
	if _, ok := elasticBezier(Point3{X: 0}, Point3{X: 5}, Point3{X: 0}); ok {
		t.Errorf("Reference on top of the start must be rejected")
	}
}

func TestElasticFirstHandle(t *testing.T) {
	s := Point3{X: 0, Y: 0}
	e := Point3{X: 20, Y: 0}
	r := Point3{X: 10, Y: 10}
	bez, _ := elasticBezier(s, e, r)
	// Before the residual shift the first handle sits at 0.4 of S->R; the shift
	// translates the whole curve, so the handle direction is preserved
	handleDir := bez.p1.Sub(bez.p0).Normalize()
	expected := r.Sub(s).Normalize()
	if !pointsAlmostEqual(handleDir, expected) {
		t.Errorf("First handle must point along S->R, got %v", handleDir)
	}
}

func TestTangentHintUnsnapped(t *testing.T) {
	travel := Point3{X: 1}
	hint := tangentHint(anchor{point: Point3{}}, travel)
	if !pointsAlmostEqual(hint, travel) {
		t.Errorf("Unsnapped anchor must degrade to the travel direction, got %v", hint)
	}
}

func TestTangentHintEndpointFlip(t *testing.T) {
	travel := Point3{X: 1}
	// Existing tangent runs with the approach: must flip so the junction bends
	hint := tangentHint(anchor{snapped: true, atEndpoint: true, tangent: Point3{X: 1}}, travel)
	if !pointsAlmostEqual(hint, Point3{X: -1}) {
		t.Errorf("Co-directional endpoint tangent must flip, got %v", hint)
	}
	// Opposing tangent stays as-is
	hint = tangentHint(anchor{snapped: true, atEndpoint: true, tangent: Point3{X: -1}}, travel)
	if !pointsAlmostEqual(hint, Point3{X: -1}) {
		t.Errorf("Opposing endpoint tangent must stay, got %v", hint)
	}
}

func TestTangentHintMidSpanPerpendicular(t *testing.T) {
	// Snapped into the middle of a road running along X, traveling along +Y:
	// the hint must be the perpendicular agreeing with the travel direction
	travel := Point3{Y: 1}
	hint := tangentHint(anchor{snapped: true, tangent: Point3{X: 1}}, travel)
	if hint.Dot(travel) <= 0 {
		t.Errorf("Mid-span hint must agree with the travel direction, got %v", hint)
	}
	if !almostEqual(hint.Dot(Point3{X: 1}), 0.0) {
		t.Errorf("Mid-span hint must be perpendicular to the road, got %v", hint)
	}
}

func TestSynthesizeStraight(t *testing.T) {
	cfg := DefaultToolConfig()
	line := synthesizeStraight(anchor{point: Point3{X: 0}}, anchor{point: Point3{X: 10}}, cfg)
	if len(line) < 2 {
		t.Fatalf("Straight synthesis must give at least 2 points")
	}
	if !pointsAlmostEqual(line[0], Point3{X: 0}) || !pointsAlmostEqual(line[len(line)-1], Point3{X: 10}) {
		t.Errorf("Straight synthesis must keep exact endpoints")
	}
	for i := range line {
		if !almostEqual(line[i].Y, 0.0) {
			t.Errorf("Straight synthesis must stay on the chord")
		}
	}
}

func TestSynthesizeTangentCubicEndpoints(t *testing.T) {
	cfg := DefaultToolConfig()
	from := anchor{point: Point3{X: 0, Y: 0}, snapped: true, atEndpoint: true, tangent: Point3{X: 0, Y: 1}}
	to := anchor{point: Point3{X: 30, Y: 0}}
	line := synthesizeTangentCubic(from, to, cfg)
	if !pointsAlmostEqual(line[0], from.point) || !pointsAlmostEqual(line[len(line)-1], to.point) {
		t.Errorf("Cubic synthesis must keep exact endpoints")
	}
	if len(line) <= 2 {
		t.Errorf("Cubic synthesis must sample intermediate points, got %d", len(line))
	}
}
