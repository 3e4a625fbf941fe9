package roadnet

// CurveMode selects the centerline synthesis strategy, decoupled from any input binding
type CurveMode uint16

const (
	CURVE_STRAIGHT = CurveMode(iota + 1)
	CURVE_TANGENT_CUBIC
	CURVE_ELASTIC
)

func (iotaIdx CurveMode) String() string {
	return [...]string{"straight", "tangent_cubic", "elastic"}[iotaIdx-1]
}

// anchor is one endpoint of a curve under synthesis, possibly bound to an
// existing segment's centerline
type anchor struct {
	point Point3

	snapped    bool
	segment    RoadSegmentID
	atEndpoint bool
	// tangent of the snapped segment's centerline at the snap point
	tangent Point3
}

// tangentHint infers the control handle direction for a cubic endpoint.
// travel is the unit straight-line direction the curve wants to move at this anchor.
// Endpoint snaps reuse the road's tangent, flipped when it runs with the approach
// so a junction that should bend does not read as continuing straight through.
// Mid-span snaps force a near-right-angle merge by picking the tangent perpendicular
// that agrees most with the travel direction. Unsnapped anchors degrade to travel
func tangentHint(a anchor, travel Point3) Point3 {
	if !a.snapped {
		return travel
	}
	if a.atEndpoint {
		hint := a.tangent.Normalize()
		if hint.Dot(travel) > 0 {
			hint = hint.Scale(-1)
		}
		return hint
	}
	perp := a.tangent.PerpGround().Normalize()
	if perp.Dot(travel) >= 0 {
		return perp
	}
	return perp.Scale(-1)
}

// synthesizeStraight linearly interpolates between the two anchors
func synthesizeStraight(from, to anchor, cfg ToolConfig) []Point3 {
	return sampleStraight(from.point, to.point, cfg.SamplesPerMeter)
}

// synthesizeTangentCubic builds a cubic whose control points sit along the
// inferred tangent hints at distance min(length*HandleLenRatio, MaxHandleLen)
func synthesizeTangentCubic(from, to anchor, cfg ToolConfig) []Point3 {
	chord := to.point.Sub(from.point)
	length := chord.Length()
	if length < geomEpsilon {
		return sampleStraight(from.point, to.point, cfg.SamplesPerMeter)
	}
	travel := chord.Normalize()

	handle := length * cfg.HandleLenRatio
	if handle > cfg.MaxHandleLen {
		handle = cfg.MaxHandleLen
	}

	bez := cubicBezier{
		p0: from.point,
		p1: from.point.Add(tangentHint(from, travel).Scale(handle)),
		p2: to.point.Sub(tangentHint(to, travel).Scale(handle)),
		p3: to.point,
	}
	return bez.sample(cfg.SamplesPerMeter)
}

// synthesizeElastic builds the reference-point curve: a cubic from start to the
// live end whose first handle lies along start->reference at 0.4 of that span,
// whose second handle direction blends from parallel (|S-E|/|S-R| near 1) to
// perpendicular (|R-E|/|S-R| near 1) with the sign taken from the side of S->R
// the cursor lies on, and which is shifted so it passes through the reference
// point exactly at its midpoint
func synthesizeElastic(start, end, reference Point3, cfg ToolConfig) []Point3 {
	bez, ok := elasticBezier(start, end, reference)
	if !ok {
		return sampleStraight(start, end, cfg.SamplesPerMeter)
	}
	return bez.sample(cfg.SamplesPerMeter)
}

// elasticBezier constructs the reference-point cubic. ok is false for the
// degenerate cases where start, end or reference collapse onto each other
func elasticBezier(start, end, reference Point3) (cubicBezier, bool) {
	toRef := reference.Sub(start)
	refLen := toRef.Length()
	chord := end.Sub(start)
	chordLen := chord.Length()
	if refLen < geomEpsilon || chordLen < geomEpsilon {
		return cubicBezier{}, false
	}

	u := toRef.Normalize()
	v := u.PerpGround().Normalize()

	ratioChord := chordLen / refLen
	ratioBack := reference.Sub(end).Length() / refLen

	side := 1.0
	if planarCross(u.Planar(), chord.Planar()) < 0 {
		side = -1.0
	}

	weightParallel := clamp01(1.0 - absFloat(ratioChord-1.0))
	weightPerp := clamp01(1.0 - absFloat(ratioBack-1.0))
	dir := u
	if weightParallel+weightPerp > 0 {
		dir = u.Scale(weightParallel).Add(v.Scale(side * weightPerp)).Normalize()
	}
	if dir.Length() == 0 {
		dir = u
	}

	bez := cubicBezier{
		p0: start,
		p1: start.Add(toRef.Scale(0.4)),
		p2: end.Sub(dir.Scale(0.4 * chordLen)),
		p3: end,
	}
	// Residual shift puts the midpoint through the reference point exactly
	bez = bez.shift(reference.Sub(bez.evaluate(0.5)))
	return bez, true
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
