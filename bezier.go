package roadnet

import "math"

// cubicBezier immutable set of four control points
type cubicBezier struct {
	p0 Point3
	p1 Point3
	p2 Point3
	p3 Point3
}

// evaluate returns the curve point at parameter t in [0;1]
func (b cubicBezier) evaluate(t float64) Point3 {
	mt := 1.0 - t
	c0 := mt * mt * mt
	c1 := 3.0 * mt * mt * t
	c2 := 3.0 * mt * t * t
	c3 := t * t * t
	return b.p0.Scale(c0).Add(b.p1.Scale(c1)).Add(b.p2.Scale(c2)).Add(b.p3.Scale(c3))
}

// tangent returns the (non unit) derivative of the curve at parameter t
func (b cubicBezier) tangent(t float64) Point3 {
	mt := 1.0 - t
	d0 := b.p1.Sub(b.p0).Scale(3.0 * mt * mt)
	d1 := b.p2.Sub(b.p1).Scale(6.0 * mt * t)
	d2 := b.p3.Sub(b.p2).Scale(3.0 * t * t)
	return d0.Add(d1).Add(d2)
}

// shift translates all control points by given offset
func (b cubicBezier) shift(offset Point3) cubicBezier {
	return cubicBezier{
		p0: b.p0.Add(offset),
		p1: b.p1.Add(offset),
		p2: b.p2.Add(offset),
		p3: b.p3.Add(offset),
	}
}

// approxLength estimates curve length by chordal sampling
func (b cubicBezier) approxLength() float64 {
	const probes = 16
	length := 0.0
	prev := b.p0
	for i := 1; i <= probes; i++ {
		curr := b.evaluate(float64(i) / probes)
		length += prev.DistanceTo(curr)
		prev = curr
	}
	return length
}

// sample flattens the curve into a polyline at given density (points per meter).
// Result always contains at least 2 points, first and last match curve endpoints
func (b cubicBezier) sample(samplesPerMeter float64) []Point3 {
	total := int(math.Ceil(b.approxLength() * samplesPerMeter))
	if total < 1 {
		total = 1
	}
	out := make([]Point3, 0, total+1)
	for i := 0; i <= total; i++ {
		out = append(out, b.evaluate(float64(i)/float64(total)))
	}
	return out
}

// catmullRom evaluates a centripetal-free (uniform) Catmull-Rom spline segment
// between p1 and p2 using p0 and p3 as outer guides
func catmullRom(p0, p1, p2, p3 Point3, t float64) Point3 {
	t2 := t * t
	t3 := t2 * t
	a := p1.Scale(2.0)
	b := p2.Sub(p0).Scale(t)
	c := p0.Scale(2.0).Sub(p1.Scale(5.0)).Add(p2.Scale(4.0)).Sub(p3).Scale(t2)
	d := p1.Scale(3.0).Sub(p2.Scale(3.0)).Add(p3).Sub(p0).Scale(t3)
	return a.Add(b).Add(c).Add(d).Scale(0.5)
}

// sampleStraight returns a linear interpolation between two points at given density
func sampleStraight(from, to Point3, samplesPerMeter float64) []Point3 {
	total := int(math.Ceil(from.DistanceTo(to) * samplesPerMeter))
	if total < 1 {
		total = 1
	}
	out := make([]Point3, 0, total+1)
	for i := 0; i <= total; i++ {
		out = append(out, lerpPoint(from, to, float64(i)/float64(total)))
	}
	return out
}

// resampleByArcLength redistributes the line's points uniformly along its length.
// Original endpoints are preserved exactly
func resampleByArcLength(line []Point3, samplesPerMeter float64) []Point3 {
	if len(line) < 2 {
		return line
	}
	length := getLength(line)
	total := int(math.Ceil(length * samplesPerMeter))
	if total < 1 {
		total = 1
	}
	out := make([]Point3, 0, total+1)
	for i := 0; i < total; i++ {
		out = append(out, pointAtDistance(line, length*float64(i)/float64(total)))
	}
	out = append(out, line[len(line)-1])
	return out
}
