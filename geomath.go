package roadnet

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const (
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi

	// geomEpsilon is the tolerance for point coincidence checks (meters)
	geomEpsilon = 0.01
	// parallelEpsilon rejects near-parallel segment pairs in intersection tests
	parallelEpsilon = 1e-9
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansTodegrees r = deg * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// intersectSegments checks if two segments intersect and returns the intersection point
// p1, p2 - first segment
// p3, p4 - second segment
// Note: ground plane only, near-parallel pairs are rejected
func intersectSegments(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	// Calculate the determinant
	det := a1*b2 - a2*b1
	if math.Abs(det) < parallelEpsilon {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}

	// Calculate the intersection point of the infinite lines
	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	pt := orb.Point{x, y}

	// Reject intersections lying outside either segment
	if !withinSegmentBounds(pt, p1, p2) || !withinSegmentBounds(pt, p3, p4) {
		return orb.Point{}, fmt.Errorf("The segments do not intersect")
	}
	return pt, nil
}

// withinSegmentBounds checks the point projects inside the segment's parameter range
func withinSegmentBounds(pt, p, q orb.Point) bool {
	seg := orb.Point{q[0] - p[0], q[1] - p[1]}
	lenSq := planarDot(seg, seg)
	if lenSq == 0 {
		return planarDistance(pt, p) <= geomEpsilon
	}
	t := planarDot(orb.Point{pt[0] - p[0], pt[1] - p[1]}, seg) / lenSq
	return t >= -1e-9 && t <= 1.0+1e-9
}

// planarDistance returns distance between two points in the ground plane
func planarDistance(p, q orb.Point) float64 {
	xdistance := p[0] - q[0]
	ydistance := p[1] - q[1]
	return math.Sqrt(xdistance*xdistance + ydistance*ydistance)
}

// closestPointOnSegment returns the point on segment p->q closest to target and its parameter
func closestPointOnSegment(target, p, q Point3) (Point3, float64) {
	seg := q.Sub(p)
	lenSq := seg.Dot(seg)
	if lenSq == 0 {
		return p, 0.0
	}
	t := target.Sub(p).Dot(seg) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return lerpPoint(p, q, t), t
}

// closestPointOnLine returns the closest point on given polyline to target,
// index of the segment it lies on and distance to it
func closestPointOnLine(target Point3, line []Point3) (Point3, int, float64) {
	if len(line) == 0 {
		return Point3{}, -1, math.Inf(1)
	}
	best := line[0]
	bestIdx := 0
	bestDist := target.DistanceTo(line[0])
	for i := 1; i < len(line); i++ {
		candidate, _ := closestPointOnSegment(target, line[i-1], line[i])
		d := target.DistanceTo(candidate)
		if d < bestDist {
			best = candidate
			bestIdx = i - 1
			bestDist = d
		}
	}
	return best, bestIdx, bestDist
}

// getLength returns length for given line
func getLength(line []Point3) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += line[i-1].DistanceTo(line[i])
	}
	return totalLength
}

// pointAtDistance returns a point on given line using running distance from its first point.
// Distances past the line's end clamp to the last point
func pointAtDistance(line []Point3, distance float64) Point3 {
	if len(line) == 0 {
		return Point3{}
	}
	if distance <= 0 {
		return line[0]
	}
	cl := 0.0
	for i := 1; i < len(line); i++ {
		segLen := line[i-1].DistanceTo(line[i])
		if cl+segLen >= distance && segLen > 0 {
			return lerpPoint(line[i-1], line[i], (distance-cl)/segLen)
		}
		cl += segLen
	}
	return line[len(line)-1]
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts []Point3) []Point3 {
	inputLen := len(pts)
	output := make([]Point3, inputLen)
	for i := range pts {
		output[inputLen-i-1] = pts[i]
	}
	return output
}

// turnAngleDeg returns the discrete turn angle (degrees) at interior vertex idx of the line.
// Straight continuation gives 0, a full reversal gives 180
func turnAngleDeg(line []Point3, idx int) float64 {
	if idx <= 0 || idx >= len(line)-1 {
		return 0.0
	}
	incoming := line[idx].Sub(line[idx-1]).Normalize()
	outgoing := line[idx+1].Sub(line[idx]).Normalize()
	d := incoming.Dot(outgoing)
	if d > 1.0 {
		d = 1.0
	} else if d < -1.0 {
		d = -1.0
	}
	return radiansTodegrees(math.Acos(d))
}

// maxTurnAngleDeg returns the sharpest discrete turn angle over all interior vertices
func maxTurnAngleDeg(line []Point3) float64 {
	sharpest := 0.0
	for i := 1; i < len(line)-1; i++ {
		if a := turnAngleDeg(line, i); a > sharpest {
			sharpest = a
		}
	}
	return sharpest
}

// lineTangentAt returns the unit tangent of the line at vertex idx.
// Interior vertices average the adjacent segment directions
func lineTangentAt(line []Point3, idx int) Point3 {
	if len(line) < 2 {
		return Point3{}
	}
	if idx <= 0 {
		return line[1].Sub(line[0]).Normalize()
	}
	if idx >= len(line)-1 {
		return line[len(line)-1].Sub(line[len(line)-2]).Normalize()
	}
	incoming := line[idx].Sub(line[idx-1]).Normalize()
	outgoing := line[idx+1].Sub(line[idx]).Normalize()
	return incoming.Add(outgoing).Normalize()
}

// lineToPlanar projects the line onto the ground plane
func lineToPlanar(line []Point3) orb.LineString {
	out := make(orb.LineString, len(line))
	for i := range line {
		out[i] = line[i].Planar()
	}
	return out
}
