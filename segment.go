package roadnet

import (
	"github.com/pkg/errors"
)

// ErrMalformedGeometry is returned when a centerline with fewer than 2 points
// is about to become a segment or a chunk. Programming error class, rejected
// before construction
var ErrMalformedGeometry = errors.New("malformed geometry: centerline needs at least 2 points")

// RoadSegmentID is a stable handle into the network's segment arena
type RoadSegmentID int64

// Side selects one of the two boundary lines of a road
type Side uint16

const (
	SIDE_LEFT = Side(iota + 1)
	SIDE_RIGHT
)

func (iotaIdx Side) String() string {
	return [...]string{"left", "right"}[iotaIdx-1]
}

// miterLimitFactor clamps the miter offset at near-180 degree folds
const miterLimitFactor = 3.0

// RoadSegment owns a centerline and the boundary lines derived from it.
// Boundary lines are never hand-edited: any structural change goes through
// the centerline or the cap flags followed by rebuildEdges
type RoadSegment struct {
	id    RoadSegmentID
	Width float64
	Class RoadClass

	centerline []Point3
	leftEdge   []Point3
	rightEdge  []Point3

	startCapOpen bool
	endCapOpen   bool

	adjacent map[RoadSegmentID]struct{}

	chunks []*Chunk
	caps   []*Cap
}

// newRoadSegment validates the centerline and prepares the segment body.
// Cap flags start as given (true = unconnected end, sealed by own cap geometry)
func newRoadSegment(id RoadSegmentID, width float64, centerline []Point3, startOpen, endOpen bool) (*RoadSegment, error) {
	if len(centerline) < 2 {
		return nil, errors.Wrapf(ErrMalformedGeometry, "segment %d", id)
	}
	if width <= 0 {
		return nil, errors.Wrapf(ErrMalformedGeometry, "segment %d: width %f", id, width)
	}
	seg := &RoadSegment{
		id:           id,
		Width:        width,
		Class:        ROAD_UNCLASSIFIED,
		centerline:   centerline,
		startCapOpen: startOpen,
		endCapOpen:   endOpen,
		adjacent:     make(map[RoadSegmentID]struct{}),
	}
	seg.rebuildEdges()
	return seg, nil
}

// ID returns the segment's arena handle
func (seg *RoadSegment) ID() RoadSegmentID {
	return seg.id
}

// Centerline returns the segment's medial axis
func (seg *RoadSegment) Centerline() []Point3 {
	return seg.centerline
}

// LeftEdge returns the derived left boundary line (including cap extensions)
func (seg *RoadSegment) LeftEdge() []Point3 {
	return seg.leftEdge
}

// RightEdge returns the derived right boundary line (including cap extensions)
func (seg *RoadSegment) RightEdge() []Point3 {
	return seg.rightEdge
}

// Edge returns the requested boundary line
func (seg *RoadSegment) Edge(side Side) []Point3 {
	if side == SIDE_LEFT {
		return seg.leftEdge
	}
	return seg.rightEdge
}

// StartPoint returns the first centerline vertex
func (seg *RoadSegment) StartPoint() Point3 {
	return seg.centerline[0]
}

// EndPoint returns the last centerline vertex
func (seg *RoadSegment) EndPoint() Point3 {
	return seg.centerline[len(seg.centerline)-1]
}

// StartCapOpen reports whether the start end is unconnected
func (seg *RoadSegment) StartCapOpen() bool {
	return seg.startCapOpen
}

// EndCapOpen reports whether the end end is unconnected
func (seg *RoadSegment) EndCapOpen() bool {
	return seg.endCapOpen
}

// Adjacent returns the handles of the neighboring segments
func (seg *RoadSegment) Adjacent() []RoadSegmentID {
	out := make([]RoadSegmentID, 0, len(seg.adjacent))
	for id := range seg.adjacent {
		out = append(out, id)
	}
	return out
}

// Chunks returns the segment's owned chunks
func (seg *RoadSegment) Chunks() []*Chunk {
	return seg.chunks
}

// Caps returns the segment's owned cap geometry
func (seg *RoadSegment) Caps() []*Cap {
	return seg.caps
}

// TangentAtStart returns the unit travel direction leaving the first vertex
func (seg *RoadSegment) TangentAtStart() Point3 {
	return lineTangentAt(seg.centerline, 0)
}

// TangentAtEnd returns the unit travel direction entering the last vertex
func (seg *RoadSegment) TangentAtEnd() Point3 {
	return lineTangentAt(seg.centerline, len(seg.centerline)-1)
}

// ClosestOnCenterline returns the closest centerline point to target and distance to it
func (seg *RoadSegment) ClosestOnCenterline(target Point3) (Point3, float64) {
	pt, _, dist := closestPointOnLine(target, seg.centerline)
	return pt, dist
}

// terminalAt classifies the point against the segment's two terminal vertices.
// Returns (atStart, atEnd); both false when the point is interior or off the segment
func (seg *RoadSegment) terminalAt(pt Point3, epsilon float64) (bool, bool) {
	if pt.DistanceTo(seg.StartPoint()) <= epsilon {
		return true, false
	}
	if pt.DistanceTo(seg.EndPoint()) <= epsilon {
		return false, true
	}
	return false, false
}

// rebuildEdges regenerates both boundary lines from the centerline, width and cap flags.
// For each vertex the offset direction is the perpendicular of the averaged adjacent
// tangents (miter direction), scaled so the perpendicular offset along each original
// tangent equals width/2. The scale is clamped to avoid explosion at near-180 folds.
// Open ends get one extra boundary point extending width/2 past the terminal vertex
func (seg *RoadSegment) rebuildEdges() {
	halfWidth := seg.Width / 2.0
	left, right := offsetBoth(seg.centerline, halfWidth)

	if seg.startCapOpen {
		ext := seg.TangentAtStart().Scale(-halfWidth)
		left = append([]Point3{left[0].Add(ext)}, left...)
		right = append([]Point3{right[0].Add(ext)}, right...)
	}
	if seg.endCapOpen {
		ext := seg.TangentAtEnd().Scale(halfWidth)
		left = append(left, left[len(left)-1].Add(ext))
		right = append(right, right[len(right)-1].Add(ext))
	}

	seg.leftEdge = left
	seg.rightEdge = right
}

// offsetBoth derives the two boundary lines at halfWidth from the medial line.
// Terminal vertices use the single adjacent tangent's perpendicular, interior
// vertices the miter direction with a clamped scale
func offsetBoth(line []Point3, halfWidth float64) ([]Point3, []Point3) {
	n := len(line)
	left := make([]Point3, 0, n+2)
	right := make([]Point3, 0, n+2)
	for i := 0; i < n; i++ {
		miter := lineTangentAt(line, i).PerpGround().Normalize()
		offset := halfWidth
		if i > 0 && i < n-1 {
			tangentPerp := line[i].Sub(line[i-1]).Normalize().PerpGround().Normalize()
			denom := miter.Dot(tangentPerp)
			if denom < 1.0/miterLimitFactor {
				denom = 1.0 / miterLimitFactor
			}
			offset = halfWidth / denom
		}
		left = append(left, line[i].Add(miter.Scale(offset)))
		right = append(right, line[i].Sub(miter.Scale(offset)))
	}
	return left, right
}

// capCorners returns the quad sealing the given end, built from the cap extension
// points and the adjacent body boundary points
func (seg *RoadSegment) capCorners(atStart bool) [4]Point3 {
	if atStart {
		return [4]Point3{seg.leftEdge[1], seg.leftEdge[0], seg.rightEdge[0], seg.rightEdge[1]}
	}
	n := len(seg.leftEdge)
	return [4]Point3{seg.leftEdge[n-2], seg.leftEdge[n-1], seg.rightEdge[n-1], seg.rightEdge[n-2]}
}
