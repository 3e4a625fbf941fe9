package roadnet

import (
	"testing"

	"github.com/pkg/errors"
)

func TestStraightSegmentOffsets(t *testing.T) {
	width := 6.0
	seg, err := newRoadSegment(1, width, []Point3{{X: 0, Y: 0}, {X: 20, Y: 0}}, false, false)
	if err != nil {
		t.Fatalf("Segment construction failed: %v", err)
	}
	if len(seg.leftEdge) != len(seg.rightEdge) {
		t.Fatalf("Boundary lines must have equal length: %d vs %d", len(seg.leftEdge), len(seg.rightEdge))
	}
	// Both ends closed: boundaries are exactly the 2 body points, each width/2
	// away from the centerline and parallel to it
	for i, pt := range seg.leftEdge {
		if !almostEqual(pt.Y, width/2) {
			t.Errorf("Left boundary point %d must sit at y=%f, but got %f", i, width/2, pt.Y)
		}
	}
	for i, pt := range seg.rightEdge {
		if !almostEqual(pt.Y, -width/2) {
			t.Errorf("Right boundary point %d must sit at y=%f, but got %f", i, -width/2, pt.Y)
		}
	}
}

func TestOpenEndCapExtensions(t *testing.T) {
	// width=4, centerline (0,0,0)->(10,0,0), both ends open:
	// each boundary gets 2 body points plus 2 cap extensions at x=-2 and x=12
	seg, err := newRoadSegment(1, 4.0, []Point3{{X: 0, Y: 0}, {X: 10, Y: 0}}, true, true)
	if err != nil {
		t.Fatalf("Segment construction failed: %v", err)
	}
	for _, edge := range [][]Point3{seg.leftEdge, seg.rightEdge} {
		if len(edge) != 4 {
			t.Fatalf("Boundary must have 4 points (2 body + 2 extensions), but got %d", len(edge))
		}
		if !almostEqual(edge[0].X, -2.0) {
			t.Errorf("Start cap extension must sit at x=-2, but got %f", edge[0].X)
		}
		if !almostEqual(edge[3].X, 12.0) {
			t.Errorf("End cap extension must sit at x=12, but got %f", edge[3].X)
		}
	}
	if !almostEqual(seg.leftEdge[0].Y, 2.0) || !almostEqual(seg.rightEdge[0].Y, -2.0) {
		t.Errorf("Cap extensions must keep the boundary offset")
	}
}

func TestCapFlagsDoNotAlterCenterline(t *testing.T) {
	centerline := []Point3{{X: 0, Y: 0}, {X: 10, Y: 0}}
	seg, _ := newRoadSegment(1, 4.0, centerline, true, true)
	if len(seg.centerline) != 2 {
		t.Errorf("Capping must never alter the centerline, got %d points", len(seg.centerline))
	}
	seg.startCapOpen = false
	seg.endCapOpen = false
	seg.rebuildEdges()
	if len(seg.centerline) != 2 {
		t.Errorf("Cap flag change must never alter the centerline")
	}
	if len(seg.leftEdge) != 2 {
		t.Errorf("Closed ends must drop the extensions, got %d boundary points", len(seg.leftEdge))
	}
}

func TestMiterOffsetAtBend(t *testing.T) {
	width := 4.0
	seg, _ := newRoadSegment(1, width, []Point3{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, false, false)
	// 90 degree bend: miter scale is halfwidth/cos(45) = 2*sqrt(2)
	outer := seg.rightEdge[1]
	dist := outer.DistanceTo(Point3{X: 10, Y: 0})
	if !almostEqual(dist, 2.0*1.4142135623730951) {
		t.Errorf("Miter offset at 90 degree bend must be 2*sqrt(2), but got %f", dist)
	}
}

func TestMiterClampAtSharpFold(t *testing.T) {
	width := 4.0
	// Near-180 fold would explode without the clamp
	seg, _ := newRoadSegment(1, width, []Point3{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0.1, Y: 0.2}}, false, false)
	limit := miterLimitFactor * width / 2.0
	for _, edge := range [][]Point3{seg.leftEdge, seg.rightEdge} {
		if d := edge[1].DistanceTo(Point3{X: 10, Y: 0}); d > limit+1e-6 {
			t.Errorf("Miter offset must be clamped to %f, but got %f", limit, d)
		}
	}
}

func TestMalformedGeometryRejected(t *testing.T) {
	if _, err := newRoadSegment(1, 4.0, []Point3{{X: 0, Y: 0}}, true, true); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("Single-point centerline must be rejected with ErrMalformedGeometry, got %v", err)
	}
	if _, err := newRoadSegment(1, 0.0, []Point3{{X: 0}, {X: 1}}, true, true); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("Non-positive width must be rejected with ErrMalformedGeometry, got %v", err)
	}
}

func TestTerminalClassification(t *testing.T) {
	seg, _ := newRoadSegment(1, 4.0, []Point3{{X: 0, Y: 0}, {X: 10, Y: 0}}, true, true)
	atStart, atEnd := seg.terminalAt(Point3{X: 0.1, Y: 0}, 0.5)
	if !atStart || atEnd {
		t.Errorf("Point near the first vertex must classify as start terminal")
	}
	atStart, atEnd = seg.terminalAt(Point3{X: 5, Y: 0}, 0.5)
	if atStart || atEnd {
		t.Errorf("Interior point must not classify as terminal")
	}
}
