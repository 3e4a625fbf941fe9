package roadnet

import "testing"

func buildRoutedChain(t *testing.T) *Network {
	t.Helper()
	net := NewNetwork(DefaultToolConfig())
	lines := [][]Point3{
		{{X: 0, Y: 0}, {X: 10, Y: 0}},
		{{X: 10, Y: 0}, {X: 20, Y: 0}},
		{{X: 20, Y: 0}, {X: 30, Y: 0}},
	}
	for _, line := range lines {
		if _, err := net.AddSegment(4.0, line, true, true); err != nil {
			t.Fatalf("Can't add segment: %v", err)
		}
	}
	return net
}

func TestRouteAlongChain(t *testing.T) {
	net := buildRoutedChain(t)
	router, err := net.BuildRouter(false)
	if err != nil {
		t.Fatalf("Can't build router: %v", err)
	}

	polyline, cost, ok := router.Route(Point3{X: 1, Y: 1}, Point3{X: 29, Y: 1})
	if !ok {
		t.Fatalf("Route over a connected chain must succeed")
	}
	if !almostEqual(cost, 30.0) {
		t.Errorf("Route cost must be 30.0 meters, but got %v", cost)
	}
	if !pointsAlmostEqual(polyline[0], Point3{X: 0, Y: 0}) {
		t.Errorf("Route must start at the snapped junction, got %v", polyline[0])
	}
	if !pointsAlmostEqual(polyline[len(polyline)-1], Point3{X: 30, Y: 0}) {
		t.Errorf("Route must end at the snapped junction, got %v", polyline[len(polyline)-1])
	}
	foundMiddle := false
	for _, pt := range polyline {
		if pointsAlmostEqual(pt, Point3{X: 20, Y: 0}) {
			foundMiddle = true
		}
	}
	if !foundMiddle {
		t.Errorf("Route polyline must pass through the middle junction")
	}
}

func TestRouteSameVertexCollapses(t *testing.T) {
	net := buildRoutedChain(t)
	router, err := net.BuildRouter(false)
	if err != nil {
		t.Fatalf("Can't build router: %v", err)
	}
	polyline, cost, ok := router.Route(Point3{X: 9.8, Y: 0}, Point3{X: 10.2, Y: 0})
	if !ok {
		t.Fatalf("Both points snap to the same junction, route must succeed")
	}
	if cost != 0 {
		t.Errorf("Same-junction route cost must be 0, but got %v", cost)
	}
	if len(polyline) != 1 {
		t.Errorf("Same-junction route must be the single junction point, got %d points", len(polyline))
	}
}

func TestRouteOffNetworkFails(t *testing.T) {
	net := buildRoutedChain(t)
	router, err := net.BuildRouter(false)
	if err != nil {
		t.Fatalf("Can't build router: %v", err)
	}
	if _, _, ok := router.Route(Point3{X: 500, Y: 500}, Point3{X: 0, Y: 0}); ok {
		t.Errorf("Route from a point far off the network must fail")
	}
}
