package roadnet

import (
	"fmt"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// Router answers point-to-point queries over the committed road graph using
// contraction hierarchies. Segment endpoints within the endpoint epsilon
// collapse into shared junction vertices; every segment becomes a pair of
// directed edges weighted by its centerline length
type Router struct {
	graph        ch.Graph
	net          *Network
	vertexPoints map[int64]Point3
	edgeSegments map[[2]int64]RoadSegmentID
}

// BuildRouter snapshots the current network into a prepared routing graph.
// The router does not follow later network edits; rebuild after authoring
func (net *Network) BuildRouter(verbose bool) (*Router, error) {
	router := &Router{
		net:          net,
		vertexPoints: make(map[int64]Point3),
		edgeSegments: make(map[[2]int64]RoadSegmentID),
	}

	nextVertexID := int64(1)
	vertexFor := func(pt Point3) int64 {
		for id, existing := range router.vertexPoints {
			if existing.DistanceTo(pt) <= net.cfg.EndpointEpsilon {
				return id
			}
		}
		id := nextVertexID
		nextVertexID++
		router.vertexPoints[id] = pt
		return id
	}

	for _, seg := range net.Segments() {
		source := vertexFor(seg.StartPoint())
		target := vertexFor(seg.EndPoint())
		if source == target {
			continue
		}
		if err := router.graph.CreateVertex(source); err != nil {
			return nil, errors.Wrap(err, "Can not create source vertex")
		}
		if err := router.graph.CreateVertex(target); err != nil {
			return nil, errors.Wrap(err, "Can not create target vertex")
		}
		cost := getLength(seg.centerline)
		if err := router.graph.AddEdge(source, target, cost); err != nil {
			return nil, errors.Wrap(err, "Can not add forward edge")
		}
		if err := router.graph.AddEdge(target, source, cost); err != nil {
			return nil, errors.Wrap(err, "Can not add backward edge")
		}
		router.edgeSegments[[2]int64{source, target}] = seg.id
		router.edgeSegments[[2]int64{target, source}] = seg.id
	}

	if verbose {
		fmt.Println("Starting contraction process....")
	}
	st := time.Now()
	router.graph.PrepareContractionHierarchies()
	if verbose {
		fmt.Printf("Done contraction process in %v\n", time.Since(st))
	}
	return router, nil
}

// Route snaps both points to their nearest junction vertices and returns the
// road polyline between them together with its cost in meters. ok is false
// when either point is off the network or no path exists
func (router *Router) Route(from, to Point3) ([]Point3, float64, bool) {
	source, okFrom := router.nearestVertex(from)
	target, okTo := router.nearestVertex(to)
	if !okFrom || !okTo {
		return nil, 0, false
	}
	if source == target {
		return []Point3{router.vertexPoints[source]}, 0, true
	}

	cost, vertexPath := router.graph.ShortestPath(source, target)
	if len(vertexPath) < 2 {
		return nil, 0, false
	}

	polyline := []Point3{}
	for i := 1; i < len(vertexPath); i++ {
		segID, ok := router.edgeSegments[[2]int64{vertexPath[i-1], vertexPath[i]}]
		if !ok {
			continue
		}
		seg := router.net.Segment(segID)
		if seg == nil {
			continue
		}
		piece := seg.centerline
		start := router.vertexPoints[vertexPath[i-1]]
		if seg.EndPoint().DistanceTo(start) < seg.StartPoint().DistanceTo(start) {
			piece = reverseLine(piece)
		}
		polyline = appendPath(polyline, piece)
	}
	if len(polyline) < 2 {
		return nil, 0, false
	}
	return polyline, cost, true
}

// nearestVertex binds a point to the closest junction vertex within the snap radius
func (router *Router) nearestVertex(pt Point3) (int64, bool) {
	best := int64(-1)
	bestDist := router.net.cfg.SnapDistance
	for id, vertexPt := range router.vertexPoints {
		if d := vertexPt.DistanceTo(pt); d <= bestDist {
			best = id
			bestDist = d
		}
	}
	return best, best >= 0
}
