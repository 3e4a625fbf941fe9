package roadnet

import "sort"

// SnapInfo binds a plot boundary vertex to one boundary line of a road
type SnapInfo struct {
	Position Point3
	Road     RoadSegmentID
	Side     Side
}

// PlotVertex is one vertex of an externally owned plot boundary. Multiple snap
// candidates arise when several roads fall inside the snap radius at once; the
// first candidate after filtering is the committed one
type PlotVertex struct {
	Position       Point3
	Snapped        bool
	SnapCandidates []SnapInfo
}

// Committed returns the snap binding in effect for this vertex, nil when unsnapped
func (v *PlotVertex) Committed() *SnapInfo {
	if v == nil || !v.Snapped || len(v.SnapCandidates) == 0 {
		return nil
	}
	return &v.SnapCandidates[0]
}

// SnapPlotVertex collects every road within the snap radius of target and binds
// the vertex to the closest boundary line. For each road only the closer of its
// two boundary lines is considered, and a road is discarded entirely when the
// previous vertex is already committed to its other side: the plot boundary must
// not cross a road's body at a single vertex
func SnapPlotVertex(net *Network, target Point3, prev *PlotVertex) PlotVertex {
	vertex := PlotVertex{Position: target}
	type scored struct {
		info SnapInfo
		dist float64
	}
	candidates := []scored{}
	for _, seg := range net.Segments() {
		if _, dist := seg.ClosestOnCenterline(target); dist > net.cfg.SnapDistance {
			continue
		}
		ptLeft, _, distLeft := closestPointOnLine(target, seg.leftEdge)
		ptRight, _, distRight := closestPointOnLine(target, seg.rightEdge)
		side := SIDE_LEFT
		pt := ptLeft
		dist := distLeft
		if distRight < distLeft {
			side = SIDE_RIGHT
			pt = ptRight
			dist = distRight
		}
		if committed := prev.Committed(); committed != nil && committed.Road == seg.id && committed.Side != side {
			continue
		}
		candidates = append(candidates, scored{SnapInfo{Position: pt, Road: seg.id, Side: side}, dist})
	}
	if len(candidates) == 0 {
		return vertex
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	vertex.Snapped = true
	vertex.Position = candidates[0].info.Position
	vertex.SnapCandidates = make([]SnapInfo, 0, len(candidates))
	for _, c := range candidates {
		vertex.SnapCandidates = append(vertex.SnapCandidates, c.info)
	}
	return vertex
}

// SynthesizeBoundary produces a point sequence usable as one edge of a plot
// boundary between two snapped points, following road boundary lines where
// possible and hopping across adjacent roads when the endpoints live on
// different segments. Paths whose sharpest interior turn exceeds the quality
// gate collapse to a straight 2-point chord, as does every degenerate case
func SynthesizeBoundary(net *Network, from, to SnapInfo) []Point3 {
	chord := []Point3{from.Position, to.Position}
	segFrom := net.Segment(from.Road)
	segTo := net.Segment(to.Road)
	if segFrom == nil || segTo == nil {
		return chord
	}

	var path []Point3
	if from.Road == to.Road {
		if from.Side == to.Side {
			path = sameRoadPath(segFrom, from, to)
		} else {
			path = syntheticBend(segFrom, from, to)
		}
	} else {
		path = crossRoadPath(net, segFrom, segTo, from, to)
	}

	if len(path) < 2 {
		return chord
	}
	if maxTurnAngleDeg(path) > net.cfg.SharpAngleDeg {
		return chord
	}
	return path
}

// sameRoadPath extracts the boundary sub-range strictly between the two snap
// points, reversed when the original indices run backward
func sameRoadPath(seg *RoadSegment, from, to SnapInfo) []Point3 {
	edge := seg.Edge(from.Side)
	_, idxFrom, _ := closestPointOnLine(from.Position, edge)
	_, idxTo, _ := closestPointOnLine(to.Position, edge)

	path := []Point3{from.Position}
	if idxFrom <= idxTo {
		for i := idxFrom + 1; i <= idxTo; i++ {
			path = append(path, edge[i])
		}
	} else {
		for i := idxFrom; i > idxTo; i-- {
			path = append(path, edge[i])
		}
	}
	path = append(path, to.Position)
	return dedupePath(path)
}

// syntheticBend handles opposite sides of the same road with a 3-point bend
// through a midpoint pushed off the road body
func syntheticBend(seg *RoadSegment, from, to SnapInfo) []Point3 {
	mid := lerpPoint(from.Position, to.Position, 0.5)
	center, _ := seg.ClosestOnCenterline(mid)
	away := mid.Sub(center)
	if away.Length() < geomEpsilon {
		away = seg.TangentAtEnd()
	}
	offsetMid := mid.Add(away.Normalize().Scale(seg.Width / 2.0))
	return []Point3{from.Position, offsetMid, to.Position}
}

// crossRoadPath is the bounded iterative hop walk across adjacent roads.
// Exhausting the hop budget or losing the trail terminates gracefully with a
// straight jump to the destination point
func crossRoadPath(net *Network, segFrom, segTo *RoadSegment, from, to SnapInfo) []Point3 {
	path := []Point3{}
	walk := walkTowardCloserEnd(segFrom.Edge(from.Side), from.Position, to.Position)
	current := segFrom

	for hop := 0; hop < net.cfg.MaxHops; hop++ {
		tip := walk[len(walk)-1]
		next := nextReachableSegment(net, tip, current.id)
		if next == nil {
			// Trail lost: keep what we walked and jump straight to destination
			path = appendPath(path, walk)
			return appendPath(path, []Point3{to.Position})
		}

		// Trim the walked boundary at its first crossing with the next road's
		// boundary lines so the junction does not produce a self-crossing loop
		walk = trimAtBoundary(walk, next)
		path = appendPath(path, walk)

		if next.id == segTo.id {
			final := walkToSnapPoint(segTo.Edge(to.Side), path[len(path)-1], to.Position)
			final = trimAgainstPrevious(final, current, to.Position)
			return appendPath(path, final)
		}

		side := sideWithTerminalClosestTo(next, to.Position)
		walk = walkTowardCloserEnd(next.Edge(side), path[len(path)-1], to.Position)
		current = next
	}
	return appendPath(path, []Point3{to.Position})
}

// sideWithTerminalClosestTo picks the boundary side whose nearest terminal end
// lies closest to target
func sideWithTerminalClosestTo(seg *RoadSegment, target Point3) Side {
	best := SIDE_LEFT
	bestDist := -1.0
	for _, side := range []Side{SIDE_LEFT, SIDE_RIGHT} {
		edge := seg.Edge(side)
		if len(edge) == 0 {
			continue
		}
		dist := edge[0].DistanceTo(target)
		if tail := edge[len(edge)-1].DistanceTo(target); tail < dist {
			dist = tail
		}
		if bestDist < 0 || dist < bestDist {
			best = side
			bestDist = dist
		}
	}
	return best
}

// nextReachableSegment probes around the path tip for the next road, excluding
// the one just departed
func nextReachableSegment(net *Network, tip Point3, exclude RoadSegmentID) *RoadSegment {
	var best *RoadSegment
	bestDist := net.cfg.SnapDistance
	for _, hit := range net.proximity.QueryRadius(tip, net.cfg.SnapDistance, exclude) {
		seg := net.Segment(hit.Segment)
		if seg == nil {
			continue
		}
		if _, dist := seg.ClosestOnCenterline(tip); dist <= bestDist {
			best = seg
			bestDist = dist
		}
	}
	return best
}

// walkTowardCloserEnd walks the boundary line from the point nearest to startPt
// toward whichever of its own terminal ends lies closer to target
func walkTowardCloserEnd(edge []Point3, startPt, target Point3) []Point3 {
	if len(edge) < 2 {
		return []Point3{startPt}
	}
	_, idx, _ := closestPointOnLine(startPt, edge)
	walk := []Point3{startPt}
	if edge[len(edge)-1].DistanceTo(target) <= edge[0].DistanceTo(target) {
		for i := idx + 1; i < len(edge); i++ {
			walk = append(walk, edge[i])
		}
	} else {
		for i := idx; i >= 0; i-- {
			walk = append(walk, edge[i])
		}
	}
	return dedupePath(walk)
}

// walkToSnapPoint walks the destination boundary from the terminal end nearest
// to the current tip up to the exact snap point
func walkToSnapPoint(edge []Point3, tip, snapPt Point3) []Point3 {
	if len(edge) < 2 {
		return []Point3{snapPt}
	}
	_, idxSnap, _ := closestPointOnLine(snapPt, edge)
	walk := []Point3{}
	if edge[0].DistanceTo(tip) <= edge[len(edge)-1].DistanceTo(tip) {
		for i := 0; i <= idxSnap; i++ {
			walk = append(walk, edge[i])
		}
	} else {
		for i := len(edge) - 1; i > idxSnap; i-- {
			walk = append(walk, edge[i])
		}
	}
	walk = append(walk, snapPt)
	return dedupePath(walk)
}

// trimAtBoundary cuts the sub-path at its first ground-plane intersection with
// either boundary line of the other segment. Near-parallel pairs are rejected
// by the intersection test itself
func trimAtBoundary(sub []Point3, other *RoadSegment) []Point3 {
	for i := 1; i < len(sub); i++ {
		bestDist := -1.0
		var bestPt Point3
		for _, edge := range [][]Point3{other.leftEdge, other.rightEdge} {
			for j := 1; j < len(edge); j++ {
				pt, err := intersectSegments(sub[i-1].Planar(), sub[i].Planar(), edge[j-1].Planar(), edge[j].Planar())
				if err != nil {
					continue
				}
				hit := fromPlanar(pt, sub[i-1].Z)
				dist := sub[i-1].DistanceTo(hit)
				if bestDist < 0 || dist < bestDist {
					bestDist = dist
					bestPt = hit
				}
			}
		}
		if bestDist >= 0 {
			trimmed := make([]Point3, 0, i+1)
			trimmed = append(trimmed, sub[:i]...)
			trimmed = append(trimmed, bestPt)
			return dedupePath(trimmed)
		}
	}
	return sub
}

// trimAgainstPrevious trims the destination walk against the road just departed,
// keeping the portion that ends at the snap point
func trimAgainstPrevious(sub []Point3, previous *RoadSegment, snapPt Point3) []Point3 {
	reversed := reverseLine(sub)
	reversed = trimAtBoundary(reversed, previous)
	out := reverseLine(reversed)
	if len(out) == 0 || out[len(out)-1].DistanceTo(snapPt) > geomEpsilon {
		out = append(out, snapPt)
	}
	return dedupePath(out)
}

// appendPath concatenates path pieces dropping the duplicated junction point
func appendPath(path, piece []Point3) []Point3 {
	for _, pt := range piece {
		if n := len(path); n > 0 && path[n-1].DistanceTo(pt) <= geomEpsilon {
			continue
		}
		path = append(path, pt)
	}
	return path
}

// dedupePath removes consecutive duplicate points
func dedupePath(path []Point3) []Point3 {
	out := path[:0:0]
	for _, pt := range path {
		if n := len(out); n > 0 && out[n-1].DistanceTo(pt) <= geomEpsilon {
			continue
		}
		out = append(out, pt)
	}
	return out
}
