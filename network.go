package roadnet

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Network is the arena of committed road segments. Adjacency between segments
// is stored as handles into this arena, never as pointers, so deletion can not
// leave aliased references behind.
//
// All mutation happens synchronously from the authoring tool within one tick;
// the graph is self-consistent (symmetric adjacency, cap flags matching
// geometry) whenever a tick ends
type Network struct {
	segments map[RoadSegmentID]*RoadSegment
	nextID   RoadSegmentID

	chunkPool *Pool[Chunk]
	capPool   *Pool[Cap]

	cfg       ToolConfig
	proximity ProximityQuerier
}

// NewNetwork creates an empty network with its own chunk/cap pools and a
// built-in linear-scan proximity querier. A host engine can replace the
// querier with its own broad phase via SetProximityQuerier
func NewNetwork(cfg ToolConfig) *Network {
	net := &Network{
		segments:  make(map[RoadSegmentID]*RoadSegment),
		nextID:    1,
		chunkPool: NewPool[Chunk](func() *Chunk { return &Chunk{} }, resetChunk),
		capPool:   NewPool[Cap](func() *Cap { return &Cap{} }, resetCap),
		cfg:       cfg,
	}
	net.proximity = net
	return net
}

// SetProximityQuerier replaces the built-in linear scan with the host's scene query
func (net *Network) SetProximityQuerier(q ProximityQuerier) {
	net.proximity = q
}

// Config returns the network's parameter set
func (net *Network) Config() ToolConfig {
	return net.cfg
}

// Segment resolves a handle. Returns nil for stale or unknown handles
func (net *Network) Segment(id RoadSegmentID) *RoadSegment {
	return net.segments[id]
}

// Segments returns all committed segments ordered by handle
func (net *Network) Segments() []*RoadSegment {
	out := make([]*RoadSegment, 0, len(net.segments))
	for _, seg := range net.segments {
		out = append(out, seg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Len returns the number of committed segments
func (net *Network) Len() int {
	return len(net.segments)
}

// AddSegment commits a new road built from the given centerline, regenerates its
// owned geometry and immediately integrates it with the graph via UpdateCaps
func (net *Network) AddSegment(width float64, centerline []Point3, startOpen, endOpen bool) (*RoadSegment, error) {
	seg, err := newRoadSegment(net.nextID, width, centerline, startOpen, endOpen)
	if err != nil {
		return nil, errors.Wrap(err, "Can't construct road segment")
	}
	net.nextID++
	net.segments[seg.id] = seg
	net.rebuildOwned(seg)
	net.UpdateCaps(seg.id)
	return seg, nil
}

// RemoveSegment destroys a segment: owned chunks and caps go back to the pools,
// every neighbor drops its back-reference, and the former neighbors re-run
// their connectivity repair so their ends re-open where this segment sealed them
func (net *Network) RemoveSegment(id RoadSegmentID) {
	seg, ok := net.segments[id]
	if !ok {
		return
	}
	net.releaseOwned(seg)
	neighbors := seg.Adjacent()
	net.notifyDeletion(seg)
	delete(net.segments, id)
	for _, neighborID := range neighbors {
		net.UpdateCaps(neighborID)
	}
}

// notifyDeletion drops the segment's handle from every neighbor's adjacency set
// and clears its own. It deliberately does not re-run the neighbors' cap update;
// RemoveSegment does that once the handle is gone from the arena
func (net *Network) notifyDeletion(seg *RoadSegment) {
	for neighborID := range seg.adjacent {
		if neighbor, ok := net.segments[neighborID]; ok {
			delete(neighbor.adjacent, seg.id)
		}
	}
	seg.adjacent = make(map[RoadSegmentID]struct{})
}

// releaseOwned returns all of the segment's pooled geometry
func (net *Network) releaseOwned(seg *RoadSegment) {
	for _, chunk := range seg.chunks {
		if err := net.chunkPool.Release(chunk); err != nil {
			fmt.Printf("Warning. Can not release chunk of segment %d: %s\n", seg.id, err.Error())
		}
	}
	seg.chunks = nil
	for _, c := range seg.caps {
		if err := net.capPool.Release(c); err != nil {
			fmt.Printf("Warning. Can not release cap of segment %d: %s\n", seg.id, err.Error())
		}
	}
	seg.caps = nil
}

// rebuildOwned regenerates boundary lines, chunk subdivision and cap geometry
// after any structural change to the segment
func (net *Network) rebuildOwned(seg *RoadSegment) {
	seg.rebuildEdges()
	net.releaseOwned(seg)

	halfWidth := seg.Width / 2.0
	for _, piece := range subdivideCenterline(seg.centerline, net.cfg.SegmentLength) {
		left, right := offsetBoth(piece, halfWidth)
		chunk := net.chunkPool.Acquire()
		chunk.rebuild(seg.id, piece, left, right)
		seg.chunks = append(seg.chunks, chunk)
	}
	if seg.startCapOpen {
		c := net.capPool.Acquire()
		c.rebuild(seg.id, true, seg.capCorners(true))
		seg.caps = append(seg.caps, c)
	}
	if seg.endCapOpen {
		c := net.capPool.Acquire()
		c.rebuild(seg.id, false, seg.capCorners(false))
		seg.caps = append(seg.caps, c)
	}
}

// UpdateCaps is the local, idempotent, bidirectional connectivity repair for one
// segment. For each end it probes the scene around the terminal vertex (own
// geometry excluded); a hit whose centerline passes through the end closes the
// end and inserts mutual adjacency, and when the coincident point is one of the
// other segment's terminal vertices the matching end closes there too. Ends with
// no such hit open up and get their cap back
func (net *Network) UpdateCaps(id RoadSegmentID) {
	seg, ok := net.segments[id]
	if !ok {
		return
	}
	changed := false
	for _, atStart := range []bool{true, false} {
		endPt := seg.EndPoint()
		if atStart {
			endPt = seg.StartPoint()
		}
		closed := false
		for _, hit := range net.proximity.QueryRadius(endPt, net.cfg.CapProbeRadius, seg.id) {
			if hit.Kind == HIT_CAP {
				// Cap geometry never counts as a connection
				continue
			}
			other := net.segments[hit.Segment]
			if other == nil || other.id == seg.id {
				continue
			}
			if _, dist := other.ClosestOnCenterline(endPt); dist > net.cfg.EndpointEpsilon {
				continue
			}
			closed = true
			seg.adjacent[other.id] = struct{}{}
			other.adjacent[seg.id] = struct{}{}
			otherStart, otherEnd := other.terminalAt(endPt, net.cfg.EndpointEpsilon)
			if otherStart && other.startCapOpen {
				other.startCapOpen = false
				net.rebuildOwned(other)
			}
			if otherEnd && other.endCapOpen {
				other.endCapOpen = false
				net.rebuildOwned(other)
			}
		}
		open := !closed
		if atStart && seg.startCapOpen != open {
			seg.startCapOpen = open
			changed = true
		}
		if !atStart && seg.endCapOpen != open {
			seg.endCapOpen = open
			changed = true
		}
	}
	if changed {
		net.rebuildOwned(seg)
	}
}

// QueryRadius is the built-in linear-scan proximity query over all committed
// chunks and caps. Adequate for tests and small scenes; hosts with a broad
// phase should inject their own querier
func (net *Network) QueryRadius(center Point3, radius float64, exclude RoadSegmentID) []ProximityHit {
	hits := []ProximityHit{}
	for _, seg := range net.Segments() {
		if seg.id == exclude {
			continue
		}
		halfWidth := seg.Width / 2.0
		for _, chunk := range seg.chunks {
			if _, _, dist := closestPointOnLine(center, chunk.centerline); dist <= radius+halfWidth {
				hits = append(hits, ProximityHit{Segment: seg.id, Kind: HIT_CHUNK, Chunk: chunk})
			}
		}
		for _, c := range seg.caps {
			outline := []Point3{c.Mesh.Corners[0], c.Mesh.Corners[1], c.Mesh.Corners[2], c.Mesh.Corners[3], c.Mesh.Corners[0]}
			if _, _, dist := closestPointOnLine(center, outline); dist <= radius {
				hits = append(hits, ProximityHit{Segment: seg.id, Kind: HIT_CAP, Cap: c})
			}
		}
	}
	return hits
}

// SnapToRoad binds a point to the closest committed centerline within the snap
// radius. Returns the owning segment, the snapped point and true on success
func (net *Network) SnapToRoad(target Point3) (*RoadSegment, Point3, bool) {
	var best *RoadSegment
	var bestPt Point3
	bestDist := net.cfg.SnapDistance
	for _, seg := range net.Segments() {
		pt, dist := seg.ClosestOnCenterline(target)
		if dist <= bestDist {
			best = seg
			bestPt = pt
			bestDist = dist
		}
	}
	if best == nil {
		return nil, Point3{}, false
	}
	return best, bestPt, true
}

// DeleteAt resolves the point to a chunk or cap, returns it to the pool and asks
// the owning segment's neighbors to repair their connectivity. Deleting the last
// chunk removes the whole segment. Misses are a no-op
func (net *Network) DeleteAt(target Point3) bool {
	hits := net.proximity.QueryRadius(target, net.cfg.SnapDistance, NoSegment)
	if len(hits) == 0 {
		return false
	}
	// Resolve to the closest collider under the pointer
	hit := hits[0]
	bestDist := net.hitDistance(target, hit)
	for _, candidate := range hits[1:] {
		if d := net.hitDistance(target, candidate); d < bestDist {
			hit = candidate
			bestDist = d
		}
	}
	seg, ok := net.segments[hit.Segment]
	if !ok {
		return false
	}

	if hit.Kind == HIT_CAP {
		for i, c := range seg.caps {
			if c == hit.Cap {
				seg.caps = append(seg.caps[:i], seg.caps[i+1:]...)
				if err := net.capPool.Release(c); err != nil {
					fmt.Printf("Warning. Can not release cap of segment %d: %s\n", seg.id, err.Error())
				}
				break
			}
		}
	} else {
		for i, chunk := range seg.chunks {
			if chunk == hit.Chunk {
				seg.chunks = append(seg.chunks[:i], seg.chunks[i+1:]...)
				if err := net.chunkPool.Release(chunk); err != nil {
					fmt.Printf("Warning. Can not release chunk of segment %d: %s\n", seg.id, err.Error())
				}
				break
			}
		}
		if len(seg.chunks) == 0 {
			net.RemoveSegment(seg.id)
			return true
		}
	}

	// The segment itself still exists, only its geometry got shorter:
	// the neighbors re-check their ends, not the owner
	for _, neighborID := range seg.Adjacent() {
		net.UpdateCaps(neighborID)
	}
	return true
}

// hitDistance measures how far the point is from the hit's geometry
func (net *Network) hitDistance(target Point3, hit ProximityHit) float64 {
	if hit.Kind == HIT_CAP && hit.Cap != nil {
		corners := hit.Cap.Mesh.Corners
		outline := []Point3{corners[0], corners[1], corners[2], corners[3], corners[0]}
		_, _, dist := closestPointOnLine(target, outline)
		return dist
	}
	if hit.Chunk != nil {
		_, _, dist := closestPointOnLine(target, hit.Chunk.centerline)
		return dist
	}
	return 0
}

// ChunkPool exposes the shared chunk pool for leak checks
func (net *Network) ChunkPool() *Pool[Chunk] {
	return net.chunkPool
}

// CapPool exposes the shared cap pool for leak checks
func (net *Network) CapPool() *Pool[Cap] {
	return net.capPool
}
