package roadnet

// Chunk is a bounded sub-range of a road's centerline with its own
// renderable ribbon and collidable footprint. Owned by exactly one RoadSegment
type Chunk struct {
	owner      RoadSegmentID
	centerline []Point3
	left       []Point3
	right      []Point3
	Mesh       RibbonMesh
	Collider   Footprint
}

// Cap is the closing quad sealing an open end of a road ribbon
type Cap struct {
	owner    RoadSegmentID
	atStart  bool
	Mesh     QuadMesh
	Collider Footprint
}

// resetChunk clears per-owner state before the chunk goes back to the pool
func resetChunk(c *Chunk) {
	*c = Chunk{}
}

// resetCap clears per-owner state before the cap goes back to the pool
func resetCap(c *Cap) {
	*c = Cap{}
}

// subdivideCenterline splits the line into sub-ranges of running length <= maxLen.
// The walk cuts exactly at the threshold, inserting a cut point when the threshold
// falls inside a segment, and carries the remainder into the next piece
func subdivideCenterline(line []Point3, maxLen float64) [][]Point3 {
	if len(line) < 2 || maxLen <= 0 {
		return nil
	}
	pieces := [][]Point3{}
	current := []Point3{line[0]}
	walked := 0.0
	for i := 1; i < len(line); i++ {
		prev := current[len(current)-1]
		segLen := prev.DistanceTo(line[i])
		for walked+segLen >= maxLen {
			cut := lerpPoint(prev, line[i], (maxLen-walked)/segLen)
			current = append(current, cut)
			pieces = append(pieces, current)
			current = []Point3{cut}
			segLen -= maxLen - walked
			walked = 0.0
			prev = cut
		}
		walked += segLen
		// A cut landing exactly on line[i] already placed it as the piece seed
		if current[len(current)-1].DistanceTo(line[i]) > geomEpsilon {
			current = append(current, line[i])
		}
	}
	if len(current) >= 2 {
		pieces = append(pieces, current)
	}
	return pieces
}

// rebuild refreshes the chunk's derived geometry from its sub-range of the parent's lines
func (c *Chunk) rebuild(owner RoadSegmentID, centerline, left, right []Point3) {
	c.owner = owner
	c.centerline = centerline
	c.left = left
	c.right = right
	c.Mesh = buildRibbonMesh(left, right)
	c.Collider = buildFootprint(left, right)
}

// Owner returns the ID of the segment the chunk belongs to
func (c *Chunk) Owner() RoadSegmentID {
	return c.owner
}

// Centerline returns the chunk's sub-range of the owner's centerline
func (c *Chunk) Centerline() []Point3 {
	return c.centerline
}

// rebuild refreshes the cap's quad from the four corner points
func (cp *Cap) rebuild(owner RoadSegmentID, atStart bool, corners [4]Point3) {
	cp.owner = owner
	cp.atStart = atStart
	cp.Mesh = QuadMesh{Corners: corners}
	cp.Collider = buildFootprint([]Point3{corners[0], corners[1]}, []Point3{corners[3], corners[2]})
}

// Owner returns the ID of the segment the cap belongs to
func (cp *Cap) Owner() RoadSegmentID {
	return cp.owner
}

// AtStart reports whether the cap seals the start end of its owner
func (cp *Cap) AtStart() bool {
	return cp.atStart
}
