package roadnet

// HitKind tells which kind of owned geometry a proximity hit resolved to
type HitKind uint16

const (
	HIT_CHUNK = HitKind(iota + 1)
	HIT_CAP
)

func (iotaIdx HitKind) String() string {
	return [...]string{"chunk", "cap"}[iotaIdx-1]
}

// ProximityHit is one collider returned by a radius query, resolved to its owning segment
type ProximityHit struct {
	Segment RoadSegmentID
	Kind    HitKind
	Chunk   *Chunk
	Cap     *Cap
}

// ProximityQuerier is the host's radius-bounded scene query. exclude removes one
// segment's own chunks and caps from the result; pass NoSegment to keep everything
type ProximityQuerier interface {
	QueryRadius(center Point3, radius float64, exclude RoadSegmentID) []ProximityHit
}

// GroundHitTester resolves a screen position to a point on the ground, or reports a miss
type GroundHitTester interface {
	HitGround(screenX, screenY float64) (Point3, bool)
}

// NoSegment is the null segment handle
const NoSegment = RoadSegmentID(0)

// Input is the per-tick snapshot of pointer and modifier state the host hands
// to the authoring tool. Button fields are edge-triggered: true only on the
// tick the press happened
type Input struct {
	// Ground is the pointer's ground-plane hit for this tick
	Ground      Point3
	GroundValid bool

	PrimaryClick   bool
	SecondaryClick bool
	Cancel         bool

	// Mode selects the curve synthesis strategy, decoupled from key bindings
	Mode CurveMode
}
