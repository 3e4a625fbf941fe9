package roadnet

// ToolState is the authoring state machine's current mode
type ToolState uint16

const (
	TOOL_IDLE = ToolState(iota + 1)
	TOOL_PREVIEWING
)

func (iotaIdx ToolState) String() string {
	return [...]string{"idle", "previewing"}[iotaIdx-1]
}

// Tool turns per-tick pointer input into committed road segments.
//
// Idle --(primary click, ground hit)--> Previewing (anchor set, possibly snapped)
// Previewing --(primary click)--> Previewing (segment committed, anchor re-armed
// at the commit point for chained placement)
// Previewing --(secondary click / cancel)--> Idle (preview discarded)
//
// Everything happens synchronously inside Tick: no partial state is ever
// visible between ticks
type Tool struct {
	net   *Network
	state ToolState

	// Width of the next committed segment
	Width float64
	// Class recorded on committed segments
	Class RoadClass

	start   anchor
	preview []Point3

	elasticRef      Point3
	elasticCaptured bool
}

// NewTool creates an authoring tool committing into the given network
func NewTool(net *Network) *Tool {
	return &Tool{
		net:   net,
		state: TOOL_IDLE,
		Width: net.cfg.DefaultWidth,
		Class: ROAD_UNCLASSIFIED,
	}
}

// State returns the current state machine mode
func (tool *Tool) State() ToolState {
	return tool.state
}

// Preview returns the centerline currently under synthesis. Empty while idle
func (tool *Tool) Preview() []Point3 {
	return tool.preview
}

// Network returns the network the tool commits into
func (tool *Tool) Network() *Network {
	return tool.net
}

// Tick runs one synchronous authoring pass: input handling, preview recompute
// and, on the committing click, full segment construction
func (tool *Tool) Tick(input Input, dt float64) {
	switch tool.state {
	case TOOL_PREVIEWING:
		tool.tickPreviewing(input)
	default:
		tool.tickIdle(input)
	}
}

func (tool *Tool) tickIdle(input Input) {
	if !input.GroundValid {
		return
	}
	if input.SecondaryClick {
		// Right click while idle deletes the chunk or cap under the pointer
		tool.net.DeleteAt(input.Ground)
		return
	}
	if input.PrimaryClick {
		tool.start = tool.resolveAnchor(input.Ground)
		tool.preview = nil
		tool.elasticCaptured = false
		tool.state = TOOL_PREVIEWING
	}
}

func (tool *Tool) tickPreviewing(input Input) {
	if input.SecondaryClick || input.Cancel {
		tool.preview = nil
		tool.elasticCaptured = false
		tool.state = TOOL_IDLE
		return
	}
	if !input.GroundValid {
		return
	}

	// The elastic reference point is captured once, at the moment the
	// free-form mode becomes active, and holds until the mode is released
	if input.Mode == CURVE_ELASTIC {
		if !tool.elasticCaptured {
			tool.elasticRef = input.Ground
			tool.elasticCaptured = true
		}
	} else {
		tool.elasticCaptured = false
	}

	end := tool.resolveAnchor(input.Ground)
	tool.preview = tool.synthesize(input.Mode, tool.start, end)

	if input.PrimaryClick && len(tool.preview) >= 2 {
		seg, err := tool.net.AddSegment(tool.Width, tool.preview, !tool.start.snapped, !end.snapped)
		if err != nil {
			return
		}
		seg.Class = tool.Class
		// Chained placement: the committed end becomes the next anchor
		tool.start = tool.resolveAnchor(end.point)
		tool.preview = nil
		tool.elasticCaptured = false
	}
}

// resolveAnchor probes existing segments within the snap radius. A hit binds the
// anchor to the closest centerline point and classifies it as endpoint snap or
// mid-span snap; a miss leaves the raw ground point unsnapped
func (tool *Tool) resolveAnchor(pt Point3) anchor {
	seg, snapPt, ok := tool.net.SnapToRoad(pt)
	if !ok {
		return anchor{point: pt}
	}
	atStart, atEnd := seg.terminalAt(snapPt, tool.net.cfg.EndpointEpsilon)
	var tangent Point3
	switch {
	case atStart:
		tangent = seg.TangentAtStart()
	case atEnd:
		tangent = seg.TangentAtEnd()
	default:
		_, segIdx, _ := closestPointOnLine(pt, seg.centerline)
		tangent = seg.centerline[segIdx+1].Sub(seg.centerline[segIdx]).Normalize()
	}
	return anchor{
		point:      snapPt,
		snapped:    true,
		segment:    seg.id,
		atEndpoint: atStart || atEnd,
		tangent:    tangent,
	}
}

// synthesize produces the preview centerline for the selected strategy
func (tool *Tool) synthesize(mode CurveMode, from, to anchor) []Point3 {
	switch mode {
	case CURVE_TANGENT_CUBIC:
		return synthesizeTangentCubic(from, to, tool.net.cfg)
	case CURVE_ELASTIC:
		if tool.elasticCaptured {
			return synthesizeElastic(from.point, to.point, tool.elasticRef, tool.net.cfg)
		}
		return synthesizeStraight(from, to, tool.net.cfg)
	default:
		return synthesizeStraight(from, to, tool.net.cfg)
	}
}
