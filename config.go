package roadnet

// ToolConfig groups tunable parameters of the road authoring tool and the snap algorithms.
// All distances are meters, angles are degrees
type ToolConfig struct {
	// SnapDistance is the radius used to bind clicks and plot vertices to existing roads
	SnapDistance float64
	// EndpointEpsilon decides whether a snapped point counts as a terminal vertex
	EndpointEpsilon float64
	// SamplesPerMeter is the density of synthesized centerlines
	SamplesPerMeter float64
	// SegmentLength is the upper bound for a single chunk's centerline length
	SegmentLength float64
	// HandleLenRatio scales tangent handles of the cubic strategy relative to chord length
	HandleLenRatio float64
	// MaxHandleLen caps the tangent handle length of the cubic strategy
	MaxHandleLen float64
	// SharpAngleDeg is the quality gate for synthesized boundary paths
	SharpAngleDeg float64
	// MaxHops bounds cross-road path traversal
	MaxHops int
	// CapProbeRadius is the radius of the connectivity proximity query at segment ends
	CapProbeRadius float64
	// DefaultWidth is used when neither the caller nor the road class provides one
	DefaultWidth float64
}

// DefaultToolConfig returns the parameter set used by the interactive tool
func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		SnapDistance:    5.0,
		EndpointEpsilon: 0.5,
		SamplesPerMeter: 2.0,
		SegmentLength:   10.0,
		HandleLenRatio:  0.4,
		MaxHandleLen:    25.0,
		SharpAngleDeg:   50.0,
		MaxHops:         10,
		CapProbeRadius:  1.0,
		DefaultWidth:    4.0,
	}
}
