package roadnet

type RoadClass uint16

const (
	ROAD_MOTORWAY = RoadClass(iota + 1)
	ROAD_TRUNK
	ROAD_PRIMARY
	ROAD_SECONDARY
	ROAD_TERTIARY
	ROAD_RESIDENTIAL
	ROAD_SERVICE
	ROAD_FOOTWAY
	ROAD_UNCLASSIFIED
)

func (iotaIdx RoadClass) String() string {
	return [...]string{"motorway", "trunk", "primary", "secondary", "tertiary", "residential", "service", "footway", "unclassified"}[iotaIdx-1]
}

var (
	defaultWidthByRoadClass = map[RoadClass]float64{
		ROAD_MOTORWAY:     14.0,
		ROAD_TRUNK:        10.5,
		ROAD_PRIMARY:      10.5,
		ROAD_SECONDARY:    7.0,
		ROAD_TERTIARY:     7.0,
		ROAD_RESIDENTIAL:  4.0,
		ROAD_SERVICE:      3.0,
		ROAD_FOOTWAY:      1.5,
		ROAD_UNCLASSIFIED: 4.0,
	}
	roadClassByHighwayTag = map[string]RoadClass{
		"motorway":       ROAD_MOTORWAY,
		"motorway_link":  ROAD_MOTORWAY,
		"trunk":          ROAD_TRUNK,
		"trunk_link":     ROAD_TRUNK,
		"primary":        ROAD_PRIMARY,
		"primary_link":   ROAD_PRIMARY,
		"secondary":      ROAD_SECONDARY,
		"secondary_link": ROAD_SECONDARY,
		"tertiary":       ROAD_TERTIARY,
		"tertiary_link":  ROAD_TERTIARY,
		"residential":    ROAD_RESIDENTIAL,
		"living_street":  ROAD_RESIDENTIAL,
		"service":        ROAD_SERVICE,
		"footway":        ROAD_FOOTWAY,
		"road":           ROAD_UNCLASSIFIED,
		"unclassified":   ROAD_UNCLASSIFIED,
	}
)

// WidthForClass returns the default ribbon width for given road class
func WidthForClass(class RoadClass) float64 {
	if w, ok := defaultWidthByRoadClass[class]; ok {
		return w
	}
	return defaultWidthByRoadClass[ROAD_UNCLASSIFIED]
}
