package roadnet

import (
	"encoding/csv"
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []Point3) string {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].X, pts[i].Y}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt Point3) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X, pt.Y}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(pts []Point3) string {
	return wkt.MarshalString(lineToPlanar(pts))
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt Point3) string {
	return wkt.MarshalString(pt.Planar())
}

// ExportToGeoJSON dumps the network as a FeatureCollection: one centerline
// feature per segment plus its two boundary lines, each tagged with the owning
// segment, class, width and cap state
func (net *Network) ExportToGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, seg := range net.Segments() {
		for _, part := range []struct {
			role string
			line []Point3
		}{
			{"centerline", seg.centerline},
			{"left_edge", seg.leftEdge},
			{"right_edge", seg.rightEdge},
		} {
			pts2d := make([][]float64, len(part.line))
			for i := range part.line {
				pts2d[i] = []float64{part.line[i].X, part.line[i].Y}
			}
			feature := geojson.NewLineStringFeature(pts2d)
			feature.SetProperty("segment_id", int64(seg.id))
			feature.SetProperty("role", part.role)
			feature.SetProperty("class", seg.Class.String())
			feature.SetProperty("width", seg.Width)
			feature.SetProperty("start_cap_open", seg.startCapOpen)
			feature.SetProperty("end_cap_open", seg.endCapOpen)
			fc.AddFeature(feature)
		}
	}
	return fc
}

// ExportToCSV writes the committed segments to a semicolon-separated file with
// WKT centerline geometry
func (net *Network) ExportToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "class", "width", "start_cap_open", "end_cap_open", "adjacent_count", "chunks", "length_meters", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, seg := range net.Segments() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", seg.id),
			fmt.Sprintf("%s", seg.Class),
			fmt.Sprintf("%f", seg.Width),
			fmt.Sprintf("%t", seg.startCapOpen),
			fmt.Sprintf("%t", seg.endCapOpen),
			fmt.Sprintf("%d", len(seg.adjacent)),
			fmt.Sprintf("%d", len(seg.chunks)),
			fmt.Sprintf("%f", getLength(seg.centerline)),
			PrepareWKTLinestring(seg.centerline),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write segment")
		}
	}
	return nil
}
