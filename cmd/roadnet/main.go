package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/LdDl/roadnet"
)

var (
	osmFileName = flag.String("file", "", "Filename of *.osm.pbf file to import as the initial road network (optional)")
	out         = flag.String("out", "roads.geojson", "Output filename. Extension picks the format: .geojson / .csv")
	routeFlag   = flag.String("route", "", "Routing query 'x1,y1:x2,y2' in local meters over the committed network (optional)")
	verbose     = flag.Bool("verbose", true, "Print progress")
)

func main() {
	flag.Parse()

	net := roadnet.NewNetwork(roadnet.DefaultToolConfig())

	if *osmFileName != "" {
		total, err := net.ImportFromOSMFile(*osmFileName, *verbose)
		if err != nil {
			fmt.Println(err)
			return
		}
		if *verbose {
			fmt.Printf("Imported %d segments\n", total)
		}
	} else {
		// No input file: author a small demo network through the interactive tool
		tool := roadnet.NewTool(net)
		clicks := []roadnet.Point3{
			{X: 0, Y: 0},
			{X: 40, Y: 0},
			{X: 40, Y: 35},
			{X: -10, Y: 35},
		}
		for _, pt := range clicks {
			tool.Tick(roadnet.Input{Ground: pt, GroundValid: true, PrimaryClick: true, Mode: roadnet.CURVE_STRAIGHT}, 1.0/60.0)
		}
		tool.Tick(roadnet.Input{GroundValid: false, Cancel: true}, 1.0/60.0)
		if *verbose {
			fmt.Printf("Authored %d segments\n", net.Len())
		}
	}

	if *routeFlag != "" {
		from, to, err := parseRouteQuery(*routeFlag)
		if err != nil {
			fmt.Println(err)
			return
		}
		router, err := net.BuildRouter(*verbose)
		if err != nil {
			fmt.Println(err)
			return
		}
		polyline, cost, ok := router.Route(from, to)
		if !ok {
			fmt.Println("No route found")
		} else {
			fmt.Printf("Route cost: %f meters\n%s\n", cost, roadnet.PrepareWKTLinestring(polyline))
		}
	}

	if strings.HasSuffix(*out, ".csv") {
		if err := net.ExportToCSV(*out); err != nil {
			fmt.Println(err)
			return
		}
	} else {
		fc := net.ExportToGeoJSON()
		b, err := json.Marshal(fc)
		if err != nil {
			fmt.Println(err)
			return
		}
		if err := os.WriteFile(*out, b, 0644); err != nil {
			fmt.Println(err)
			return
		}
	}
	if *verbose {
		fmt.Printf("Written %s\n", *out)
	}
}

// parseRouteQuery parses 'x1,y1:x2,y2'
func parseRouteQuery(query string) (roadnet.Point3, roadnet.Point3, error) {
	parts := strings.Split(query, ":")
	if len(parts) != 2 {
		return roadnet.Point3{}, roadnet.Point3{}, fmt.Errorf("Bad route query: %s", query)
	}
	pts := [2]roadnet.Point3{}
	for i, part := range parts {
		coords := strings.Split(part, ",")
		if len(coords) != 2 {
			return roadnet.Point3{}, roadnet.Point3{}, fmt.Errorf("Bad route point: %s", part)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			return roadnet.Point3{}, roadnet.Point3{}, err
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			return roadnet.Point3{}, roadnet.Point3{}, err
		}
		pts[i] = roadnet.Point3{X: x, Y: y}
	}
	return pts[0], pts[1], nil
}
