package roadnet

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// earthRadiusMeters is used to project lon/lat into the local ground plane
const earthRadiusMeters = 6370986.884258304

// ImportFromOSMFile reads highway ways from a *.osm.pbf extract and commits them
// to the network as road segments. Coordinates are projected into local meters
// around the first scanned node (equirectangular, good enough for city-scale
// extracts). Widths come from the road class defaults
/*
	File should have PBF (Protocolbuffer Binary Format) extension according to https://github.com/paulmach/osm
*/
func (net *Network) ImportFromOSMFile(fileName string, verbose bool) (int, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return 0, errors.Wrap(err, "File open")
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, 4)
	defer scannerWays.Close()

	type importedWay struct {
		nodes osm.WayNodes
		class RoadClass
	}
	ways := []importedWay{}
	nodesSeen := make(map[osm.NodeID]struct{})

	if verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tag, ok := way.TagMap()["highway"]
		if !ok {
			continue
		}
		class, ok := roadClassByHighwayTag[tag]
		if !ok {
			continue
		}
		prepared := importedWay{
			nodes: make(osm.WayNodes, len(way.Nodes)),
			class: class,
		}
		copy(prepared.nodes, way.Nodes)
		ways = append(ways, prepared)
		for _, node := range way.Nodes {
			nodesSeen[node.ID] = struct{}{}
		}
	}
	if scannerWays.Err() != nil {
		return 0, errors.Wrap(scannerWays.Err(), "Scanner error on Ways")
	}
	if verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	// Seek file to start
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return 0, errors.Wrap(err, "Can't repeat seeking")
	}
	scannerNodes := osmpbf.New(context.Background(), f, 4)
	defer scannerNodes.Close()

	if verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	nodes := make(map[osm.NodeID]*osm.Node)
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			delete(nodesSeen, node.ID)
			nodes[node.ID] = node
		}
	}
	if scannerNodes.Err() != nil {
		return 0, errors.Wrap(scannerNodes.Err(), "Scanner error on Nodes")
	}
	if verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodes))
	}

	if verbose {
		fmt.Printf("Committing segments...")
	}
	st = time.Now()
	var origin *osm.Node
	committed := 0
	for _, way := range ways {
		centerline := []Point3{}
		for _, wayNode := range way.nodes {
			node, ok := nodes[wayNode.ID]
			if !ok {
				continue
			}
			if origin == nil {
				origin = node
			}
			centerline = append(centerline, projectLonLat(node.Lon, node.Lat, origin.Lon, origin.Lat))
		}
		if len(centerline) < 2 {
			continue
		}
		seg, err := net.AddSegment(WidthForClass(way.class), centerline, true, true)
		if err != nil {
			return committed, errors.Wrap(err, "Can't commit imported way")
		}
		seg.Class = way.class
		committed++
	}
	if verbose {
		fmt.Printf("Done in %v\n\tSegments: %d\n", time.Since(st), committed)
	}
	return committed, nil
}

// projectLonLat maps geographic coordinates to local ground-plane meters around the origin
func projectLonLat(lon, lat, originLon, originLat float64) Point3 {
	x := degreesToRadians(lon-originLon) * earthRadiusMeters * math.Cos(degreesToRadians(originLat))
	y := degreesToRadians(lat-originLat) * earthRadiusMeters
	return Point3{X: x, Y: y}
}
