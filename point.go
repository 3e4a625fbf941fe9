package roadnet

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Point3 representation of point in local space. X/Y form the ground plane, Z is elevation
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// String returns pretty printed value for Point3
func (p Point3) String() string {
	return fmt.Sprintf("X: %f | Y: %f | Z: %f", p.X, p.Y, p.Z)
}

// Planar projects the point onto the ground plane
func (p Point3) Planar() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Add returns component-wise sum of two points
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns component-wise difference of two points
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns the point scaled by given factor
func (p Point3) Scale(factor float64) Point3 {
	return Point3{p.X * factor, p.Y * factor, p.Z * factor}
}

// Dot returns dot product of two vectors
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Length returns Euclidean norm of the vector
func (p Point3) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Normalize returns unit vector of the same direction. Zero vector stays zero
func (p Point3) Normalize() Point3 {
	length := p.Length()
	if length == 0 {
		return Point3{}
	}
	return p.Scale(1.0 / length)
}

// PerpGround returns the vector rotated by 90 degrees counter-clockwise in the ground plane.
// Elevation is dropped: boundary offsets stay horizontal
func (p Point3) PerpGround() Point3 {
	return Point3{-p.Y, p.X, 0}
}

// DistanceTo returns Euclidean distance between two points
func (p Point3) DistanceTo(q Point3) float64 {
	return p.Sub(q).Length()
}

// planarDot returns dot product of two ground-plane vectors
func planarDot(p, q orb.Point) float64 {
	return p[0]*q[0] + p[1]*q[1]
}

// planarCross returns Z-component of cross product of two ground-plane vectors
func planarCross(p, q orb.Point) float64 {
	return p[0]*q[1] - p[1]*q[0]
}

// fromPlanar lifts a ground-plane point back to local space using given elevation
func fromPlanar(p orb.Point, elevation float64) Point3 {
	return Point3{p[0], p[1], elevation}
}

// lerpPoint returns a point on segment p->q at given fraction
func lerpPoint(p, q Point3, fraction float64) Point3 {
	return Point3{
		X: (1-fraction)*p.X + fraction*q.X,
		Y: (1-fraction)*p.Y + fraction*q.Y,
		Z: (1-fraction)*p.Z + fraction*q.Z,
	}
}
