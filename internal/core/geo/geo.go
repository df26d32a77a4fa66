// Package geo provides the small set of spherical-earth helpers the risk
// engine needs. Distances are meters, coordinates are WGS84 degrees
package geo

import "math"

// EarthRadiusMeters is the mean earth radius used for haversine math
const EarthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate pair
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether p is inside the WGS84 envelope
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the haversine distance between a and b in meters
func Distance(a, b Point) float64 {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLa := (b.Lat - a.Lat) * math.Pi / 180
	dLo := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLa/2)*math.Sin(dLa/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLo/2)*math.Sin(dLo/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Midpoint returns the great-circle midpoint of a and b
func Midpoint(a, b Point) Point {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	lo1 := a.Lon * math.Pi / 180
	dLo := (b.Lon - a.Lon) * math.Pi / 180

	bx := math.Cos(la2) * math.Cos(dLo)
	by := math.Cos(la2) * math.Sin(dLo)

	lat := math.Atan2(
		math.Sin(la1)+math.Sin(la2),
		math.Sqrt((math.Cos(la1)+bx)*(math.Cos(la1)+bx)+by*by),
	)
	lon := lo1 + math.Atan2(by, math.Cos(la1)+bx)

	return Point{
		Lat: lat * 180 / math.Pi,
		Lon: math.Mod(lon*180/math.Pi+540, 360) - 180,
	}
}

// PathLength returns the summed leg distances of pts in meters.
// Fewer than two points is zero
func PathLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}

// MetersPerDegreeLat is effectively constant on a sphere
const MetersPerDegreeLat = EarthRadiusMeters * math.Pi / 180

// MetersPerDegreeLon shrinks with latitude; used for cell sizing
func MetersPerDegreeLon(lat float64) float64 {
	return MetersPerDegreeLat * math.Cos(lat*math.Pi/180)
}
