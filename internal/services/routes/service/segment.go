package service

import (
	"safetymapper/internal/core/geo"
)

// span is one scoring unit of a route polyline
type span struct {
	start  int
	end    int
	length float64
	mid    geo.Point
}

// split cuts the polyline into spans. A span closes once it covers
// segLen meters or maxPts points, whichever comes first; adjacent spans
// share their boundary point so no leg is dropped
func split(pts []geo.Point, segLen float64, maxPts int) []span {
	var out []span

	start := 0
	var acc float64
	for i := 1; i < len(pts); i++ {
		acc += geo.Distance(pts[i-1], pts[i])
		closes := acc >= segLen || i-start+1 >= maxPts || i == len(pts)-1
		if !closes {
			continue
		}
		out = append(out, span{
			start:  start,
			end:    i,
			length: acc,
			mid:    midAlong(pts, start, i, acc),
		})
		start = i
		acc = 0
	}
	return out
}

// midAlong finds the point halfway along the span's polyline
func midAlong(pts []geo.Point, start, end int, length float64) geo.Point {
	if end-start == 1 {
		return geo.Midpoint(pts[start], pts[end])
	}

	half := length / 2
	var acc float64
	for i := start + 1; i <= end; i++ {
		leg := geo.Distance(pts[i-1], pts[i])
		if acc+leg >= half && leg > 0 {
			f := (half - acc) / leg
			return geo.Point{
				Lat: pts[i-1].Lat + f*(pts[i].Lat-pts[i-1].Lat),
				Lon: pts[i-1].Lon + f*(pts[i].Lon-pts[i-1].Lon),
			}
		}
		acc += leg
	}
	return pts[end]
}
