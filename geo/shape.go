package geo

import (
	"errors"
	"math"
)

// ErrEmptyShape is returned when an operation needs at least one segment.
var ErrEmptyShape = errors.New("geo: shape has no segments")

// Segment is one directed piece of a route polyline.
type Segment struct {
	Start   Coordinate `json:"start"`
	End     Coordinate `json:"end"`
	LengthM float64    `json:"lengthM"`
}

// Shape is an ordered, contiguous polyline from route origin to terminus.
type Shape []Segment

// NewShape builds a contiguous shape from an ordered point list, computing
// each segment's length. Fewer than two points yields a nil shape.
func NewShape(points []Coordinate) Shape {
	if len(points) < 2 {
		return nil
	}
	segs := make(Shape, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segs = append(segs, Segment{
			Start:   points[i-1],
			End:     points[i],
			LengthM: DistanceMeters(points[i-1], points[i]),
		})
	}
	return segs
}

// LengthM returns the total polyline length in meters.
func (s Shape) LengthM() float64 {
	total := 0.0
	for _, seg := range s {
		total += seg.LengthM
	}
	return total
}

// At returns the coordinate at distM meters along the shape, clamped at
// both ends. It never extrapolates past the terminus.
func (s Shape) At(distM float64) (Coordinate, error) {
	if len(s) == 0 {
		return Coordinate{}, ErrEmptyShape
	}
	if distM <= 0 {
		return s[0].Start, nil
	}
	remaining := distM
	for _, seg := range s {
		if remaining <= seg.LengthM {
			if seg.LengthM == 0 {
				return seg.End, nil
			}
			t := remaining / seg.LengthM
			return Coordinate{
				Latitude:  seg.Start.Latitude + t*(seg.End.Latitude-seg.Start.Latitude),
				Longitude: seg.Start.Longitude + t*(seg.End.Longitude-seg.Start.Longitude),
			}, nil
		}
		remaining -= seg.LengthM
	}
	return s[len(s)-1].End, nil
}

// Projection is the result of snapping a point onto a shape. It is derived,
// ephemeral data: valid for one prediction call, never persisted.
type Projection struct {
	Point        Coordinate
	SegmentIndex int
	Fraction     float64 // position within the segment, 0..1
	DistanceM    float64 // perpendicular distance from the point to the shape
	AlongM       float64 // distance from the shape's origin to the snapped point
}

// ProjectToShape snaps p onto the closest point of the whole shape. Every
// segment is evaluated; the global minimum wins and ties go to the earliest
// segment index, so results are deterministic.
func ProjectToShape(p Coordinate, s Shape) (Projection, error) {
	if len(s) == 0 {
		return Projection{}, ErrEmptyShape
	}
	best := Projection{SegmentIndex: -1, DistanceM: math.Inf(1)}
	along := 0.0
	for i, seg := range s {
		closest, frac, dist := ProjectToSegment(p, seg.Start, seg.End)
		if dist < best.DistanceM {
			best = Projection{
				Point:        closest,
				SegmentIndex: i,
				Fraction:     frac,
				DistanceM:    dist,
				AlongM:       along + frac*seg.LengthM,
			}
		}
		along += seg.LengthM
	}
	return best, nil
}
