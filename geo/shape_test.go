package geo

import (
	"math"
	"testing"
)

// straight north-flowing line, roughly 1.1 km per point spacing of 0.01 deg
func testShape() Shape {
	return NewShape([]Coordinate{
		{Latitude: 46.77, Longitude: 23.62},
		{Latitude: 46.78, Longitude: 23.62},
		{Latitude: 46.79, Longitude: 23.62},
		{Latitude: 46.80, Longitude: 23.62},
	})
}

func TestNewShapeContiguous(t *testing.T) {
	s := testShape()
	if len(s) != 3 {
		t.Fatalf("segments = %d, want 3", len(s))
	}
	for i := 1; i < len(s); i++ {
		if s[i].Start != s[i-1].End {
			t.Errorf("segment %d start %+v != segment %d end %+v", i, s[i].Start, i-1, s[i-1].End)
		}
	}
	for i, seg := range s {
		if seg.LengthM <= 0 {
			t.Errorf("segment %d length = %v, want > 0", i, seg.LengthM)
		}
	}
}

func TestNewShapeTooFewPoints(t *testing.T) {
	if s := NewShape([]Coordinate{{Latitude: 1, Longitude: 1}}); s != nil {
		t.Errorf("NewShape with one point = %v, want nil", s)
	}
	if s := NewShape(nil); s != nil {
		t.Errorf("NewShape(nil) = %v, want nil", s)
	}
}

func TestShapeAtClamps(t *testing.T) {
	s := testShape()
	total := s.LengthM()

	start, err := s.At(-10)
	if err != nil {
		t.Fatalf("At(-10): %v", err)
	}
	if start != s[0].Start {
		t.Errorf("At(-10) = %+v, want origin %+v", start, s[0].Start)
	}

	end, err := s.At(total * 2)
	if err != nil {
		t.Fatalf("At(2*total): %v", err)
	}
	if end != s[len(s)-1].End {
		t.Errorf("At past terminus = %+v, want %+v", end, s[len(s)-1].End)
	}
}

func TestShapeAtInterpolates(t *testing.T) {
	s := testShape()
	mid, err := s.At(s.LengthM() / 2)
	if err != nil {
		t.Fatalf("At(mid): %v", err)
	}
	// Halfway along a straight 0.03 degree line.
	if math.Abs(mid.Latitude-46.785) > 1e-4 {
		t.Errorf("midpoint latitude = %v, want ~46.785", mid.Latitude)
	}
	if math.Abs(mid.Longitude-23.62) > 1e-9 {
		t.Errorf("midpoint longitude = %v, want 23.62", mid.Longitude)
	}
}

func TestShapeAtEmpty(t *testing.T) {
	var s Shape
	if _, err := s.At(5); err != ErrEmptyShape {
		t.Errorf("At on empty shape err = %v, want ErrEmptyShape", err)
	}
}

func TestProjectToShape(t *testing.T) {
	s := testShape()

	tests := []struct {
		name        string
		point       Coordinate
		wantSegment int
	}{
		{"beside first segment", Coordinate{Latitude: 46.775, Longitude: 23.621}, 0},
		{"beside middle segment", Coordinate{Latitude: 46.785, Longitude: 23.619}, 1},
		{"beside last segment", Coordinate{Latitude: 46.795, Longitude: 23.62}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, err := ProjectToShape(tt.point, s)
			if err != nil {
				t.Fatalf("ProjectToShape: %v", err)
			}
			if proj.SegmentIndex != tt.wantSegment {
				t.Errorf("segment = %d, want %d", proj.SegmentIndex, tt.wantSegment)
			}
			if proj.DistanceM < 0 {
				t.Errorf("distance = %v, want >= 0", proj.DistanceM)
			}
			if proj.Fraction < 0 || proj.Fraction > 1 {
				t.Errorf("fraction = %v, want within [0,1]", proj.Fraction)
			}
			// The snapped point must lie on the chosen segment.
			seg := s[proj.SegmentIndex]
			_, _, onSeg := ProjectToSegment(proj.Point, seg.Start, seg.End)
			if onSeg > 0.001 {
				t.Errorf("closest point %v m off its own segment", onSeg)
			}
			// AlongM grows with the segment index on a straight line.
			if proj.AlongM < 0 || proj.AlongM > s.LengthM() {
				t.Errorf("alongM = %v, want within [0,%v]", proj.AlongM, s.LengthM())
			}
		})
	}
}

func TestProjectToShapeTieBreaksEarliest(t *testing.T) {
	// Out-and-back polyline: the return leg retraces the same line, so a
	// point beside it is equidistant to two segments.
	s := NewShape([]Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 0, Longitude: 0},
	})
	proj, err := ProjectToShape(Coordinate{Latitude: 0.001, Longitude: 0.5}, s)
	if err != nil {
		t.Fatalf("ProjectToShape: %v", err)
	}
	if proj.SegmentIndex != 0 {
		t.Errorf("segment = %d, want earliest index 0 on tie", proj.SegmentIndex)
	}
}

func TestProjectToShapeEmpty(t *testing.T) {
	if _, err := ProjectToShape(Coordinate{}, nil); err != ErrEmptyShape {
		t.Errorf("err = %v, want ErrEmptyShape", err)
	}
}
