package gtfs

import (
	"archive/zip"
	"bytes"
	"math"
	"reflect"
	"testing"
)

// gtfsZip packs the given file name/content pairs into an in-memory zip.
func gtfsZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func sampleFeed(t *testing.T) []byte {
	return gtfsZip(t, map[string]string{
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"s1,Memorandumului,46.7712,23.6236\n" +
			"s2,Piata Unirii,46.7699,23.5899\n",
		"trips.txt": "route_id,service_id,trip_id,shape_id\n" +
			"r42,wk,t1,sh1\n" +
			"r42,wk,t2,\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"t1,08:05:00,08:05:30,s2,2\n" +
			"t1,08:00:00,08:00:30,s1,1\n",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"sh1,46.7699,23.5899,3\n" +
			"sh1,46.7712,23.6236,1\n" +
			"sh1,46.7705,23.6000,2\n",
	})
}

func TestNewIndexFromBytes(t *testing.T) {
	g, err := NewIndexFromBytes(sampleFeed(t))
	if err != nil {
		t.Fatalf("NewIndexFromBytes: %v", err)
	}

	if got := len(g.Stops()); got != 2 {
		t.Fatalf("stops = %d, want 2", got)
	}
	s1, ok := g.StopByID("s1")
	if !ok {
		t.Fatalf("stop s1 not found")
	}
	if s1.Name != "Memorandumului" {
		t.Errorf("s1 name = %q", s1.Name)
	}
	if math.Abs(s1.Position.Latitude-46.7712) > 1e-9 || math.Abs(s1.Position.Longitude-23.6236) > 1e-9 {
		t.Errorf("s1 position = %+v", s1.Position)
	}
	if !reflect.DeepEqual(s1.RouteIDs, []string{"r42"}) {
		t.Errorf("s1 routes = %v, want [r42]", s1.RouteIDs)
	}

	if got := g.RouteIDForTrip("t1"); got != "r42" {
		t.Errorf("route for t1 = %q, want r42", got)
	}
	if got := g.RouteIDForTrip("missing"); got != "" {
		t.Errorf("route for unknown trip = %q, want empty", got)
	}
}

func TestIndexStopTimesSorted(t *testing.T) {
	g, err := NewIndexFromBytes(sampleFeed(t))
	if err != nil {
		t.Fatalf("NewIndexFromBytes: %v", err)
	}
	sts := g.StopTimesForTrip("t1")
	if len(sts) != 2 {
		t.Fatalf("stop times = %d, want 2", len(sts))
	}
	// Rows appear out of order in the feed; the index sorts by sequence.
	if sts[0].StopID != "s1" || sts[1].StopID != "s2" {
		t.Errorf("order = %s,%s, want s1,s2", sts[0].StopID, sts[1].StopID)
	}
	if sts[0].ArrivalTime != "08:00:00" || sts[0].DepartureTime != "08:00:30" {
		t.Errorf("first stop times = %s/%s", sts[0].ArrivalTime, sts[0].DepartureTime)
	}
}

func TestIndexShapesOrderedBySequence(t *testing.T) {
	g, err := NewIndexFromBytes(sampleFeed(t))
	if err != nil {
		t.Fatalf("NewIndexFromBytes: %v", err)
	}
	shape, ok := g.ShapeForTrip("t1")
	if !ok {
		t.Fatalf("no shape for t1")
	}
	// Three points out of order in the feed become two ordered segments.
	if len(shape) != 2 {
		t.Fatalf("segments = %d, want 2", len(shape))
	}
	if shape[0].Start.Longitude != 23.6236 || shape[1].End.Longitude != 23.5899 {
		t.Errorf("shape endpoints = %v .. %v", shape[0].Start, shape[1].End)
	}

	if _, ok := g.ShapeForTrip("t2"); ok {
		t.Errorf("t2 has no shape_id, want no shape")
	}
}

func TestIndexOrchestratorViews(t *testing.T) {
	g, err := NewIndexFromBytes(sampleFeed(t))
	if err != nil {
		t.Fatalf("NewIndexFromBytes: %v", err)
	}
	shapes := g.TripShapes()
	if _, ok := shapes["t1"]; !ok {
		t.Errorf("TripShapes missing t1")
	}
	if _, ok := shapes["t2"]; ok {
		t.Errorf("TripShapes includes shapeless t2")
	}
	sts := g.TripStopTimes()
	if len(sts["t1"]) != 2 {
		t.Errorf("TripStopTimes[t1] = %d entries, want 2", len(sts["t1"]))
	}
}

func TestNewIndexFromBytesRejectsGarbage(t *testing.T) {
	if _, err := NewIndexFromBytes([]byte("not a zip")); err == nil {
		t.Errorf("want error for non-zip input")
	}
}

func TestNewIndexTolerantOfMissingColumns(t *testing.T) {
	// A stops file without coordinates still loads; positions are zero.
	data := gtfsZip(t, map[string]string{
		"stops.txt": "stop_id,stop_name\ns1,Somewhere\n",
	})
	g, err := NewIndexFromBytes(data)
	if err != nil {
		t.Fatalf("NewIndexFromBytes: %v", err)
	}
	s, ok := g.StopByID("s1")
	if !ok || s.Name != "Somewhere" {
		t.Fatalf("stop = %+v, ok=%v", s, ok)
	}
	if s.Position.Latitude != 0 || s.Position.Longitude != 0 {
		t.Errorf("position = %+v, want zero", s.Position)
	}
}
