package gtfsrt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1_700_000_042),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("e1"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Position: &gtfsrtpb.Position{
						Latitude:  proto.Float32(46.77),
						Longitude: proto.Float32(23.62),
					},
				},
			},
		},
	}
	data := marshalFeed(t, fm)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedRefresh(t *testing.T) {
	srv := feedServer(t)
	f := NewFeed(srv.URL, 2*time.Second)

	if err := f.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	vehicles, ts := f.Vehicles()
	if len(vehicles) != 1 {
		t.Fatalf("vehicles = %d, want 1", len(vehicles))
	}
	if vehicles[0].ID != "e1" {
		t.Errorf("id = %q, want e1", vehicles[0].ID)
	}
	if ts != 1_700_000_042 {
		t.Errorf("timestamp = %d, want 1700000042", ts)
	}

	// The returned slice is a copy; mutating it must not affect the cache.
	vehicles[0].ID = "mutated"
	again, _ := f.Vehicles()
	if again[0].ID != "e1" {
		t.Errorf("cache mutated through returned slice")
	}
}

func TestFeedEmptyURLIsNoOp(t *testing.T) {
	f := NewFeed("", time.Second)
	if err := f.Refresh(); err != nil {
		t.Fatalf("Refresh with empty url: %v", err)
	}
	vehicles, ts := f.Vehicles()
	if len(vehicles) != 0 || ts != 0 {
		t.Errorf("got %d vehicles, ts %d, want empty cache", len(vehicles), ts)
	}
}

func TestFeedRefreshHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	f := NewFeed(srv.URL, time.Second)
	if err := f.Refresh(); err == nil {
		t.Errorf("want error for HTTP 502")
	}
}
