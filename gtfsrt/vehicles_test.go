package gtfsrt

import (
	"math"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func marshalFeed(t *testing.T, fm *gtfsrtpb.FeedMessage) []byte {
	t.Helper()
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return data
}

func TestParseVehicles(t *testing.T) {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1_700_000_000),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("ent-1"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Vehicle: &gtfsrtpb.VehicleDescriptor{
						Id:    proto.String("bus-7"),
						Label: proto.String("42B"),
					},
					Trip: &gtfsrtpb.TripDescriptor{
						TripId:  proto.String("t1"),
						RouteId: proto.String("r42"),
					},
					Position: &gtfsrtpb.Position{
						Latitude:  proto.Float32(46.7712),
						Longitude: proto.Float32(23.6236),
						Bearing:   proto.Float32(90),
						Speed:     proto.Float32(10), // m/s
					},
					Timestamp: proto.Uint64(1_699_999_970),
				},
			},
			{
				// No position: skipped.
				Id:      proto.String("ent-2"),
				Vehicle: &gtfsrtpb.VehiclePosition{},
			},
			{
				// Falls back to the entity id, bare position only.
				Id: proto.String("ent-3"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Position: &gtfsrtpb.Position{
						Latitude:  proto.Float32(46.77),
						Longitude: proto.Float32(23.62),
					},
				},
			},
		},
	}

	vehicles, headerTS, err := ParseVehicles(marshalFeed(t, fm))
	if err != nil {
		t.Fatalf("ParseVehicles: %v", err)
	}
	if headerTS != 1_700_000_000 {
		t.Errorf("header timestamp = %d, want 1700000000", headerTS)
	}
	if len(vehicles) != 2 {
		t.Fatalf("vehicles = %d, want 2 (positionless entity skipped)", len(vehicles))
	}

	v := vehicles[0]
	if v.ID != "bus-7" || v.Label != "42B" {
		t.Errorf("id/label = %q/%q, want bus-7/42B", v.ID, v.Label)
	}
	if v.TripID != "t1" || v.RouteID != "r42" {
		t.Errorf("trip/route = %q/%q, want t1/r42", v.TripID, v.RouteID)
	}
	if math.Abs(v.Position.Latitude-46.7712) > 1e-4 || math.Abs(v.Position.Longitude-23.6236) > 1e-4 {
		t.Errorf("position = %+v", v.Position)
	}
	if v.SpeedKMH == nil || math.Abs(*v.SpeedKMH-36) > 1e-6 {
		t.Errorf("speed = %v, want 36 km/h from 10 m/s", v.SpeedKMH)
	}
	if v.Bearing == nil || *v.Bearing != 90 {
		t.Errorf("bearing = %v, want 90", v.Bearing)
	}
	if v.Timestamp != 1_699_999_970 {
		t.Errorf("timestamp = %d", v.Timestamp)
	}

	bare := vehicles[1]
	if bare.ID != "ent-3" {
		t.Errorf("bare id = %q, want entity id fallback", bare.ID)
	}
	if bare.SpeedKMH != nil || bare.Bearing != nil {
		t.Errorf("bare speed/bearing = %v/%v, want nil", bare.SpeedKMH, bare.Bearing)
	}
}

func TestParseVehiclesRejectsGarbage(t *testing.T) {
	if _, _, err := ParseVehicles([]byte{0xff, 0xfe, 0xfd}); err == nil {
		t.Errorf("want error for undecodable bytes")
	}
}

func TestParseVehiclesEmptyFeed(t *testing.T) {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
	}
	vehicles, headerTS, err := ParseVehicles(marshalFeed(t, fm))
	if err != nil {
		t.Fatalf("ParseVehicles: %v", err)
	}
	if len(vehicles) != 0 || headerTS != 0 {
		t.Errorf("got %d vehicles, ts %d, want empty", len(vehicles), headerTS)
	}
}
