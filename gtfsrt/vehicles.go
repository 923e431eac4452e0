package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/vehicle-prediction/geo"
	"github.com/theoremus-urban-solutions/vehicle-prediction/predict"
)

// ParseVehicles decodes a GTFS-RT VehiclePositions feed into vehicle fixes,
// returning the feed header timestamp as well. Entities without a position
// are skipped; feed speeds (m/s) are converted to km/h.
func ParseVehicles(data []byte) ([]predict.Vehicle, int64, error) {
	fm := &gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(data, fm); err != nil {
		return nil, 0, fmt.Errorf("decode feed: %w", err)
	}

	var headerTS int64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTS = int64(*fm.Header.Timestamp)
	}

	vehicles := make([]predict.Vehicle, 0, len(fm.Entity))
	for _, ent := range fm.Entity {
		vp := ent.Vehicle
		if vp == nil || vp.Position == nil || vp.Position.Latitude == nil || vp.Position.Longitude == nil {
			continue
		}

		var v predict.Vehicle
		if vp.Vehicle != nil {
			if vp.Vehicle.Id != nil {
				v.ID = *vp.Vehicle.Id
			}
			if vp.Vehicle.Label != nil {
				v.Label = *vp.Vehicle.Label
			}
		}
		if v.ID == "" && ent.Id != nil {
			v.ID = *ent.Id
		}
		if vp.Trip != nil {
			if vp.Trip.TripId != nil {
				v.TripID = *vp.Trip.TripId
			}
			if vp.Trip.RouteId != nil {
				v.RouteID = *vp.Trip.RouteId
			}
		}
		v.Position = geo.Coordinate{
			Latitude:  float64(*vp.Position.Latitude),
			Longitude: float64(*vp.Position.Longitude),
		}
		if vp.Position.Bearing != nil {
			b := float64(*vp.Position.Bearing)
			v.Bearing = &b
		}
		if vp.Position.Speed != nil {
			s := float64(*vp.Position.Speed) * 3.6
			v.SpeedKMH = &s
		}
		if vp.Timestamp != nil {
			v.Timestamp = int64(*vp.Timestamp)
		}
		// Accessibility flags are not carried by the standard
		// VehiclePositions feed; they stay at their defaults.
		vehicles = append(vehicles, v)
	}
	return vehicles, headerTS, nil
}
