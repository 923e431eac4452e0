package gtfs

import "github.com/theoremus-urban-solutions/vehicle-prediction/geo"

// Stop is a station or platform from the static feed.
type Stop struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Position geo.Coordinate `json:"coordinates"`
	RouteIDs []string       `json:"routeIds,omitempty"`
}

// StopTime is one scheduled call of a trip at a stop. Sequence is strictly
// increasing within a trip; arrival and departure are GTFS time-of-day
// strings (HH:MM:SS, hours may exceed 24) and may be empty.
type StopTime struct {
	TripID        string `json:"tripId"`
	StopID        string `json:"stopId"`
	Sequence      int    `json:"sequence"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
}
