package vehicleprediction

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/vehicle-prediction/predict"
)

// VehiclesResponse is the envelope served to map clients.
type VehiclesResponse struct {
	ResponseTimestamp string                    `json:"responseTimestamp"`
	FeedTimestamp     int64                     `json:"feedTimestamp"`
	Vehicles          []predict.EnhancedVehicle `json:"vehicles"`
}

func (s *Server) handleVehicles(w http.ResponseWriter, _ *http.Request) {
	enhanced, ts := s.enhanceSnapshot(time.Now().Unix())
	writeJSON(w, VehiclesResponse{
		ResponseTimestamp: time.Now().UTC().Format(time.RFC3339),
		FeedTimestamp:     ts,
		Vehicles:          enhanced,
	})
}

func (s *Server) handleDirection(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.URL.Query().Get("vehicleId")
	stationID := r.URL.Query().Get("stationId")
	if vehicleID == "" || stationID == "" {
		http.Error(w, "vehicleId and stationId are required", http.StatusBadRequest)
		return
	}

	vehicles, _ := s.feed.Vehicles()
	var vehicle *predict.Vehicle
	for i := range vehicles {
		if vehicles[i].ID == vehicleID {
			vehicle = &vehicles[i]
			break
		}
	}
	if vehicle == nil {
		http.Error(w, "unknown vehicle", http.StatusNotFound)
		return
	}
	station, ok := s.index.StopByID(stationID)
	if !ok {
		http.Error(w, "unknown station", http.StatusNotFound)
		return
	}

	res := s.engine.AnalyzeDirection(*vehicle, station,
		s.index.StopTimesForTrip(vehicle.TripID), s.index.Stops(), time.Now().Unix())
	writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
