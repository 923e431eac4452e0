package vehicleprediction

import "net/http"

type healthStatus struct {
	Status        string `json:"status"`
	Stops         int    `json:"stops"`
	Vehicles      int    `json:"vehicles"`
	FeedTimestamp int64  `json:"feedTimestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	vehicles, ts := s.feed.Vehicles()
	writeJSON(w, healthStatus{
		Status:        "ok",
		Stops:         len(s.index.Stops()),
		Vehicles:      len(vehicles),
		FeedTimestamp: ts,
	})
}
