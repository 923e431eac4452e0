package gtfsrt

import (
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/vehicle-prediction/predict"
)

// Feed fetches a VehiclePositions URL and caches the latest decoded batch.
type Feed struct {
	url    string
	client *Client

	mu        sync.RWMutex
	vehicles  []predict.Vehicle
	timestamp int64
}

// NewFeed creates a feed for the given VehiclePositions URL.
func NewFeed(url string, timeout time.Duration) *Feed {
	return &Feed{url: url, client: NewClient(timeout)}
}

// Refresh fetches and decodes the feed, replacing the cached batch. An
// empty URL is a no-op.
func (f *Feed) Refresh() error {
	data, err := f.client.Fetch(f.url)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	vehicles, ts, err := ParseVehicles(data)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.vehicles = vehicles
	f.timestamp = ts
	f.mu.Unlock()
	return nil
}

// Vehicles returns a copy of the latest batch and its feed timestamp.
func (f *Feed) Vehicles() ([]predict.Vehicle, int64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]predict.Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out, f.timestamp
}
