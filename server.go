// Package vehicleprediction wires the GTFS static index, the realtime
// vehicle feed and the prediction engine into an HTTP service.
package vehicleprediction

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/vehicle-prediction/config"
	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfs"
	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfsrt"
	"github.com/theoremus-urban-solutions/vehicle-prediction/metrics"
	"github.com/theoremus-urban-solutions/vehicle-prediction/predict"
)

// Server serves enhanced vehicle positions and direction analyses over
// HTTP, refreshing the realtime feed in the background.
type Server struct {
	cfg    config.AppConfig
	index  *gtfs.Index
	feed   *gtfsrt.Feed
	engine *predict.Engine
	col    *metrics.Collector

	httpServer *http.Server
}

// NewServer assembles a server from loaded configuration and data sources.
func NewServer(cfg config.AppConfig, index *gtfs.Index, feed *gtfsrt.Feed) *Server {
	return &Server{
		cfg:    cfg,
		index:  index,
		feed:   feed,
		engine: predict.New(cfg.Prediction.EngineConfig()),
		col:    metrics.NewCollector(),
	}
}

// Run starts the refresh loop and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/vehicles.json", s.handleVehicles)
	mux.HandleFunc("/api/direction.json", s.handleDirection)
	mux.Handle("/metrics", s.col.Handler())

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.refreshLoop(ctx)
	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shCtx)
	}()

	log.Printf("listening on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) refreshLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.GTFSRT.ReadIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := s.feed.Refresh(); err != nil {
			log.Printf("feed refresh: %v", err)
			s.col.FeedRefreshErrs.Inc()
		} else {
			_, ts := s.feed.Vehicles()
			s.col.FeedTimestamp.Set(float64(ts))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// enhanceSnapshot runs the engine over the latest feed batch.
func (s *Server) enhanceSnapshot(now int64) ([]predict.EnhancedVehicle, int64) {
	vehicles, ts := s.feed.Vehicles()
	start := time.Now()
	enhanced := s.engine.Enhance(vehicles, s.index.TripShapes(), s.index.TripStopTimes(), s.index.Stops(), now)
	s.col.ObserveBatch(enhanced, time.Since(start))
	return enhanced, ts
}
