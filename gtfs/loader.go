package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/vehicle-prediction/geo"
)

// NewIndexFromBytes builds an index from raw GTFS zip bytes.
func NewIndexFromBytes(data []byte) (*Index, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	g := newIndex()
	ld := &loader{idx: g}
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch name {
		case "stops.txt", "trips.txt", "stop_times.txt", "shapes.txt":
			if err := ld.consumeCSV(f); err != nil {
				return nil, fmt.Errorf("parse %s: %w", f.Name, err)
			}
		}
	}
	ld.finalize()
	return g, nil
}

// NewIndexFromFile builds an index from a local GTFS zip.
func NewIndexFromFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewIndexFromBytes(data)
}

// NewIndexFromURL downloads a GTFS zip and builds an index from it.
func NewIndexFromURL(url string) (*Index, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch gtfs static: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch gtfs static: HTTP %d from %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return NewIndexFromBytes(data)
}

type shapePoint struct {
	seq   int
	coord geo.Coordinate
}

// loader accumulates raw rows until finalize assembles the index.
type loader struct {
	idx         *Index
	shapePoints map[string][]shapePoint // shape_id -> raw points
}

func (ld *loader) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	switch strings.ToLower(f.Name) {
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		if sID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			lat, _ := strconv.ParseFloat(field(row, sLat), 64)
			lon, _ := strconv.ParseFloat(field(row, sLon), 64)
			ld.idx.stopIdx[field(row, sID)] = len(ld.idx.stops)
			ld.idx.stops = append(ld.idx.stops, Stop{
				ID:       field(row, sID),
				Name:     field(row, sN),
				Position: geo.Coordinate{Latitude: lat, Longitude: lon},
			})
		}
	case "trips.txt":
		tID := idx("trip_id")
		rID := idx("route_id")
		sh := idx("shape_id")
		if tID < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			trip := field(row, tID)
			if r := field(row, rID); r != "" {
				ld.idx.tripRoute[trip] = r
			}
			if s := field(row, sh); s != "" {
				ld.idx.tripShapeID[trip] = s
			}
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		arr := idx("arrival_time")
		dep := idx("departure_time")
		if tID < 0 || sID < 0 || sq < 0 {
			return nil
		}
		for _, row := range rec[1:] {
			seq, err := strconv.Atoi(field(row, sq))
			if err != nil {
				continue
			}
			trip := field(row, tID)
			ld.idx.tripStopTimes[trip] = append(ld.idx.tripStopTimes[trip], StopTime{
				TripID:        trip,
				StopID:        field(row, sID),
				Sequence:      seq,
				ArrivalTime:   field(row, arr),
				DepartureTime: field(row, dep),
			})
		}
	case "shapes.txt":
		shID := idx("shape_id")
		pLat := idx("shape_pt_lat")
		pLon := idx("shape_pt_lon")
		pSeq := idx("shape_pt_sequence")
		if shID < 0 || pLat < 0 || pLon < 0 || pSeq < 0 {
			return nil
		}
		if ld.shapePoints == nil {
			ld.shapePoints = map[string][]shapePoint{}
		}
		for _, row := range rec[1:] {
			lat, err1 := strconv.ParseFloat(field(row, pLat), 64)
			lon, err2 := strconv.ParseFloat(field(row, pLon), 64)
			seq, err3 := strconv.Atoi(field(row, pSeq))
			if err1 != nil || err2 != nil || err3 != nil {
				continue
			}
			id := field(row, shID)
			ld.shapePoints[id] = append(ld.shapePoints[id], shapePoint{
				seq:   seq,
				coord: geo.Coordinate{Latitude: lat, Longitude: lon},
			})
		}
	}
	return nil
}

// finalize orders raw rows, builds shapes and resolves stop-route
// associations.
func (ld *loader) finalize() {
	g := ld.idx

	for shapeID, pts := range ld.shapePoints {
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].seq < pts[j].seq })
		coords := make([]geo.Coordinate, len(pts))
		for i, p := range pts {
			coords[i] = p.coord
		}
		if shape := geo.NewShape(coords); shape != nil {
			g.shapes[shapeID] = shape
		}
	}

	stopRoutes := map[string]map[string]struct{}{}
	for trip, sts := range g.tripStopTimes {
		sort.SliceStable(sts, func(i, j int) bool { return sts[i].Sequence < sts[j].Sequence })
		g.tripStopTimes[trip] = sts
		routeID := g.tripRoute[trip]
		if routeID == "" {
			continue
		}
		for _, st := range sts {
			set, ok := stopRoutes[st.StopID]
			if !ok {
				set = map[string]struct{}{}
				stopRoutes[st.StopID] = set
			}
			set[routeID] = struct{}{}
		}
	}
	for stopID, set := range stopRoutes {
		i, ok := g.stopIdx[stopID]
		if !ok {
			continue
		}
		routes := make([]string, 0, len(set))
		for r := range set {
			routes = append(routes, r)
		}
		sort.Strings(routes)
		g.stops[i].RouteIDs = routes
	}
}
