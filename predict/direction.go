package predict

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfs"
)

// AnalyzeDirection classifies whether v is arriving at or departing from
// station, from the trip's scheduled stop sequence. It never panics: every
// validation failure degrades to unknown with low confidence.
//
// stops is optional context used only to resolve names in the returned
// stop-sequence annotation.
func (e *Engine) AnalyzeDirection(v Vehicle, station gtfs.Stop, stopTimes []gtfs.StopTime, stops []gtfs.Stop, now int64) DirectionResult {
	unknown := DirectionResult{Direction: DirectionUnknown, Confidence: ConfidenceLow}
	if v.TripID == "" || station.ID == "" || stopTimes == nil {
		return unknown
	}
	seq := tripSequence(v.TripID, stopTimes)
	if len(seq) == 0 {
		return unknown
	}

	targetIdx := -1
	for i, st := range seq {
		if st.StopID == station.ID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return unknown
	}

	currentIdx, scheduleUsed := e.estimateCurrentIndex(seq, targetIdx, now)

	ageMin := float64(now-v.Timestamp) / 60
	if v.Timestamp <= 0 || ageMin < 0 {
		ageMin = 0
	}

	var res DirectionResult
	switch {
	case currentIdx < targetIdx:
		res.Direction = DirectionArriving
		minutes := float64(targetIdx-currentIdx)*e.cfg.MinutesPerStop - ageMin
		if minutes < 1 {
			minutes = 1
		}
		res.EstimatedMinutes = int(math.Round(minutes))
	case currentIdx > targetIdx:
		res.Direction = DirectionDeparting
		res.EstimatedMinutes = int(math.Round(float64(currentIdx-targetIdx) * e.cfg.MinutesPerStop))
	default:
		res.Direction = DirectionArriving
		res.EstimatedMinutes = 0
	}

	stopsFromTarget := targetIdx - currentIdx
	if stopsFromTarget < 0 {
		stopsFromTarget = -stopsFromTarget
	}
	switch {
	case scheduleUsed && stopsFromTarget <= e.cfg.HighConfidenceStopWindow:
		res.Confidence = ConfidenceHigh
	case scheduleUsed:
		res.Confidence = ConfidenceMedium
	default:
		res.Confidence = ConfidenceLow
	}

	res.StopSequence = annotateSequence(seq, stops, currentIdx)
	return res
}

// estimateCurrentIndex places the vehicle within the trip's stop sequence.
// With a scheduled arrival at the target it walks backward or forward from
// the target at the configured stops-per-minute rate; without schedule data
// it assumes the sequence midpoint.
func (e *Engine) estimateCurrentIndex(seq []gtfs.StopTime, targetIdx int, now int64) (int, bool) {
	arr := seq[targetIdx].ArrivalTime
	if arr != "" {
		if arrEpoch, ok := epochForTimeOfDay(arr, now); ok && e.cfg.MinutesPerStop > 0 {
			diffMin := float64(arrEpoch-now) / 60
			var idx int
			switch {
			case diffMin > 0:
				// Arrival still ahead: push the estimate back from the target.
				idx = targetIdx - int(diffMin/e.cfg.MinutesPerStop)
			case diffMin >= -e.cfg.NearTermPastMin:
				// Recently due: treat the vehicle as at the target.
				idx = targetIdx
			default:
				// Long past due: the vehicle has moved on.
				idx = targetIdx + int((-diffMin-e.cfg.NearTermPastMin)/e.cfg.MinutesPerStop) + 1
			}
			if idx < 0 {
				idx = 0
			}
			if idx > len(seq)-1 {
				idx = len(seq) - 1
			}
			return idx, true
		}
	}
	return len(seq) / 2, false
}

// tripSequence filters stopTimes to the trip and sorts them by sequence.
func tripSequence(tripID string, stopTimes []gtfs.StopTime) []gtfs.StopTime {
	var seq []gtfs.StopTime
	for _, st := range stopTimes {
		if st.TripID != tripID || st.Sequence < 0 {
			continue
		}
		seq = append(seq, st)
	}
	return sortedBySequence(seq)
}

func annotateSequence(seq []gtfs.StopTime, stops []gtfs.Stop, currentIdx int) []StopAnnotation {
	names := make(map[string]string, len(stops))
	for _, s := range stops {
		names[s.ID] = s.Name
	}
	out := make([]StopAnnotation, 0, len(seq))
	for i, st := range seq {
		out = append(out, StopAnnotation{
			StopID:           st.StopID,
			Name:             names[st.StopID],
			Sequence:         st.Sequence,
			IsCurrent:        i == currentIdx,
			IsDestination:    i == len(seq)-1,
			EstimatedArrival: st.ArrivalTime,
		})
	}
	return out
}

// epochForTimeOfDay anchors a GTFS HH:MM:SS time-of-day (hours may exceed
// 24) to the UTC day containing now. Parse failures report ok=false.
func epochForTimeOfDay(hms string, now int64) (int64, bool) {
	parts := strings.Split(hms, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	if h < 0 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, false
	}
	day := time.Unix(now, 0).UTC().Truncate(24 * time.Hour)
	return day.Unix() + int64(h*3600+m*60+s), true
}
