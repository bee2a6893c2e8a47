package scenes

import (
	"fmt"

	"github.com/keagan/clipsight/internal/signal"
)

// Scene is a contiguous time span of the source video, bounded by detected
// scene changes. ChangeScore is the raw change intensity at the scene's
// leading boundary (0 for the first scene). HighlightScore is zero until the
// scorer runs; scenes are read-only afterward.
type Scene struct {
	ID             uint32  `json:"scene_id"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	ChangeScore    float64 `json:"change_score"`
	HighlightScore float64 `json:"highlight_score"`
}

// Duration returns the scene length in seconds.
func (s Scene) Duration() float64 { return s.End - s.Start }

// ChangePoint is one raw scene-change detection: a timestamp and the change
// intensity reported by the external scene-detection tool.
type ChangePoint struct {
	Timestamp float64 `json:"timestamp"`
	Score     float64 `json:"score"`
}

// Segment partitions [0, duration] into contiguous scenes from an ordered
// change-point list. With no change points the whole video is one scene.
// Otherwise scenes run [0,t0), [t_i,t_i+1), ..., [t_last,duration), each
// carrying the change score of its leading boundary. No merging or smoothing
// happens here; MergeShort is a separate opt-in pass.
func Segment(changes []ChangePoint, duration float64) ([]Scene, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: video duration must be positive, got %v", signal.ErrInvalidInput, duration)
	}
	for i, cp := range changes {
		if cp.Timestamp < 0 || cp.Timestamp > duration {
			return nil, fmt.Errorf("%w: change point %d at %vs outside video bounds [0, %v]",
				signal.ErrInvalidInput, i, cp.Timestamp, duration)
		}
		if i > 0 && cp.Timestamp < changes[i-1].Timestamp {
			return nil, fmt.Errorf("%w: change points out of order at index %d (%v < %v)",
				signal.ErrInvalidInput, i, cp.Timestamp, changes[i-1].Timestamp)
		}
	}

	if len(changes) == 0 {
		return []Scene{{ID: 0, Start: 0, End: duration}}, nil
	}

	out := make([]Scene, 0, len(changes)+1)
	start := 0.0
	score := 0.0
	for _, cp := range changes {
		if cp.Timestamp <= start {
			// Coincident or zero-width boundary: keep the stronger change
			// score for the scene that starts here.
			if cp.Score > score {
				score = cp.Score
			}
			continue
		}
		out = append(out, Scene{
			ID:          uint32(len(out)),
			Start:       start,
			End:         cp.Timestamp,
			ChangeScore: score,
		})
		start = cp.Timestamp
		score = cp.Score
	}
	if start < duration {
		out = append(out, Scene{
			ID:          uint32(len(out)),
			Start:       start,
			End:         duration,
			ChangeScore: score,
		})
	}
	if len(out) == 0 {
		// Every change point sat at t=0; the timeline is still one scene.
		out = append(out, Scene{ID: 0, Start: 0, End: duration, ChangeScore: score})
	}
	return out, nil
}

// MergeShort folds scenes shorter than minDuration into their predecessor,
// keeping the stronger change score. The partition invariant is preserved.
// Off by default; the segmenter itself never merges.
func MergeShort(in []Scene, minDuration float64) []Scene {
	if len(in) == 0 || minDuration <= 0 {
		return in
	}
	out := make([]Scene, 0, len(in))
	for _, sc := range in {
		if len(out) > 0 && sc.Duration() < minDuration {
			prev := &out[len(out)-1]
			prev.End = sc.End
			if sc.ChangeScore > prev.ChangeScore {
				prev.ChangeScore = sc.ChangeScore
			}
			continue
		}
		sc.ID = uint32(len(out))
		out = append(out, sc)
	}
	return out
}
