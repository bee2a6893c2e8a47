// Package report assembles the serializable run summary handed to the
// downstream clip-generation stage. The engine never writes files itself;
// callers decide where the JSON goes.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/keagan/clipsight/internal/ranker"
	"github.com/keagan/clipsight/pkg/util"
)

// Report is the final output of a detection run.
type Report struct {
	RunID         string    `json:"run_id"`
	VideoName     string    `json:"video_name"`
	GeneratedAt   time.Time `json:"generated_at"`
	NumHighlights int       `json:"num_highlights"`
	Highlights    []Entry   `json:"highlights"`
}

// Entry is one selected highlight with presentation fields.
type Entry struct {
	Rank          int                `json:"rank"`
	SceneID       uint32             `json:"scene_id"`
	Start         float64            `json:"start"`
	End           float64            `json:"end"`
	Duration      float64            `json:"duration"`
	StartTimecode string             `json:"start_timecode"`
	EndTimecode   string             `json:"end_timecode"`
	Score         float64            `json:"score"`
	Signals       map[string]float64 `json:"signals"`
	Strengths     []string           `json:"strengths,omitempty"`
}

// Build creates a report from selected highlights, preserving their order.
func Build(videoName string, selected []ranker.Highlight) *Report {
	entries := make([]Entry, len(selected))
	for i, h := range selected {
		signals := make(map[string]float64, len(h.SignalScores))
		for src, score := range h.SignalScores {
			signals[src.String()] = score
		}
		entries[i] = Entry{
			Rank:          i + 1,
			SceneID:       h.SceneID,
			Start:         h.Start,
			End:           h.End,
			Duration:      h.Duration,
			StartTimecode: util.FormatSeconds(h.Start),
			EndTimecode:   util.FormatSeconds(h.End),
			Score:         h.CompositeScore,
			Signals:       signals,
			Strengths:     h.Strengths,
		}
	}
	return &Report{
		RunID:         uuid.NewString(),
		VideoName:     videoName,
		GeneratedAt:   time.Now().UTC(),
		NumHighlights: len(entries),
		Highlights:    entries,
	}
}

// JSON renders the report with indentation for human inspection.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
