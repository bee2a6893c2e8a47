// Package ranker fuses scene scores with the three signal-event streams into
// composite highlight scores, then selects a non-overlapping top K. This is
// the final stage of the detection engine; its output is handed to the
// external clip-generation layer.
package ranker

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/keagan/clipsight/internal/scenes"
	"github.com/keagan/clipsight/internal/signal"
)

// Weights is the per-source fusion weight table. It must sum to 1 so the
// composite score stays a convex combination in [0,1].
type Weights struct {
	Scene      float64 `yaml:"scene"`
	Audio      float64 `yaml:"audio"`
	Transcript float64 `yaml:"transcript"`
	Visual     float64 `yaml:"visual"`
}

// DefaultWeights returns the production fusion weights.
func DefaultWeights() Weights {
	return Weights{Scene: 0.2, Audio: 0.3, Transcript: 0.3, Visual: 0.2}
}

// Validate checks that the weights form a convex combination.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Scene, w.Audio, w.Transcript, w.Visual} {
		if v < 0 {
			return fmt.Errorf("%w: negative fusion weight %v", signal.ErrInvalidConfig, v)
		}
	}
	sum := w.Scene + w.Audio + w.Transcript + w.Visual
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: fusion weights must sum to 1.0, got %v", signal.ErrInvalidConfig, sum)
	}
	return nil
}

// Config holds ranking and selection tunables.
type Config struct {
	Weights Weights `yaml:"weights"`

	// Per-event-kind contribution weights inside a source score.
	KindWeights map[signal.Kind]float64 `yaml:"kind_weights"`

	// Candidates below MinScore or outside the duration bounds are dropped
	// during ranking.
	MinScore    float64 `yaml:"min_score"`
	MinDuration float64 `yaml:"min_duration"`
	MaxDuration float64 `yaml:"max_duration"`

	// Selection: at most MaxHighlights picks, each at least MinGap seconds
	// away from every other pick.
	MaxHighlights int     `yaml:"max_highlights"`
	MinGap        float64 `yaml:"min_gap"`

	// Substituted for a source whose entire stream was not supplied.
	NeutralScore float64 `yaml:"neutral_score"`
}

// DefaultConfig returns the production ranking configuration.
func DefaultConfig() Config {
	return Config{
		Weights:       DefaultWeights(),
		KindWeights:   signal.DefaultKindWeights(),
		MinScore:      0.4,
		MinDuration:   10,
		MaxDuration:   60,
		MaxHighlights: 5,
		MinGap:        10,
		NeutralScore:  0.5,
	}
}

// Validate fails fast on misconfiguration before any scoring work happens.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.MinDuration > c.MaxDuration {
		return fmt.Errorf("%w: min duration %v exceeds max duration %v",
			signal.ErrInvalidConfig, c.MinDuration, c.MaxDuration)
	}
	if c.NeutralScore < 0 || c.NeutralScore > 1 {
		return fmt.Errorf("%w: neutral score %v outside [0,1]", signal.ErrInvalidConfig, c.NeutralScore)
	}
	for kind, w := range c.KindWeights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %v for event kind %s", signal.ErrInvalidConfig, w, kind)
		}
	}
	return nil
}

// Highlight is a ranked candidate interval for clip extraction. SignalScores
// holds each source's pre-weighting contribution; Strengths are derived
// presentation labels, never used for scoring.
type Highlight struct {
	SceneID        uint32                    `json:"scene_id"`
	Start          float64                   `json:"start"`
	End            float64                   `json:"end"`
	Duration       float64                   `json:"duration"`
	CompositeScore float64                   `json:"composite_score"`
	SignalScores   map[signal.Source]float64 `json:"signal_scores"`
	Strengths      []string                  `json:"strengths,omitempty"`
}

// Ranker fuses and selects highlights.
type Ranker struct {
	logger   zerolog.Logger
	cfg      Config
	selector Selector
}

// New creates a Ranker with the greedy selector. Configuration is validated
// here so a bad weight table fails before any work starts.
func New(logger zerolog.Logger, cfg Config) (*Ranker, error) {
	return NewWithSelector(logger, cfg, GreedySelector{})
}

// NewWithSelector creates a Ranker with an explicit selection strategy.
func NewWithSelector(logger zerolog.Logger, cfg Config, sel Selector) (*Ranker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.KindWeights == nil {
		cfg.KindWeights = signal.DefaultKindWeights()
	}
	return &Ranker{
		logger:   logger.With().Str("component", "ranker").Logger(),
		cfg:      cfg,
		selector: sel,
	}, nil
}

// Rank computes a composite score per scene and returns the candidates that
// clear the minimum score and duration bounds, sorted by composite score
// descending (stable, so input order breaks ties).
//
// A nil event slice means that signal stream was not supplied at all and the
// neutral fallback takes its place in the fusion. A non-nil slice with no
// events inside a given scene contributes 0.0 for that scene: silence in an
// available stream is real information, absence of the stream is not.
func (r *Ranker) Rank(scored []scenes.Scene, audio, transcript, visual []signal.Event) []Highlight {
	if len(scored) == 0 {
		return nil
	}

	// Fixed fusion order keeps float accumulation, and therefore output,
	// bit-identical across runs.
	streams := []struct {
		src    signal.Source
		events []signal.Event
	}{
		{signal.SourceAudio, audio},
		{signal.SourceTranscript, transcript},
		{signal.SourceVisual, visual},
	}

	candidates := make([]Highlight, 0, len(scored))
	skipped := 0
	for _, sc := range scored {
		sigScores := map[signal.Source]float64{
			signal.SourceScene: sc.HighlightScore,
		}
		composite := r.cfg.Weights.Scene * sc.HighlightScore
		for _, st := range streams {
			var score float64
			if st.events == nil {
				score = r.cfg.NeutralScore
			} else {
				score = r.sourceScore(sc, st.events)
			}
			sigScores[st.src] = score
			composite += r.sourceWeight(st.src) * score
		}

		if composite < r.cfg.MinScore {
			skipped++
			continue
		}
		d := sc.Duration()
		if d < r.cfg.MinDuration || d > r.cfg.MaxDuration {
			skipped++
			continue
		}

		candidates = append(candidates, Highlight{
			SceneID:        sc.ID,
			Start:          sc.Start,
			End:            sc.End,
			Duration:       d,
			CompositeScore: composite,
			SignalScores:   sigScores,
			Strengths:      strengths(sigScores),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CompositeScore > candidates[j].CompositeScore
	})

	r.logger.Info().
		Int("scenes", len(scored)).
		Int("candidates", len(candidates)).
		Int("skipped", skipped).
		Msg("ranking complete")
	return candidates
}

// SelectTopK picks up to maxHighlights from the ranked list using the
// configured selection strategy, enforcing minGap seconds between any two
// picks. Non-positive arguments fall back to the configured defaults.
func (r *Ranker) SelectTopK(ranked []Highlight, maxHighlights int, minGap float64) []Highlight {
	if maxHighlights <= 0 {
		maxHighlights = r.cfg.MaxHighlights
	}
	if minGap <= 0 {
		minGap = r.cfg.MinGap
	}
	selected := r.selector.Select(ranked, maxHighlights, minGap)
	r.logger.Info().
		Int("ranked", len(ranked)).
		Int("selected", len(selected)).
		Float64("min_gap", minGap).
		Msg("selection complete")
	return selected
}

// sourceScore sums the kind-weighted scores of events inside the scene,
// capped at 1.0.
func (r *Ranker) sourceScore(sc scenes.Scene, events []signal.Event) float64 {
	total := 0.0
	for _, ev := range events {
		if ev.Timestamp < sc.Start || ev.Timestamp > sc.End {
			continue
		}
		total += r.cfg.KindWeights[ev.Kind] * ev.Score
	}
	if total > 1 {
		return 1
	}
	return total
}

func (r *Ranker) sourceWeight(src signal.Source) float64 {
	switch src {
	case signal.SourceScene:
		return r.cfg.Weights.Scene
	case signal.SourceAudio:
		return r.cfg.Weights.Audio
	case signal.SourceTranscript:
		return r.cfg.Weights.Transcript
	default:
		return r.cfg.Weights.Visual
	}
}

// strengths derives presentation labels from per-source scores.
func strengths(scores map[signal.Source]float64) []string {
	var out []string
	if scores[signal.SourceAudio] >= 0.6 {
		out = append(out, "strong audio energy")
	}
	if scores[signal.SourceTranscript] >= 0.6 {
		out = append(out, "engaging speech")
	}
	if scores[signal.SourceVisual] >= 0.5 {
		out = append(out, "visually dynamic")
	}
	if scores[signal.SourceScene] >= 0.7 {
		out = append(out, "strong scene")
	}
	return out
}
