package scenes

// ScorerConfig holds every tunable the scene scorer uses. Weights are
// deliberately not renormalized when an optional input is missing: a scene
// can only reach the top of the range when audio peaks and speech coverage
// are both available and good, which is the intended bias.
type ScorerConfig struct {
	DurationWeight     float64 `yaml:"duration_weight"`
	IntensityWeight    float64 `yaml:"intensity_weight"`
	AudioDensityWeight float64 `yaml:"audio_density_weight"`
	SpeechWeight       float64 `yaml:"speech_weight"`

	MinSceneDuration float64 `yaml:"min_scene_duration"`
	MaxSceneDuration float64 `yaml:"max_scene_duration"`

	// Change scores at or above IntensityNorm count as maximal.
	IntensityNorm float64 `yaml:"intensity_norm"`

	// Ideal audio peaks-per-second band.
	PeakDensityLow  float64 `yaml:"peak_density_low"`
	PeakDensityHigh float64 `yaml:"peak_density_high"`

	// Ideal fraction of the scene covered by speech.
	SpeechCoverLow  float64 `yaml:"speech_cover_low"`
	SpeechCoverHigh float64 `yaml:"speech_cover_high"`
}

// DefaultScorerConfig mirrors the tuning the detector shipped with.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		DurationWeight:     0.3,
		IntensityWeight:    0.2,
		AudioDensityWeight: 0.3,
		SpeechWeight:       0.2,
		MinSceneDuration:   3,
		MaxSceneDuration:   90,
		IntensityNorm:      0.5,
		PeakDensityLow:     0.5,
		PeakDensityHigh:    1.5,
		SpeechCoverLow:     0.7,
		SpeechCoverHigh:    0.9,
	}
}

// SpeechSpan is a [start,end] interval covered by speech, derived from
// transcript segments by the caller.
type SpeechSpan struct {
	Start float64
	End   float64
}

// ScoreInputs carries the optional per-video context for scoring. A nil
// slice means the signal was not supplied and its weighted term is omitted.
type ScoreInputs struct {
	AudioPeaks  []float64
	SpeechSpans []SpeechSpan
}

// ScoreScenes assigns a base highlight score to each scene and returns a new
// slice; the input is not mutated. The score is a weighted sum of duration
// fit, scene-change intensity, audio-peak density, and speech coverage,
// capped at 1.0. Missing optional inputs drop their term without
// renormalizing the remaining weights.
func ScoreScenes(in []Scene, cfg ScorerConfig, inputs ScoreInputs) []Scene {
	out := make([]Scene, len(in))
	for i, sc := range in {
		total := cfg.DurationWeight*durationFit(sc.Duration(), cfg) +
			cfg.IntensityWeight*intensityScore(sc.ChangeScore, cfg)
		if inputs.AudioPeaks != nil {
			total += cfg.AudioDensityWeight * peakDensityScore(sc, inputs.AudioPeaks, cfg)
		}
		if inputs.SpeechSpans != nil {
			total += cfg.SpeechWeight * speechScore(sc, inputs.SpeechSpans, cfg)
		}
		if total > 1 {
			total = 1
		}
		sc.HighlightScore = total
		out[i] = sc
	}
	return out
}

// durationFit rewards clip-sized scenes: zero below the minimum, a linear
// ramp up to 10s, flat 1.0 through 30s, then a decay to 0.3 at the maximum.
func durationFit(d float64, cfg ScorerConfig) float64 {
	const idealLow, idealHigh = 10.0, 30.0
	switch {
	case d < cfg.MinSceneDuration:
		return 0
	case d < idealLow:
		span := idealLow - cfg.MinSceneDuration
		if span <= 0 {
			return 1
		}
		return (d - cfg.MinSceneDuration) / span
	case d <= idealHigh:
		return 1
	case d <= cfg.MaxSceneDuration:
		span := cfg.MaxSceneDuration - idealHigh
		if span <= 0 {
			return 0.3
		}
		return 1 - 0.7*(d-idealHigh)/span
	default:
		return 0.3
	}
}

func intensityScore(change float64, cfg ScorerConfig) float64 {
	if cfg.IntensityNorm <= 0 {
		return 0
	}
	s := change / cfg.IntensityNorm
	if s > 1 {
		return 1
	}
	if s < 0 {
		return 0
	}
	return s
}

func peakDensityScore(sc Scene, peaks []float64, cfg ScorerConfig) float64 {
	d := sc.Duration()
	if d <= 0 {
		return 0
	}
	n := 0
	for _, p := range peaks {
		if p >= sc.Start && p <= sc.End {
			n++
		}
	}
	density := float64(n) / d
	switch {
	case density >= cfg.PeakDensityLow && density <= cfg.PeakDensityHigh:
		return 1
	case density > cfg.PeakDensityHigh:
		return 0.8
	case cfg.PeakDensityLow > 0:
		return density / cfg.PeakDensityLow
	default:
		return 0
	}
}

func speechScore(sc Scene, spans []SpeechSpan, cfg ScorerConfig) float64 {
	d := sc.Duration()
	if d <= 0 {
		return 0
	}
	covered := 0.0
	for _, sp := range spans {
		lo := sp.Start
		if lo < sc.Start {
			lo = sc.Start
		}
		hi := sp.End
		if hi > sc.End {
			hi = sc.End
		}
		if hi > lo {
			covered += hi - lo
		}
	}
	cover := covered / d
	if cover > 1 {
		cover = 1
	}
	switch {
	case cover >= cfg.SpeechCoverLow && cover <= cfg.SpeechCoverHigh:
		return 1
	case cover > cfg.SpeechCoverHigh:
		return 0.9
	case cfg.SpeechCoverLow > 0:
		return cover / cfg.SpeechCoverLow
	default:
		return 0
	}
}
