package scenes

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDurationFit(t *testing.T) {
	cfg := DefaultScorerConfig() // min 3, max 90
	tests := []struct {
		name string
		d    float64
		want float64
	}{
		{"below minimum", 2, 0},
		{"at minimum", 3, 0},
		{"mid ramp", 6.5, 0.5},
		{"ideal low", 10, 1},
		{"ideal high", 30, 1},
		{"decay midpoint", 60, 1 - 0.7*0.5},
		{"at maximum", 90, 0.3},
		{"beyond maximum", 200, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := durationFit(tt.d, cfg)
			if !almostEqual(got, tt.want) {
				t.Fatalf("durationFit(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestScoreScenes_MissingInputsNotRenormalized(t *testing.T) {
	cfg := DefaultScorerConfig()
	sc := []Scene{{ID: 0, Start: 0, End: 20, ChangeScore: 1.0}}

	// Without optional inputs only duration (0.3) and intensity (0.2)
	// contribute; the remaining weights must not be redistributed.
	out := ScoreScenes(sc, cfg, ScoreInputs{})
	want := 0.3*1.0 + 0.2*1.0
	if !almostEqual(out[0].HighlightScore, want) {
		t.Fatalf("partial score = %v, want %v", out[0].HighlightScore, want)
	}

	// Input slice must not be mutated.
	if sc[0].HighlightScore != 0 {
		t.Fatal("input scene was mutated")
	}
}

func TestScoreScenes_WithAllInputs(t *testing.T) {
	cfg := DefaultScorerConfig()
	sc := []Scene{{ID: 0, Start: 0, End: 20, ChangeScore: 1.0}}

	// 20 peaks over 20s = 1.0/s, inside the ideal band.
	peaks := make([]float64, 20)
	for i := range peaks {
		peaks[i] = float64(i)
	}
	// 16s of speech over 20s = 0.8 coverage, inside the ideal band.
	spans := []SpeechSpan{{Start: 2, End: 18}}

	out := ScoreScenes(sc, cfg, ScoreInputs{AudioPeaks: peaks, SpeechSpans: spans})
	want := 0.3 + 0.2 + 0.3 + 0.2
	if !almostEqual(out[0].HighlightScore, want) {
		t.Fatalf("full score = %v, want %v", out[0].HighlightScore, want)
	}
}

func TestScoreScenes_DensityBands(t *testing.T) {
	cfg := DefaultScorerConfig()
	sc := Scene{Start: 0, End: 10}

	tests := []struct {
		name  string
		peaks []float64
		want  float64
	}{
		{"ideal band", []float64{1, 3, 5, 7, 9}, 1},                             // 0.5/s
		{"too dense", manyPeaks(20, 10), 0.8},                                   // 2/s
		{"sparse ramps linearly", []float64{5}, (1.0 / 10.0) / 0.5},             // 0.1/s
		{"empty but supplied", []float64{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := peakDensityScore(sc, tt.peaks, cfg)
			if !almostEqual(got, tt.want) {
				t.Fatalf("peakDensityScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreScenes_SpeechBands(t *testing.T) {
	cfg := DefaultScorerConfig()
	sc := Scene{Start: 0, End: 10}

	tests := []struct {
		name  string
		spans []SpeechSpan
		want  float64
	}{
		{"ideal coverage", []SpeechSpan{{0, 8}}, 1},
		{"wall to wall", []SpeechSpan{{0, 10}}, 0.9},
		{"thin ramps linearly", []SpeechSpan{{0, 3.5}}, 0.35 / 0.7},
		{"span clipped to scene", []SpeechSpan{{-5, 8}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := speechScore(sc, tt.spans, cfg)
			if !almostEqual(got, tt.want) {
				t.Fatalf("speechScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreScenes_Bounds(t *testing.T) {
	cfg := DefaultScorerConfig()
	in := []Scene{
		{Start: 0, End: 15, ChangeScore: 99},
		{Start: 15, End: 15.5, ChangeScore: 0},
		{Start: 15.5, End: 400, ChangeScore: 0.2},
	}
	peaks := manyPeaks(500, 400)
	spans := []SpeechSpan{{0, 400}}
	out := ScoreScenes(in, cfg, ScoreInputs{AudioPeaks: peaks, SpeechSpans: spans})
	for i, sc := range out {
		if sc.HighlightScore < 0 || sc.HighlightScore > 1 {
			t.Fatalf("scene %d score %v outside [0,1]", i, sc.HighlightScore)
		}
	}
}

func manyPeaks(n int, span float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = span * float64(i) / float64(n)
	}
	return out
}
