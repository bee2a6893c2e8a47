package scenes

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/keagan/clipsight/internal/signal"
)

func TestSegment_NoChangePoints(t *testing.T) {
	out, err := Segment(nil, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected single scene, got %d", len(out))
	}
	if out[0].Start != 0 || out[0].End != 120 {
		t.Fatalf("expected [0,120], got [%v,%v]", out[0].Start, out[0].End)
	}
}

func TestSegment_PartitionInvariant(t *testing.T) {
	changes := []ChangePoint{
		{Timestamp: 15, Score: 0.6},
		{Timestamp: 40, Score: 0.3},
		{Timestamp: 55.5, Score: 0.9},
	}
	out, err := Segment(changes, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPartition(t, out, 70)
	if len(out) != 4 {
		t.Fatalf("expected 4 scenes, got %d", len(out))
	}
	if out[0].ChangeScore != 0 {
		t.Errorf("first scene change score should be 0, got %v", out[0].ChangeScore)
	}
	if out[1].ChangeScore != 0.6 {
		t.Errorf("second scene should carry leading boundary score 0.6, got %v", out[1].ChangeScore)
	}
	for i, sc := range out {
		if sc.ID != uint32(i) {
			t.Errorf("scene %d has id %d", i, sc.ID)
		}
	}
}

func TestSegment_PartitionInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		duration := 10 + rng.Float64()*590
		n := rng.Intn(30)
		changes := make([]ChangePoint, n)
		for i := range changes {
			changes[i] = ChangePoint{
				Timestamp: rng.Float64() * duration,
				Score:     rng.Float64() * 2,
			}
		}
		sort.Slice(changes, func(i, j int) bool { return changes[i].Timestamp < changes[j].Timestamp })

		out, err := Segment(changes, duration)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		assertPartition(t, out, duration)
	}
}

func TestSegment_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		changes  []ChangePoint
		duration float64
	}{
		{"zero duration", nil, 0},
		{"negative duration", nil, -5},
		{"change point past end", []ChangePoint{{Timestamp: 80}}, 70},
		{"negative change point", []ChangePoint{{Timestamp: -1}}, 70},
		{"out of order", []ChangePoint{{Timestamp: 40}, {Timestamp: 15}}, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Segment(tt.changes, tt.duration)
			if !errors.Is(err, signal.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSegment_BoundaryAtZeroAndEnd(t *testing.T) {
	out, err := Segment([]ChangePoint{{Timestamp: 0, Score: 0.5}, {Timestamp: 70, Score: 0.2}}, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPartition(t, out, 70)
	// The t=0 boundary folds into the first scene's change score.
	if out[0].ChangeScore != 0.5 {
		t.Errorf("expected folded change score 0.5, got %v", out[0].ChangeScore)
	}
}

func TestMergeShort(t *testing.T) {
	in := []Scene{
		{ID: 0, Start: 0, End: 20, ChangeScore: 0.1},
		{ID: 1, Start: 20, End: 21, ChangeScore: 0.9},
		{ID: 2, Start: 21, End: 50, ChangeScore: 0.4},
	}
	out := MergeShort(in, 3)
	if len(out) != 2 {
		t.Fatalf("expected 2 scenes after merge, got %d", len(out))
	}
	assertPartition(t, out, 50)
	if out[0].ChangeScore != 0.9 {
		t.Errorf("merge should keep the stronger change score, got %v", out[0].ChangeScore)
	}
}

func assertPartition(t *testing.T, out []Scene, duration float64) {
	t.Helper()
	if len(out) == 0 {
		t.Fatal("empty partition")
	}
	if out[0].Start != 0 {
		t.Fatalf("partition does not start at 0: %v", out[0].Start)
	}
	if math.Abs(out[len(out)-1].End-duration) > 1e-9 {
		t.Fatalf("partition does not end at %v: %v", duration, out[len(out)-1].End)
	}
	for i := 0; i < len(out)-1; i++ {
		if out[i].End != out[i+1].Start {
			t.Fatalf("gap or overlap between scene %d and %d: %v vs %v",
				i, i+1, out[i].End, out[i+1].Start)
		}
	}
	for i, sc := range out {
		if sc.End <= sc.Start {
			t.Fatalf("scene %d has non-positive span [%v,%v]", i, sc.Start, sc.End)
		}
	}
}
