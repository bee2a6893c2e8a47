package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/keagan/clipsight/internal/signal"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Ranker.MinScore != 0.4 {
		t.Errorf("default min score = %v, want 0.4", cfg.Ranker.MinScore)
	}
	if cfg.Ranker.MaxHighlights != 5 {
		t.Errorf("default max highlights = %v, want 5", cfg.Ranker.MaxHighlights)
	}
	if cfg.Audio.SpikePercentile != 85 {
		t.Errorf("default spike percentile = %v, want 85", cfg.Audio.SpikePercentile)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipsight.yaml")

	cfg := Default()
	cfg.Ranker.MinScore = 0.25
	cfg.Ranker.MinGap = 20
	cfg.Visual.ActionCap = 0.45
	cfg.MergeShortScenes = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Ranker.MinScore != 0.25 {
		t.Errorf("min score = %v, want 0.25", loaded.Ranker.MinScore)
	}
	if loaded.Ranker.MinGap != 20 {
		t.Errorf("min gap = %v, want 20", loaded.Ranker.MinGap)
	}
	if loaded.Visual.ActionCap != 0.45 {
		t.Errorf("action cap = %v, want 0.45", loaded.Visual.ActionCap)
	}
	if !loaded.MergeShortScenes {
		t.Error("merge_short_scenes not preserved")
	}
}

func TestLoad_InvalidWeightsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipsight.yaml")
	bad := "ranker:\n  weights:\n    scene: 0.5\n    audio: 0.5\n    transcript: 0.5\n    visual: 0.5\n"
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, signal.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipsight.yaml")
	if err := os.WriteFile(path, []byte("ranker: [not: a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, signal.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Ranker.MinScore = 0.123

	ctx := WithConfig(context.Background(), cfg)
	if got := FromContext(ctx); got.Ranker.MinScore != 0.123 {
		t.Errorf("config from context lost changes: %v", got.Ranker.MinScore)
	}
	if got := FromContext(context.Background()); got.Ranker.MinScore != 0.4 {
		t.Errorf("empty context should fall back to defaults, got %v", got.Ranker.MinScore)
	}
}
