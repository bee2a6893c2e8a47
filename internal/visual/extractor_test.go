package visual

import (
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/keagan/clipsight/internal/signal"
)

func testExtractor(cfg Config) *Extractor {
	return NewExtractor(zerolog.New(io.Discard), cfg)
}

func TestExtract_EmptyInputDegrades(t *testing.T) {
	e := testExtractor(DefaultConfig())
	if events := e.Extract(nil); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestExtract_CategoriesAndCaps(t *testing.T) {
	e := testExtractor(DefaultConfig())
	frames := []Frame{
		{Timestamp: 3, Description: "A person running and jumping over a fence while the crowd is cheering"},
		{Timestamp: 9, Description: "A quiet empty room"},
	}
	events := e.Extract(frames)

	byKind := map[signal.Kind][]signal.Event{}
	for _, ev := range events {
		if ev.Source != signal.SourceVisual {
			t.Fatalf("wrong source %v", ev.Source)
		}
		byKind[ev.Kind] = append(byKind[ev.Kind], ev)
	}

	// "running", "jumping" → action 0.2×2 capped at 0.3
	actions := byKind[signal.Action]
	if len(actions) != 1 {
		t.Fatalf("expected 1 action event, got %d", len(actions))
	}
	if actions[0].Score != 0.3 {
		t.Errorf("action score = %v, want cap 0.3", actions[0].Score)
	}
	if actions[0].Timestamp != 3 {
		t.Errorf("action event at %v, want 3", actions[0].Timestamp)
	}

	// "cheering" → emotion 0.2×1 under the 0.25 cap
	emotions := byKind[signal.Emotion]
	if len(emotions) != 1 {
		t.Fatalf("expected 1 emotion event, got %d", len(emotions))
	}
	if emotions[0].Score != 0.2 {
		t.Errorf("emotion score = %v, want 0.2", emotions[0].Score)
	}

	// "crowd" → salience
	if len(byKind[signal.Salience]) != 1 {
		t.Fatalf("expected 1 salience event, got %d", len(byKind[signal.Salience]))
	}

	// The quiet frame matches nothing.
	for _, ev := range events {
		if ev.Timestamp == 9 {
			t.Fatalf("quiet frame produced %s event", ev.Kind)
		}
	}
}

func TestExtract_CapsAreTunable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ActionCap = 0.9
	e := testExtractor(cfg)

	frames := []Frame{{Timestamp: 0, Description: "running jumping falling throwing catching racing"}}
	for _, ev := range e.Extract(frames) {
		if ev.Kind != signal.Action {
			continue
		}
		// 6 matches × 0.2 = 1.2, capped by the raised tunable.
		if ev.Score != 0.9 {
			t.Fatalf("action score = %v, want raised cap 0.9", ev.Score)
		}
		return
	}
	t.Fatal("no action event emitted")
}

func TestExtract_PayloadListsKeywords(t *testing.T) {
	e := testExtractor(DefaultConfig())
	frames := []Frame{{Timestamp: 1, Description: "bright neon sign glowing in the dark"}}
	events := e.Extract(frames)

	var contrast, text bool
	for _, ev := range events {
		switch ev.Kind {
		case signal.Contrast:
			contrast = true
			if ev.Payload["keywords"] == "" {
				t.Error("contrast payload missing keywords")
			}
			if ev.Score != 0.1 {
				t.Errorf("contrast score = %v, want cap 0.1", ev.Score)
			}
		case signal.OnScreenText:
			text = true
		}
	}
	if !contrast {
		t.Error("expected a contrast event")
	}
	if !text {
		t.Error("expected an on-screen text event for the sign")
	}
}

func TestExtract_ScoresBounded(t *testing.T) {
	e := testExtractor(DefaultConfig())
	frames := []Frame{{
		Timestamp: 0,
		Description: "running jumping falling smiling laughing crying unusual strange " +
			"dramatic text caption sign bright dark colorful fire explosion chaos",
	}}
	for _, ev := range e.Extract(frames) {
		if ev.Score <= 0 || ev.Score > 1 {
			t.Fatalf("%s score %v outside (0,1]", ev.Kind, ev.Score)
		}
	}
}
