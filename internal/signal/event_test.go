package signal

import "testing"

func TestKindSourceMapping(t *testing.T) {
	tests := []struct {
		kind Kind
		want Source
	}{
		{VolumeSpike, SourceAudio},
		{EnergyPeak, SourceAudio},
		{TempoChange, SourceAudio},
		{Hook, SourceTranscript},
		{Question, SourceTranscript},
		{Punchline, SourceTranscript},
		{Emphasis, SourceTranscript},
		{StoryBeat, SourceTranscript},
		{KeyPhrase, SourceTranscript},
		{Salience, SourceVisual},
		{OnScreenText, SourceVisual},
		{Emotion, SourceVisual},
		{Action, SourceVisual},
		{Contrast, SourceVisual},
	}
	for _, tt := range tests {
		if got := tt.kind.Source(); got != tt.want {
			t.Errorf("%s.Source() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKindTextRoundTrip(t *testing.T) {
	for kind, name := range kindNames {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if back != kind {
			t.Errorf("round trip %s: got %s", name, back)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("no_such_kind")); err == nil {
		t.Error("expected error for unknown kind name")
	}
}

func TestSourceTextRoundTrip(t *testing.T) {
	for src, name := range sourceNames {
		text, err := src.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		var back Source
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if back != src {
			t.Errorf("round trip %s: got %s", name, back)
		}
	}
}

func TestDefaultKindWeights_CoverEveryKind(t *testing.T) {
	weights := DefaultKindWeights()
	for kind := range kindNames {
		w, ok := weights[kind]
		if !ok {
			t.Errorf("no default weight for %s", kind)
		}
		if w < 0 || w > 1 {
			t.Errorf("default weight for %s is %v, outside [0,1]", kind, w)
		}
	}
}
