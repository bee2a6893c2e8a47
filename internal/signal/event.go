package signal

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Engine-wide failure taxonomy. Malformed timing data is ErrInvalidInput and
// aborts the run; bad tuning (weights not summing to 1, inverted bounds) is
// ErrInvalidConfig and is rejected before any scoring work starts. An absent
// or empty signal stream is neither: extractors degrade to empty output.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid config")
)

// Source identifies which analysis modality produced a score.
type Source int

const (
	SourceScene Source = iota
	SourceAudio
	SourceTranscript
	SourceVisual
)

var sourceNames = map[Source]string{
	SourceScene:      "scene",
	SourceAudio:      "audio",
	SourceTranscript: "transcript",
	SourceVisual:     "visual",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// MarshalText lets Source act as a map key in JSON and YAML output.
func (s Source) MarshalText() ([]byte, error) {
	name, ok := sourceNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: unknown signal source %d", ErrInvalidInput, int(s))
	}
	return []byte(name), nil
}

func (s *Source) UnmarshalText(text []byte) error {
	for src, name := range sourceNames {
		if name == string(text) {
			*s = src
			return nil
		}
	}
	return fmt.Errorf("%w: unknown signal source %q", ErrInvalidInput, string(text))
}

// Kind is the concrete occurrence type an extractor reports.
type Kind int

const (
	VolumeSpike Kind = iota
	EnergyPeak
	TempoChange
	Hook
	Question
	Punchline
	Emphasis
	StoryBeat
	KeyPhrase
	Salience
	OnScreenText
	Emotion
	Action
	Contrast
)

var kindNames = map[Kind]string{
	VolumeSpike:  "volume_spike",
	EnergyPeak:   "energy_peak",
	TempoChange:  "tempo_change",
	Hook:         "hook",
	Question:     "question",
	Punchline:    "punchline",
	Emphasis:     "emphasis",
	StoryBeat:    "story_beat",
	KeyPhrase:    "key_phrase",
	Salience:     "salience",
	OnScreenText: "on_screen_text",
	Emotion:      "emotion",
	Action:       "action",
	Contrast:     "contrast",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: unknown event kind %d", ErrInvalidInput, int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: unknown event kind %q", ErrInvalidInput, string(text))
}

// MarshalYAML keeps kind-keyed weight tables readable in config files;
// yaml.v3 does not consult TextMarshaler on its own.
func (k Kind) MarshalYAML() (interface{}, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	return k.UnmarshalText([]byte(value.Value))
}

// Source reports which modality emits this kind.
func (k Kind) Source() Source {
	switch k {
	case VolumeSpike, EnergyPeak, TempoChange:
		return SourceAudio
	case Hook, Question, Punchline, Emphasis, StoryBeat, KeyPhrase:
		return SourceTranscript
	default:
		return SourceVisual
	}
}

// Event is a scored, timestamped occurrence from one signal source. Extractors
// create them in bulk; the ranker consumes them without mutation. Score is
// already normalized to [0,1] by the extractor that produced the event.
// Payload carries extractor-specific detail (matched text, keyword lists) for
// explainability only; nothing downstream scores on it.
type Event struct {
	Timestamp float64           `json:"timestamp"`
	Kind      Kind              `json:"event_type"`
	Score     float64           `json:"score"`
	Source    Source            `json:"source"`
	Payload   map[string]string `json:"payload,omitempty"`
}

// DefaultKindWeights is the per-kind contribution weight used when fusing
// events into a scene's per-source score. Values are tunable through the
// ranker config; these defaults reflect how strongly each occurrence type
// correlates with a clip-worthy moment.
func DefaultKindWeights() map[Kind]float64 {
	return map[Kind]float64{
		VolumeSpike:  0.4,
		EnergyPeak:   0.3,
		TempoChange:  0.3,
		Hook:         0.4,
		Question:     0.25,
		Punchline:    0.35,
		Emphasis:     0.2,
		StoryBeat:    0.15,
		KeyPhrase:    0.25,
		Salience:     0.3,
		OnScreenText: 0.15,
		Emotion:      0.25,
		Action:       0.3,
		Contrast:     0.1,
	}
}
