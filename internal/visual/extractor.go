// Package visual scans natural-language frame descriptions produced by the
// external vision model for clip-worthy content: action, emotion, on-screen
// text, unusual/salient content, and visual contrast. The extractor is pure
// keyword matching over pre-computed text; no frames are touched here.
package visual

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keagan/clipsight/internal/signal"
)

// Frame is one sampled frame's timestamp and description.
type Frame struct {
	Timestamp   float64 `json:"timestamp"`
	Description string  `json:"description"`
}

// Config holds the visual scanner tunables. Every per-category score cap is
// configuration so tests and operators can rebalance categories without
// touching the scanner.
type Config struct {
	// Score added per matched keyword, before the category cap.
	PerMatchWeight float64 `yaml:"per_match_weight"`

	SalienceCap float64 `yaml:"salience_cap"`
	EmotionCap  float64 `yaml:"emotion_cap"`
	ActionCap   float64 `yaml:"action_cap"`
	TextCap     float64 `yaml:"text_cap"`
	ContrastCap float64 `yaml:"contrast_cap"`
}

// DefaultConfig returns the category tuning used in production.
func DefaultConfig() Config {
	return Config{
		PerMatchWeight: 0.2,
		SalienceCap:    0.3,
		EmotionCap:     0.25,
		ActionCap:      0.3,
		TextCap:        0.15,
		ContrastCap:    0.1,
	}
}

func (c Config) cap(kind signal.Kind) float64 {
	switch kind {
	case signal.Salience:
		return c.SalienceCap
	case signal.Emotion:
		return c.EmotionCap
	case signal.Action:
		return c.ActionCap
	case signal.OnScreenText:
		return c.TextCap
	case signal.Contrast:
		return c.ContrastCap
	default:
		return 0
	}
}

// category keyword vocabularies, fixed like the transcript scanners'.
var categories = []struct {
	kind     signal.Kind
	keywords []string
}{
	{signal.Action, []string{
		"running", "jumping", "falling", "throwing", "catching", "racing",
		"fighting", "dancing", "spinning", "crashing", "exploding", "moving",
		"fast", "chase", "leaps", "slides",
	}},
	{signal.Emotion, []string{
		"smiling", "laughing", "crying", "shouting", "surprised", "shocked",
		"excited", "angry", "screaming", "celebrating", "cheering", "grinning",
	}},
	{signal.Salience, []string{
		"unusual", "strange", "unexpected", "dramatic", "rare", "bizarre",
		"striking", "remarkable", "chaos", "crowd", "fire", "explosion",
	}},
	{signal.OnScreenText, []string{
		"text", "caption", "sign", "banner", "headline", "subtitle", "label",
		"writing", "words", "title",
	}},
	{signal.Contrast, []string{
		"bright", "dark", "colorful", "vivid", "silhouette", "contrast",
		"neon", "glowing", "shadow", "spotlight",
	}},
}

// Extractor produces visual signal events from frame descriptions.
type Extractor struct {
	logger zerolog.Logger
	cfg    Config
}

// NewExtractor creates a visual extractor.
func NewExtractor(logger zerolog.Logger, cfg Config) *Extractor {
	return &Extractor{
		logger: logger.With().Str("component", "visual-extractor").Logger(),
		cfg:    cfg,
	}
}

// Extract scans each description against every category vocabulary. A frame
// emits one event per category with a nonzero score, where the score is the
// per-match weight times the matched keyword count, capped per category.
// An empty frame list yields an empty event list.
func (e *Extractor) Extract(frames []Frame) []signal.Event {
	if len(frames) == 0 {
		e.logger.Warn().Msg("no frame descriptions supplied, visual signal degraded")
		return nil
	}

	var events []signal.Event
	for _, fr := range frames {
		lower := strings.ToLower(fr.Description)
		for _, cat := range categories {
			matched := matchKeywords(lower, cat.keywords)
			if len(matched) == 0 {
				continue
			}
			score := e.cfg.PerMatchWeight * float64(len(matched))
			if limit := e.cfg.cap(cat.kind); score > limit {
				score = limit
			}
			if score <= 0 {
				continue
			}
			events = append(events, signal.Event{
				Timestamp: fr.Timestamp,
				Kind:      cat.kind,
				Score:     score,
				Source:    signal.SourceVisual,
				Payload: map[string]string{
					"keywords": strings.Join(matched, ","),
					"matches":  fmt.Sprintf("%d", len(matched)),
				},
			})
		}
	}

	e.logger.Debug().
		Int("frames", len(frames)).
		Int("events", len(events)).
		Msg("visual extraction complete")
	return events
}

func matchKeywords(lower string, keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			out = append(out, kw)
		}
	}
	return out
}
