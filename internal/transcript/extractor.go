// Package transcript scans structured speech-to-text output for moments that
// read well as clips: hooks, questions, punchlines, emphasis, story beats,
// and key phrases. Each scanner is a pure function over the segment list and
// they are independent of one another.
package transcript

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keagan/clipsight/internal/signal"
)

// Config holds the transcript scanner tunables.
type Config struct {
	HookScore          float64 `yaml:"hook_score"`
	QuestionScore      float64 `yaml:"question_score"`
	InterrogativeScore float64 `yaml:"interrogative_score"`

	// Punchline detection: a short payoff segment after a longer setup.
	PunchlineMaxDuration float64 `yaml:"punchline_max_duration"`
	PunchlineSetupRatio  float64 `yaml:"punchline_setup_ratio"`
	PunchlineTimingBonus float64 `yaml:"punchline_timing_bonus"`
	PunchlineLaughBonus  float64 `yaml:"punchline_laugh_bonus"`
	PunchlineBangBonus   float64 `yaml:"punchline_bang_bonus"`
	PunchlineMinScore    float64 `yaml:"punchline_min_score"`

	EmphasisWordWeight float64 `yaml:"emphasis_word_weight"`
	StoryBeatScore     float64 `yaml:"story_beat_score"`

	// Key phrase term weights and result cap.
	KeyPhraseTermWeight float64 `yaml:"key_phrase_term_weight"`
	KeyPhraseShortWords int     `yaml:"key_phrase_short_words"`
	MaxKeyPhrases       int     `yaml:"max_key_phrases"`
}

// DefaultConfig returns the scanner tuning used in production.
func DefaultConfig() Config {
	return Config{
		HookScore:            1.0,
		QuestionScore:        0.8,
		InterrogativeScore:   0.7,
		PunchlineMaxDuration: 3.0,
		PunchlineSetupRatio:  1.5,
		PunchlineTimingBonus: 0.4,
		PunchlineLaughBonus:  0.3,
		PunchlineBangBonus:   0.2,
		PunchlineMinScore:    0.5,
		EmphasisWordWeight:   0.3,
		StoryBeatScore:       0.6,
		KeyPhraseTermWeight:  0.2,
		KeyPhraseShortWords:  8,
		MaxKeyPhrases:        20,
	}
}

// Extractor produces transcript signal events.
type Extractor struct {
	logger zerolog.Logger
	cfg    Config
}

// NewExtractor creates a transcript extractor.
func NewExtractor(logger zerolog.Logger, cfg Config) *Extractor {
	return &Extractor{
		logger: logger.With().Str("component", "transcript-extractor").Logger(),
		cfg:    cfg,
	}
}

// Extract runs all six scanners over the transcript. A nil transcript or one
// with no segments yields an empty event list: transcript is a degradable
// signal and must not fail the run.
func (e *Extractor) Extract(tr *Transcript) []signal.Event {
	if tr == nil || len(tr.Segments) == 0 {
		e.logger.Warn().Msg("no transcript segments supplied, transcript signal degraded")
		return nil
	}

	var events []signal.Event
	events = append(events, e.hooks(tr.Segments)...)
	events = append(events, e.questions(tr.Segments)...)
	events = append(events, e.punchlines(tr.Segments)...)
	events = append(events, e.emphasis(tr.Segments)...)
	events = append(events, e.storyBeats(tr.Segments)...)
	events = append(events, e.keyPhrases(tr.Segments)...)

	e.logger.Debug().
		Int("segments", len(tr.Segments)).
		Int("events", len(events)).
		Msg("transcript extraction complete")
	return events
}

// hooks matches segments against the fixed hook-phrase patterns.
func (e *Extractor) hooks(segs []Segment) []signal.Event {
	var events []signal.Event
	for _, seg := range segs {
		for _, pat := range hookPatterns {
			m := pat.FindString(seg.Text)
			if m == "" {
				continue
			}
			events = append(events, signal.Event{
				Timestamp: seg.Start,
				Kind:      signal.Hook,
				Score:     e.cfg.HookScore,
				Source:    signal.SourceTranscript,
				Payload:   map[string]string{"matched": m},
			})
			break
		}
	}
	return events
}

// questions flags segments containing a question mark, or opening with an
// interrogative word at a slightly lower confidence.
func (e *Extractor) questions(segs []Segment) []signal.Event {
	var events []signal.Event
	for _, seg := range segs {
		score := 0.0
		if strings.Contains(seg.Text, "?") {
			score = e.cfg.QuestionScore
		} else if first := firstWord(seg.Text); interrogatives[first] {
			score = e.cfg.InterrogativeScore
		}
		if score == 0 {
			continue
		}
		events = append(events, signal.Event{
			Timestamp: seg.Start,
			Kind:      signal.Question,
			Score:     score,
			Source:    signal.SourceTranscript,
			Payload:   map[string]string{"text": strings.TrimSpace(seg.Text)},
		})
	}
	return events
}

// punchlines looks for a short payoff delivered after a longer setup, with
// bonuses for laughter tokens and a trailing exclamation.
func (e *Extractor) punchlines(segs []Segment) []signal.Event {
	var events []signal.Event
	for i := 1; i < len(segs); i++ {
		seg := segs[i]
		prev := segs[i-1]

		score := 0.0
		if seg.Duration() < e.cfg.PunchlineMaxDuration &&
			prev.Duration() >= e.cfg.PunchlineSetupRatio*seg.Duration() {
			score += e.cfg.PunchlineTimingBonus
		}
		lower := strings.ToLower(seg.Text)
		for _, tok := range laughterTokens {
			if strings.Contains(lower, tok) {
				score += e.cfg.PunchlineLaughBonus
				break
			}
		}
		if strings.HasSuffix(strings.TrimSpace(seg.Text), "!") {
			score += e.cfg.PunchlineBangBonus
		}
		if score < e.cfg.PunchlineMinScore {
			continue
		}
		events = append(events, signal.Event{
			Timestamp: seg.Start,
			Kind:      signal.Punchline,
			Score:     clamp01(score),
			Source:    signal.SourceTranscript,
			Payload:   map[string]string{"text": strings.TrimSpace(seg.Text)},
		})
	}
	return events
}

// emphasis scores segments by how many emphasis-vocabulary words they use.
func (e *Extractor) emphasis(segs []Segment) []signal.Event {
	var events []signal.Event
	for _, seg := range segs {
		matched := matchVocab(seg.Text, emphasisWords)
		if len(matched) == 0 {
			continue
		}
		events = append(events, signal.Event{
			Timestamp: seg.Start,
			Kind:      signal.Emphasis,
			Score:     clamp01(e.cfg.EmphasisWordWeight * float64(len(matched))),
			Source:    signal.SourceTranscript,
			Payload:   map[string]string{"words": strings.Join(matched, ",")},
		})
	}
	return events
}

// storyBeats flags segments opening with a narrative transition word.
func (e *Extractor) storyBeats(segs []Segment) []signal.Event {
	var events []signal.Event
	for _, seg := range segs {
		first := firstWord(seg.Text)
		if !transitionWords[first] {
			continue
		}
		events = append(events, signal.Event{
			Timestamp: seg.Start,
			Kind:      signal.StoryBeat,
			Score:     e.cfg.StoryBeatScore,
			Source:    signal.SourceTranscript,
			Payload:   map[string]string{"transition": first},
		})
	}
	return events
}

// keyPhrases scores segments of three or more words on uppercase emphasis,
// emphasis vocabulary, and brevity, keeping the top MaxKeyPhrases results.
func (e *Extractor) keyPhrases(segs []Segment) []signal.Event {
	var events []signal.Event
	for _, seg := range segs {
		words := strings.Fields(seg.Text)
		if len(words) < 3 {
			continue
		}
		upper := 0
		for _, w := range words {
			if len(w) > 1 && w == strings.ToUpper(w) && w != strings.ToLower(w) {
				upper++
			}
		}
		score := e.cfg.KeyPhraseTermWeight * minFloat(float64(upper), 5)
		score += e.cfg.KeyPhraseTermWeight * minFloat(float64(len(matchVocab(seg.Text, emphasisWords))), 5)
		if len(words) <= e.cfg.KeyPhraseShortWords {
			score += e.cfg.KeyPhraseTermWeight
		}
		if score <= 0 {
			continue
		}
		events = append(events, signal.Event{
			Timestamp: seg.Start,
			Kind:      signal.KeyPhrase,
			Score:     clamp01(score),
			Source:    signal.SourceTranscript,
			Payload:   map[string]string{"text": strings.TrimSpace(seg.Text)},
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Score > events[j].Score })
	if e.cfg.MaxKeyPhrases > 0 && len(events) > e.cfg.MaxKeyPhrases {
		events = events[:e.cfg.MaxKeyPhrases]
	}
	return events
}

func firstWord(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,!?;:\"'")
}

func matchVocab(text string, vocab map[string]bool) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'")
		if vocab[w] && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
