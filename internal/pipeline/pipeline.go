// Package pipeline orchestrates the highlight detection engine: scene
// segmentation, concurrent signal extraction, scene scoring, fusion ranking,
// and top-K selection. All inputs arrive pre-computed from the external
// analysis tools; the pipeline itself does no I/O beyond logging.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/keagan/clipsight/internal/audio"
	"github.com/keagan/clipsight/internal/config"
	"github.com/keagan/clipsight/internal/ranker"
	"github.com/keagan/clipsight/internal/report"
	"github.com/keagan/clipsight/internal/scenes"
	"github.com/keagan/clipsight/internal/signal"
	"github.com/keagan/clipsight/internal/transcript"
	"github.com/keagan/clipsight/internal/visual"
)

// Inputs carries the pre-computed analysis data for one video. A nil
// AudioSamples, Transcript, or Frames marks that signal stream as not
// supplied; the ranker substitutes the neutral fallback for it.
type Inputs struct {
	VideoName string
	Duration  float64

	Changes      []scenes.ChangePoint
	AudioSamples []audio.Sample
	Transcript   *transcript.Transcript
	Frames       []visual.Frame
}

// Options are per-run overrides on top of the loaded configuration.
type Options struct {
	MaxHighlights int
	MinGap        float64

	// ExactSelection swaps the greedy selector for the weighted interval
	// schedule. Off by default.
	ExactSelection bool
}

// Detector wires the extractors and ranker together for repeated runs.
type Detector struct {
	logger     zerolog.Logger
	cfg        *config.Config
	audio      *audio.Extractor
	transcript *transcript.Extractor
	visual     *visual.Extractor
	ranker     *ranker.Ranker
}

// New creates a detector. Configuration is validated up front so weight
// misconfiguration fails before any video is processed.
func New(logger zerolog.Logger, cfg *config.Config, opts Options) (*Detector, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var sel ranker.Selector = ranker.GreedySelector{}
	if opts.ExactSelection {
		sel = ranker.ScheduleSelector{}
	}
	rk, err := ranker.NewWithSelector(logger, cfg.Ranker, sel)
	if err != nil {
		return nil, err
	}

	return &Detector{
		logger:     logger.With().Str("component", "pipeline").Logger(),
		cfg:        cfg,
		audio:      audio.NewExtractor(logger, cfg.Audio),
		transcript: transcript.NewExtractor(logger, cfg.Transcript),
		visual:     visual.NewExtractor(logger, cfg.Visual),
		ranker:     rk,
	}, nil
}

// Detect runs the full engine over one video's inputs and returns the run
// report. The three extractors run concurrently; each returns an owned,
// immutable event list, so no locking is needed beyond the join.
func (d *Detector) Detect(ctx context.Context, in Inputs, opts Options) (*report.Report, error) {
	d.logger.Info().
		Str("video", in.VideoName).
		Float64("duration", in.Duration).
		Int("change_points", len(in.Changes)).
		Msg("starting highlight detection")

	segmented, err := scenes.Segment(in.Changes, in.Duration)
	if err != nil {
		return nil, fmt.Errorf("scene segmentation: %w", err)
	}
	if d.cfg.MergeShortScenes {
		segmented = scenes.MergeShort(segmented, d.cfg.Scenes.MinSceneDuration)
	}
	d.logger.Info().Int("scenes", len(segmented)).Msg("timeline segmented")

	audioEvents, transcriptEvents, visualEvents := d.extractAll(in)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scoreInputs := scenes.ScoreInputs{}
	if in.AudioSamples != nil {
		scoreInputs.AudioPeaks = peakTimestamps(audioEvents)
	}
	if in.Transcript != nil {
		scoreInputs.SpeechSpans = speechSpans(in.Transcript)
	}
	scored := scenes.ScoreScenes(segmented, d.cfg.Scenes, scoreInputs)

	// nil marks an absent stream for the fusion fallback; an available
	// stream that produced nothing becomes an empty non-nil slice.
	ranked := d.ranker.Rank(scored,
		presentOrNil(in.AudioSamples != nil, audioEvents),
		presentOrNil(in.Transcript != nil, transcriptEvents),
		presentOrNil(in.Frames != nil, visualEvents),
	)
	selected := d.ranker.SelectTopK(ranked, opts.MaxHighlights, opts.MinGap)

	d.logger.Info().
		Str("video", in.VideoName).
		Int("ranked", len(ranked)).
		Int("selected", len(selected)).
		Msg("highlight detection complete")

	return report.Build(in.VideoName, selected), nil
}

// extractAll fans the three extractors out on goroutines and joins their
// results. The extractors are pure and share nothing, so a WaitGroup is the
// only synchronization required.
func (d *Detector) extractAll(in Inputs) (audioEvents, transcriptEvents, visualEvents []signal.Event) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		audioEvents = d.audio.Extract(in.AudioSamples)
	}()
	go func() {
		defer wg.Done()
		transcriptEvents = d.transcript.Extract(in.Transcript)
	}()
	go func() {
		defer wg.Done()
		visualEvents = d.visual.Extract(in.Frames)
	}()
	wg.Wait()
	return audioEvents, transcriptEvents, visualEvents
}

// peakTimestamps pulls energy-peak times out of the audio events for the
// scene scorer's density term.
func peakTimestamps(events []signal.Event) []float64 {
	out := []float64{}
	for _, ev := range events {
		if ev.Kind == signal.EnergyPeak {
			out = append(out, ev.Timestamp)
		}
	}
	return out
}

// speechSpans converts transcript segments into coverage intervals.
func speechSpans(tr *transcript.Transcript) []scenes.SpeechSpan {
	out := make([]scenes.SpeechSpan, 0, len(tr.Segments))
	for _, seg := range tr.Segments {
		if seg.End > seg.Start {
			out = append(out, scenes.SpeechSpan{Start: seg.Start, End: seg.End})
		}
	}
	return out
}

func presentOrNil(present bool, events []signal.Event) []signal.Event {
	if !present {
		return nil
	}
	if events == nil {
		return []signal.Event{}
	}
	return events
}
