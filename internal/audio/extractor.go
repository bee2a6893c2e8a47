// Package audio turns windowed volume samples from the external audio
// analysis tool into scored signal events: volume spikes, energy peaks, and
// tempo shifts. The extractor is pure; all I/O happened upstream.
package audio

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/keagan/clipsight/internal/signal"
)

// Sample is one windowed average-volume measurement at a fixed cadence.
type Sample struct {
	Timestamp float64 `json:"timestamp"`
	VolumeDB  float64 `json:"volume_db"`
}

// Config holds the audio extraction tunables.
type Config struct {
	// Volume spikes must clear this percentile of all samples.
	SpikePercentile float64 `yaml:"spike_percentile"`

	// Minimum prominence (current minus the lower neighbor) for an energy
	// local maximum to count as a peak.
	PeakProminence float64 `yaml:"peak_prominence"`

	// Number of samples on each side of a boundary when comparing energy
	// variance for tempo changes.
	TempoWindow int `yaml:"tempo_window"`

	// Relative variance change that signals a tempo shift.
	TempoShiftRatio float64 `yaml:"tempo_shift_ratio"`

	// dB level mapped to zero energy; 0dB maps to full energy.
	EnergyFloorDB float64 `yaml:"energy_floor_db"`
}

// DefaultConfig returns the extraction tuning used in production.
func DefaultConfig() Config {
	return Config{
		SpikePercentile: 85,
		PeakProminence:  0.3,
		TempoWindow:     5,
		TempoShiftRatio: 0.5,
		EnergyFloorDB:   -60,
	}
}

// Extractor produces audio signal events from volume samples.
type Extractor struct {
	logger zerolog.Logger
	cfg    Config
}

// NewExtractor creates an audio extractor.
func NewExtractor(logger zerolog.Logger, cfg Config) *Extractor {
	return &Extractor{
		logger: logger.With().Str("component", "audio-extractor").Logger(),
		cfg:    cfg,
	}
}

// Extract runs all audio scanners over the sample stream. An empty stream
// yields an empty event list, never an error: audio is a degradable signal.
func (e *Extractor) Extract(samples []Sample) []signal.Event {
	if len(samples) == 0 {
		e.logger.Warn().Msg("no audio samples supplied, audio signal degraded")
		return nil
	}

	energy := e.energyCurve(samples)

	var events []signal.Event
	events = append(events, e.volumeSpikes(samples, energy)...)
	events = append(events, e.energyPeaks(samples, energy)...)
	events = append(events, e.tempoChanges(samples, energy)...)

	e.logger.Debug().
		Int("samples", len(samples)).
		Int("events", len(events)).
		Msg("audio extraction complete")
	return events
}

// energyCurve maps dB volume onto [0,1] with EnergyFloorDB as silence.
func (e *Extractor) energyCurve(samples []Sample) []float64 {
	floor := e.cfg.EnergyFloorDB
	if floor >= 0 {
		floor = -60
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = clamp((s.VolumeDB-floor)/(-floor), 0, 1)
	}
	return out
}

// volumeSpikes emits an event for every sample that clears the configured
// volume percentile and is a local maximum among its immediate neighbors.
// The spike score is the sample's energy relative to the mean energy, capped
// at 1.0, so a spike in an otherwise quiet recording scores high.
func (e *Extractor) volumeSpikes(samples []Sample, energy []float64) []signal.Event {
	volumes := make([]float64, len(samples))
	for i, s := range samples {
		volumes[i] = s.VolumeDB
	}
	threshold := percentile(volumes, e.cfg.SpikePercentile)
	meanEnergy := mean(energy)

	var events []signal.Event
	for i, s := range samples {
		if s.VolumeDB < threshold {
			continue
		}
		if !localMax(volumes, i) {
			continue
		}
		score := 1.0
		if meanEnergy > 0 {
			score = clamp(energy[i]/meanEnergy, 0, 1)
		}
		events = append(events, signal.Event{
			Timestamp: s.Timestamp,
			Kind:      signal.VolumeSpike,
			Score:     score,
			Source:    signal.SourceAudio,
			Payload: map[string]string{
				"volume_db": fmt.Sprintf("%.2f", s.VolumeDB),
				"threshold": fmt.Sprintf("%.2f", threshold),
			},
		})
	}
	return events
}

// energyPeaks emits an event for every local maximum of the energy curve
// whose prominence over the lower neighbor clears the configured threshold.
func (e *Extractor) energyPeaks(samples []Sample, energy []float64) []signal.Event {
	var events []signal.Event
	for i := 1; i < len(energy)-1; i++ {
		if energy[i] <= energy[i-1] || energy[i] <= energy[i+1] {
			continue
		}
		prominence := energy[i] - math.Min(energy[i-1], energy[i+1])
		if prominence < e.cfg.PeakProminence {
			continue
		}
		events = append(events, signal.Event{
			Timestamp: samples[i].Timestamp,
			Kind:      signal.EnergyPeak,
			Score:     clamp(energy[i], 0, 1),
			Source:    signal.SourceAudio,
			Payload: map[string]string{
				"prominence": fmt.Sprintf("%.3f", prominence),
			},
		})
	}
	return events
}

// tempoChanges compares energy variance in the trailing window against the
// following window at every eligible boundary; a relative change beyond
// TempoShiftRatio marks a pacing shift. The score scales with how far past
// the ratio the change goes, saturating at four times the threshold.
func (e *Extractor) tempoChanges(samples []Sample, energy []float64) []signal.Event {
	w := e.cfg.TempoWindow
	if w < 2 || len(energy) < 2*w {
		return nil
	}
	ratio := e.cfg.TempoShiftRatio
	if ratio <= 0 {
		ratio = 0.5
	}

	var events []signal.Event
	for i := w; i+w <= len(energy); i += w {
		before := variance(energy[i-w : i])
		after := variance(energy[i : i+w])
		base := math.Max(before, 1e-6)
		change := math.Abs(after-before) / base
		if change <= ratio {
			continue
		}
		direction := "faster"
		if after < before {
			direction = "slower"
		}
		events = append(events, signal.Event{
			Timestamp: samples[i].Timestamp,
			Kind:      signal.TempoChange,
			Score:     clamp(change/(4*ratio), 0, 1),
			Source:    signal.SourceAudio,
			Payload: map[string]string{
				"direction": direction,
				"change":    fmt.Sprintf("%.3f", change),
			},
		})
	}
	return events
}

// localMax requires a strict rise over both immediate neighbors so flat
// loud stretches do not register a spike per sample.
func localMax(values []float64, i int) bool {
	if len(values) == 1 {
		return true
	}
	if i == 0 {
		return values[0] > values[1]
	}
	if i == len(values)-1 {
		return values[i] > values[i-1]
	}
	return values[i] > values[i-1] && values[i] > values[i+1]
}
