package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keagan/clipsight/internal/audio"
	"github.com/keagan/clipsight/internal/config"
	"github.com/keagan/clipsight/internal/logging"
	"github.com/keagan/clipsight/internal/pipeline"
	"github.com/keagan/clipsight/internal/transcript"
	"github.com/keagan/clipsight/internal/visual"
	"github.com/keagan/clipsight/pkg/util"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Rank and select highlight intervals from pre-computed analysis data",
	Long: "Reads the external tools' JSON outputs (scene changes, audio samples,\n" +
		"transcript, frame descriptions), runs the fusion engine, and writes the\n" +
		"highlight report. Missing signal files degrade that signal instead of\n" +
		"failing the run; only --scenes and --duration are required.",
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().String("scenes", "", "scene-change JSON file (required)")
	detectCmd.Flags().Float64("duration", 0, "total video duration in seconds (required)")
	detectCmd.Flags().String("audio", "", "audio volume samples JSON file")
	detectCmd.Flags().String("transcript", "", "transcript JSON file")
	detectCmd.Flags().String("frames", "", "frame descriptions JSON file")
	detectCmd.Flags().String("name", "", "video name for the report (default: scenes file stem)")
	detectCmd.Flags().String("out", "", "report output path (default: stdout)")
	detectCmd.Flags().Int("max", 0, "maximum highlights to select")
	detectCmd.Flags().Float64("min-gap", -1, "minimum gap between highlights in seconds")
	detectCmd.Flags().Bool("exact", false, "use exact interval-schedule selection instead of greedy")
	_ = detectCmd.MarkFlagRequired("scenes")
	_ = detectCmd.MarkFlagRequired("duration")
}

func runDetect(cmd *cobra.Command, args []string) error {
	logger := logging.WithComponent("cli")
	cfg := config.FromContext(cmd.Context())

	scenesPath, _ := cmd.Flags().GetString("scenes")
	duration, _ := cmd.Flags().GetFloat64("duration")
	audioPath, _ := cmd.Flags().GetString("audio")
	transcriptPath, _ := cmd.Flags().GetString("transcript")
	framesPath, _ := cmd.Flags().GetString("frames")
	name, _ := cmd.Flags().GetString("name")
	outPath, _ := cmd.Flags().GetString("out")
	maxHighlights, _ := cmd.Flags().GetInt("max")
	minGap, _ := cmd.Flags().GetFloat64("min-gap")
	exact, _ := cmd.Flags().GetBool("exact")

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(scenesPath), filepath.Ext(scenesPath))
	}

	in := pipeline.Inputs{
		VideoName: name,
		Duration:  duration,
	}
	if err := readJSON(scenesPath, &in.Changes); err != nil {
		return fmt.Errorf("read scene changes: %w", err)
	}
	if audioPath != "" {
		var samples []audio.Sample
		if err := readJSON(audioPath, &samples); err != nil {
			return fmt.Errorf("read audio samples: %w", err)
		}
		in.AudioSamples = samples
	}
	if transcriptPath != "" {
		var tr transcript.Transcript
		if err := readJSON(transcriptPath, &tr); err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}
		in.Transcript = &tr
	}
	if framesPath != "" {
		var frames []visual.Frame
		if err := readJSON(framesPath, &frames); err != nil {
			return fmt.Errorf("read frame descriptions: %w", err)
		}
		in.Frames = frames
	}

	opts := pipeline.Options{
		MaxHighlights:  maxHighlights,
		MinGap:         minGap,
		ExactSelection: exact,
	}
	detector, err := pipeline.New(logging.New(nil), cfg, opts)
	if err != nil {
		return err
	}

	rep, err := detector.Detect(cmd.Context(), in, opts)
	if err != nil {
		return err
	}

	data, err := rep.JSON()
	if err != nil {
		return err
	}

	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := util.EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return err
	}
	logger.Info().
		Str("report", outPath).
		Int("highlights", rep.NumHighlights).
		Msg("report written")
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
