package transcript

// Transcript is the structured speech-to-text output consumed by the
// extractor. Word timing is optional and currently informational; the
// scanners operate on segments.
type Transcript struct {
	Segments []Segment `json:"segments"`
	Words    []Word    `json:"words,omitempty"`
}

// Segment is one transcribed span with timing.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Word is one word with timing, when the transcription service provides it.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 { return s.End - s.Start }
