package transcript

import "regexp"

// Fixed vocabularies for the transcript scanners. Compiled once at package
// load, same as the candidate-scoring regexps elsewhere in the toolchain.

var hookPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwatch\s+this\b`),
	regexp.MustCompile(`(?i)\byou\s+won'?t\s+believe\b`),
	regexp.MustCompile(`(?i)\bwait\s+for\s+it\b`),
	regexp.MustCompile(`(?i)\bcheck\s+this\s+out\b`),
	regexp.MustCompile(`(?i)\bhere'?s\s+the\s+(thing|secret|trick)\b`),
	regexp.MustCompile(`(?i)\bthe\s+craziest\s+(part|thing)\b`),
	regexp.MustCompile(`(?i)\bnobody\s+(talks|tells\s+you)\s+about\b`),
	regexp.MustCompile(`(?i)\bthis\s+changed\s+everything\b`),
	regexp.MustCompile(`(?i)\blisten\s+to\s+this\b`),
	regexp.MustCompile(`(?i)\bplot\s+twist\b`),
}

var interrogatives = map[string]bool{
	"what":  true,
	"why":   true,
	"how":   true,
	"when":  true,
	"where": true,
	"who":   true,
	"which": true,
	"can":   true,
	"could": true,
	"would": true,
	"will":  true,
	"do":    true,
	"does":  true,
	"did":   true,
	"is":    true,
	"are":   true,
}

var laughterTokens = []string{
	"haha", "hahaha", "lol", "lmao", "[laughter]", "[laughs]", "(laughs)", "(laughter)",
}

var emphasisWords = map[string]bool{
	"amazing":      true,
	"incredible":   true,
	"insane":       true,
	"crazy":        true,
	"unbelievable": true,
	"huge":         true,
	"massive":      true,
	"literally":    true,
	"absolutely":   true,
	"completely":   true,
	"totally":      true,
	"never":        true,
	"always":       true,
	"best":         true,
	"worst":        true,
	"perfect":      true,
	"wild":         true,
	"shocking":     true,
	"important":    true,
	"secret":       true,
	"mistake":      true,
	"finally":      true,
	"actually":     true,
}

var transitionWords = map[string]bool{
	"so":        true,
	"then":      true,
	"suddenly":  true,
	"but":       true,
	"however":   true,
	"meanwhile": true,
	"anyway":    true,
	"next":      true,
	"finally":   true,
	"now":       true,
}
