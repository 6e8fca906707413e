package intent

import "regexp"

// Pattern is a named extraction pattern. Pattern lists are ordered:
// extraction is first-match-wins, so more specific patterns come first.
type Pattern struct {
	// Name identifies the pattern for tests and logging.
	Name string

	// Regex is the compiled expression.
	Regex *regexp.Regexp
}

// TimelinePatterns are the timeline extraction patterns, most specific
// first. ExtractTimeline returns the full matched text of the first hit.
var TimelinePatterns = []Pattern{
	{
		Name:  "start-finish-range",
		Regex: regexp.MustCompile(`(?i)starting\s+([A-Za-z]+\s+\d+).*?(?:finishing|ending|completing).*?([A-Za-z]+)`),
	},
	{
		Name:  "months-with-start",
		Regex: regexp.MustCompile(`(?i)(\d+)\s+months?\s+starting\s+([A-Za-z]+\s+\d+)`),
	},
	{
		Name:  "by-month",
		Regex: regexp.MustCompile(`(?i)by\s+([A-Za-z]+\s+\d*)`),
	},
	{
		Name:  "month-count",
		Regex: regexp.MustCompile(`(?i)(\d+)\s+months?`),
	},
	{
		Name:  "quarter",
		Regex: regexp.MustCompile(`(?i)Q(\d)\s+(\d{4})`),
	},
}

// NamePatterns are the project-name extraction patterns, in priority order.
// ExtractProjectName returns the first capture group of the first hit.
var NamePatterns = []Pattern{
	{
		// "AxuMint: a social trading platform..."
		Name:  "prefix-colon",
		Regex: regexp.MustCompile(`([A-Z][a-zA-Z0-9]*)\s*:`),
	},
	{
		// "a platform called AxuMint"
		Name:  "called-named",
		Regex: regexp.MustCompile(`(?i)(?:project|platform|app|system)\s+(?:called|named)\s+([A-Z][a-zA-Z0-9]*)`),
	},
	{
		// "the AxuMint platform"
		Name:  "name-noun",
		Regex: regexp.MustCompile(`(?i)([A-Z][a-zA-Z0-9]*)\s+(?:platform|project|app|system)`),
	},
}

// ExtractTimeline returns the first timeline phrase found in the message.
// The boolean is false when no pattern matches.
func ExtractTimeline(message string) (string, bool) {
	for _, p := range TimelinePatterns {
		if m := p.Regex.FindString(message); m != "" {
			return m, true
		}
	}
	return "", false
}

// ExtractProjectName returns a best-effort project name from the message.
// The boolean is false when no pattern matches.
func ExtractProjectName(message string) (string, bool) {
	for _, p := range NamePatterns {
		if m := p.Regex.FindStringSubmatch(message); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}
