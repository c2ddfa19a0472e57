package extract

import (
	"regexp"
	"strings"
)

// DefaultCriticalWords are the keywords that flag a marker as critical.
var DefaultCriticalWords = []string{
	"urgent", "blocker", "security", "prod", "production", "p0", "sev1", "severe",
}

// DefaultCriticalWindow is how many leading characters of a marker's text
// the classifier inspects. Real priority markers front-load their signal
// ("TODO(P0): ..."); scanning the full text produced false positives from
// incidental keyword mentions deep in descriptive prose.
const DefaultCriticalWindow = 100

// Classifier decides whether a marker's text is high-priority. The keyword
// set is an immutable configuration value carried by the classifier, not a
// package-level mutable global, so tests can inject alternate sets.
type Classifier struct {
	words   []string
	window  int
	pattern *regexp.Regexp
}

// NewClassifier builds a classifier over the given keyword set and prefix
// window. A nil or empty keyword slice falls back to DefaultCriticalWords;
// window <= 0 falls back to DefaultCriticalWindow. Keywords match as whole
// words, case-insensitively: "production" never matches inside
// "reproductions".
func NewClassifier(words []string, window int) Classifier {
	if len(words) == 0 {
		words = DefaultCriticalWords
	}
	if window <= 0 {
		window = DefaultCriticalWindow
	}

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	pattern := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)

	return Classifier{words: words, window: window, pattern: pattern}
}

// Words returns the keyword set, for display in advisory output.
func (c Classifier) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Critical reports whether the text's leading prefix contains a critical
// keyword as a whole word. Pure and total: it never fails, and empty text
// is never critical. A keyword that starts inside the window but runs past
// its edge is cut by the truncation and does not count.
func (c Classifier) Critical(text string) bool {
	if text == "" {
		return false
	}
	prefix := text
	if len(prefix) > c.window {
		prefix = prefix[:c.window]
	}
	return c.pattern.MatchString(prefix)
}
