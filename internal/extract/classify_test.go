package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierDefaults(t *testing.T) {
	c := NewClassifier(nil, 0)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty text", "", false},
		{"plain text", "refactor the cache layer", false},
		{"leading keyword", "security issue here", true},
		{"p0 tag style", "P0: drop the old index before release", true},
		{"keyword mid prefix", "fix the security group rules for the VPC", true},
		{"case insensitive", "URGENT fix before demo", true},
		{"whole word not substring", "see reproductions of the bug", false},
		{"production whole word", "update production-like staging environment naming", true},
		{"sev1 keyword", "sev1 incident followup", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Critical(tt.text))
		})
	}
}

func TestClassifierPrefixWindow(t *testing.T) {
	c := NewClassifier(nil, 0)

	// Keyword starts after the 100-char window: not critical.
	beyond := strings.Repeat("x", 100) + " security issue"
	assert.False(t, c.Critical(beyond), "keyword past the window must not count")

	// Same keyword inside the window: critical.
	within := strings.Repeat("x", 95) + " security issue"
	// "security" starts at offset 96 but runs past the window edge,
	// so the truncation cuts it and it must not count either.
	assert.False(t, c.Critical(within))

	inside := strings.Repeat("x", 80) + " security issue"
	assert.True(t, c.Critical(inside))
}

func TestClassifierCustomWordsAndWindow(t *testing.T) {
	c := NewClassifier([]string{"asap", "yesterday"}, 20)

	assert.True(t, c.Critical("asap: rotate the keys"))
	assert.False(t, c.Critical("security issue"), "default words must not apply with a custom set")
	assert.False(t, c.Critical(strings.Repeat("y", 20)+" asap"), "custom window must bound the search")
}

func TestClassifierIsPureValue(t *testing.T) {
	a := NewClassifier([]string{"urgent"}, 50)
	b := NewClassifier([]string{"blocker"}, 50)

	// Two classifiers never share state: keyword sets are per-value.
	assert.True(t, a.Critical("urgent fix"))
	assert.False(t, b.Critical("urgent fix"))
	assert.True(t, b.Critical("blocker for release"))

	assert.Equal(t, []string{"urgent"}, a.Words())
}
