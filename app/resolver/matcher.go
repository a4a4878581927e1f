package resolver

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MatchKind tags what a raw query was recognized as.
type MatchKind int

const (
	KindFreeText MatchKind = iota
	KindChannelID
	KindHandle
)

func (k MatchKind) String() string {
	switch k {
	case KindChannelID:
		return "channel_id"
	case KindHandle:
		return "handle"
	default:
		return "free_text"
	}
}

// Match is the normalized form of a user query.
type Match struct {
	Kind  MatchKind
	Value string
}

// matchers are tried in order; the first one that extracts a non-empty
// value wins. The markers are anchored to the platform host so that
// ordinary search text containing "@" or "c/" stays free text; only a
// leading "@" is additionally recognized as a bare handle.
var matchers = []struct {
	kind   MatchKind
	marker string
}{
	{KindChannelID, "youtube.com/channel/"},
	{KindHandle, "youtube.com/c/"},
	{KindHandle, "youtube.com/@"},
}

// NormalizeQuery reduces a free-form input (search text, handle, or
// channel URL) to a lookup value. URL extraction takes the substring
// between the marker and the next '/' or '?'.
func NormalizeQuery(raw string) Match {
	query := norm.NFC.String(strings.TrimSpace(raw))

	for _, m := range matchers {
		idx := strings.Index(query, m.marker)
		if idx < 0 {
			continue
		}
		if value := markerValue(query[idx+len(m.marker):]); value != "" {
			return Match{Kind: m.kind, Value: value}
		}
	}

	if rest, ok := strings.CutPrefix(query, "@"); ok {
		if value := markerValue(rest); value != "" {
			return Match{Kind: KindHandle, Value: value}
		}
	}

	return Match{Kind: KindFreeText, Value: query}
}

func markerValue(s string) string {
	if end := strings.IndexAny(s, "/?"); end >= 0 {
		s = s[:end]
	}
	return s
}

// IsChannelID reports whether a value has the platform channel-id
// shape: the fixed "UC" prefix and 24 characters total.
func IsChannelID(value string) bool {
	return strings.HasPrefix(value, "UC") && len(value) == 24
}
