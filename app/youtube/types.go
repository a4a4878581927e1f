package youtube

import "context"

// Candidate is a channel returned from resolution, not yet persisted.
type Candidate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Video is one entry of an aggregated feed. Videos are built fresh on
// every aggregation request and never persisted. PublishedAt keeps the
// upstream RFC 3339 timestamp string.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	URL          string `json:"url"`
}

// Client is the upstream query surface used by the resolver and the
// aggregator. Implementations translate platform responses into the
// local types at a single mapping point.
type Client interface {
	SearchChannels(ctx context.Context, query string) ([]Candidate, error)
	GetChannelByID(ctx context.Context, id string) (*Candidate, error)
	ListRecentVideos(ctx context.Context, channelID string, limit int64) ([]Video, error)
}
