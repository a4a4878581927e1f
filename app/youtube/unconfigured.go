package youtube

import (
	"context"

	"github.com/okhotin/tubedeck/app/errs"
)

var _ Client = UnconfiguredClient{}

// UnconfiguredClient stands in when no API key is set. The service
// still serves the library; every upstream operation reports the
// missing credential before any network activity.
type UnconfiguredClient struct{}

func (UnconfiguredClient) SearchChannels(ctx context.Context, query string) ([]Candidate, error) {
	return nil, errs.ErrMissingAPIKey
}

func (UnconfiguredClient) GetChannelByID(ctx context.Context, id string) (*Candidate, error) {
	return nil, errs.ErrMissingAPIKey
}

func (UnconfiguredClient) ListRecentVideos(ctx context.Context, channelID string, limit int64) ([]Video, error) {
	return nil, errs.ErrMissingAPIKey
}
