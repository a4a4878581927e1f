// Package resolver turns user-supplied channel queries into ranked
// channel candidates.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/okhotin/tubedeck/app/errs"
	"github.com/okhotin/tubedeck/app/youtube"
)

type Resolver struct {
	client youtube.Client
}

func New(client youtube.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve normalizes the query and returns candidate channels. An
// input shaped like a channel id gets one direct lookup first; when
// that lookup succeeds it short-circuits with exactly that channel,
// and when it fails for any reason the resolver falls through to a
// text search instead of erroring.
func (r *Resolver) Resolve(ctx context.Context, rawQuery string) ([]youtube.Candidate, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return nil, errs.NewValidationError("query", "is required")
	}

	match := NormalizeQuery(rawQuery)
	slog.Debug("Query normalized", "kind", match.Kind.String(), "value", match.Value)

	if IsChannelID(match.Value) {
		candidate, err := r.client.GetChannelByID(ctx, match.Value)
		if err == nil {
			return []youtube.Candidate{*candidate}, nil
		}
		slog.Debug("Direct channel lookup missed, searching instead",
			"channel_id", match.Value, "error", err)
	}

	return r.client.SearchChannels(ctx, match.Value)
}

// ResolveByID looks a channel up by its exact platform id.
func (r *Resolver) ResolveByID(ctx context.Context, channelID string) (*youtube.Candidate, error) {
	if strings.TrimSpace(channelID) == "" {
		return nil, errs.NewValidationError("channelId", "is required")
	}
	return r.client.GetChannelByID(ctx, channelID)
}
