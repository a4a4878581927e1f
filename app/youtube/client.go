// Package youtube talks to the YouTube Data API v3 and translates its
// resources into the local candidate and video types.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/okhotin/tubedeck/app/errs"
)

var _ Client = (*APIClient)(nil)

// APIClient implements Client using the official Data API v3 service.
type APIClient struct {
	service    *youtubeapi.Service
	maxResults int64
}

// NewAPIClient creates the upstream client. An empty API key is a
// configuration error and is rejected before any network call.
func NewAPIClient(ctx context.Context, apiKey string, searchMaxResults int) (*APIClient, error) {
	if apiKey == "" {
		return nil, errs.ErrMissingAPIKey
	}

	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	if searchMaxResults <= 0 {
		searchMaxResults = 5
	}

	return &APIClient{
		service:    service,
		maxResults: int64(searchMaxResults),
	}, nil
}

// SearchChannels performs a channel search with the given text.
func (c *APIClient) SearchChannels(ctx context.Context, query string) ([]Candidate, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(c.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, "Failed to search channels")
	}

	candidates := make([]Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		candidates = append(candidates, candidateFromSearchResult(item))
	}
	return candidates, nil
}

// GetChannelByID looks a channel up directly. A well-formed response
// with no items is errs.ErrNotFound.
func (c *APIClient) GetChannelByID(ctx context.Context, id string) (*Candidate, error) {
	resp, err := c.service.Channels.List([]string{"snippet"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, "Failed to get channel")
	}

	if len(resp.Items) == 0 {
		return nil, errs.ErrNotFound
	}

	candidate := candidateFromChannel(resp.Items[0])
	return &candidate, nil
}

// ListRecentVideos returns up to limit most recent videos of a channel,
// ordered by publish date upstream-side.
func (c *APIClient) ListRecentVideos(ctx context.Context, channelID string, limit int64) ([]Video, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(limit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError(err, "Failed to list videos")
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		videos = append(videos, videoFromSearchResult(item))
	}
	return videos, nil
}

// upstreamError translates a Data API failure into the shared
// taxonomy, passing the upstream message through when one exists.
func upstreamError(err error, fallback string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return errs.NewUpstreamError(gerr.Code, gerr.Message, fallback)
	}
	return errs.NewUpstreamError(http.StatusBadGateway, "", fallback)
}
