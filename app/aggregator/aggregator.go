// Package aggregator builds the merged, recency-sorted video feed for
// an arbitrary set of channels.
package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/okhotin/tubedeck/app/errs"
	"github.com/okhotin/tubedeck/app/youtube"
)

// Lister is the per-channel video source. The Data API client is the
// primary lister; the RSS lister can serve as per-channel fallback.
type Lister interface {
	ListRecentVideos(ctx context.Context, channelID string, limit int64) ([]youtube.Video, error)
}

type Aggregator struct {
	lister   Lister
	fallback Lister // optional, used only when the primary fetch fails
	limit    int64
}

func New(lister Lister, fallback Lister, videosPerChannel int) *Aggregator {
	if videosPerChannel <= 0 {
		videosPerChannel = 10
	}
	return &Aggregator{
		lister:   lister,
		fallback: fallback,
		limit:    int64(videosPerChannel),
	}
}

// Fetch returns one time-ordered feed for the given channel ids.
//
// Each channel is fetched concurrently and independently. A failing
// channel contributes zero videos instead of aborting the whole
// aggregation: one unreachable or deleted channel must not blank out
// the entire feed. A missing upstream credential is the exception —
// that is a configuration error affecting every channel equally, so it
// fails the whole fetch instead of skipping. Results are concatenated
// in input encounter order and stable-sorted descending by publish
// time, so ties keep that order. Duplicate input ids cause duplicate
// fetches; the input set is the caller's to deduplicate.
func (a *Aggregator) Fetch(ctx context.Context, channelIDs []string) ([]youtube.Video, error) {
	if len(channelIDs) == 0 {
		return []youtube.Video{}, nil
	}

	perChannel := make([][]youtube.Video, len(channelIDs))
	perErr := make([]error, len(channelIDs))

	var wg sync.WaitGroup
	for i, channelID := range channelIDs {
		wg.Add(1)
		go func(i int, channelID string) {
			defer wg.Done()
			perChannel[i], perErr[i] = a.fetchChannel(ctx, channelID)
		}(i, channelID)
	}
	wg.Wait()

	for _, err := range perErr {
		if err != nil {
			return nil, err
		}
	}

	var videos []youtube.Video
	for _, chunk := range perChannel {
		videos = append(videos, chunk...)
	}

	sortByPublishedDesc(videos)

	if videos == nil {
		videos = []youtube.Video{}
	}
	return videos, nil
}

func (a *Aggregator) fetchChannel(ctx context.Context, channelID string) ([]youtube.Video, error) {
	videos, err := a.lister.ListRecentVideos(ctx, channelID, a.limit)
	if err == nil {
		return videos, nil
	}
	if errors.Is(err, errs.ErrMissingAPIKey) {
		// Not a per-channel condition; the fallback cannot repair a
		// misconfigured service either.
		return nil, err
	}
	slog.Warn("Channel fetch failed, skipping", "channel_id", channelID, "error", err)

	if a.fallback == nil {
		return nil, nil
	}

	videos, err = a.fallback.ListRecentVideos(ctx, channelID, a.limit)
	if err != nil {
		slog.Warn("Channel fallback fetch failed, skipping", "channel_id", channelID, "error", err)
		return nil, nil
	}
	slog.Debug("Channel served from fallback", "channel_id", channelID, "videos", len(videos))
	return videos, nil
}

func sortByPublishedDesc(videos []youtube.Video) {
	type keyed struct {
		publishedAt time.Time
		video       youtube.Video
	}

	entries := make([]keyed, len(videos))
	for i, v := range videos {
		// Unparseable timestamps keep the zero value and sort last.
		publishedAt, _ := time.Parse(time.RFC3339, v.PublishedAt)
		entries[i] = keyed{publishedAt: publishedAt, video: v}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].publishedAt.After(entries[j].publishedAt)
	})

	for i, e := range entries {
		videos[i] = e.video
	}
}
