package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okhotin/tubedeck/app/errs"
	"github.com/okhotin/tubedeck/app/youtube"
)

// fakeLister serves canned videos per channel id and records calls.
type fakeLister struct {
	mu     sync.Mutex
	videos map[string][]youtube.Video
	fail   map[string]error
	calls  []string
}

func (f *fakeLister) ListRecentVideos(ctx context.Context, channelID string, limit int64) ([]youtube.Video, error) {
	f.mu.Lock()
	f.calls = append(f.calls, channelID)
	f.mu.Unlock()

	if err, ok := f.fail[channelID]; ok {
		return nil, err
	}
	return f.videos[channelID], nil
}

func video(id, channelID, publishedAt string) youtube.Video {
	return youtube.Video{
		ID:          id,
		ChannelID:   channelID,
		PublishedAt: publishedAt,
		URL:         youtube.WatchURL(id),
	}
}

func TestFetchEmptyInput(t *testing.T) {
	lister := &fakeLister{}
	agg := New(lister, nil, 10)

	videos, err := agg.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 0 {
		t.Errorf("Expected empty feed, got %d videos", len(videos))
	}
	if len(lister.calls) != 0 {
		t.Errorf("Empty input must not call upstream, got %v", lister.calls)
	}
}

func TestFetchMergesSortedDescending(t *testing.T) {
	lister := &fakeLister{
		videos: map[string][]youtube.Video{
			"ch-a": {
				video("a1", "ch-a", "2024-03-05T10:00:00Z"),
				video("a2", "ch-a", "2024-03-01T10:00:00Z"),
				video("a3", "ch-a", "2024-02-20T10:00:00Z"),
			},
			"ch-b": {
				video("b1", "ch-b", "2024-03-03T10:00:00Z"),
				video("b2", "ch-b", "2024-02-25T10:00:00Z"),
			},
		},
	}
	agg := New(lister, nil, 10)

	videos, err := agg.Fetch(context.Background(), []string{"ch-a", "ch-b"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(videos) != 5 {
		t.Fatalf("Expected 5 videos, got %d", len(videos))
	}

	wantOrder := []string{"a1", "b1", "a2", "b2", "a3"}
	for i, want := range wantOrder {
		if videos[i].ID != want {
			t.Errorf("videos[%d].ID = %s, want %s", i, videos[i].ID, want)
		}
	}

	for i := 1; i < len(videos); i++ {
		prev, _ := time.Parse(time.RFC3339, videos[i-1].PublishedAt)
		cur, _ := time.Parse(time.RFC3339, videos[i].PublishedAt)
		if cur.After(prev) {
			t.Errorf("Feed not descending at index %d: %s before %s",
				i, videos[i-1].PublishedAt, videos[i].PublishedAt)
		}
	}
}

func TestFetchStableOnTies(t *testing.T) {
	ts := "2024-03-01T10:00:00Z"
	lister := &fakeLister{
		videos: map[string][]youtube.Video{
			"ch-a": {video("a1", "ch-a", ts)},
			"ch-b": {video("b1", "ch-b", ts)},
		},
	}
	agg := New(lister, nil, 10)

	videos, err := agg.Fetch(context.Background(), []string{"ch-a", "ch-b"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// Ties keep input encounter order.
	if videos[0].ID != "a1" || videos[1].ID != "b1" {
		t.Errorf("Tie order broken: got %s, %s", videos[0].ID, videos[1].ID)
	}
}

func TestFetchToleratesPartialFailure(t *testing.T) {
	lister := &fakeLister{
		videos: map[string][]youtube.Video{
			"ch-ok": {video("ok1", "ch-ok", "2024-03-01T10:00:00Z")},
		},
		fail: map[string]error{
			"ch-bad": errors.New("channel deleted"),
		},
	}
	agg := New(lister, nil, 10)

	videos, err := agg.Fetch(context.Background(), []string{"ch-bad", "ch-ok"})
	if err != nil {
		t.Fatalf("Partial failure must not surface as an error, got: %v", err)
	}

	if len(videos) != 1 || videos[0].ID != "ok1" {
		t.Errorf("Expected only the healthy channel's videos, got %+v", videos)
	}
}

func TestFetchUsesFallbackWhenConfigured(t *testing.T) {
	primary := &fakeLister{
		fail: map[string]error{"ch-a": errors.New("quota exceeded")},
	}
	fallback := &fakeLister{
		videos: map[string][]youtube.Video{
			"ch-a": {video("rss1", "ch-a", "2024-03-01T10:00:00Z")},
		},
	}
	agg := New(primary, fallback, 10)

	videos, err := agg.Fetch(context.Background(), []string{"ch-a"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "rss1" {
		t.Errorf("Expected fallback videos, got %+v", videos)
	}
}

func TestFetchFallbackFailureStillSkips(t *testing.T) {
	primary := &fakeLister{fail: map[string]error{"ch-a": errors.New("api down")}}
	fallback := &fakeLister{fail: map[string]error{"ch-a": errors.New("rss down")}}
	agg := New(primary, fallback, 10)

	videos, err := agg.Fetch(context.Background(), []string{"ch-a"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 0 {
		t.Errorf("Expected empty feed, got %+v", videos)
	}
}

func TestFetchMissingCredentialFailsWholeFetch(t *testing.T) {
	lister := &fakeLister{
		videos: map[string][]youtube.Video{
			"ch-ok": {video("ok1", "ch-ok", "2024-03-01T10:00:00Z")},
		},
		fail: map[string]error{"ch-bad": errs.ErrMissingAPIKey},
	}
	agg := New(lister, nil, 10)

	videos, err := agg.Fetch(context.Background(), []string{"ch-bad", "ch-ok"})
	if !errors.Is(err, errs.ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got: %v", err)
	}
	if videos != nil {
		t.Errorf("A configuration error must not return a partial feed, got %+v", videos)
	}
}

func TestFetchMissingCredentialNotMaskedByFallback(t *testing.T) {
	primary := &fakeLister{fail: map[string]error{"ch-a": errs.ErrMissingAPIKey}}
	fallback := &fakeLister{
		videos: map[string][]youtube.Video{
			"ch-a": {video("rss1", "ch-a", "2024-03-01T10:00:00Z")},
		},
	}
	agg := New(primary, fallback, 10)

	_, err := agg.Fetch(context.Background(), []string{"ch-a"})
	if !errors.Is(err, errs.ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got: %v", err)
	}
	if len(fallback.calls) != 0 {
		t.Errorf("Fallback must not run for a configuration error, got calls %v", fallback.calls)
	}
}

func TestFetchUnparseableTimestampsSortLast(t *testing.T) {
	lister := &fakeLister{
		videos: map[string][]youtube.Video{
			"ch-a": {
				video("bad", "ch-a", "not-a-date"),
				video("good", "ch-a", "2024-03-01T10:00:00Z"),
			},
		},
	}
	agg := New(lister, nil, 10)

	videos, err := agg.Fetch(context.Background(), []string{"ch-a"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if videos[len(videos)-1].ID != "bad" {
		t.Errorf("Unparseable timestamp should sort last, got order %+v", videos)
	}
}
