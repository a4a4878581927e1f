package youtube

import (
	youtubeapi "google.golang.org/api/youtube/v3"
)

// The Data API reports several thumbnail resolutions; medium is
// preferred, default kept as fallback for channels that predate it.
func thumbnailURL(thumbnails *youtubeapi.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.Medium != nil && thumbnails.Medium.Url != "" {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}
	return ""
}

func candidateFromChannel(channel *youtubeapi.Channel) Candidate {
	candidate := Candidate{ID: channel.Id}
	if channel.Snippet != nil {
		candidate.Name = channel.Snippet.Title
		candidate.Thumbnail = thumbnailURL(channel.Snippet.Thumbnails)
	}
	return candidate
}

func candidateFromSearchResult(item *youtubeapi.SearchResult) Candidate {
	var candidate Candidate
	if item.Snippet != nil {
		candidate.ID = item.Snippet.ChannelId
		candidate.Name = item.Snippet.Title
		candidate.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
	}
	return candidate
}

func videoFromSearchResult(item *youtubeapi.SearchResult) Video {
	video := Video{
		ID:  item.Id.VideoId,
		URL: WatchURL(item.Id.VideoId),
	}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
		video.ChannelID = item.Snippet.ChannelId
		video.ChannelTitle = item.Snippet.ChannelTitle
		video.PublishedAt = item.Snippet.PublishedAt
	}
	return video
}

// WatchURL builds the public watch page URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
