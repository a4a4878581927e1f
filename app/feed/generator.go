// Package feed renders an aggregated video sequence as RSS 2.0 so a
// channel scope can be subscribed to from any feed reader.
package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/okhotin/tubedeck/app/cfg"
	"github.com/okhotin/tubedeck/app/youtube"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders the videos of one feed scope. scopePath is the request
// path of the feed itself, used for the atom:self link.
func (g *Generator) Run(title, scopePath string, videos []youtube.Video) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", title, 4)
	g.writeElement(&buf, "link", "https://www.youtube.com", 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Latest videos aggregated by TubeDeck: %s", title), 4)

	var selfLink string
	if cfg.Get().BaseUrl != "" {
		selfLink = cfg.Get().BaseUrl + scopePath
	} else {
		selfLink = fmt.Sprintf("http://localhost:%s%s", cfg.Get().Port, scopePath)
	}
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	lastBuildDate := time.Now().In(time.Local)
	if len(videos) > 0 {
		if published, err := time.Parse(time.RFC3339, videos[0].PublishedAt); err == nil {
			lastBuildDate = published
		}
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("TubeDeck/%s", cfg.Get().Version), 4)

	for _, video := range videos {
		g.writeItem(&buf, video)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, video youtube.Video) {
	buf.WriteString("    <item>\n")

	buf.WriteString(`      <guid isPermaLink="false">`)
	xml.EscapeText(buf, []byte(video.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", video.Title, 6)
	g.writeElement(buf, "link", video.URL, 6)

	description := video.Description
	if description == "" {
		description = "No description available"
	}
	g.writeElement(buf, "description", description, 6)

	if published, err := time.Parse(time.RFC3339, video.PublishedAt); err == nil {
		g.writeElement(buf, "pubDate", published.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "category", video.ChannelTitle, 6)

	if video.Thumbnail != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"image/jpeg\" />\n",
			html.EscapeString(video.Thumbnail)))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
