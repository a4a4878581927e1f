package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okhotin/tubedeck/app/cfg"
	"github.com/okhotin/tubedeck/app/errs"
	"github.com/okhotin/tubedeck/app/library"
	"github.com/okhotin/tubedeck/app/store"
)

func NewHandler(lib *library.Library, res ResolverInterface,
	agg AggregatorInterface, gen GeneratorInterface) *Handler {
	return &Handler{
		library:    lib,
		resolver:   res,
		aggregator: agg,
		generator:  gen,
	}
}

// YouTubeAction is the compatibility endpoint exposing the resolver
// and aggregator behind one action-dispatched query surface.
func (h *Handler) YouTubeAction(c *gin.Context) {
	switch c.Query("action") {
	case "searchChannel":
		h.actionSearchChannel(c)
	case "getChannelById":
		h.actionGetChannelByID(c)
	case "getVideos":
		h.actionGetVideos(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}

func (h *Handler) actionSearchChannel(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	channels, err := h.resolver.Resolve(c.Request.Context(), query)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

func (h *Handler) actionGetChannelByID(c *gin.Context) {
	channelID := c.Query("channelId")
	if channelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Channel ID is required"})
		return
	}

	channel, err := h.resolver.ResolveByID(c.Request.Context(), channelID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, channel)
}

func (h *Handler) actionGetVideos(c *gin.Context) {
	channelIDs := c.Query("channelIds")
	if channelIDs == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Channel IDs are required"})
		return
	}

	videos, err := h.aggregator.Fetch(c.Request.Context(), splitChannelIDs(channelIDs))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *Handler) ListChannels(c *gin.Context) {
	var channels []store.Channel
	switch folder := c.Query("folder"); folder {
	case "":
		channels = h.library.Channels()
	case "root":
		channels = h.library.ChannelsInFolder(nil)
	default:
		channels = h.library.ChannelsInFolder(&folder)
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": channels,
		"total":    len(channels),
	})
}

type createChannelRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Thumbnail string  `json:"thumbnail"`
	FolderID  *string `json:"folderId"`
}

// CreateChannel adds an accepted candidate to the library. When only
// an id is supplied, the channel metadata is resolved upstream first.
func (h *Handler) CreateChannel(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name == "" {
		candidate, err := h.resolver.ResolveByID(c.Request.Context(), req.ID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		req.Name = candidate.Name
		if req.Thumbnail == "" {
			req.Thumbnail = candidate.Thumbnail
		}
	}

	channel := store.Channel{
		ID:        req.ID,
		Name:      req.Name,
		Thumbnail: req.Thumbnail,
		FolderID:  req.FolderID,
	}
	if err := h.library.AddChannel(channel); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, channel)
}

type assignChannelRequest struct {
	FolderID *string `json:"folderId"`
}

// AssignChannel moves a channel into a folder; a null or absent
// folderId moves it to the root.
func (h *Handler) AssignChannel(c *gin.Context) {
	id := c.Param("id")

	var req assignChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !h.channelExists(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
		return
	}

	if err := h.library.AssignChannel(id, req.FolderID); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) DeleteChannel(c *gin.Context) {
	h.library.RemoveChannel(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListFolders(c *gin.Context) {
	folders := h.library.Folders()
	c.JSON(http.StatusOK, gin.H{
		"folders": folders,
		"total":   len(folders),
	})
}

type createFolderRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	folder, err := h.library.CreateFolder(req.Name)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, folder)
}

func (h *Handler) DeleteFolder(c *gin.Context) {
	h.library.DeleteFolder(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetVideos returns the aggregated feed for a channel scope:
// scope=all (default), scope=root for unfoldered channels, or
// scope=folder with folder=<id>.
func (h *Handler) GetVideos(c *gin.Context) {
	channelIDs, ok := h.scopeChannelIDs(c)
	if !ok {
		return
	}

	videos, err := h.aggregator.Fetch(c.Request.Context(), channelIDs)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *Handler) FeedAll(c *gin.Context) {
	h.renderFeed(c, "All channels", h.library.ChannelIDs(nil, true))
}

func (h *Handler) FeedRoot(c *gin.Context) {
	h.renderFeed(c, "Unfoldered channels", h.library.ChannelIDs(nil, false))
}

func (h *Handler) FeedFolder(c *gin.Context) {
	id := strings.TrimSuffix(c.Param("id"), ".xml")

	title := ""
	for _, folder := range h.library.Folders() {
		if folder.ID == id {
			title = folder.Name
			break
		}
	}
	if title == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}

	h.renderFeed(c, title, h.library.ChannelIDs(&id, false))
}

func (h *Handler) renderFeed(c *gin.Context, title string, channelIDs []string) {
	videos, err := h.aggregator.Fetch(c.Request.Context(), channelIDs)
	if err != nil {
		h.renderError(c, err)
		return
	}

	rss, err := h.generator.Run(title, c.Request.URL.Path, videos)
	if err != nil {
		slog.Error("Feed generation failed", "scope", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate feed"})
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  cfg.Get().Version,
		"channels": len(h.library.Channels()),
		"folders":  len(h.library.Folders()),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	channels := h.library.Channels()
	folders := h.library.Folders()

	perFolder := make([]gin.H, 0, len(folders))
	for _, folder := range folders {
		perFolder = append(perFolder, gin.H{
			"id":       folder.ID,
			"name":     folder.Name,
			"channels": len(h.library.ChannelsInFolder(&folder.ID)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"channels":   len(channels),
		"folders":    perFolder,
		"unfoldered": len(h.library.ChannelsInFolder(nil)),
	})
}

// scopeChannelIDs resolves the scope/folder query parameters of a feed
// request. On a bad scope it writes the error response itself.
func (h *Handler) scopeChannelIDs(c *gin.Context) ([]string, bool) {
	switch scope := c.DefaultQuery("scope", "all"); scope {
	case "all":
		return h.library.ChannelIDs(nil, true), true
	case "root":
		return h.library.ChannelIDs(nil, false), true
	case "folder":
		folder := c.Query("folder")
		if folder == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder ID is required"})
			return nil, false
		}
		return h.library.ChannelIDs(&folder, false), true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return nil, false
	}
}

func (h *Handler) channelExists(id string) bool {
	for _, channel := range h.library.Channels() {
		if channel.ID == id {
			return true
		}
	}
	return false
}

// renderError maps the shared error taxonomy onto HTTP statuses:
// validation failures are bad requests, a missing credential is a
// server misconfiguration, upstream failures keep their proxied
// status, and missed lookups are 404s.
func (h *Handler) renderError(c *gin.Context, err error) {
	var validationErr *errs.ValidationError
	var upstreamErr *errs.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrMissingAPIKey):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		slog.Error("Upstream request failed", "status", status, "error", upstreamErr.Message)
		c.JSON(status, gin.H{"error": upstreamErr.Message})
	default:
		slog.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func splitChannelIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
