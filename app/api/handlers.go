package api

import (
	"bytes"
	"cmp"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/output"
	"github.com/lysyi3m/rss-digest/app/profile"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
	"github.com/samber/lo"
)

func NewHandler(profiles ProfileManagerInterface, previewer PreviewerInterface,
	renderer digest.Renderer, version string) *Handler {
	return &Handler{
		profiles:  profiles,
		previewer: previewer,
		renderer:  renderer,
		version:   version,
	}
}

// statusFor maps sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, subscriptions.ErrFeedNotFound),
		errors.Is(err, subscriptions.ErrCategoryNotFound),
		errors.Is(err, output.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrProfileExists),
		errors.Is(err, subscriptions.ErrFeedExists),
		errors.Is(err, subscriptions.ErrCategoryExists):
		return http.StatusConflict
	case errors.Is(err, digest.ErrBadConfiguration),
		errors.Is(err, profile.ErrInvalidName),
		errors.Is(err, subscriptions.ErrBadFormat),
		errors.Is(err, subscriptions.ErrEmptyURL),
		errors.Is(err, subscriptions.ErrIncompleteQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, operation string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "operation", operation, "path", c.Request.URL.Path, "error", err)
	} else {
		slog.Debug("Request rejected", "operation", operation, "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) loadProfile(c *gin.Context) (*profile.Profile, bool) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing profile name parameter"})
		return nil, false
	}

	p, err := h.profiles.Get(name)
	if err != nil {
		abortWithError(c, "get_profile", err)
		return nil, false
	}
	return p, true
}

func (h *Handler) lockProfile(name string) func() {
	mu, _ := h.runs.LoadOrStore(name, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if names, err := h.profiles.List(); err == nil {
		health["profiles"] = len(names)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	names, err := h.profiles.List()
	if err != nil {
		abortWithError(c, "list_profiles", err)
		return
	}

	profiles := make([]ProfileInfo, 0, len(names))
	for _, name := range names {
		p, err := h.profiles.Get(name)
		if err != nil {
			slog.Warn("Skipping unreadable profile", "profile", name, "error", err)
			continue
		}

		info := ProfileInfo{
			Name:       name,
			Feeds:      p.List().Len(),
			Categories: len(p.List().CategoryNames()),
		}
		if last, err := p.LastDigest(); err == nil && last != nil {
			info.LastDigest = last.Format(time.RFC3339)
		}
		profiles = append(profiles, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"total":    len(profiles),
	})
}

func (h *Handler) ListFeeds(c *gin.Context) {
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}

	categories := lo.Map(p.List().Categories(), func(cat subscriptions.Category, _ int) CategoryInfo {
		return CategoryInfo{
			Name: cat.Name,
			Feeds: lo.Map(cat.Feeds, func(f subscriptions.Feed, _ int) FeedInfo {
				return FeedInfo{URL: f.XMLURL, Title: f.Title, Category: f.Category}
			}),
		}
	})

	c.JSON(http.StatusOK, gin.H{
		"profile":    p.Name(),
		"categories": categories,
		"total":      p.List().Len(),
	})
}

func (h *Handler) GetOPML(c *gin.Context) {
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := p.List().Write(&buf); err != nil {
		abortWithError(c, "write_opml", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+p.Name()+`.opml"`)
	c.Data(http.StatusOK, "text/x-opml; charset=utf-8", buf.Bytes())
}

// PreviewDigest renders the digest the profile would receive now without
// sending it or marking entries read.
func (h *Handler) PreviewDigest(c *gin.Context) {
	unlock := h.lockProfile(c.Param("name"))
	defer unlock()

	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	defer p.Close()

	body, result, err := h.previewer.Preview(c.Request.Context(), p, c.Query("template"))
	if err != nil {
		abortWithError(c, "preview_digest", err)
		return
	}

	setting, _ := p.Settings().String("template")
	templateID := cmp.Or(c.Query("template"), setting, digest.DefaultTemplate)

	c.Header("X-Digest-Entries", strconv.Itoa(result.UpdatedEntriesCount()))
	c.Header("X-Digest-Feeds", strconv.Itoa(result.UpdatedFeedsCount()))
	c.Data(http.StatusOK, h.renderer.ContentType(templateID), []byte(body))
}
