package api

import (
	"context"
	"sync"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/profile"
)

type ProfileManagerInterface interface {
	List() ([]string, error)
	Get(name string) (*profile.Profile, error)
}

type PreviewerInterface interface {
	Preview(ctx context.Context, target digest.Target, templateID string) (string, *digest.Context, error)
}

var (
	_ ProfileManagerInterface = (*profile.Manager)(nil)
	_ PreviewerInterface      = (*digest.Assembler)(nil)
)

type Handler struct {
	profiles  ProfileManagerInterface
	previewer PreviewerInterface
	renderer  digest.Renderer
	version   string

	// runs holds one *sync.Mutex per profile name; a profile has at most
	// one pipeline run in flight.
	runs sync.Map
}

type FeedInfo struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type CategoryInfo struct {
	Name  string     `json:"name"`
	Feeds []FeedInfo `json:"feeds"`
}

type ProfileInfo struct {
	Name       string `json:"name"`
	Feeds      int    `json:"feeds"`
	Categories int    `json:"categories"`
	LastDigest string `json:"last_digest,omitempty"`
}
