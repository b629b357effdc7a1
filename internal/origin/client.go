// Package origin talks to the upstream sports-data provider. All responses
// flow into the cache layers; nothing here is served to callers directly.
package origin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/goalline/sportscache/internal/adapter"
	"github.com/goalline/sportscache/internal/domain"
)

// imagePathByKind maps asset kinds to the provider's media URL segments
var imagePathByKind = map[domain.AssetKind]string{
	domain.AssetKindPlayerPhoto: "players",
	domain.AssetKindCoachPhoto:  "coachs",
	domain.AssetKindTeamLogo:    "teams",
	domain.AssetKindLeagueLogo:  "leagues",
	domain.AssetKindVenuePhoto:  "venues",
}

// Client defines the origin operations the cache layers depend on
//
//go:generate mockgen -source=client.go -destination=../mocks/origin.go -package=mocks -mock_names=Client=MockOriginClient
type Client interface {
	// FetchJSON performs a data API request and returns the raw response body
	FetchJSON(ctx context.Context, path string, params map[string]string) (json.RawMessage, error)
	// FetchImage downloads the source image for an asset
	FetchImage(ctx context.Context, kind domain.AssetKind, entityID int64) ([]byte, error)
	// ImageURL returns the provider URL an asset's source image lives at
	ImageURL(kind domain.AssetKind, entityID int64) string
}

// Config holds origin client settings
type Config struct {
	BaseURL      string
	MediaBaseURL string
	APIKey       string
	ImageTimeout time.Duration
}

type client struct {
	http adapter.HTTPClient
	cfg  Config
}

// NewClient creates an origin client on top of the shared HTTP adapter
func NewClient(httpClient adapter.HTTPClient, cfg Config) Client {
	return &client{
		http: httpClient,
		cfg:  cfg,
	}
}

// FetchJSON performs a data API request and returns the raw response body.
// Query parameters are sorted so identical requests produce identical URLs.
func (c *client) FetchJSON(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.cfg.BaseURL, "/"), strings.TrimLeft(path, "/"))
	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for key := range params {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		values := url.Values{}
		for _, key := range keys {
			values.Set(key, params[key])
		}
		endpoint = endpoint + "?" + values.Encode()
	}

	body, err := c.http.GetBytes(ctx, endpoint, c.headers())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrOriginUnavailable, path, err)
	}

	return json.RawMessage(body), nil
}

// FetchImage downloads the source image for an asset
func (c *client) FetchImage(ctx context.Context, kind domain.AssetKind, entityID int64) ([]byte, error) {
	if !kind.Valid() || entityID <= 0 {
		return nil, fmt.Errorf("%w: %s/%d", domain.ErrInvalidSubject, kind, entityID)
	}

	if c.cfg.ImageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ImageTimeout)
		defer cancel()
	}

	data, err := c.http.GetBytes(ctx, c.ImageURL(kind, entityID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: image %s/%d: %v", domain.ErrOriginUnavailable, kind, entityID, err)
	}

	return data, nil
}

// ImageURL returns the provider URL an asset's source image lives at
func (c *client) ImageURL(kind domain.AssetKind, entityID int64) string {
	return fmt.Sprintf("%s/%s/%d.png", strings.TrimRight(c.cfg.MediaBaseURL, "/"), imagePathByKind[kind], entityID)
}

func (c *client) headers() map[string]string {
	if c.cfg.APIKey == "" {
		return nil
	}
	return map[string]string{"x-apisports-key": c.cfg.APIKey}
}
