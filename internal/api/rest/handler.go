package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goalline/sportscache/internal/datacache"
	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/origin"
)

// DataCache is the slice of the data cache the handlers depend on
type DataCache interface {
	GetOrFetch(ctx context.Context, subjectID int64, kind domain.DataKind, season int, fetch datacache.FetchFunc) (json.RawMessage, error)
}

// AssetResolver is the slice of the asset service the handlers depend on
type AssetResolver interface {
	ResolveOne(ctx context.Context, kind domain.AssetKind, entityID int64) (string, error)
	ResolveMany(ctx context.Context, kind domain.AssetKind, entityIDs []int64) (map[int64]string, error)
}

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetData returns the cached payload for one subject
	// GET /v1/data/:kind/:id?season=<season>
	GetData(c *gin.Context)

	// GetAsset returns the servable image URL for one entity
	// GET /v1/assets/:kind/:id
	GetAsset(c *gin.Context)

	// GetAssets returns servable image URLs for a batch of entities
	// GET /v1/assets/:kind?ids=<id1>,<id2>,...
	GetAssets(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /healthz
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	data   DataCache
	origin origin.Client
	assets AssetResolver
}

// NewHandler creates a new REST API handler
func NewHandler(data DataCache, originClient origin.Client, assets AssetResolver) Handler {
	return &handler{
		data:   data,
		origin: originClient,
		assets: assets,
	}
}

// assetResponse carries one resolved URL
type assetResponse struct {
	URL string `json:"url"`
}

// assetBatchResponse carries resolved URLs keyed by entity ID
type assetBatchResponse struct {
	URLs map[int64]string `json:"urls"`
}

// GetData returns the cached payload for one subject
func (h *handler) GetData(c *gin.Context) {
	kind := domain.DataKind(c.Param("kind"))
	subjectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid subject ID")
		return
	}

	season := 0
	if raw := c.Query("season"); raw != "" {
		season, err = strconv.Atoi(raw)
		if err != nil || season < 0 {
			respondBadRequest(c, "Invalid season")
			return
		}
	}

	req, err := origin.RequestFor(kind, subjectID, season)
	if err != nil {
		respondBadRequest(c, "Unknown data kind")
		return
	}

	payload, err := h.data.GetOrFetch(c.Request.Context(), subjectID, kind, season,
		func(ctx context.Context) (json.RawMessage, error) {
			return h.origin.FetchJSON(ctx, req.Path, req.Params)
		})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSubject):
			respondBadRequest(c, "Invalid subject")
		case errors.Is(err, domain.ErrOriginUnavailable):
			// Only reachable when there is no stored record to fall back to
			respondBadGateway(c, "Origin unavailable")
		default:
			respondInternalError(c, err, "Failed to get data")
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// GetAsset returns the servable image URL for one entity
func (h *handler) GetAsset(c *gin.Context) {
	kind := domain.AssetKind(c.Param("kind"))
	entityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid entity ID")
		return
	}

	url, err := h.assets.ResolveOne(c.Request.Context(), kind, entityID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSubject) {
			respondBadRequest(c, "Invalid asset subject")
			return
		}
		respondInternalError(c, err, "Failed to resolve asset")
		return
	}

	c.JSON(http.StatusOK, assetResponse{URL: url})
}

// GetAssets returns servable image URLs for a batch of entities
func (h *handler) GetAssets(c *gin.Context) {
	kind := domain.AssetKind(c.Param("kind"))

	raw := c.Query("ids")
	if raw == "" {
		respondBadRequest(c, "Query parameter ids is required")
		return
	}

	parts := strings.Split(raw, ",")
	entityIDs := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			respondBadRequest(c, "Invalid entity ID", part)
			return
		}
		entityIDs = append(entityIDs, id)
	}

	urls, err := h.assets.ResolveMany(c.Request.Context(), kind, entityIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSubject) {
			respondBadRequest(c, "Invalid asset kind")
			return
		}
		respondInternalError(c, err, "Failed to resolve assets")
		return
	}

	c.JSON(http.StatusOK, assetBatchResponse{URLs: urls})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
