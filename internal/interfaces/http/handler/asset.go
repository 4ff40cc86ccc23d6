package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appasset "github.com/ongcompta/backend/internal/application/asset"
	"github.com/ongcompta/backend/internal/domain/asset"
	"github.com/ongcompta/backend/internal/interfaces/http/dto"
)

// AssetHandler exposes the fixed asset register and depreciation runs
type AssetHandler struct {
	BaseHandler
	service *appasset.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(service *appasset.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// RegisterRoutes registers asset routes
func (h *AssetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assets := rg.Group("/assets")
	{
		assets.POST("", h.Register)
		assets.GET("", h.List)
		assets.GET("/:id", h.Get)
		assets.POST("/:id/depreciate", h.Depreciate)
		assets.POST("/:id/dispose", h.Dispose)
		assets.POST("/depreciate", h.DepreciateYear)
	}
}

// Register records an asset in the register
func (h *AssetHandler) Register(c *gin.Context) {
	var req appasset.RegisterAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.RegisterAsset(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Depreciate computes the depreciation line of one asset for one year
func (h *AssetHandler) Depreciate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.ComputeDepreciation(c.Request.Context(), id, year, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DepreciateYear runs depreciation over all active assets for one year
func (h *AssetHandler) DepreciateYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.ComputeYear(c.Request.Context(), year, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Dispose records the sale or scrapping of an asset
func (h *AssetHandler) Dispose(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appasset.DisposeAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	req.Actor = actor(c)

	resp, err := h.service.DisposeAsset(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one asset with its depreciation schedule
func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetAsset(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists assets with pagination and filters
func (h *AssetHandler) List(c *gin.Context) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, err)
		return
	}
	filter := asset.Filter{Filter: list.ToFilter()}

	var parseErr error
	filter.ProjectID = queryUUID(c, "project_id", &parseErr)
	if parseErr != nil {
		h.BadRequest(c, parseErr)
		return
	}
	if v := c.Query("category"); v != "" {
		category := asset.Category(v)
		filter.Category = &category
	}
	if v := c.Query("status"); v != "" {
		status := asset.Status(v)
		filter.Status = &status
	}

	page, err := h.service.ListAssets(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}
