package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gatorkeys/internal/httputil"
	"gatorkeys/internal/listing"
	"gatorkeys/internal/middleware"
	appErrors "gatorkeys/pkg/errors"
)

type ListingHandler struct {
	uc listing.ListingUsecase
}

func NewListingHandler(uc listing.ListingUsecase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

type listingRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Rent        int     `json:"rent"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   float64 `json:"bathrooms"`
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.uc.Create(c.Request.Context(), listing.CreateListingCommand{
		OwnerID:     middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Rent:        req.Rent,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, appErrors.InvalidArg("invalid listing id"))
		return
	}
	dto, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ListingHandler) List(c *gin.Context) {
	var f listing.Filter
	if v := c.Query("max_rent"); v != "" {
		f.MaxRent, _ = strconv.Atoi(v)
	}
	if v := c.Query("min_bedrooms"); v != "" {
		f.MinBedrooms, _ = strconv.Atoi(v)
	}
	listings, err := h.uc.List(c.Request.Context(), f)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

func (h *ListingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, appErrors.InvalidArg("invalid listing id"))
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.uc.Update(c.Request.Context(), listing.UpdateListingCommand{
		ID:          id,
		OwnerID:     middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Rent:        req.Rent,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, appErrors.InvalidArg("invalid listing id"))
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
