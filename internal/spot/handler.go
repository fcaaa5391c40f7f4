package spot

import (
	"net/http"
	"strconv"
	"strings"

	"ecospot/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a parking spot
// @Description  Admin-only: register a new parking spot
// @Tags         admin,spots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body spot.CreateSpotRequest true "Spot payload"
// @Success      201 {object} spot.Spot
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/spots [post]
func (h *Handler) CreateSpot(c *gin.Context) {
	var req CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	spot, err := h.service.CreateSpot(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create spot"})
		return
	}

	c.JSON(http.StatusCreated, spot)
}

// @Summary      List parking spots
// @Tags         spots,admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} spot.Spot
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /spots [get]
// @Router       /admin/spots [get]
func (h *Handler) ListSpots(c *gin.Context) {
	ctx := c.Request.Context()
	spots, err := h.service.GetAllSpots(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch spots"})
		return
	}

	c.JSON(http.StatusOK, spots)
}

// @Summary      Create a time window
// @Description  Admin-only: open a bookable time window on a spot
// @Tags         admin,spots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        spotID path int true "Spot ID"
// @Param        request body spot.CreateWindowRequest true "Window payload"
// @Success      201 {object} spot.Window
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/spots/{spotID}/windows [post]
func (h *Handler) CreateWindow(c *gin.Context) {
	spotIDStr := c.Param("spotID")
	spotID, err := strconv.Atoi(spotIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid spot ID"})
		return
	}

	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	window, err := h.service.CreateWindow(ctx, spotID, req)
	if err != nil {
		switch err {
		case ErrSpotNotFound:
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Spot not found"})
		case ErrWindowInvalid:
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid window data"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create window"})
		}
		return
	}

	c.JSON(http.StatusCreated, window)
}

// @Summary      List time windows for a spot
// @Tags         spots,admin
// @Produce      json
// @Security     BearerAuth
// @Param        spotID path int true "Spot ID"
// @Success      200 {array} spot.WindowWithAvailability
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /spots/{spotID}/windows [get]
// @Router       /admin/spots/{spotID}/windows [get]
func (h *Handler) ListWindows(c *gin.Context) {
	spotIDStr := c.Param("spotID")
	spotID, err := strconv.Atoi(spotIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid spot ID"})
		return
	}

	ctx := c.Request.Context()
	onlyFuture := !strings.Contains(c.Request.URL.Path, "/admin/")
	windows, err := h.service.GetWindows(ctx, spotID, onlyFuture)
	if err != nil {
		switch err {
		case ErrSpotNotFound:
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Spot not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch windows"})
		}
		return
	}

	c.JSON(http.StatusOK, windows)
}
