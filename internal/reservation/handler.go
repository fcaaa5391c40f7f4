package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"ecospot/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Reserve a parking window
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        windowID path int true "Window ID"
// @Param        request body ReserveRequest false "Optional trip data"
// @Success      201 {object} Reservation
// @Failure      400 {object} gin.H
// @Failure      401 {object} gin.H
// @Failure      402 {object} gin.H
// @Failure      409 {object} gin.H
// @Router       /windows/{windowID}/reserve [post]
func (h *Handler) Reserve(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	windowID, err := strconv.Atoi(c.Param("windowID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window id"})
		return
	}

	var req ReserveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip data"})
			return
		}
	}

	res, err := h.service.Reserve(c.Request.Context(), userID, windowID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrWindowNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		case errors.Is(err, ErrWindowInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot reserve a window in the past"})
		case errors.Is(err, ErrWindowFull):
			c.JSON(http.StatusConflict, gin.H{"error": "window is full"})
		case errors.Is(err, ErrAlreadyReserved):
			c.JSON(http.StatusConflict, gin.H{"error": "you already have a reservation for this window"})
		case errors.Is(err, ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient wallet balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reservation"})
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}

// @Summary      Cancel a reservation
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Reservation ID"
// @Success      200 {object} gin.H
// @Failure      400 {object} gin.H
// @Failure      401 {object} gin.H
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Router       /reservations/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reservationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, reservationID); err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "can only cancel own reservations"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled"})
}

// @Summary      List own reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} ReservationWithDetails
// @Failure      401 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /reservations [get]
func (h *Handler) GetMyReservations(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reservations, err := h.service.GetUserReservations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// @Summary      List reservations for a window
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        windowID path int true "Window ID"
// @Success      200 {array} ReservationWithDetails
// @Failure      400 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /admin/windows/{windowID}/reservations [get]
func (h *Handler) GetByWindow(c *gin.Context) {
	windowID, err := strconv.Atoi(c.Param("windowID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window id"})
		return
	}

	reservations, err := h.service.GetReservationsByWindow(c.Request.Context(), windowID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// @Summary      List reservations for a spot
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        spotID path int true "Spot ID"
// @Success      200 {array} ReservationWithDetails
// @Failure      400 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /admin/spots/{spotID}/reservations [get]
func (h *Handler) GetBySpot(c *gin.Context) {
	spotID, err := strconv.Atoi(c.Param("spotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
		return
	}

	reservations, err := h.service.GetReservationsBySpot(c.Request.Context(), spotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}
