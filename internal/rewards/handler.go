package rewards

import (
	"errors"
	"net/http"

	"ecospot/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Get rewards summary
// @Tags         rewards
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} SummaryResponse
// @Failure      401 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /rewards/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rewards summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary      List reward catalog
// @Tags         rewards
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} Reward
// @Router       /rewards/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Catalog())
}

// @Summary      List redemption history
// @Tags         rewards
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} RedemptionRecord
// @Failure      401 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /rewards/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	records, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load redemption history"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// @Summary      Convert points to wallet credits
// @Tags         rewards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ConvertRequest true "Conversion payload"
// @Success      200 {object} gin.H
// @Failure      400 {object} gin.H
// @Failure      401 {object} gin.H
// @Failure      422 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /rewards/convert [post]
func (h *Handler) Convert(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Points <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points must be a positive integer"})
		return
	}

	rec, err := h.service.ConvertToWallet(c.Request.Context(), userID, req.Points)
	if err != nil {
		h.writeConvertError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "points converted",
		"redemption": rec,
	})
}

func (h *Handler) writeConvertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotEligible),
		errors.Is(err, ErrBelowMinimum),
		errors.Is(err, ErrInsufficientPoints),
		errors.Is(err, ErrMonthlyCapExceeded),
		errors.Is(err, ErrNotAnIncrement):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": RejectMessage(err)})
	case errors.Is(err, ErrLedgerAppendFailed):
		// Credits were granted. Surface that rather than a plain failure.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "credits were added to your wallet but recording the conversion failed; support has been notified",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to convert points"})
	}
}

// @Summary      Redeem a catalog reward
// @Tags         rewards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body RedeemRequest true "Redemption payload"
// @Success      200 {object} gin.H
// @Failure      400 {object} gin.H
// @Failure      401 {object} gin.H
// @Failure      404 {object} gin.H
// @Failure      422 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /rewards/redeem [post]
func (h *Handler) Redeem(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reward_id is required"})
		return
	}

	rec, err := h.service.RedeemReward(c.Request.Context(), userID, req.RewardID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
		case errors.Is(err, ErrInsufficientPoints):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": RejectMessage(err)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem reward"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "reward redeemed",
		"redemption": rec,
	})
}
