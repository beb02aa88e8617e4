package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

// LotteryService defines draw lifecycle operations.
type LotteryService interface {
	OpenNewRound(ctx context.Context, admin model.User) (model.Round, error)
	RevealMasterDraw(ctx context.Context, admin model.User) (model.DrawView, error)
	CloseRound(ctx context.Context, admin model.User) (model.CloseResult, error)
	SubmitDraw(ctx context.Context, participant model.User, values []int) (model.DrawView, error)
	PlayableDraws(ctx context.Context, participant model.User) ([]model.DrawView, error)
	PlayedDraws(ctx context.Context, participant model.User) ([]model.DrawView, error)
	ClearPlayed(ctx context.Context, participant model.User) (int, error)
}

// Lottery handles draw endpoints for participants and administrators.
type Lottery struct {
	lotteryService LotteryService
	logger         *logger.Logger
}

// NewLottery creates a new Lottery handler.
func NewLottery(lotteryService LotteryService, logger *logger.Logger) *Lottery {
	return &Lottery{lotteryService: lotteryService, logger: logger}
}

type submitDrawRequest struct {
	Numbers []int `json:"numbers" binding:"required"`
}

type drawsResponse struct {
	Draws []model.DrawView `json:"draws"`
}

type closeRoundResponse struct {
	model.CloseResult
	Error string `json:"error,omitempty"`
}

// SubmitDraw stores the caller's entry for the current round.
func (h *Lottery) SubmitDraw(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req submitDrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "numbers must be a list of six integers")
		return
	}

	view, err := h.lotteryService.SubmitDraw(c.Request.Context(), user, req.Numbers)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// PlayableDraws lists the caller's entries awaiting a close.
func (h *Lottery) PlayableDraws(c *gin.Context) {
	h.listDraws(c, h.lotteryService.PlayableDraws)
}

// PlayedDraws lists the caller's settled entries.
func (h *Lottery) PlayedDraws(c *gin.Context) {
	h.listDraws(c, h.lotteryService.PlayedDraws)
}

func (h *Lottery) listDraws(c *gin.Context, list func(context.Context, model.User) ([]model.DrawView, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := list(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	if views == nil {
		views = []model.DrawView{}
	}
	c.JSON(http.StatusOK, drawsResponse{Draws: views})
}

// ClearPlayed deletes the caller's settled entries.
func (h *Lottery) ClearPlayed(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	n, err := h.lotteryService.ClearPlayed(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// OpenRound generates a new master draw.
func (h *Lottery) OpenRound(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	round, err := h.lotteryService.OpenNewRound(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

// RevealMaster shows the current master draw.
func (h *Lottery) RevealMaster(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := h.lotteryService.RevealMasterDraw(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseRound plays the current round and reports winners.
func (h *Lottery) CloseRound(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.lotteryService.CloseRound(c.Request.Context(), user)
	if err != nil && errors.Is(err, model.ErrDecryption) && len(result.Voided) > 0 {
		// The round is closed; only the voided entries are lost.
		h.logger.Warn("lottery handler: round closed with voided entries",
			"round", result.Round,
			"settled", result.Settled,
			"voided", result.Voided,
			"error", err)
		for _, w := range result.Winners {
			h.logger.Info("lottery handler: winner", "round", w.Round, "user_id", w.OwnerID, "email", w.Email)
		}
		c.JSON(http.StatusOK, closeRoundResponse{CloseResult: result, Error: "some entries could not be decrypted and were voided"})
		return
	}
	if err != nil {
		h.logger.Error("lottery handler: close round failed", "round", result.Round, "error", err)
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, closeRoundResponse{CloseResult: result})
}
