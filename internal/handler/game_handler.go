package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pct-cclausen/huntkeeper/internal/service"
	"github.com/pct-cclausen/huntkeeper/pkg/response"
)

type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type AddPointsRequest struct {
	JWTScanned string `json:"jwtScanned" binding:"required"`
	GroupName  string `json:"groupName" binding:"required"`
}

type CreateQRCodeRequest struct {
	Description string `json:"description" binding:"required"`
	Points      int    `json:"points"`
	Key         string `json:"key" binding:"required"`
}

// Highscores returns the leaderboard as a bare array, highest total first.
func (h *GameHandler) Highscores(c *gin.Context) {
	response.Raw(c, h.gameService.Standings(c.Request.Context()))
}

// AddPoints redeems a scanned token for a group. Forged tokens and unknown
// codes are not HTTP errors; the scanner reads the empty result and shows
// "nothing happened".
func (h *GameHandler) AddPoints(c *gin.Context) {
	var req AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.gameService.Redeem(c.Request.Context(), req.JWTScanned, req.GroupName)
	if err != nil {
		response.InternalError(c, "failed to record scan")
		return
	}

	response.Raw(c, result)
}

// CreateQRCode registers a new code and returns its signed token. Guarded by
// the shared game password.
func (h *GameHandler) CreateQRCode(c *gin.Context) {
	var req CreateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	_, signed, err := h.gameService.Issue(c.Request.Context(), req.Description, req.Points, req.Key)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			response.Unauthorized(c, "invalid game password")
			return
		}
		response.InternalError(c, "failed to create qr code")
		return
	}

	response.Raw(c, signed)
}
