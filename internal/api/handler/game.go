package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/questlab/questmaster/internal/api/request"
	"github.com/questlab/questmaster/internal/api/response"
	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/services/game"
	"github.com/questlab/questmaster/internal/services/leaderboard"
)

// GameHandler handles question asking and leaderboard reads
type GameHandler struct {
	gameController     *game.Controller
	leaderboardService *leaderboard.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, leaderboardService *leaderboard.Service) *GameHandler {
	return &GameHandler{
		gameController:     gameController,
		leaderboardService: leaderboardService,
	}
}

// AskQuestion handles POST /api/v1/lobbies/{pin}/questions
func (h *GameHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req request.AskQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.UserID == "" {
		WriteError(w, NewInvalidRequestError("user_id is required"))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteError(w, NewInvalidRequestError("question is required"))
		return
	}

	result, err := h.gameController.ProcessQuestion(r.Context(), pinVar(r), model.UserID(req.UserID), req.Question)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AskQuestionResponse{
		QuestionID: string(result.QuestionID),
		Response:   result.Response.Text(),
		Message:    result.Message,
	})
}

// Leaderboard handles GET /api/v1/lobbies/{pin}/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	pin := pinVar(r)

	entries, err := h.leaderboardService.Compute(r.Context(), pin)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(pin, entries))
}
