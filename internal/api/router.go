package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/questlab/questmaster/internal/api/handler"
	"github.com/questlab/questmaster/internal/api/middleware"
	"github.com/questlab/questmaster/internal/services/game"
	"github.com/questlab/questmaster/internal/services/leaderboard"
	"github.com/questlab/questmaster/internal/services/lobby"
	"github.com/questlab/questmaster/internal/services/qr"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	LobbyController    *lobby.Controller
	GameController     *game.Controller
	LeaderboardService *leaderboard.Service
	QRService          *qr.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	lobbyHandler := handler.NewLobbyHandler(cfg.LobbyController, cfg.QRService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.LeaderboardService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Lobby lifecycle and membership.
	// Identity rides in request payloads: there are no accounts, possession
	// of the PIN plus a generated user id is the whole access model.
	lobbies := api.PathPrefix("/lobbies").Subrouter()
	lobbies.HandleFunc("", lobbyHandler.Create).Methods(http.MethodPost)
	lobbies.HandleFunc("/{pin}", lobbyHandler.Get).Methods(http.MethodGet)
	lobbies.HandleFunc("/{pin}", lobbyHandler.Delete).Methods(http.MethodDelete)
	lobbies.HandleFunc("/{pin}/join", lobbyHandler.Join).Methods(http.MethodPost)
	lobbies.HandleFunc("/{pin}/leave", lobbyHandler.Leave).Methods(http.MethodPost)
	lobbies.HandleFunc("/{pin}/start", lobbyHandler.Start).Methods(http.MethodPost)
	lobbies.HandleFunc("/{pin}/reconnect", lobbyHandler.Reconnect).Methods(http.MethodPost)
	lobbies.HandleFunc("/{pin}/users/{user_id}", lobbyHandler.UserSnapshot).Methods(http.MethodGet)
	lobbies.HandleFunc("/{pin}/qr", lobbyHandler.JoinCode).Methods(http.MethodGet)

	// Questions and leaderboard
	lobbies.HandleFunc("/{pin}/questions", gameHandler.AskQuestion).Methods(http.MethodPost)
	lobbies.HandleFunc("/{pin}/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
