package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/questlab/questmaster/internal/api/request"
	"github.com/questlab/questmaster/internal/api/response"
	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/services/lobby"
	"github.com/questlab/questmaster/internal/services/qr"
)

// LobbyHandler handles lobby lifecycle and membership endpoints
type LobbyHandler struct {
	lobbyController *lobby.Controller
	qrService       *qr.Service
}

// NewLobbyHandler creates a new lobby handler
func NewLobbyHandler(lobbyController *lobby.Controller, qrService *qr.Service) *LobbyHandler {
	return &LobbyHandler{
		lobbyController: lobbyController,
		qrService:       qrService,
	}
}

// pinVar extracts the lobby PIN from the route
func pinVar(r *http.Request) model.PIN {
	return model.PIN(mux.Vars(r)["pin"])
}

// Create handles POST /api/v1/lobbies
func (h *LobbyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.HostName) == "" {
		WriteError(w, NewInvalidRequestError("host_name is required"))
		return
	}
	if strings.TrimSpace(req.SecretConcept) == "" {
		WriteError(w, NewInvalidRequestError("secret_concept is required"))
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		WriteError(w, NewInvalidRequestError("topic is required"))
		return
	}
	if req.TimeLimit <= 0 {
		WriteError(w, NewInvalidRequestError("time_limit must be positive"))
		return
	}

	l, err := h.lobbyController.CreateLobby(r.Context(), req.HostName, req.SecretConcept, req.Context, req.Topic, req.TimeLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateLobbyResponse{
		PIN:      string(l.PIN),
		HostID:   string(l.Host.ID),
		HostName: l.Host.Name,
	})
}

// Get handles GET /api/v1/lobbies/{pin}?user_id=
// Secret concept and context are redacted unless user_id is the host's.
func (h *LobbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.lobbyController.GetLobby(r.Context(), pinVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	requester := model.UserID(r.URL.Query().Get("user_id"))
	response.JSON(w, http.StatusOK, response.LobbyInfoFromModel(l, requester))
}

// Join handles POST /api/v1/lobbies/{pin}/join
func (h *LobbyHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.ParticipantName) == "" {
		WriteError(w, NewInvalidRequestError("participant_name is required"))
		return
	}

	participant, l, err := h.lobbyController.JoinLobby(r.Context(), pinVar(r), req.ParticipantName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinLobbyResponse{
		PIN:             string(l.PIN),
		UserID:          string(participant.ID),
		ParticipantName: participant.Name,
		HostName:        l.Host.Name,
		Participants:    l.ParticipantNames(),
	})
}

// Leave handles POST /api/v1/lobbies/{pin}/leave
func (h *LobbyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req request.LeaveLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.lobbyController.LeaveLobby(r.Context(), pinVar(r), model.UserID(req.UserID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Start handles POST /api/v1/lobbies/{pin}/start
func (h *LobbyHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.HostID == "" {
		WriteError(w, NewInvalidRequestError("host_id is required"))
		return
	}

	opts := lobby.StartOptions{
		SecretConcept: req.SecretConcept,
		Context:       req.Context,
		Topic:         req.Topic,
		TimeLimit:     req.TimeLimit,
		StartTime:     req.StartTime,
	}

	l, err := h.lobbyController.StartLobby(r.Context(), pinVar(r), model.UserID(req.HostID), opts)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StartLobbyResponse{
		PIN:          string(l.PIN),
		StartTime:    *l.StartTime,
		Participants: l.ParticipantNames(),
	})
}

// Delete handles DELETE /api/v1/lobbies/{pin}
func (h *LobbyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.lobbyController.DeleteLobby(r.Context(), pinVar(r), model.UserID(req.HostID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Reconnect handles POST /api/v1/lobbies/{pin}/reconnect
// Possession of a previously issued user id recovers the member's identity.
func (h *LobbyHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	var req request.ReconnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	member, l, err := h.lobbyController.ResolveMember(r.Context(), pinVar(r), model.UserID(req.UserID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ReconnectResponse{
		PIN:          string(l.PIN),
		UserID:       string(member.User.ID),
		UserName:     member.User.Name,
		IsHost:       member.IsHost(),
		Topic:        l.Topic,
		TimeLimit:    l.TimeLimit,
		StartTime:    l.StartTime,
		Participants: l.ParticipantNames(),
	})
}

// UserSnapshot handles GET /api/v1/lobbies/{pin}/users/{user_id}
func (h *LobbyHandler) UserSnapshot(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])

	member, questions, err := h.lobbyController.UserSnapshot(r.Context(), pinVar(r), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserSnapshotFromModel(member, questions))
}

// JoinCode handles GET /api/v1/lobbies/{pin}/qr
// Returns a PNG QR code of the join link for display by the host.
func (h *LobbyHandler) JoinCode(w http.ResponseWriter, r *http.Request) {
	pin := pinVar(r)

	// Only mint codes for live lobbies
	if _, err := h.lobbyController.GetLobby(r.Context(), pin); err != nil {
		WriteError(w, err)
		return
	}

	png, err := h.qrService.JoinCodePNG(string(pin))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.PNG(w, png)
}
