package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questlab/questmaster/internal/api"
	"github.com/questlab/questmaster/internal/api/response"
	"github.com/questlab/questmaster/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use the production factory with real
	// random/clock, memory storage and the offline oracle
	app, err := factory.New(context.Background(), factory.Config{
		BaseURL: "http://localhost:8080",
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		LobbyController:    app.LobbyController,
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
		QRService:          app.QRService,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createLobby creates a lobby through the API and returns its response
func (ts *testServer) createLobby(t *testing.T) response.CreateLobbyResponse {
	t.Helper()

	body := map[string]any{
		"host_name":      "Host",
		"secret_concept": "penguin",
		"context":        "a flightless bird",
		"topic":          "animals",
		"time_limit":     300,
	}
	rr := ts.request(http.MethodPost, "/api/v1/lobbies", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.CreateLobbyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// joinLobby joins through the API and returns its response
func (ts *testServer) joinLobby(t *testing.T, pin, name string) response.JoinLobbyResponse {
	t.Helper()

	body := map[string]string{"participant_name": name}
	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+pin+"/join", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.JoinLobbyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateLobby(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.createLobby(t)

	assert.Len(t, resp.PIN, 7)
	assert.NotEmpty(t, resp.HostID)
	assert.Equal(t, "Host", resp.HostName)
}

func TestCreateLobbyValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing host name", map[string]any{"secret_concept": "penguin", "topic": "animals", "time_limit": 300}},
		{"missing secret", map[string]any{"host_name": "Host", "topic": "animals", "time_limit": 300}},
		{"missing topic", map[string]any{"host_name": "Host", "secret_concept": "penguin", "time_limit": 300}},
		{"zero time limit", map[string]any{"host_name": "Host", "secret_concept": "penguin", "topic": "animals"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/lobbies", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
		})
	}
}

func TestGetLobbyRedactsSecretForNonHost(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)

	// Without a user_id the secret is hidden
	rr := ts.request(http.MethodGet, "/api/v1/lobbies/"+created.PIN, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var info response.LobbyInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Empty(t, info.SecretConcept)
	assert.Empty(t, info.Context)
	assert.Equal(t, "animals", info.Topic)

	// The host sees the secret
	rr = ts.request(http.MethodGet, "/api/v1/lobbies/"+created.PIN+"?user_id="+created.HostID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, "penguin", info.SecretConcept)
	assert.Equal(t, "a flightless bird", info.Context)
}

func TestGetLobbyNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/lobbies/9999999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "LOBBY_NOT_FOUND")
}

func TestJoinLobby(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)

	joined := ts.joinLobby(t, created.PIN, "Alice")

	assert.Equal(t, created.PIN, joined.PIN)
	assert.NotEmpty(t, joined.UserID)
	assert.Equal(t, "Alice", joined.ParticipantName)
	assert.Equal(t, "Host", joined.HostName)
	assert.Contains(t, joined.Participants, "Alice")
}

func TestJoinLobbyDuplicateName(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	ts.joinLobby(t, created.PIN, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/join", map[string]string{"participant_name": "Alice"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "DUPLICATE_NAME")
}

func TestLeaveLobby(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	joined := ts.joinLobby(t, created.PIN, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/leave", map[string]string{"user_id": joined.UserID})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	var info response.LobbyInfo
	rr = ts.request(http.MethodGet, "/api/v1/lobbies/"+created.PIN, nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.NotContains(t, info.Participants, "Alice")
}

func TestStartLobby(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	ts.joinLobby(t, created.PIN, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/start", map[string]any{"host_id": created.HostID})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.StartLobbyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.StartTime.IsZero())
	assert.Contains(t, resp.Participants, "Alice")
}

func TestStartLobbyNonHostForbidden(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	joined := ts.joinLobby(t, created.PIN, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/start", map[string]any{"host_id": joined.UserID})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_HOST")
}

func TestStartLobbyTwiceConflicts(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	ts.joinLobby(t, created.PIN, "Alice")

	body := map[string]any{"host_id": created.HostID}
	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/start", body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/start", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_STARTED")
}

func TestStartLobbyWithoutParticipantsConflicts(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)

	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/start", map[string]any{"host_id": created.HostID})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_PARTICIPANTS")
}

func TestDeleteLobby(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)

	rr := ts.request(http.MethodDelete, "/api/v1/lobbies/"+created.PIN, map[string]string{"host_id": created.HostID})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/lobbies/"+created.PIN, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteLobbyNonHostForbidden(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	joined := ts.joinLobby(t, created.PIN, "Alice")

	rr := ts.request(http.MethodDelete, "/api/v1/lobbies/"+created.PIN, map[string]string{"host_id": joined.UserID})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestReconnect(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	joined := ts.joinLobby(t, created.PIN, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/reconnect", map[string]string{"user_id": joined.UserID})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.ReconnectResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, joined.UserID, resp.UserID)
	assert.Equal(t, "Alice", resp.UserName)
	assert.False(t, resp.IsHost)
	assert.Equal(t, "animals", resp.Topic)
}

func TestReconnectUnknownUser(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)

	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/reconnect", map[string]string{"user_id": "nope"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "USER_NOT_FOUND")
}

func TestAskQuestionAndSnapshot(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	joined := ts.joinLobby(t, created.PIN, "Alice")

	// The offline oracle answers CORRECT for an exact guess
	body := map[string]string{"user_id": joined.UserID, "question": "Is the word penguin?"}
	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/questions", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var asked response.AskQuestionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &asked))
	assert.Equal(t, "CORRECT", asked.Response)
	assert.NotEmpty(t, asked.QuestionID)

	// The question shows up in the member's snapshot
	rr = ts.request(http.MethodGet, "/api/v1/lobbies/"+created.PIN+"/users/"+joined.UserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var snapshot response.UserSnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
	assert.Equal(t, "Alice", snapshot.Name)
	require.Len(t, snapshot.Questions, 1)
	assert.Equal(t, "Is the word penguin?", snapshot.Questions[0].Message)
	assert.Equal(t, "CORRECT", snapshot.Questions[0].Answer)
}

func TestAskQuestionUnknownUser(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)

	body := map[string]string{"user_id": "nope", "question": "Is it alive?"}
	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/questions", body)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeaderboard(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)
	alice := ts.joinLobby(t, created.PIN, "Alice")
	ts.joinLobby(t, created.PIN, "Bob")

	// Alice guesses the secret and becomes the sole winner
	body := map[string]string{"user_id": alice.UserID, "question": "Is the word penguin?"}
	rr := ts.request(http.MethodPost, "/api/v1/lobbies/"+created.PIN+"/questions", body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/lobbies/"+created.PIN+"/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var board response.LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Entries, 3)
	assert.Equal(t, "Alice", board.Entries[0].Name)
	assert.True(t, board.Entries[0].GuessedCorrect)
	assert.Equal(t, 1, board.Entries[0].QuestionCount)
}

func TestJoinCodePNG(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createLobby(t)

	rr := ts.request(http.MethodGet, "/api/v1/lobbies/"+created.PIN+"/qr", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))
}

func TestJoinCodeUnknownLobby(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/lobbies/9999999/qr", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lobbies", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
