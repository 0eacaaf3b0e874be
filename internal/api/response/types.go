package response

import (
	"time"

	"github.com/questlab/questmaster/internal/model"
)

// CreateLobbyResponse is returned after creating a lobby
type CreateLobbyResponse struct {
	PIN      string `json:"pin"`
	HostID   string `json:"host_id"`
	HostName string `json:"host_name"`
}

// JoinLobbyResponse is returned after joining a lobby
type JoinLobbyResponse struct {
	PIN             string   `json:"pin"`
	UserID          string   `json:"user_id"`
	ParticipantName string   `json:"participant_name"`
	HostName        string   `json:"host_name"`
	Participants    []string `json:"participants"`
}

// LobbyInfo is the general lobby view. SecretConcept and Context are only
// populated when the requesting user is the host.
type LobbyInfo struct {
	PIN           string     `json:"pin"`
	HostName      string     `json:"host_name"`
	Participants  []string   `json:"participants"`
	SecretConcept string     `json:"secret_concept,omitempty"`
	Context       string     `json:"context,omitempty"`
	Topic         string     `json:"topic"`
	TimeLimit     int        `json:"time_limit"`
	StartTime     *time.Time `json:"start_time,omitempty"`
}

// LobbyInfoFromModel converts a lobby to its API view, redacting host-only
// fields unless the requesting user id is the host's.
func LobbyInfoFromModel(l *model.Lobby, requester model.UserID) LobbyInfo {
	info := LobbyInfo{
		PIN:          string(l.PIN),
		HostName:     l.Host.Name,
		Participants: l.ParticipantNames(),
		Topic:        l.Topic,
		TimeLimit:    l.TimeLimit,
		StartTime:    l.StartTime,
	}
	if l.Host.ID == requester {
		info.SecretConcept = l.SecretConcept
		info.Context = l.Context
	}
	return info
}

// StartLobbyResponse is returned after starting a lobby
type StartLobbyResponse struct {
	PIN          string    `json:"pin"`
	StartTime    time.Time `json:"start_time"`
	Participants []string  `json:"participants"`
}

// ReconnectResponse restores a member's identity and lobby snapshot
type ReconnectResponse struct {
	PIN          string     `json:"pin"`
	UserID       string     `json:"user_id"`
	UserName     string     `json:"user_name"`
	IsHost       bool       `json:"is_host"`
	Topic        string     `json:"topic"`
	TimeLimit    int        `json:"time_limit"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	Participants []string   `json:"participants"`
}

// Question is one entry of a member's question history
type Question struct {
	QuestionID string    `json:"question_id"`
	Message    string    `json:"message"`
	Answer     string    `json:"answer,omitempty"`
	AskedAt    time.Time `json:"asked_at"`
}

// QuestionFromModel converts a question to its API view
func QuestionFromModel(q *model.Question) Question {
	resp := Question{
		QuestionID: string(q.ID),
		Message:    q.Message,
		AskedAt:    q.AskedAt,
	}
	if q.Answer != nil {
		resp.Answer = q.Answer.Text()
	}
	return resp
}

// UserSnapshot is a member's identity plus their full question history
type UserSnapshot struct {
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Questions []Question `json:"questions"`
}

// UserSnapshotFromModel converts a resolved member and their history
func UserSnapshotFromModel(m *model.Member, questions []*model.Question) UserSnapshot {
	snapshot := UserSnapshot{
		UserID:    string(m.User.ID),
		Name:      m.User.Name,
		Role:      string(m.Role),
		Questions: make([]Question, 0, len(questions)),
	}
	for _, q := range questions {
		snapshot.Questions = append(snapshot.Questions, QuestionFromModel(q))
	}
	return snapshot
}

// AskQuestionResponse is returned after a question is answered
type AskQuestionResponse struct {
	QuestionID string `json:"question_id"`
	Response   string `json:"response"`
	Message    string `json:"message"`
}

// LeaderboardEntry is one ranked leaderboard row
type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	QuestionCount  int    `json:"question_count"`
	GuessedCorrect bool   `json:"guessed_correct"`
}

// LeaderboardResponse is the ranked leaderboard for a lobby
type LeaderboardResponse struct {
	PIN     string             `json:"pin"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts ranked entries to their API view
func LeaderboardFromModel(pin model.PIN, entries []model.LeaderboardEntry) LeaderboardResponse {
	resp := LeaderboardResponse{
		PIN:     string(pin),
		Entries: make([]LeaderboardEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, LeaderboardEntry{
			UserID:         string(e.UserID),
			Name:           e.Name,
			QuestionCount:  e.QuestionCount,
			GuessedCorrect: e.GuessedCorrect,
		})
	}
	return resp
}
