package request

import "time"

// CreateLobbyRequest is the request body for creating a lobby
type CreateLobbyRequest struct {
	HostName      string `json:"host_name"`
	SecretConcept string `json:"secret_concept"`
	Context       string `json:"context,omitempty"`
	Topic         string `json:"topic"`
	TimeLimit     int    `json:"time_limit"`
}

// JoinLobbyRequest is the request body for joining a lobby
type JoinLobbyRequest struct {
	ParticipantName string `json:"participant_name"`
}

// LeaveLobbyRequest is the request body for leaving a lobby
type LeaveLobbyRequest struct {
	UserID string `json:"user_id"`
}

// StartLobbyRequest is the request body for starting a lobby. All fields
// except host_id are optional updates applied before the start transition.
type StartLobbyRequest struct {
	HostID        string     `json:"host_id"`
	SecretConcept *string    `json:"secret_concept,omitempty"`
	Context       *string    `json:"context,omitempty"`
	Topic         *string    `json:"topic,omitempty"`
	TimeLimit     *int       `json:"time_limit,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
}

// DeleteLobbyRequest is the request body for deleting a lobby
type DeleteLobbyRequest struct {
	HostID string `json:"host_id"`
}

// ReconnectRequest is the request body for recovering a member identity
type ReconnectRequest struct {
	UserID string `json:"user_id"`
}

// AskQuestionRequest is the request body for asking a question
type AskQuestionRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
}
