package model

import "errors"

// Common errors used across the application
var (
	// Lobby errors
	ErrLobbyNotFound  = errors.New("lobby not found")
	ErrDuplicateName  = errors.New("name is already taken in this lobby")
	ErrNotHost        = errors.New("user is not the host")
	ErrAlreadyStarted = errors.New("lobby has already started")
	ErrNoParticipants = errors.New("cannot start a lobby without participants")

	// Member errors
	ErrUserNotFound = errors.New("user not found in lobby")

	// Oracle errors
	ErrOracleUnavailable = errors.New("oracle is unavailable")
)
