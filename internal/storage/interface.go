package storage

import (
	"context"

	"github.com/questlab/questmaster/internal/model"
)

// Storage defines the interface for lobby persistence. The lobby is the
// aggregate root: it owns its users, which own their questions, so saving or
// deleting a lobby carries the whole tree with it.
type Storage interface {
	// SaveLobby persists the full lobby aggregate under its PIN
	SaveLobby(ctx context.Context, lobby *model.Lobby) error

	// GetLobby retrieves a lobby by PIN, or model.ErrLobbyNotFound
	GetLobby(ctx context.Context, pin model.PIN) (*model.Lobby, error)

	// DeleteLobby removes a lobby and everything it owns
	DeleteLobby(ctx context.Context, pin model.PIN) error

	// LobbyExists reports whether a PIN is currently assigned
	LobbyExists(ctx context.Context, pin model.PIN) (bool, error)

	// Close releases any resources held by the backend
	Close() error
}
