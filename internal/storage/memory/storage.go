package memory

import (
	"context"
	"sync"

	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. State is
// volatile: lobbies live until explicit deletion or process exit.
//
// Lobbies are cloned on both save and load, so every caller works on a
// private snapshot. The serializing backends get this for free; here it keeps
// readers off the maps a concurrent writer is mutating.
type Storage struct {
	mu sync.RWMutex

	lobbies map[model.PIN]*model.Lobby
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		lobbies: make(map[model.PIN]*model.Lobby),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lobbies[lobby.PIN] = lobby.Clone()
	return nil
}

func (s *Storage) GetLobby(ctx context.Context, pin model.PIN) (*model.Lobby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lobby, ok := s.lobbies[pin]
	if !ok {
		return nil, model.ErrLobbyNotFound
	}
	return lobby.Clone(), nil
}

func (s *Storage) DeleteLobby(ctx context.Context, pin model.PIN) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lobbies, pin)
	return nil
}

func (s *Storage) LobbyExists(ctx context.Context, pin model.PIN) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.lobbies[pin]
	return ok, nil
}

func (s *Storage) Close() error {
	return nil
}
