package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/questlab/questmaster/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) makeLobby(pin model.PIN) *model.Lobby {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	host := model.NewUser("Host", now)
	return &model.Lobby{
		PIN:           pin,
		Host:          host,
		Participants:  make(map[model.UserID]*model.User),
		SecretConcept: "penguin",
		Topic:         "animals",
		TimeLimit:     300,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *StorageSuite) TestSaveAndGetLobby() {
	lobby := s.makeLobby("0012345")

	err := s.storage.SaveLobby(s.ctx, lobby)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)
	s.Equal(lobby.PIN, retrieved.PIN)
	s.Equal(lobby.Host.ID, retrieved.Host.ID)
	s.Equal("penguin", retrieved.SecretConcept)
}

func (s *StorageSuite) TestGetLobbyNotFound() {
	_, err := s.storage.GetLobby(s.ctx, "9999999")
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

func (s *StorageSuite) TestLobbyExists() {
	lobby := s.makeLobby("0012345")
	_ = s.storage.SaveLobby(s.ctx, lobby)

	exists, err := s.storage.LobbyExists(s.ctx, "0012345")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.LobbyExists(s.ctx, "9999999")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteLobby() {
	lobby := s.makeLobby("0012345")
	_ = s.storage.SaveLobby(s.ctx, lobby)

	err := s.storage.DeleteLobby(s.ctx, "0012345")
	s.Require().NoError(err)

	_, err = s.storage.GetLobby(s.ctx, "0012345")
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

func (s *StorageSuite) TestDeleteLobbyIdempotent() {
	err := s.storage.DeleteLobby(s.ctx, "9999999")
	s.NoError(err)
}

func (s *StorageSuite) TestSaveLobbyOverwrites() {
	lobby := s.makeLobby("0012345")
	_ = s.storage.SaveLobby(s.ctx, lobby)

	lobby.Topic = "arctic animals"
	_ = s.storage.SaveLobby(s.ctx, lobby)

	retrieved, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)
	s.Equal("arctic animals", retrieved.Topic)
}

func (s *StorageSuite) TestGetLobbyReturnsIsolatedSnapshot() {
	lobby := s.makeLobby("0012345")
	_ = s.storage.SaveLobby(s.ctx, lobby)

	first, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)

	// Mutating the snapshot must not leak into stored state
	first.SecretConcept = "walrus"
	first.Participants[model.UserID("intruder")] = model.NewUser("Intruder", lobby.CreatedAt)
	first.Host.AddQuestion(model.NewQuestion("Is it a bird?", lobby.CreatedAt))

	second, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)
	s.Equal("penguin", second.SecretConcept)
	s.Empty(second.Participants)
	s.Empty(second.Host.Questions)
}

func (s *StorageSuite) TestSaveLobbyDetachesCallerCopy() {
	lobby := s.makeLobby("0012345")
	_ = s.storage.SaveLobby(s.ctx, lobby)

	lobby.SecretConcept = "walrus"

	retrieved, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)
	s.Equal("penguin", retrieved.SecretConcept)
}

func (s *StorageSuite) TestLeadingZeroPINsAreDistinctKeys() {
	a := s.makeLobby("0000001")
	b := s.makeLobby("1000000")
	_ = s.storage.SaveLobby(s.ctx, a)
	_ = s.storage.SaveLobby(s.ctx, b)

	ra, err := s.storage.GetLobby(s.ctx, "0000001")
	s.Require().NoError(err)
	rb, err := s.storage.GetLobby(s.ctx, "1000000")
	s.Require().NoError(err)
	s.NotEqual(ra.Host.ID, rb.Host.ID)
}
