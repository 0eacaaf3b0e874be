package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/questlab/questmaster/internal/model"
)

// StorageSuite runs against a real Postgres instance. Set
// QM_POSTGRES_TEST_URL to enable it, e.g.
// postgres://localhost:5432/questmaster_test
type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	if os.Getenv("QM_POSTGRES_TEST_URL") == "" {
		t.Skip("QM_POSTGRES_TEST_URL not set")
	}
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupSuite() {
	s.ctx = context.Background()

	pool, err := pgxpool.New(s.ctx, os.Getenv("QM_POSTGRES_TEST_URL"))
	s.Require().NoError(err)

	s.storage = NewWithPool(pool)
	s.Require().NoError(s.storage.EnsureSchema(s.ctx))
}

func (s *StorageSuite) TearDownSuite() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) SetupTest() {
	_ = s.storage.DeleteLobby(s.ctx, "0012345")
}

func (s *StorageSuite) makeLobby(pin model.PIN) *model.Lobby {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	host := model.NewUser("Host", now)
	lobby := &model.Lobby{
		PIN:           pin,
		Host:          host,
		Participants:  make(map[model.UserID]*model.User),
		SecretConcept: "penguin",
		Context:       "a flightless bird",
		Topic:         "animals",
		TimeLimit:     300,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	participant := model.NewUser("Alice", now.Add(time.Minute))
	q := model.NewQuestion("Is it alive?", now.Add(2*time.Minute))
	q.SetAnswer(model.Answer{Kind: model.AnswerYes})
	participant.AddQuestion(q)
	lobby.Participants[participant.ID] = participant

	return lobby
}

func (s *StorageSuite) TestSaveAndGetLobby() {
	lobby := s.makeLobby("0012345")

	s.Require().NoError(s.storage.SaveLobby(s.ctx, lobby))

	retrieved, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)
	s.Equal(lobby.PIN, retrieved.PIN)
	s.Equal(lobby.Host.ID, retrieved.Host.ID)
	s.Equal("penguin", retrieved.SecretConcept)
	s.Len(retrieved.Participants, 1)
}

func (s *StorageSuite) TestRoundTripPreservesQuestionHistory() {
	lobby := s.makeLobby("0012345")
	s.Require().NoError(s.storage.SaveLobby(s.ctx, lobby))

	retrieved, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)

	for _, p := range retrieved.Participants {
		questions := p.QuestionList()
		s.Require().Len(questions, 1)
		s.Equal("Is it alive?", questions[0].Message)
		s.Require().NotNil(questions[0].Answer)
		s.Equal(model.AnswerYes, questions[0].Answer.Kind)
	}
}

func (s *StorageSuite) TestSaveReplacesRemovedParticipants() {
	lobby := s.makeLobby("0012345")
	s.Require().NoError(s.storage.SaveLobby(s.ctx, lobby))

	for id := range lobby.Participants {
		lobby.RemoveParticipant(id)
	}
	s.Require().NoError(s.storage.SaveLobby(s.ctx, lobby))

	retrieved, err := s.storage.GetLobby(s.ctx, "0012345")
	s.Require().NoError(err)
	s.Empty(retrieved.Participants)
}

func (s *StorageSuite) TestGetLobbyNotFound() {
	_, err := s.storage.GetLobby(s.ctx, "9999999")
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

func (s *StorageSuite) TestDeleteLobby() {
	lobby := s.makeLobby("0012345")
	s.Require().NoError(s.storage.SaveLobby(s.ctx, lobby))

	s.Require().NoError(s.storage.DeleteLobby(s.ctx, "0012345"))

	exists, err := s.storage.LobbyExists(s.ctx, "0012345")
	s.Require().NoError(err)
	s.False(exists)
}
