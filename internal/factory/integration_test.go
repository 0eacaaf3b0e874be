package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/services/lobby"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete round from lobby creation to leaderboard
func (s *IntegrationSuite) TestCompleteRoundFlow() {
	s.app.MockRandom.QueueString("0012345")

	// Step 1: Host creates a lobby
	created, err := s.app.LobbyController.CreateLobby(s.ctx, "Host", "penguin", "a flightless bird", "animals", 300)
	s.Require().NoError(err)
	s.Equal(model.PIN("0012345"), created.PIN)

	// Step 2: Two participants join
	alice, _, err := s.app.LobbyController.JoinLobby(s.ctx, created.PIN, "Alice")
	s.Require().NoError(err)
	bob, _, err := s.app.LobbyController.JoinLobby(s.ctx, created.PIN, "Bob")
	s.Require().NoError(err)

	// Step 3: Host starts the round
	started, err := s.app.LobbyController.StartLobby(s.ctx, created.PIN, created.Host.ID, lobby.StartOptions{})
	s.Require().NoError(err)
	s.Require().NotNil(started.StartTime)

	// Step 4: Bob probes without success, Alice guesses the secret exactly.
	// The offline oracle answers "I don't know" to anything short of an
	// exact guess.
	result, err := s.app.GameController.ProcessQuestion(s.ctx, created.PIN, bob.ID, "Is it alive?")
	s.Require().NoError(err)
	s.Equal(model.AnswerUnknown, result.Response.Kind)

	result, err = s.app.GameController.ProcessQuestion(s.ctx, created.PIN, bob.ID, "Is it a fish?")
	s.Require().NoError(err)
	s.Equal(model.AnswerUnknown, result.Response.Kind)

	result, err = s.app.GameController.ProcessQuestion(s.ctx, created.PIN, alice.ID, "Is the word penguin?")
	s.Require().NoError(err)
	s.Equal(model.AnswerCorrect, result.Response.Kind)

	// Step 5: The leaderboard ranks the winner first
	entries, err := s.app.LeaderboardService.Compute(s.ctx, created.PIN)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("Alice", entries[0].Name)
	s.True(entries[0].GuessedCorrect)
	s.Equal(1, entries[0].QuestionCount)

	// Step 6: Bob reconnects with his saved id and finds his history intact
	member, questions, err := s.app.LobbyController.UserSnapshot(s.ctx, created.PIN, bob.ID)
	s.Require().NoError(err)
	s.Equal("Bob", member.User.Name)
	s.Len(questions, 2)

	// Step 7: Host tears the lobby down
	s.Require().NoError(s.app.LobbyController.DeleteLobby(s.ctx, created.PIN, created.Host.ID))

	_, err = s.app.LobbyController.GetLobby(s.ctx, created.PIN)
	s.ErrorIs(err, model.ErrLobbyNotFound)
}

// Test: QR join codes come from the wired base URL
func (s *IntegrationSuite) TestJoinCodeUsesBaseURL() {
	s.Equal("http://localhost:8080/join?pin=0012345", s.app.QRService.JoinURL("0012345"))

	png, err := s.app.QRService.JoinCodePNG("0012345")
	s.Require().NoError(err)
	s.NotEmpty(png)
}

// Test: identity survives a leave/rejoin cycle with a fresh id
func (s *IntegrationSuite) TestLeaveAndRejoinMintsNewIdentity() {
	s.app.MockRandom.QueueString("0012345")

	created, err := s.app.LobbyController.CreateLobby(s.ctx, "Host", "penguin", "", "animals", 300)
	s.Require().NoError(err)

	alice, _, err := s.app.LobbyController.JoinLobby(s.ctx, created.PIN, "Alice")
	s.Require().NoError(err)

	s.Require().NoError(s.app.LobbyController.LeaveLobby(s.ctx, created.PIN, alice.ID))

	// The old id no longer resolves
	_, _, err = s.app.LobbyController.ResolveMember(s.ctx, created.PIN, alice.ID)
	s.ErrorIs(err, model.ErrUserNotFound)

	// Rejoining under the same name issues a new id
	again, _, err := s.app.LobbyController.JoinLobby(s.ctx, created.PIN, "Alice")
	s.Require().NoError(err)
	s.NotEqual(alice.ID, again.ID)
}
