package game

import (
	"context"
	"log/slog"

	"github.com/questlab/questmaster/internal/dependencies/clock"
	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/services/lobby"
	"github.com/questlab/questmaster/internal/services/oracle"
)

// Controller orchestrates question processing: it binds an incoming question
// to a member of a lobby, obtains an answer from the oracle, and records the
// answered question under that member.
type Controller struct {
	lobbies *lobby.Controller
	oracle  oracle.Oracle
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new game controller
func NewController(
	lobbies *lobby.Controller,
	oracle oracle.Oracle,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		lobbies: lobbies,
		oracle:  oracle,
		clock:   clock,
		logger:  logger,
	}
}

// QuestionResult is the outcome of a processed question
type QuestionResult struct {
	QuestionID model.QuestionID
	Response   model.Answer
	Message    string
}

// ProcessQuestion resolves the member, asks the oracle, normalizes the raw
// answer against the vocabulary, and attaches the answered question to the
// member's history. The oracle call happens before any lobby mutation, so an
// oracle failure leaves no partial question behind. No lobby lock is held
// while the oracle call is in flight.
func (c *Controller) ProcessQuestion(ctx context.Context, pin model.PIN, userID model.UserID, text string) (*QuestionResult, error) {
	l, err := c.lobbies.GetLobby(ctx, pin)
	if err != nil {
		return nil, err
	}

	member := l.GetMember(userID)
	if member == nil {
		return nil, model.ErrUserNotFound
	}

	question := model.NewQuestion(text, c.clock.Now())

	raw, err := c.oracle.Answer(ctx, text, l.SecretConcept, l.Context)
	if err != nil {
		return nil, err
	}

	answer := model.NormalizeAnswer(raw)
	if !answer.Recognized() {
		c.logger.Warn("oracle returned non-standard response",
			slog.String("pin", string(pin)),
			slog.String("question_id", string(question.ID)),
			slog.String("raw", answer.Raw),
		)
	}

	question.SetAnswer(answer)

	if err := c.lobbies.AttachQuestion(ctx, pin, userID, question); err != nil {
		return nil, err
	}

	return &QuestionResult{
		QuestionID: question.ID,
		Response:   answer,
		Message:    text,
	}, nil
}
