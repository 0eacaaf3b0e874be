package lobby

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/questlab/questmaster/internal/dependencies/clock"
	"github.com/questlab/questmaster/internal/dependencies/random"
	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/storage"
)

// Controller owns the registry of active lobbies: creation with a unique PIN,
// membership changes, the start transition, and deletion. All mutations of a
// lobby go through a per-PIN lock so concurrent joins cannot race past the
// name-uniqueness check and concurrent starts cannot both succeed. Reads work
// on storage snapshots and need no lock.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[model.PIN]*sync.Mutex
}

// NewController creates a new lobby controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   make(map[model.PIN]*sync.Mutex),
	}
}

// lockPIN acquires the mutation lock for a PIN and returns its release func
func (c *Controller) lockPIN(pin model.PIN) func() {
	c.mu.Lock()
	l, ok := c.locks[pin]
	if !ok {
		l = &sync.Mutex{}
		c.locks[pin] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// dropLock discards the lock entry for a deleted PIN
func (c *Controller) dropLock(pin model.PIN) {
	c.mu.Lock()
	delete(c.locks, pin)
	c.mu.Unlock()
}

// update runs fn against the stored lobby under its PIN lock and persists the
// result. fn returning an error aborts the save.
func (c *Controller) update(ctx context.Context, pin model.PIN, fn func(*model.Lobby) error) (*model.Lobby, error) {
	unlock := c.lockPIN(pin)
	defer unlock()

	lobby, err := c.storage.GetLobby(ctx, pin)
	if err != nil {
		return nil, err
	}

	if err := fn(lobby); err != nil {
		return nil, err
	}

	lobby.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveLobby(ctx, lobby); err != nil {
		return nil, err
	}

	return lobby, nil
}

// CreateLobby mints a unique PIN, constructs the lobby with its host user,
// and registers it. PIN collisions are retried transparently.
func (c *Controller) CreateLobby(
	ctx context.Context,
	hostName string,
	secretConcept string,
	conceptContext string,
	topic string,
	timeLimit int,
) (*model.Lobby, error) {
	now := c.clock.Now()

	// The existence check and the insert hold the candidate PIN's lock
	// together, so two creates drawing the same PIN cannot both claim it.
	var pin model.PIN
	var unlock func()
	for {
		pin = model.PIN(c.random.String(model.PINLength, model.PINAlphabet))
		unlock = c.lockPIN(pin)
		exists, err := c.storage.LobbyExists(ctx, pin)
		if err != nil {
			unlock()
			return nil, err
		}
		if !exists {
			break
		}
		unlock()
	}

	host := model.NewUser(hostName, now)
	lobby := &model.Lobby{
		PIN:           pin,
		Host:          host,
		Participants:  make(map[model.UserID]*model.User),
		SecretConcept: secretConcept,
		Context:       conceptContext,
		Topic:         topic,
		TimeLimit:     timeLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := c.storage.SaveLobby(ctx, lobby)
	unlock()
	if err != nil {
		return nil, err
	}

	c.logger.Info("lobby created",
		slog.String("pin", string(pin)),
		slog.String("host_id", string(host.ID)),
	)

	return lobby, nil
}

// GetLobby retrieves a lobby by PIN
func (c *Controller) GetLobby(ctx context.Context, pin model.PIN) (*model.Lobby, error) {
	return c.storage.GetLobby(ctx, pin)
}

// JoinLobby adds a participant with the given name to a lobby. The name must
// be unique among the lobby's members.
func (c *Controller) JoinLobby(ctx context.Context, pin model.PIN, participantName string) (*model.User, *model.Lobby, error) {
	participant := model.NewUser(participantName, c.clock.Now())

	lobby, err := c.update(ctx, pin, func(l *model.Lobby) error {
		return l.AddParticipant(participant)
	})
	if err != nil {
		return nil, nil, err
	}

	return participant, lobby, nil
}

// LeaveLobby removes a participant from a lobby. Removing an id that is not a
// participant is a no-op.
func (c *Controller) LeaveLobby(ctx context.Context, pin model.PIN, userID model.UserID) error {
	_, err := c.update(ctx, pin, func(l *model.Lobby) error {
		l.RemoveParticipant(userID)
		return nil
	})
	return err
}

// StartOptions carries the optional game-parameter updates a host can apply
// as part of the start transition
type StartOptions struct {
	SecretConcept *string
	Context       *string
	Topic         *string
	TimeLimit     *int
	StartTime     *time.Time
}

// StartLobby starts a lobby on behalf of its host, applying any field updates
// before the transition. Fails if the requester is not the host, the lobby
// has already started, or there are no participants.
func (c *Controller) StartLobby(ctx context.Context, pin model.PIN, hostID model.UserID, opts StartOptions) (*model.Lobby, error) {
	lobby, err := c.update(ctx, pin, func(l *model.Lobby) error {
		member := l.GetMember(hostID)
		if member == nil || !member.IsHost() {
			return model.ErrNotHost
		}

		// Field updates land before the start transition, never after
		if opts.SecretConcept != nil {
			l.SecretConcept = *opts.SecretConcept
		}
		if opts.Context != nil {
			l.Context = *opts.Context
		}
		if opts.Topic != nil {
			l.Topic = *opts.Topic
		}
		if opts.TimeLimit != nil {
			l.TimeLimit = *opts.TimeLimit
		}

		startTime := c.clock.Now()
		if opts.StartTime != nil {
			startTime = *opts.StartTime
		}
		return l.Start(startTime)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("lobby started",
		slog.String("pin", string(pin)),
		slog.Int("participants", len(lobby.Participants)),
	)

	return lobby, nil
}

// DeleteLobby removes a lobby and everything it owns. Only the host may
// delete a lobby.
func (c *Controller) DeleteLobby(ctx context.Context, pin model.PIN, requestingUserID model.UserID) error {
	unlock := c.lockPIN(pin)
	defer unlock()

	lobby, err := c.storage.GetLobby(ctx, pin)
	if err != nil {
		return err
	}

	if lobby.Host == nil || lobby.Host.ID != requestingUserID {
		return model.ErrNotHost
	}

	if err := c.storage.DeleteLobby(ctx, pin); err != nil {
		return err
	}
	c.dropLock(pin)

	c.logger.Info("lobby deleted", slog.String("pin", string(pin)))
	return nil
}

// ResolveMember resolves a user id inside a lobby as host or participant.
// This backs reconnection: possession of a previously issued id recovers the
// member's identity.
func (c *Controller) ResolveMember(ctx context.Context, pin model.PIN, userID model.UserID) (*model.Member, *model.Lobby, error) {
	lobby, err := c.storage.GetLobby(ctx, pin)
	if err != nil {
		return nil, nil, err
	}

	member := lobby.GetMember(userID)
	if member == nil {
		return nil, nil, model.ErrUserNotFound
	}

	return member, lobby, nil
}

// UserSnapshot returns a member's identity plus their full ordered question
// history.
func (c *Controller) UserSnapshot(ctx context.Context, pin model.PIN, userID model.UserID) (*model.Member, []*model.Question, error) {
	member, _, err := c.ResolveMember(ctx, pin, userID)
	if err != nil {
		return nil, nil, err
	}
	return member, member.User.QuestionList(), nil
}

// AttachQuestion records an answered question under a member's history. The
// map insertion happens under the PIN lock; callers do any slow work (the
// oracle call) before invoking this.
func (c *Controller) AttachQuestion(ctx context.Context, pin model.PIN, userID model.UserID, question *model.Question) error {
	_, err := c.update(ctx, pin, func(l *model.Lobby) error {
		member := l.GetMember(userID)
		if member == nil {
			return model.ErrUserNotFound
		}
		member.User.AddQuestion(question)
		return nil
	})
	return err
}
