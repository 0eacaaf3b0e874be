package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New creates a new Postgres storage instance and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// NewWithPool creates a Postgres storage with an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close releases the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// SaveLobby persists the full aggregate. The user and question sets are
// replaced wholesale inside one transaction so the row state always mirrors
// the in-memory aggregate.
func (s *Storage) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO lobbies (pin, secret_concept, context, topic, time_limit, start_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (pin) DO UPDATE SET
				secret_concept = EXCLUDED.secret_concept,
				context = EXCLUDED.context,
				topic = EXCLUDED.topic,
				time_limit = EXCLUDED.time_limit,
				start_time = EXCLUDED.start_time,
				updated_at = EXCLUDED.updated_at`,
			lobby.PIN, lobby.SecretConcept, nullable(lobby.Context), lobby.Topic,
			lobby.TimeLimit, lobby.StartTime, lobby.CreatedAt, lobby.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to save lobby: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM lobby_users WHERE lobby_pin = $1`, lobby.PIN); err != nil {
			return fmt.Errorf("failed to clear lobby users: %w", err)
		}

		for _, u := range lobby.Members() {
			isHost := lobby.Host != nil && u.ID == lobby.Host.ID
			if err := insertUser(ctx, tx, lobby.PIN, u, isHost); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertUser(ctx context.Context, tx pgx.Tx, pin model.PIN, u *model.User, isHost bool) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO lobby_users (id, lobby_pin, name, is_host, joined_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, pin, u.Name, isHost, u.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", u.ID, err)
	}

	for _, q := range u.QuestionList() {
		var answerKind, answerRaw *string
		if q.Answer != nil {
			kind := string(q.Answer.Kind)
			answerKind = &kind
			if q.Answer.Raw != "" {
				raw := q.Answer.Raw
				answerRaw = &raw
			}
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO questions (id, user_id, message, answer_kind, answer_raw, asked_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			q.ID, u.ID, q.Message, answerKind, answerRaw, q.AskedAt)
		if err != nil {
			return fmt.Errorf("failed to save question %s: %w", q.ID, err)
		}
	}

	return nil
}

func (s *Storage) GetLobby(ctx context.Context, pin model.PIN) (*model.Lobby, error) {
	lobby := &model.Lobby{
		PIN:          pin,
		Participants: make(map[model.UserID]*model.User),
	}

	var contextVal *string
	err := s.pool.QueryRow(ctx, `
		SELECT secret_concept, context, topic, time_limit, start_time, created_at, updated_at
		FROM lobbies WHERE pin = $1`, pin).
		Scan(&lobby.SecretConcept, &contextVal, &lobby.Topic, &lobby.TimeLimit,
			&lobby.StartTime, &lobby.CreatedAt, &lobby.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLobbyNotFound
		}
		return nil, fmt.Errorf("failed to get lobby: %w", err)
	}
	if contextVal != nil {
		lobby.Context = *contextVal
	}

	users, err := s.loadUsers(ctx, pin)
	if err != nil {
		return nil, err
	}

	for _, lu := range users {
		if lu.isHost {
			lobby.Host = lu.user
		} else {
			lobby.Participants[lu.user.ID] = lu.user
		}
	}

	return lobby, nil
}

type loadedUser struct {
	user   *model.User
	isHost bool
}

func (s *Storage) loadUsers(ctx context.Context, pin model.PIN) ([]loadedUser, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.name, u.is_host, u.joined_at,
		       q.id, q.message, q.answer_kind, q.answer_raw, q.asked_at
		FROM lobby_users u
		LEFT JOIN questions q ON q.user_id = u.id
		WHERE u.lobby_pin = $1
		ORDER BY u.joined_at, q.asked_at`, pin)
	if err != nil {
		return nil, fmt.Errorf("failed to get lobby users: %w", err)
	}
	defer rows.Close()

	byID := make(map[model.UserID]*loadedUser)
	var ordered []model.UserID

	for rows.Next() {
		var (
			userID     model.UserID
			name       string
			isHost     bool
			joinedAt   time.Time
			questionID *model.QuestionID
			message    *string
			answerKind *string
			answerRaw  *string
			askedAt    *time.Time
		)
		if err := rows.Scan(&userID, &name, &isHost, &joinedAt,
			&questionID, &message, &answerKind, &answerRaw, &askedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lobby user: %w", err)
		}

		lu, ok := byID[userID]
		if !ok {
			lu = &loadedUser{
				user: &model.User{
					ID:        userID,
					Name:      name,
					Questions: make(map[model.QuestionID]*model.Question),
					JoinedAt:  joinedAt,
				},
				isHost: isHost,
			}
			byID[userID] = lu
			ordered = append(ordered, userID)
		}

		if questionID != nil {
			q := model.Question{ID: *questionID, Message: *message, AskedAt: *askedAt}
			if answerKind != nil {
				answer := model.Answer{Kind: model.AnswerKind(*answerKind)}
				if answerRaw != nil {
					answer.Raw = *answerRaw
				}
				q.Answer = &answer
			}
			lu.user.AddQuestion(&q)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lobby users: %w", err)
	}

	result := make([]loadedUser, 0, len(ordered))
	for _, id := range ordered {
		result = append(result, *byID[id])
	}
	return result, nil
}

func (s *Storage) DeleteLobby(ctx context.Context, pin model.PIN) error {
	// Owned users and questions go with the lobby via ON DELETE CASCADE
	_, err := s.pool.Exec(ctx, `DELETE FROM lobbies WHERE pin = $1`, pin)
	if err != nil {
		return fmt.Errorf("failed to delete lobby: %w", err)
	}
	return nil
}

func (s *Storage) LobbyExists(ctx context.Context, pin model.PIN) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM lobbies WHERE pin = $1)`, pin).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lobby existence: %w", err)
	}
	return exists, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
