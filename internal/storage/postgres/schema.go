package postgres

import "context"

// The lobby aggregate maps onto three tables with ownership cascades: deleting
// a lobby removes its users, which removes their questions.
const schema = `
CREATE TABLE IF NOT EXISTS lobbies (
	pin            TEXT PRIMARY KEY,
	secret_concept TEXT NOT NULL,
	context        TEXT,
	topic          TEXT NOT NULL,
	time_limit     INTEGER NOT NULL,
	start_time     TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS lobby_users (
	id        UUID PRIMARY KEY,
	lobby_pin TEXT NOT NULL REFERENCES lobbies(pin) ON DELETE CASCADE,
	name      TEXT NOT NULL,
	is_host   BOOLEAN NOT NULL,
	joined_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lobby_users_lobby_pin ON lobby_users(lobby_pin);

CREATE TABLE IF NOT EXISTS questions (
	id          UUID PRIMARY KEY,
	user_id     UUID NOT NULL REFERENCES lobby_users(id) ON DELETE CASCADE,
	message     TEXT NOT NULL,
	answer_kind TEXT,
	answer_raw  TEXT,
	asked_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_user_id ON questions(user_id);
`

// EnsureSchema creates the tables if they do not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}
