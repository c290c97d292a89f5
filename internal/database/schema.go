package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The pair index stores the participants in canonical LEAST/GREATEST order so
// the one-thread-per-pair invariant holds no matter which user created the
// thread, and closes the check-then-insert race between concurrent creates.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS threads (
	id UUID PRIMARY KEY,
	participant1_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	participant2_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT threads_participants_differ CHECK (participant1_id <> participant2_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS threads_participant_pair_idx
	ON threads (LEAST(participant1_id, participant2_id), GREATEST(participant1_id, participant2_id));

CREATE TABLE IF NOT EXISTS messages (
	id UUID PRIMARY KEY,
	thread_id UUID NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
	sender_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS messages_thread_created_idx ON messages (thread_id, created_at);
CREATE INDEX IF NOT EXISTS messages_unread_idx ON messages (thread_id) WHERE NOT is_read;
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
