package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ltomic/threadline/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, thread_id, sender_id, text, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.ThreadID, msg.SenderID, msg.Text, msg.IsRead, msg.CreatedAt,
	)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	query := `
		SELECT m.id, m.thread_id, m.sender_id, m.text, m.is_read, m.created_at,
			u.username, u.display_name
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.id = $1`
	var msg domain.Message
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.ThreadID, &msg.SenderID, &msg.Text, &msg.IsRead, &msg.CreatedAt,
		&msg.SenderUsername, &msg.SenderDisplayName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &msg, err
}

func (r *MessageRepo) ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]domain.Message, int, error) {
	query := `
		SELECT m.id, m.thread_id, m.sender_id, m.text, m.is_read, m.created_at,
			u.username, u.display_name,
			COUNT(*) OVER() AS total
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.thread_id = $1
		ORDER BY m.created_at, m.id
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, threadID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []domain.Message
	var total int
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.ThreadID, &msg.SenderID, &msg.Text, &msg.IsRead, &msg.CreatedAt,
			&msg.SenderUsername, &msg.SenderDisplayName, &total,
		); err != nil {
			return nil, 0, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if messages == nil && offset > 0 {
		err := r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM messages WHERE thread_id = $1`, threadID,
		).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}

	return messages, total, nil
}

// MarkRead is one-directional: there is no way back to unread.
func (r *MessageRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	return err
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

func (r *MessageRepo) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN threads t ON m.thread_id = t.id
		WHERE NOT m.is_read
			AND (t.participant1_id = $1 OR t.participant2_id = $1)`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
