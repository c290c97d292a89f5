package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ltomic/threadline/internal/domain"
	"github.com/ltomic/threadline/internal/repository"
)

type ThreadRepo struct {
	pool *pgxpool.Pool
}

func NewThreadRepo(pool *pgxpool.Pool) *ThreadRepo {
	return &ThreadRepo{pool: pool}
}

func (r *ThreadRepo) Create(ctx context.Context, thread *domain.Thread) error {
	query := `
		INSERT INTO threads (id, participant1_id, participant2_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		thread.ID, thread.Participant1, thread.Participant2, thread.CreatedAt, thread.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicateThread
	}
	return err
}

func (r *ThreadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	query := `
		SELECT id, participant1_id, participant2_id, created_at, updated_at
		FROM threads
		WHERE id = $1`
	var t domain.Thread
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Participant1, &t.Participant2, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &t, err
}

// GetByParticipants matches the unordered pair with a single LEAST/GREATEST
// predicate so the lookup uses the same index that enforces uniqueness.
func (r *ThreadRepo) GetByParticipants(ctx context.Context, userA, userB uuid.UUID) (*domain.Thread, error) {
	query := `
		SELECT id, participant1_id, participant2_id, created_at, updated_at
		FROM threads
		WHERE LEAST(participant1_id, participant2_id) = LEAST($1::uuid, $2::uuid)
			AND GREATEST(participant1_id, participant2_id) = GREATEST($1::uuid, $2::uuid)`
	var t domain.Thread
	err := r.pool.QueryRow(ctx, query, userA, userB).Scan(
		&t.ID, &t.Participant1, &t.Participant2, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &t, err
}

func (r *ThreadRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Thread, int, error) {
	query := `
		SELECT t.id, t.participant1_id, t.participant2_id, t.created_at, t.updated_at,
			CASE WHEN t.participant1_id = $1 THEN t.participant2_id ELSE t.participant1_id END AS other_user_id,
			CASE WHEN t.participant1_id = $1 THEN u2.username ELSE u1.username END AS other_username,
			CASE WHEN t.participant1_id = $1 THEN u2.display_name ELSE u1.display_name END AS other_display_name,
			COUNT(*) OVER() AS total
		FROM threads t
		JOIN users u1 ON t.participant1_id = u1.id
		JOIN users u2 ON t.participant2_id = u2.id
		WHERE t.participant1_id = $1 OR t.participant2_id = $1
		ORDER BY t.created_at, t.id
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var threads []domain.Thread
	var total int
	for rows.Next() {
		var t domain.Thread
		if err := rows.Scan(
			&t.ID, &t.Participant1, &t.Participant2, &t.CreatedAt, &t.UpdatedAt,
			&t.OtherUserID, &t.OtherUserUsername, &t.OtherUserDisplayName, &total,
		); err != nil {
			return nil, 0, err
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// The window count is zero rows when the page is past the end.
	if threads == nil && offset > 0 {
		err := r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM threads WHERE participant1_id = $1 OR participant2_id = $1`,
			userID,
		).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}

	return threads, total, nil
}

// Delete removes the thread and its messages in one transaction, so a
// half-deleted thread is never observable.
func (r *ThreadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE thread_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM threads WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
