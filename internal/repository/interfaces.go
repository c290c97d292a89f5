package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ltomic/threadline/internal/domain"
)

// ErrDuplicateThread is returned by ThreadRepository.Create when the store's
// unique pair index rejects a second thread for the same two users.
var ErrDuplicateThread = errors.New("thread already exists for this participant pair")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ThreadRepository interface {
	Create(ctx context.Context, thread *domain.Thread) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	// GetByParticipants resolves the thread for an unordered user pair,
	// regardless of which one created it.
	GetByParticipants(ctx context.Context, userA, userB uuid.UUID) (*domain.Thread, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Thread, int, error)
	// Delete removes the thread and all of its messages in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]domain.Message, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error)
}
