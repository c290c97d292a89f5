package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ltomic/threadline/internal/domain"
	"github.com/ltomic/threadline/internal/repository"
)

var (
	ErrSelfThread     = errors.New("cannot start a thread with yourself")
	ErrThreadExists   = errors.New("thread between these users already exists")
	ErrThreadNotFound = errors.New("thread not found")
	ErrNotParticipant = errors.New("you are not a participant of this thread")
	ErrUserNotFound   = errors.New("user not found")
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ThreadService struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
}

func NewThreadService(threadRepo repository.ThreadRepository, userRepo repository.UserRepository) *ThreadService {
	return &ThreadService{
		threadRepo: threadRepo,
		userRepo:   userRepo,
	}
}

type ThreadListResponse struct {
	Total   int             `json:"total"`
	Threads []domain.Thread `json:"threads"`
}

// Create starts a thread between the creator and one other user. Duplicate
// creation is rejected, not deduplicated: the caller gets a conflict even if
// the existing thread was created by the other user.
func (s *ThreadService) Create(ctx context.Context, creatorID, otherUserID uuid.UUID) (*domain.Thread, error) {
	if creatorID == otherUserID {
		return nil, ErrSelfThread
	}

	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.threadRepo.GetByParticipants(ctx, creatorID, otherUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrThreadExists
	}

	now := time.Now()
	thread := &domain.Thread{
		ID:           uuid.New(),
		Participant1: creatorID,
		Participant2: otherUserID,
		CreatedAt:    now,
		UpdatedAt:    now,
		// Fill in other user info
		OtherUserID:          otherUserID,
		OtherUserUsername:    other.Username,
		OtherUserDisplayName: other.DisplayName,
	}

	if err := s.threadRepo.Create(ctx, thread); err != nil {
		// Two concurrent creates can both pass the pre-check; the store's
		// unique pair index decides the winner.
		if errors.Is(err, repository.ErrDuplicateThread) {
			return nil, ErrThreadExists
		}
		return nil, fmt.Errorf("creating thread: %w", err)
	}

	return thread, nil
}

// List returns the caller's threads in creation order with the total count.
func (s *ThreadService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*ThreadListResponse, error) {
	limit, offset = normalizePage(limit, offset)

	threads, total, err := s.threadRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if threads == nil {
		threads = []domain.Thread{}
	}

	return &ThreadListResponse{Total: total, Threads: threads}, nil
}

// Delete removes a thread and all of its messages.
func (s *ThreadService) Delete(ctx context.Context, requesterID, threadID uuid.UUID) error {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return err
	}
	if thread == nil {
		return ErrThreadNotFound
	}
	if !thread.HasParticipant(requesterID) {
		return ErrNotParticipant
	}

	if err := s.threadRepo.Delete(ctx, threadID); err != nil {
		return fmt.Errorf("deleting thread: %w", err)
	}
	return nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
