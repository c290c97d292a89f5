package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ltomic/threadline/internal/domain"
	"github.com/ltomic/threadline/internal/repository"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyText       = errors.New("message text is required")
)

type MessageService struct {
	messageRepo repository.MessageRepository
	threadRepo  repository.ThreadRepository
}

func NewMessageService(messageRepo repository.MessageRepository, threadRepo repository.ThreadRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		threadRepo:  threadRepo,
	}
}

type MessageListResponse struct {
	Total    int              `json:"total"`
	Messages []domain.Message `json:"messages"`
}

// Send posts a message into a thread. Sender and read state are always
// server-assigned, never taken from the request.
func (s *MessageService) Send(ctx context.Context, senderID, threadID uuid.UUID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	if _, err := s.participantThread(ctx, senderID, threadID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.New(),
		ThreadID:  threadID,
		SenderID:  senderID,
		Text:      text,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	// Fetch back with sender info
	full, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	return full, nil
}

// List returns a thread's messages in creation order, oldest first, with the
// total count for the pagination envelope.
func (s *MessageService) List(ctx context.Context, userID, threadID uuid.UUID, limit, offset int) (*MessageListResponse, error) {
	if _, err := s.participantThread(ctx, userID, threadID); err != nil {
		return nil, err
	}

	limit, offset = normalizePage(limit, offset)

	messages, total, err := s.messageRepo.ListByThread(ctx, threadID, limit, offset)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	return &MessageListResponse{Total: total, Messages: messages}, nil
}

// MarkRead flips a message to read. Idempotent: marking an already-read
// message succeeds and changes nothing. There is no way to mark unread.
func (s *MessageService) MarkRead(ctx context.Context, requesterID, messageID uuid.UUID) (*domain.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	if _, err := s.participantThread(ctx, requesterID, msg.ThreadID); err != nil {
		return nil, err
	}

	if !msg.IsRead {
		if err := s.messageRepo.MarkRead(ctx, messageID); err != nil {
			return nil, fmt.Errorf("marking message read: %w", err)
		}
		msg.IsRead = true
	}

	return msg, nil
}

// Delete removes a message addressed through its thread. A message id that
// exists but belongs to a different thread is not addressable on this path,
// so the caller sees not-found rather than forbidden.
func (s *MessageService) Delete(ctx context.Context, requesterID, threadID, messageID uuid.UUID) error {
	if _, err := s.participantThread(ctx, requesterID, threadID); err != nil {
		return err
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil || msg.ThreadID != threadID {
		return ErrMessageNotFound
	}

	return s.messageRepo.Delete(ctx, messageID)
}

// CountUnread is the global aggregate over every thread the user is in, not
// scoped to a single thread.
func (s *MessageService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.messageRepo.CountUnreadForUser(ctx, userID)
}

func (s *MessageService) participantThread(ctx context.Context, userID, threadID uuid.UUID) (*domain.Thread, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}
	if !thread.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return thread, nil
}
