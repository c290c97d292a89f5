package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ltomic/threadline/internal/domain"
	"github.com/ltomic/threadline/internal/repository"
)

// store is shared in-memory state behind the fake repos, so a thread delete
// can take its messages with it the way the real transaction does.
type store struct {
	users    []domain.User
	threads  []domain.Thread
	messages []domain.Message
}

func newStore() *store {
	return &store{}
}

func (s *store) addUser(username string) uuid.UUID {
	u := domain.User{
		ID:          uuid.New(),
		Email:       username + "@example.com",
		Username:    username,
		DisplayName: username,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.users = append(s.users, u)
	return u.ID
}

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range r.s.users {
		if r.s.users[i].Email == email {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for i := range r.s.users {
		if r.s.users[i].Username == username {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

type fakeThreadRepo struct{ s *store }

func samePair(t *domain.Thread, a, b uuid.UUID) bool {
	return (t.Participant1 == a && t.Participant2 == b) ||
		(t.Participant1 == b && t.Participant2 == a)
}

func (r *fakeThreadRepo) Create(ctx context.Context, thread *domain.Thread) error {
	for i := range r.s.threads {
		if samePair(&r.s.threads[i], thread.Participant1, thread.Participant2) {
			return repository.ErrDuplicateThread
		}
	}
	r.s.threads = append(r.s.threads, *thread)
	return nil
}

func (r *fakeThreadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	for i := range r.s.threads {
		if r.s.threads[i].ID == id {
			t := r.s.threads[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeThreadRepo) GetByParticipants(ctx context.Context, userA, userB uuid.UUID) (*domain.Thread, error) {
	for i := range r.s.threads {
		if samePair(&r.s.threads[i], userA, userB) {
			t := r.s.threads[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeThreadRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Thread, int, error) {
	var all []domain.Thread
	for i := range r.s.threads {
		if r.s.threads[i].HasParticipant(userID) {
			all = append(all, r.s.threads[i])
		}
	}
	return page(all, limit, offset), len(all), nil
}

func (r *fakeThreadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	var threads []domain.Thread
	for i := range r.s.threads {
		if r.s.threads[i].ID != id {
			threads = append(threads, r.s.threads[i])
		}
	}
	r.s.threads = threads

	var messages []domain.Message
	for i := range r.s.messages {
		if r.s.messages[i].ThreadID != id {
			messages = append(messages, r.s.messages[i])
		}
	}
	r.s.messages = messages
	return nil
}

type fakeMessageRepo struct{ s *store }

func (r *fakeMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	for i := range r.s.messages {
		if r.s.messages[i].ID == id {
			m := r.s.messages[i]
			// Mirror the real repo's join against users.
			for j := range r.s.users {
				if r.s.users[j].ID == m.SenderID {
					m.SenderUsername = r.s.users[j].Username
					m.SenderDisplayName = r.s.users[j].DisplayName
					break
				}
			}
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]domain.Message, int, error) {
	var all []domain.Message
	for i := range r.s.messages {
		if r.s.messages[i].ThreadID == threadID {
			all = append(all, r.s.messages[i])
		}
	}
	return page(all, limit, offset), len(all), nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	for i := range r.s.messages {
		if r.s.messages[i].ID == id {
			r.s.messages[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	var messages []domain.Message
	for i := range r.s.messages {
		if r.s.messages[i].ID != id {
			messages = append(messages, r.s.messages[i])
		}
	}
	r.s.messages = messages
	return nil
}

func (r *fakeMessageRepo) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for i := range r.s.messages {
		if r.s.messages[i].IsRead {
			continue
		}
		for j := range r.s.threads {
			if r.s.threads[j].ID == r.s.messages[i].ThreadID && r.s.threads[j].HasParticipant(userID) {
				count++
				break
			}
		}
	}
	return count, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
