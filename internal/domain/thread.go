package domain

import (
	"time"

	"github.com/google/uuid"
)

// Thread is a conversation between exactly two distinct users.
// Participant1 is always the creator; uniqueness is over the unordered pair.
type Thread struct {
	ID           uuid.UUID `json:"id"`
	Participant1 uuid.UUID `json:"participant1"`
	Participant2 uuid.UUID `json:"participant2"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// Joined fields for frontend
	OtherUserID          uuid.UUID `json:"other_user_id"`
	OtherUserUsername    string    `json:"other_username,omitempty"`
	OtherUserDisplayName string    `json:"other_display_name,omitempty"`
}

// HasParticipant reports whether userID is one of the thread's two participants.
func (t *Thread) HasParticipant(userID uuid.UUID) bool {
	return t.Participant1 == userID || t.Participant2 == userID
}
