package domain

import "time"

// Message is a directed message between two users. Immutable after creation
// except for the Read flag, which only the receiver meaningfully toggles.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Body       string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Counterparty returns the other party of the message relative to userID.
// For a self-message both sides are the same and the sender id is returned.
func (m Message) Counterparty(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Conversation is a derived view: all messages exchanged between one
// principal and a single counterparty, in the order they were provided by
// the store (most recent first). It is recomputed on every fetch and never
// persisted.
type Conversation struct {
	Partner  ContactSummary `json:"partner"`
	Messages []Message      `json:"conversation"`
}

// ContactSummary is the slim user view exposed by the messaging endpoints.
type ContactSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Name  string `json:"name,omitempty"`
}
