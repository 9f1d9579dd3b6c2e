package ports

import (
	"context"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

// MessageRepository defines persistence for messages.
type MessageRepository interface {
	// ListForUser returns every message where userID is sender or receiver,
	// ordered by created_at descending. Conversation grouping depends on
	// this ordering, so the adapter must always apply the sort.
	ListForUser(ctx context.Context, userID string) ([]domain.Message, error)
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// SetRead updates the read flag and returns the updated message, or
	// domain.ErrMessageNotFound when the id is unknown.
	SetRead(ctx context.Context, id string, read bool) (*domain.Message, error)
}

// SendMessageInput carries the data for sending a message.
type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	Body       string
}

// MessageService implements the messaging use cases.
type MessageService interface {
	// Conversations groups the principal's messages into per-counterparty
	// threads, most recently active counterparty first.
	Conversations(ctx context.Context, principalID string) ([]domain.Conversation, error)
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	SetRead(ctx context.Context, id string, read bool) (*domain.Message, error)
	// Contacts lists the users the principal may message, by role:
	// admins see everyone, employees see clients and admins, clients see
	// employees and admins. Ordered by email ascending.
	Contacts(ctx context.Context, principal domain.Principal) ([]domain.ContactSummary, error)
}
