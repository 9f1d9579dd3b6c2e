package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// MessageService implements messaging and conversation aggregation.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, recorder: recorder, log: log}
}

// Conversations fetches the principal's messages (newest first) and groups
// them into per-counterparty threads.
func (s *MessageService) Conversations(ctx context.Context, principalID string) ([]domain.Conversation, error) {
	msgs, err := s.messages.ListForUser(ctx, principalID)
	if err != nil {
		return nil, err
	}

	conversations := groupByCounterparty(principalID, msgs)

	// Hydrate partner summaries. A counterparty whose account has been
	// deleted still appears, reduced to its id.
	for i := range conversations {
		partner, err := s.users.FindByID(ctx, conversations[i].Partner.ID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		conversations[i].Partner = contactSummary(partner)
	}

	return conversations, nil
}

// groupByCounterparty partitions msgs into threads keyed by the other party
// relative to principalID. Thread order follows the first appearance of each
// counterparty in msgs, and messages keep their input order within a thread;
// with a newest-first input this puts the most recently active conversation
// first and its preview at index zero. The input is never re-sorted.
func groupByCounterparty(principalID string, msgs []domain.Message) []domain.Conversation {
	conversations := make([]domain.Conversation, 0)
	index := make(map[string]int)

	for _, m := range msgs {
		partner := m.Counterparty(principalID)
		i, seen := index[partner]
		if !seen {
			i = len(conversations)
			index[partner] = i
			conversations = append(conversations, domain.Conversation{
				Partner: domain.ContactSummary{ID: partner},
			})
		}
		conversations[i].Messages = append(conversations[i].Messages, m)
	}

	return conversations
}

// Send validates and persists a new message.
func (s *MessageService) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	if input.ReceiverID == "" || input.Body == "" {
		return nil, domain.ErrValidation
	}

	if _, err := s.users.FindByID(ctx, input.ReceiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Body:       input.Body,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		s.log.Error().Err(err).Str("sender_id", input.SenderID).Msg("failed to send message")
		return nil, err
	}

	s.recorder.Record(ports.ActivityInput{
		ActorID:   input.SenderID,
		Action:    domain.ActivityMessageSent,
		Subject:   created.ID,
		Timestamp: created.CreatedAt,
	})

	return created, nil
}

// SetRead toggles the read flag. The operation is idempotent; an unknown id
// yields domain.ErrMessageNotFound.
func (s *MessageService) SetRead(ctx context.Context, id string, read bool) (*domain.Message, error) {
	if id == "" {
		return nil, domain.ErrValidation
	}
	return s.messages.SetRead(ctx, id, read)
}

// Contacts returns the users the principal may message, ordered by email.
func (s *MessageService) Contacts(ctx context.Context, principal domain.Principal) ([]domain.ContactSummary, error) {
	var roles []string
	switch principal.Role {
	case domain.RoleAdmin:
		roles = nil // admins see everyone
	case domain.RoleEmployee:
		roles = []string{domain.RoleClient, domain.RoleAdmin}
	case domain.RoleClient:
		roles = []string{domain.RoleEmployee, domain.RoleAdmin}
	default:
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx, roles)
	if err != nil {
		return nil, err
	}

	contacts := make([]domain.ContactSummary, 0, len(users))
	for _, u := range users {
		contacts = append(contacts, contactSummary(u))
	}
	return contacts, nil
}

func contactSummary(u *domain.User) domain.ContactSummary {
	c := domain.ContactSummary{ID: u.ID, Email: u.Email, Role: u.Role}
	switch {
	case u.Employee != nil:
		c.Name = u.Employee.Name
	case u.Client != nil:
		c.Name = u.Client.Name
	}
	return c
}
