package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, actorID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, actorID, action string, ts time.Time) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService that deduplicates and
// persists audit events.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single activity event.
func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.ActorID, in.Action, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("actor_id", in.ActorID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("actor_id", in.ActorID).Str("action", in.Action).Msg("duplicate activity skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, in.ActorID, in.Action, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("actor_id", in.ActorID).Msg("failed to set dedup key")
	}

	event := &domain.ActivityEvent{
		ActorID:   in.ActorID,
		Action:    in.Action,
		Subject:   in.Subject,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return err
	}

	s.log.Debug().
		Str("actor_id", in.ActorID).
		Str("action", in.Action).
		Msg("activity recorded")

	return nil
}
