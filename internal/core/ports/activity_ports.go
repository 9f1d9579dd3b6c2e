package ports

import (
	"context"
	"time"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

// ActivityInput is the DTO handed to the activity pipeline.
type ActivityInput struct {
	ActorID   string
	Action    string
	Subject   string
	Timestamp time.Time
}

// ActivityRecorder enqueues activity events for asynchronous processing.
// Recording is best-effort and never fails the triggering request.
type ActivityRecorder interface {
	Record(event ActivityInput)
}

// ActivityRepository persists processed activity events.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

// ActivityService processes a single activity event (dedup + persist).
type ActivityService interface {
	Process(ctx context.Context, event ActivityInput) error
}

type nopRecorder struct{}

func (nopRecorder) Record(ActivityInput) {}

// NopRecorder discards every event. Useful in tests and tools that run
// without the activity pipeline.
var NopRecorder ActivityRecorder = nopRecorder{}
