package domain

import "time"

// Activity actions recorded by the audit pipeline.
const (
	ActivityLogin          = "login"
	ActivityMessageSent    = "message_sent"
	ActivityRequestUpdated = "request_updated"
	ActivityProjectCreated = "project_created"
	ActivityProjectUpdated = "project_updated"
)

// ActivityEvent is a single audit-trail entry describing an action taken by
// a principal.
type ActivityEvent struct {
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
