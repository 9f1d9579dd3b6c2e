package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning    ProjectStatus = "PLANNING"
	ProjectDevelopment ProjectStatus = "DEVELOPMENT"
	ProjectTesting     ProjectStatus = "TESTING"
	ProjectDeployment  ProjectStatus = "DEPLOYMENT"
	ProjectDelivered   ProjectStatus = "DELIVERED"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectPlanning, ProjectDevelopment, ProjectTesting, ProjectDeployment, ProjectDelivered:
		return true
	}
	return false
}

// Project is a piece of work delivered to a client, optionally originating
// from an accepted service request.
type Project struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	ClientID         string        `json:"client_id"`
	ServiceRequestID string        `json:"service_request_id,omitempty"`
	Status           ProjectStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Assignment links an employee to a project.
type Assignment struct {
	ProjectID  string `json:"project_id"`
	EmployeeID string `json:"employee_id"`
}
