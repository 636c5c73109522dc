package model

import (
	"strings"
	"time"
)

// ProjectStatus is the closed set of project states. Older records carry
// free-text statuses; NormalizeStatus folds those into the enum at load time.
type ProjectStatus string

const (
	StatusActive     ProjectStatus = "Active"
	StatusPending    ProjectStatus = "Pending"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
	StatusOnHold     ProjectStatus = "On Hold"
	StatusUnknown    ProjectStatus = "Unknown"
)

// NormalizeStatus maps a stored or user-supplied status string to the enum.
// Unrecognized legacy values become StatusUnknown.
func NormalizeStatus(s string) ProjectStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive
	case "pending":
		return StatusPending
	case "in progress", "in_progress", "inprogress":
		return StatusInProgress
	case "completed", "complete", "done":
		return StatusCompleted
	case "on hold", "on_hold", "onhold", "paused":
		return StatusOnHold
	default:
		return StatusUnknown
	}
}

// ValidStatus reports whether s spells a member of the closed status set.
// StatusUnknown exists only as a legacy fallback and is not accepted as input.
func ValidStatus(s string) bool {
	return NormalizeStatus(s) != StatusUnknown
}

type ProjectTask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"` // Pending / In Progress / Completed
	Assignee  string    `json:"assignee"`
	DueDate   time.Time `json:"dueDate"`
	Completed bool      `json:"completed"`
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	ClientID    string        `json:"clientId"`
	Priority    string        `json:"priority"` // Low / Medium / High
	Progress    int           `json:"progress"`
	UpdateNote  string        `json:"update"`
	Tasks       []ProjectTask `json:"tasks"`
	Version     int64         `json:"version"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// OwnedBy reports whether the project belongs to the given user.
func (p *Project) OwnedBy(userID string) bool {
	return p.ClientID == userID
}
