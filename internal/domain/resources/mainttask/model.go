// Package mainttask provides the MaintenanceTask resource: work orders
// scheduled against installations.
package mainttask

import (
	"context"
	"time"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
	"enercore/internal/core/id"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

// Priority defines task urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// MaintenanceTask statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusPaused     = "paused"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// MaintenanceTask represents a single work order.
type MaintenanceTask struct {
	entity.Resource

	Number string `db:"number" json:"number"`

	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description,omitempty"`

	// InstallationID references the plant the task applies to
	InstallationID *id.ID `db:"installation_id" json:"installationId,omitempty"`

	Priority Priority `db:"priority" json:"priority"`

	// RequiresShutdown marks tasks that need the installation taken offline
	RequiresShutdown bool `db:"requires_shutdown" json:"requiresShutdown"`

	// AssignedTo is set when an engineer starts the task
	AssignedTo *string `db:"assigned_to" json:"assignedTo,omitempty"`

	StartedAt          *time.Time `db:"started_at" json:"startedAt,omitempty"`
	PausedAt           *time.Time `db:"paused_at" json:"pausedAt,omitempty"`
	PauseReason        *string    `db:"pause_reason" json:"pauseReason,omitempty"`
	CompletedAt        *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	CompletionNotes    *string    `db:"completion_notes" json:"completionNotes,omitempty"`
	CancelledAt        *time.Time `db:"cancelled_at" json:"cancelledAt,omitempty"`
	CancellationReason *string    `db:"cancellation_reason" json:"cancellationReason,omitempty"`
}

// New creates a pending maintenance task.
func New(number, title string, priority Priority) *MaintenanceTask {
	return &MaintenanceTask{
		Resource: entity.NewResource(StatusPending),
		Number:   number,
		Title:    title,
		Priority: priority,
	}
}

// Validate implements entity.Validatable.
func (t *MaintenanceTask) Validate(ctx context.Context) error {
	if t.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}

	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
	default:
		return apperror.NewValidation("unknown priority").
			WithDetail("field", "priority")
	}

	return nil
}

// Priorities returns the closed set of task priorities.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// QueryConfig declares the maintenance task list-query surface.
func QueryConfig() query.Config {
	return query.Config{
		Entity:       "maintenance_task",
		FilterFields: []string{"status", "priority", "installation_id", "assigned_to"},
		RangeFields:  []string{"created_at", "started_at", "completed_at"},
		BoolFields:   []string{"requires_shutdown"},
		SearchFields: []string{"number", "title", "description"},
		SortFields:   []string{"number", "title", "priority", "status", "created_at", "started_at"},
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		// Work queues page small for the field crew app.
		MaxPerPage:  50,
		GroupFields: []string{"status", "priority"},
	}
}

// Transitions declares the maintenance task status machine.
func Transitions() *transition.Table {
	return &transition.Table{
		Entity:  "maintenance_task",
		Initial: StatusPending,
		Rules: map[string]transition.Rule{
			"start": {
				From: []string{StatusPending},
				To:   StatusInProgress,
				Check: func(e entity.StatusHolder, req transition.Request) error {
					if req.Actor == "" {
						return apperror.NewBusinessRule("task must be started by a named engineer")
					}
					return nil
				},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"started_at":  req.Now,
						"assigned_to": req.Actor,
					}
				},
			},
			"pause": {
				From:           []string{StatusInProgress},
				To:             StatusPaused,
				RequiredFields: []string{"pause_reason"},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"paused_at":    req.Now,
						"pause_reason": req.GetString("pause_reason"),
					}
				},
			},
			"resume": {
				From: []string{StatusPaused},
				To:   StatusInProgress,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"paused_at":    nil,
						"pause_reason": nil,
					}
				},
			},
			"complete": {
				From: []string{StatusInProgress},
				To:   StatusCompleted,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					fields := map[string]any{
						"completed_at": req.Now,
					}
					if notes := req.GetString("completion_notes"); notes != "" {
						fields["completion_notes"] = notes
					}
					return fields
				},
			},
			"cancel": {
				From:           []string{StatusPending, StatusInProgress, StatusPaused},
				To:             StatusCancelled,
				RequiredFields: []string{"cancellation_reason"},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"cancelled_at":        req.Now,
						"cancellation_reason": req.GetString("cancellation_reason"),
					}
				},
			},
		},
	}
}

// Clone copies a task under a new number: fresh identity, pending status,
// assignment and progress trails dropped.
func Clone(src *MaintenanceTask, newNumber string) *MaintenanceTask {
	dup := New(newNumber, src.Title, src.Priority)
	dup.Description = src.Description
	dup.InstallationID = src.InstallationID
	dup.RequiresShutdown = src.RequiresShutdown
	return dup
}
