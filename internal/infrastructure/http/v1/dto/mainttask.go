package dto

import (
	"enercore/internal/core/id"
	"enercore/internal/domain/resources/mainttask"
)

// CreateMaintenanceTaskRequest is the request body for scheduling a task.
type CreateMaintenanceTaskRequest struct {
	Number           string `json:"number"`
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	InstallationID   *id.ID `json:"installationId"`
	Priority         string `json:"priority" binding:"required"`
	RequiresShutdown bool   `json:"requiresShutdown"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMaintenanceTaskRequest) ToEntity() *mainttask.MaintenanceTask {
	t := mainttask.New(r.Number, r.Title, mainttask.Priority(r.Priority))
	t.Description = r.Description
	t.InstallationID = r.InstallationID
	t.RequiresShutdown = r.RequiresShutdown
	return t
}

// UpdateMaintenanceTaskRequest is the request body for updating a task.
type UpdateMaintenanceTaskRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	InstallationID   *id.ID `json:"installationId"`
	Priority         string `json:"priority" binding:"required"`
	RequiresShutdown bool   `json:"requiresShutdown"`
	Version          int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMaintenanceTaskRequest) ApplyTo(t *mainttask.MaintenanceTask) {
	t.Title = r.Title
	t.Description = r.Description
	t.InstallationID = r.InstallationID
	t.Priority = mainttask.Priority(r.Priority)
	t.RequiresShutdown = r.RequiresShutdown
	t.Version = r.Version
}
