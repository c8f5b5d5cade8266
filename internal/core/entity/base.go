// Package entity provides the common base for all business resources.
package entity

import (
	"context"
	"time"

	"enercore/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// StatusHolder is implemented by entities with a finite status field.
// The transition guard reads the current status through this interface.
type StatusHolder interface {
	CurrentStatus() string
}

// Resource contains common fields for all business resources
// (affiliates, bonds, donations, installations, orders, tasks, ...).
type Resource struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Status is the entity's position in its finite state machine.
	// Only mutated through the transition guard.
	Status string `db:"status" json:"status"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit fields
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

// NewResource creates a new Resource with generated ID and the given
// canonical initial status.
func NewResource(initialStatus string) Resource {
	now := time.Now().UTC()
	return Resource{
		ID:        id.New(),
		Status:    initialStatus,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CurrentStatus implements StatusHolder.
func (r *Resource) CurrentStatus() string {
	return r.Status
}

// GetID returns the primary key.
func (r *Resource) GetID() id.ID {
	return r.ID
}

// Touch updates the UpdatedAt timestamp and increments version.
func (r *Resource) Touch() {
	r.UpdatedAt = time.Now().UTC()
	r.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (r *Resource) SetVersion(v int) {
	r.Version = v
}
