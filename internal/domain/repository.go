// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"enercore/internal/core/entity"
	"enercore/internal/core/id"
	"enercore/internal/domain/query"
)

// Entity is the constraint for resources managed by the generic service:
// self-validating, status-bearing, identifiable.
type Entity interface {
	entity.Validatable
	entity.StatusHolder
	GetID() id.ID
}

// ListResult contains one page of entities plus pagination metadata.
type ListResult[T any] struct {
	Items []T            `json:"items"`
	Meta  query.PageMeta `json:"meta"`
}

// ResourceRepository defines persistence operations for a business resource.
type ResourceRepository[T Entity] interface {
	// Create inserts a new entity
	Create(ctx context.Context, entity T) error

	// GetByID retrieves entity by ID
	GetByID(ctx context.Context, id id.ID) (T, error)

	// Update modifies existing entity (with optimistic locking on version)
	Update(ctx context.Context, entity T) error

	// Delete performs physical removal
	Delete(ctx context.Context, id id.ID) error

	// List retrieves one page of entities per the parsed query parameters
	List(ctx context.Context, params query.Params) (ListResult[T], error)

	// Statistics aggregates counts and numeric summaries. A zero Params
	// covers the full collection; non-zero Params pre-scope it with the
	// same filter composition List uses.
	Statistics(ctx context.Context, params query.Params) (query.Statistics, error)

	// Exists checks if entity with given ID exists
	Exists(ctx context.Context, id id.ID) (bool, error)

	// ExistsByKey checks if an entity with the given unique business key
	// (code/number) exists
	ExistsByKey(ctx context.Context, key string) (bool, error)

	// ApplyTransition writes the status change plus side-effect fields in a
	// single update conditioned on the expected current status
	// (compare-and-swap). When the condition no longer holds - the entity
	// was transitioned concurrently - it returns an illegal-transition
	// error carrying the re-read stored status; when the entity is gone it
	// returns not-found. Nothing is written in either case.
	ApplyTransition(ctx context.Context, id id.ID, action, fromStatus string, fields map[string]any) error
}

// TransitionRecord is one applied status transition, kept for audit.
type TransitionRecord struct {
	EntityType string
	EntityID   id.ID
	Action     string
	FromStatus string
	ToStatus   string
	Actor      string
	Payload    map[string]any
}

// TransitionAuditor persists transition records. Implementations live in
// infrastructure; recording failures must not fail the transition itself.
type TransitionAuditor interface {
	Record(ctx context.Context, rec TransitionRecord) error
}
