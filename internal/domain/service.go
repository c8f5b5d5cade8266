package domain

import (
	"context"
	"fmt"

	"enercore/internal/core/apperror"
	appctx "enercore/internal/core/context"
	"enercore/internal/core/id"
	"enercore/internal/core/tx"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
	"enercore/pkg/logger"
)

// ResourceService provides business logic shared by all resources:
// CRUD, the list-query pipeline, statistics, guarded status transitions and
// duplication. Per-resource services embed it and register hooks for their
// specific logic.
type ResourceService[T Entity] struct {
	repo        ResourceRepository[T]
	txManager   tx.Manager
	transitions *transition.Table
	queryConfig query.Config
	auditor     TransitionAuditor
	hooks       *HookRegistry[T]

	entityName string
	keyField   string
	clone      func(src T, newKey string) T
}

// ResourceServiceConfig configures the generic resource service.
type ResourceServiceConfig[T Entity] struct {
	Repo        ResourceRepository[T]
	TxManager   tx.Manager
	Transitions *transition.Table
	QueryConfig query.Config

	// Auditor records applied transitions; optional.
	Auditor TransitionAuditor

	// EntityName for error messages and logs.
	EntityName string

	// KeyField names the unique business key (code/number) a duplicate
	// action must supply. Empty disables Duplicate.
	KeyField string

	// Clone copies src into a fresh record for Duplicate: new identity and
	// key, status reset to the canonical initial state, usage counters
	// zeroed. The per-resource package owns what "counters" means.
	Clone func(src T, newKey string) T
}

// NewResourceService creates a new generic resource service.
func NewResourceService[T Entity](cfg ResourceServiceConfig[T]) *ResourceService[T] {
	return &ResourceService[T]{
		repo:        cfg.Repo,
		txManager:   cfg.TxManager,
		transitions: cfg.Transitions,
		queryConfig: cfg.QueryConfig.Normalized(),
		auditor:     cfg.Auditor,
		hooks:       NewHookRegistry[T](),
		entityName:  cfg.EntityName,
		keyField:    cfg.KeyField,
		clone:       cfg.Clone,
	}
}

// Hooks returns the hook registry for external registration.
func (s *ResourceService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// QueryConfig returns the entity's query configuration (for handlers and
// metadata endpoints).
func (s *ResourceService[T]) QueryConfig() query.Config {
	return s.queryConfig
}

// Transitions returns the entity's transition table.
func (s *ResourceService[T]) Transitions() *transition.Table {
	return s.transitions
}

func (s *ResourceService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *ResourceService[T]) normalizeGetErr(err error, entityID any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", entityID)
}

// Create creates a new entity.
func (s *ResourceService[T]) Create(ctx context.Context, e T) error {
	if err := s.hooks.Run(ctx, BeforeCreate, e); err != nil {
		return err
	}

	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterCreate, e); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// GetByID retrieves entity by ID.
func (s *ResourceService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return e, s.normalizeGetErr(err, entityID.String())
	}
	return e, nil
}

// Update updates an existing entity.
func (s *ResourceService[T]) Update(ctx context.Context, e T) error {
	if err := s.hooks.Run(ctx, BeforeUpdate, e); err != nil {
		return err
	}

	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, e); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete removes an entity.
func (s *ResourceService[T]) Delete(ctx context.Context, entityID id.ID) error {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.Run(ctx, BeforeDelete, e); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
}

// List retrieves one page of entities.
func (s *ResourceService[T]) List(ctx context.Context, params query.Params) (ListResult[T], error) {
	return s.repo.List(ctx, params)
}

// Statistics aggregates counts and numeric summaries over the collection.
func (s *ResourceService[T]) Statistics(ctx context.Context, params query.Params) (query.Statistics, error) {
	return s.repo.Statistics(ctx, params)
}

// Exists checks if entity exists.
func (s *ResourceService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}

// Transition applies a named action to the entity's status machine.
//
// The guard performs exactly one state check against the loaded entity; the
// repository then writes status plus side effects conditioned on that same
// source status, so of two racing attempts only one applies - the loser gets
// the standard illegal-transition rejection with the stored status.
func (s *ResourceService[T]) Transition(ctx context.Context, entityID id.ID, action string, payload map[string]any) (T, error) {
	var zero T

	if s.transitions == nil {
		return zero, apperror.NewValidation(fmt.Sprintf("%s has no transitions", s.entityName))
	}

	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return zero, s.normalizeGetErr(err, entityID.String())
	}

	res, err := s.transitions.Attempt(e, transition.Request{
		Action:  action,
		Actor:   appctx.GetActorID(ctx),
		Payload: payload,
	})
	if err != nil {
		return zero, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.ApplyTransition(ctx, entityID, action, res.From, res.Fields); err != nil {
			return err
		}
		if s.auditor != nil {
			rec := TransitionRecord{
				EntityType: s.entityName,
				EntityID:   entityID,
				Action:     action,
				FromStatus: res.From,
				ToStatus:   res.To,
				Actor:      appctx.GetActorID(ctx),
				Payload:    payload,
			}
			if err := s.auditor.Record(ctx, rec); err != nil {
				logger.Warn(ctx, "transition audit failed", "entity", s.entityName, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	logger.Info(ctx, "status transition applied",
		"entity", s.entityName,
		"id", entityID,
		"action", action,
		"from", res.From,
		"to", res.To)

	updated, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return zero, s.normalizeGetErr(err, entityID.String())
	}
	return updated, nil
}

// Duplicate clones an entity under a new unique key. The copy starts over in
// the entity's canonical initial state with usage counters reset; a key
// collision is a validation failure, not a transition error.
func (s *ResourceService[T]) Duplicate(ctx context.Context, entityID id.ID, newKey string) (T, error) {
	var zero T

	if s.clone == nil {
		return zero, apperror.NewValidation(fmt.Sprintf("%s cannot be duplicated", s.entityName))
	}
	if newKey == "" {
		return zero, apperror.NewInvalidPayload("duplicate", s.keyField,
			fmt.Sprintf("%s is required to duplicate a %s", s.keyField, s.entityName))
	}

	src, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return zero, s.normalizeGetErr(err, entityID.String())
	}

	exists, err := s.repo.ExistsByKey(ctx, newKey)
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, apperror.NewDuplicate(s.entityName, s.keyField, newKey)
	}

	dup := s.clone(src, newKey)
	if err := s.Create(ctx, dup); err != nil {
		return zero, err
	}

	logger.Info(ctx, "entity duplicated",
		"entity", s.entityName,
		"source_id", entityID,
		"new_id", dup.GetID())

	return dup, nil
}
