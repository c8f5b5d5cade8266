package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"enercore/internal/core/apperror"
	"enercore/internal/core/id"
	"enercore/internal/domain"
	"enercore/internal/domain/query"
	"enercore/internal/infrastructure/http/v1/dto"
	"enercore/internal/infrastructure/http/v1/middleware"
)

// ResourceHandler provides generic HTTP handlers for resources: CRUD, the
// list-query pipeline, statistics, duplication and status actions.
type ResourceHandler[T domain.Entity, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    *domain.ResourceService[T]
	entityName string

	// Mapper functions
	mapCreateDTO func(dto CreateDTO) T
	mapUpdateDTO func(dto UpdateDTO, existing T)
}

// ResourceHandlerConfig configures the resource handler.
type ResourceHandlerConfig[T domain.Entity, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.ResourceService[T]
	EntityName   string
	MapCreateDTO func(dto CreateDTO) T
	MapUpdateDTO func(dto UpdateDTO, existing T)
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler[T domain.Entity, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg ResourceHandlerConfig[T, CreateDTO, UpdateDTO],
) *ResourceHandler[T, CreateDTO, UpdateDTO] {
	return &ResourceHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
	}
}

// Register wires all resource routes onto the group. Status actions come
// from the transition table, so a new rule automatically gets a route.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/statistics", h.Statistics)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/duplicate", h.Duplicate)

	for _, action := range h.service.Transitions().Actions() {
		rg.POST("/:id/"+action, h.Action(action))
	}
}

// List handles GET /{resource} - filtered, sorted, paginated listing.
// Malformed query input never fails the request; it clamps or falls back.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	params := query.Parse(c.Request.URL.Query(), h.service.QueryConfig())

	result, err := h.service.List(ctx, params)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Data: result.Items,
		Meta: result.Meta,
	})
}

// Statistics handles GET /{resource}/statistics - aggregates over the same
// filtered set the List endpoint would return.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Statistics(c *gin.Context) {
	ctx := c.Request.Context()

	params := query.Parse(c.Request.URL.Query(), h.service.QueryConfig())

	stats, err := h.service.Statistics(ctx, params)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Get handles GET /{resource}/:id - get single resource.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entity, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

// Create handles POST /{resource} - create new resource.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	entity := h.mapCreateDTO(req)

	if err := h.service.Create(ctx, entity); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity)
}

// Update handles PUT /{resource}/:id - update existing resource.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.mapUpdateDTO(req, existing)

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

// Delete handles DELETE /{resource}/:id.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Action returns the handler for POST /{resource}/:id/{action} - apply one
// named status transition. The body, when present, carries the action's
// payload fields.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Action(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		entityID, err := id.Parse(c.Param("id"))
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format"))
			return
		}

		// The body is optional; bind unless absent. ContentLength is -1 for
		// chunked requests, so an empty body is detected by EOF, not length.
		var payload dto.ActionRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
				h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
				return
			}
		}

		entity, err := h.service.Transition(ctx, entityID, action, payload)
		if err != nil {
			h.Error(c, err)
			return
		}

		middleware.CountTransition(h.entityName, action)
		c.JSON(http.StatusOK, entity)
	}
}

// Duplicate handles POST /{resource}/:id/duplicate - copy a resource under
// a new unique key. The copy starts over in the initial status.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Duplicate(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.DuplicateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.Duplicate(ctx, entityID, req.NewKey())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity)
}
