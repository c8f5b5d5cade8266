package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"enercore/internal/core/apperror"
	"enercore/internal/metadata"
)

// MetaHandler serves resource metadata: the status sets, action sets and
// type enumerations clients need to render forms and filters.
type MetaHandler struct {
	registry *metadata.Registry
}

// NewMetaHandler creates a metadata handler.
func NewMetaHandler(registry *metadata.Registry) *MetaHandler {
	return &MetaHandler{registry: registry}
}

// Register wires metadata routes onto the group.
func (h *MetaHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListResources)
	rg.GET("/:name", h.GetResource)
	rg.GET("/:name/statuses", h.GetStatuses)
	rg.GET("/:name/types", h.GetTypes)
	rg.GET("/:name/actions", h.GetActions)
}

// RegisterResource wires the enumeration shortcuts onto a resource group,
// so GET /bonds/statuses answers without the /meta prefix.
func (h *MetaHandler) RegisterResource(rg *gin.RouterGroup, name string) {
	rg.GET("/statuses", h.forResource(name, h.GetStatuses))
	rg.GET("/types", h.forResource(name, h.GetTypes))
	rg.GET("/actions", h.forResource(name, h.GetActions))
}

func (h *MetaHandler) forResource(name string, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "name", Value: name})
		fn(c)
	}
}

// ListResources returns summaries of every registered resource.
// GET /api/v1/meta
func (h *MetaHandler) ListResources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.registry.All()})
}

// GetResource returns the full description of one resource.
// GET /api/v1/meta/:name
func (h *MetaHandler) GetResource(c *gin.Context) {
	meta, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, meta)
}

// GetStatuses returns the status enumeration for one resource.
// GET /api/v1/meta/:name/statuses
func (h *MetaHandler) GetStatuses(c *gin.Context) {
	meta, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     meta.Statuses,
		"initial":  meta.InitialStatus,
		"terminal": meta.Terminal,
	})
}

// GetTypes returns the type enumeration for one resource.
// GET /api/v1/meta/:name/types
func (h *MetaHandler) GetTypes(c *gin.Context) {
	meta, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": meta.Types})
}

// GetActions returns the action names a resource accepts.
// GET /api/v1/meta/:name/actions
func (h *MetaHandler) GetActions(c *gin.Context) {
	meta, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": meta.Actions})
}

func (h *MetaHandler) lookup(c *gin.Context) (metadata.ResourceMeta, bool) {
	name := c.Param("name")
	meta, ok := h.registry.Get(name)
	if !ok {
		_ = c.Error(apperror.NewNotFound("resource", name))
		c.Abort()
		return metadata.ResourceMeta{}, false
	}
	return meta, true
}
