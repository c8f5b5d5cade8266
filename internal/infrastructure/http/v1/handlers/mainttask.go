package handlers

import (
	"enercore/internal/domain/resources/mainttask"
	"enercore/internal/infrastructure/http/v1/dto"
)

// MaintenanceTaskHTTPHandler is a type alias to shorten signatures.
type MaintenanceTaskHTTPHandler = ResourceHandler[
	*mainttask.MaintenanceTask,
	dto.CreateMaintenanceTaskRequest,
	dto.UpdateMaintenanceTaskRequest,
]

// NewMaintenanceTaskHandler creates a configured generic handler for
// maintenance tasks.
func NewMaintenanceTaskHandler(base *BaseHandler, service *mainttask.Service) *MaintenanceTaskHTTPHandler {
	config := ResourceHandlerConfig[
		*mainttask.MaintenanceTask,
		dto.CreateMaintenanceTaskRequest,
		dto.UpdateMaintenanceTaskRequest,
	]{
		Service:    service.ResourceService,
		EntityName: "maintenance_task",

		MapCreateDTO: func(req dto.CreateMaintenanceTaskRequest) *mainttask.MaintenanceTask {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateMaintenanceTaskRequest, existing *mainttask.MaintenanceTask) {
			req.ApplyTo(existing)
		},
	}

	return NewResourceHandler(base, config)
}
