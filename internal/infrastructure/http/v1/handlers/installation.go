package handlers

import (
	"enercore/internal/domain/resources/installation"
	"enercore/internal/infrastructure/http/v1/dto"
)

// InstallationHTTPHandler is a type alias to shorten signatures.
type InstallationHTTPHandler = ResourceHandler[
	*installation.Installation,
	dto.CreateInstallationRequest,
	dto.UpdateInstallationRequest,
]

// NewInstallationHandler creates a configured generic handler for installations.
func NewInstallationHandler(base *BaseHandler, service *installation.Service) *InstallationHTTPHandler {
	config := ResourceHandlerConfig[
		*installation.Installation,
		dto.CreateInstallationRequest,
		dto.UpdateInstallationRequest,
	]{
		Service:    service.ResourceService,
		EntityName: "installation",

		MapCreateDTO: func(req dto.CreateInstallationRequest) *installation.Installation {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateInstallationRequest, existing *installation.Installation) {
			req.ApplyTo(existing)
		},
	}

	return NewResourceHandler(base, config)
}
