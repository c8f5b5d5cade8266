package handlers

import (
	"enercore/internal/domain/resources/bond"
	"enercore/internal/infrastructure/http/v1/dto"
)

// BondHTTPHandler is a type alias to shorten signatures.
type BondHTTPHandler = ResourceHandler[
	*bond.Bond,
	dto.CreateBondRequest,
	dto.UpdateBondRequest,
]

// NewBondHandler creates a configured generic handler for bond issues.
func NewBondHandler(base *BaseHandler, service *bond.Service) *BondHTTPHandler {
	config := ResourceHandlerConfig[
		*bond.Bond,
		dto.CreateBondRequest,
		dto.UpdateBondRequest,
	]{
		Service:    service.ResourceService,
		EntityName: "bond",

		MapCreateDTO: func(req dto.CreateBondRequest) *bond.Bond {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateBondRequest, existing *bond.Bond) {
			req.ApplyTo(existing)
		},
	}

	return NewResourceHandler(base, config)
}
