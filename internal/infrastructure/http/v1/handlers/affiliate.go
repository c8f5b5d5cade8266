package handlers

import (
	"enercore/internal/domain/resources/affiliate"
	"enercore/internal/infrastructure/http/v1/dto"
)

// AffiliateHTTPHandler is a type alias to shorten signatures.
type AffiliateHTTPHandler = ResourceHandler[
	*affiliate.Affiliate,
	dto.CreateAffiliateRequest,
	dto.UpdateAffiliateRequest,
]

// NewAffiliateHandler creates a configured generic handler for affiliates.
func NewAffiliateHandler(base *BaseHandler, service *affiliate.Service) *AffiliateHTTPHandler {
	config := ResourceHandlerConfig[
		*affiliate.Affiliate,
		dto.CreateAffiliateRequest,
		dto.UpdateAffiliateRequest,
	]{
		Service:    service.ResourceService,
		EntityName: "affiliate",

		MapCreateDTO: func(req dto.CreateAffiliateRequest) *affiliate.Affiliate {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateAffiliateRequest, existing *affiliate.Affiliate) {
			req.ApplyTo(existing)
		},
	}

	return NewResourceHandler(base, config)
}
