package handlers

import (
	"enercore/internal/domain/resources/donation"
	"enercore/internal/infrastructure/http/v1/dto"
)

// DonationHTTPHandler is a type alias to shorten signatures.
type DonationHTTPHandler = ResourceHandler[
	*donation.Donation,
	dto.CreateDonationRequest,
	dto.UpdateDonationRequest,
]

// NewDonationHandler creates a configured generic handler for donations.
func NewDonationHandler(base *BaseHandler, service *donation.Service) *DonationHTTPHandler {
	config := ResourceHandlerConfig[
		*donation.Donation,
		dto.CreateDonationRequest,
		dto.UpdateDonationRequest,
	]{
		Service:    service.ResourceService,
		EntityName: "donation",

		MapCreateDTO: func(req dto.CreateDonationRequest) *donation.Donation {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateDonationRequest, existing *donation.Donation) {
			req.ApplyTo(existing)
		},
	}

	return NewResourceHandler(base, config)
}
