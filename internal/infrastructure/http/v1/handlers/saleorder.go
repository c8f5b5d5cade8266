package handlers

import (
	"enercore/internal/domain/resources/saleorder"
	"enercore/internal/infrastructure/http/v1/dto"
)

// SaleOrderHTTPHandler is a type alias to shorten signatures.
type SaleOrderHTTPHandler = ResourceHandler[
	*saleorder.SaleOrder,
	dto.CreateSaleOrderRequest,
	dto.UpdateSaleOrderRequest,
]

// NewSaleOrderHandler creates a configured generic handler for sale orders.
func NewSaleOrderHandler(base *BaseHandler, service *saleorder.Service) *SaleOrderHTTPHandler {
	config := ResourceHandlerConfig[
		*saleorder.SaleOrder,
		dto.CreateSaleOrderRequest,
		dto.UpdateSaleOrderRequest,
	]{
		Service:    service.ResourceService,
		EntityName: "sale_order",

		MapCreateDTO: func(req dto.CreateSaleOrderRequest) *saleorder.SaleOrder {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateSaleOrderRequest, existing *saleorder.SaleOrder) {
			req.ApplyTo(existing)
		},
	}

	return NewResourceHandler(base, config)
}
