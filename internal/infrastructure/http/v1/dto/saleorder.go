package dto

import (
	"enercore/internal/core/id"
	"enercore/internal/core/types"
	"enercore/internal/domain/resources/saleorder"
)

// CreateSaleOrderRequest is the request body for placing a sale order.
type CreateSaleOrderRequest struct {
	Number        string  `json:"number"`
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerEmail string  `json:"customerEmail"`
	BondID        *id.ID  `json:"bondId"`
	AffiliateID   *id.ID  `json:"affiliateId"`
	Units         int     `json:"units"`
	TotalAmount   float64 `json:"totalAmount"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSaleOrderRequest) ToEntity() *saleorder.SaleOrder {
	o := saleorder.New(r.Number, r.CustomerName, r.Units, types.NewMoney(r.TotalAmount))
	o.CustomerEmail = r.CustomerEmail
	o.BondID = r.BondID
	o.AffiliateID = r.AffiliateID
	return o
}

// UpdateSaleOrderRequest is the request body for updating a sale order.
type UpdateSaleOrderRequest struct {
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerEmail string  `json:"customerEmail"`
	BondID        *id.ID  `json:"bondId"`
	AffiliateID   *id.ID  `json:"affiliateId"`
	Units         int     `json:"units"`
	TotalAmount   float64 `json:"totalAmount"`
	Version       int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSaleOrderRequest) ApplyTo(o *saleorder.SaleOrder) {
	o.CustomerName = r.CustomerName
	o.CustomerEmail = r.CustomerEmail
	o.BondID = r.BondID
	o.AffiliateID = r.AffiliateID
	o.Units = r.Units
	o.TotalAmount = types.NewMoney(r.TotalAmount)
	o.Version = r.Version
}
