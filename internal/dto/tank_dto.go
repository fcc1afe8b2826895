package dto

import "github.com/shopspring/decimal"

type RecordRefillRequest struct {
	CompanyID string          `json:"companyId" validate:"required"`
	Liters    decimal.Decimal `json:"liters"    validate:"required,gt=0"`
	// ConfirmOverfill acknowledges the capacity warning returned by a
	// previous attempt. Without it, an over-capacity refill is rejected
	// with 409 and zero side effects.
	ConfirmOverfill bool `json:"confirmOverfill"`
}

type AdjustTankRequest struct {
	NewLevel decimal.Decimal `json:"newLevel" validate:"min=0"`
	Reason   string          `json:"reason"`
}

type UpdateTankRequest struct {
	Name     string          `json:"name"     validate:"required,min=2"`
	Capacity decimal.Decimal `json:"capacity" validate:"required,gt=0"`
}
