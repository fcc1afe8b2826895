package dto

import (
	"github.com/shopspring/decimal"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecordFuelingRequest struct {
	MachineID    string           `json:"machineId"    validate:"required"`
	CompanyID    string           `json:"companyId"    validate:"required"`
	Liters       decimal.Decimal  `json:"liters"       validate:"required,gt=0"`
	Meter        *decimal.Decimal `json:"meter"        validate:"omitempty,min=0"`
	OperatorName string           `json:"operatorName" validate:"required,min=2"`
	PhotoURL     *string          `json:"photoUrl"`
	Observations *string          `json:"observations"`
}

// UpdateFuelingRequest carries the manager's patch; nil fields are untouched.
type UpdateFuelingRequest struct {
	Liters       *decimal.Decimal `json:"liters"       validate:"omitempty,gt=0"`
	Meter        *decimal.Decimal `json:"meter"        validate:"omitempty,min=0"`
	MachineID    *string          `json:"machineId"`
	CompanyID    *string          `json:"companyId"`
	OperatorName *string          `json:"operatorName"`
	Observations *string          `json:"observations"`
}

// Patch converts the request into the engine's patch shape.
func (r UpdateFuelingRequest) Patch() model.FuelingPatch {
	return model.FuelingPatch{
		Liters:       r.Liters,
		Meter:        r.Meter,
		MachineID:    r.MachineID,
		CompanyID:    r.CompanyID,
		OperatorName: r.OperatorName,
		Observations: r.Observations,
	}
}

type SuggestCorrectionRequest struct {
	Note string `json:"note" validate:"required,min=3"`
}

type ProcessCorrectionRequest struct {
	Approved bool                  `json:"approved"`
	NewData  *UpdateFuelingRequest `json:"newData" validate:"omitempty"`
}
