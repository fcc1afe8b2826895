package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fueling is a dispensing event: diesel leaving the tank into a machine.
// CorrectionNote, when non-nil, marks the record as awaiting manager review —
// it is a request, not an applied change.
type Fueling struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	MachineID    string          `json:"machineId"`
	CompanyID    string          `json:"companyId"`
	Liters       decimal.Decimal `json:"liters"`
	Meter        *decimal.Decimal `json:"meter,omitempty"`
	OperatorName string          `json:"operatorName"`
	PhotoURL     *string         `json:"photoUrl,omitempty"`
	Observations *string         `json:"observations,omitempty"`
	UserID       string          `json:"userId"`
	CorrectionNote *string       `json:"correctionNote,omitempty"`
	Synced       bool            `json:"synced"`
}

// FuelingPatch carries the fields a manager may change on an existing
// fueling. Nil fields are left untouched.
type FuelingPatch struct {
	Liters       *decimal.Decimal
	Meter        *decimal.Decimal
	MachineID    *string
	CompanyID    *string
	OperatorName *string
	Observations *string
}

// Apply merges the non-nil patch fields into f.
func (p FuelingPatch) Apply(f *Fueling) {
	if p.Liters != nil {
		f.Liters = *p.Liters
	}
	if p.Meter != nil {
		f.Meter = p.Meter
	}
	if p.MachineID != nil {
		f.MachineID = *p.MachineID
	}
	if p.CompanyID != nil {
		f.CompanyID = *p.CompanyID
	}
	if p.OperatorName != nil {
		f.OperatorName = *p.OperatorName
	}
	if p.Observations != nil {
		f.Observations = p.Observations
	}
}
