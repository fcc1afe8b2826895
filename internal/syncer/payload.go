package syncer

// payload.go — wire shapes for the remote store. The local snapshots use
// camelCase; the remote schema is snake_case, so the mapping lives here and
// nowhere else. The synced flag and pending correction notes never leave the
// terminal.

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
)

type machineRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CompanyID string  `json:"company_id"`
	Type      string  `json:"type"`
	Plate     *string `json:"plate,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

type fuelingRow struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	MachineID    string           `json:"machine_id"`
	CompanyID    string           `json:"company_id"`
	Liters       decimal.Decimal  `json:"liters"`
	Meter        *decimal.Decimal `json:"meter,omitempty"`
	OperatorName string           `json:"operator_name"`
	UserID       string           `json:"user_id"`
	Observations string           `json:"observations"`
	PhotoURL     string           `json:"photo_url"`
}

type refillRow struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	CompanyID string          `json:"company_id"`
	Liters    decimal.Decimal `json:"liters"`
	UserID    string          `json:"user_id"`
}

func machineToRow(m model.Machine) machineRow {
	return machineRow{
		ID:        m.ID,
		Name:      m.Name,
		CompanyID: m.CompanyID,
		Type:      string(m.Type),
		Plate:     m.Plate,
		PhotoURL:  m.PhotoURL,
	}
}

func fuelingToRow(f model.Fueling) fuelingRow {
	row := fuelingRow{
		ID:           f.ID,
		Date:         f.Date.UTC().Format(time.RFC3339),
		MachineID:    f.MachineID,
		CompanyID:    f.CompanyID,
		Liters:       f.Liters,
		Meter:        f.Meter,
		OperatorName: f.OperatorName,
		UserID:       f.UserID,
	}
	if f.Observations != nil {
		row.Observations = *f.Observations
	}
	if f.PhotoURL != nil {
		row.PhotoURL = *f.PhotoURL
	}
	return row
}

func refillToRow(r model.TankRefill) refillRow {
	return refillRow{
		ID:        r.ID,
		Date:      r.Date.UTC().Format(time.RFC3339),
		CompanyID: r.CompanyID,
		Liters:    r.Liters,
		UserID:    r.UserID,
	}
}
