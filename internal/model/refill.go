package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TankRefill is a delivery event: diesel entering the tank from a supplier.
// Refills are immutable once recorded — there is no edit or delete path.
// Level mistakes after a refill are corrected via a tank adjustment, which
// leaves an audit entry.
type TankRefill struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	CompanyID string          `json:"companyId"`
	Liters    decimal.Decimal `json:"liters"`
	UserID    string          `json:"userId"`
	Synced    bool            `json:"synced"`
}
