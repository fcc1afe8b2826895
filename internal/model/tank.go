package model

import "github.com/shopspring/decimal"

// TankStatus is the single central tank. CurrentLevel >= 0 always;
// CurrentLevel <= Capacity is a soft bound — refills may overshoot nominal
// capacity after an explicit override, so the level is never clamped down
// on refill, only on restorative operations.
type TankStatus struct {
	Name         string          `json:"name"`
	Capacity     decimal.Decimal `json:"capacity"`
	CurrentLevel decimal.Decimal `json:"currentLevel"`
}

// ClampLevel bounds a restored level to [0, capacity]. Used when deleting or
// shrinking fuelings returns fuel to the books — never on refills.
func ClampLevel(level, capacity decimal.Decimal) decimal.Decimal {
	if level.IsNegative() {
		return decimal.Zero
	}
	if level.GreaterThan(capacity) {
		return capacity
	}
	return level
}
