// Package report computes the read-only derived views: per-unit consumption
// summaries, filtered consumption reports and the tank audit trail. It never
// mutates state.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
)

type Service struct {
	app              *state.App
	lowFuelThreshold decimal.Decimal
}

func NewService(app *state.App, lowFuelThreshold decimal.Decimal) *Service {
	return &Service{app: app, lowFuelThreshold: lowFuelThreshold}
}

// TankView is the tank status plus the derived low-fuel flag.
type TankView struct {
	Name         string          `json:"name"`
	Capacity     decimal.Decimal `json:"capacity"`
	CurrentLevel decimal.Decimal `json:"currentLevel"`
	LowFuel      bool            `json:"lowFuel"`
}

// UnitSummary aggregates one company's fuel movement.
type UnitSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Consumed decimal.Decimal `json:"consumed"`
	Refilled decimal.Decimal `json:"refilled"`
	Balance  decimal.Decimal `json:"balance"`
}

// MachineConsumption is one machine's share of the consumption chart.
type MachineConsumption struct {
	MachineID string          `json:"machineId"`
	Name      string          `json:"name"`
	Liters    decimal.Decimal `json:"liters"`
}

// Dashboard is the landing view. CompanyID filters totals, recent fuelings
// and the machine breakdown to one unit; empty means fleet-wide.
type Dashboard struct {
	Tank           TankView             `json:"tank"`
	TotalConsumed  decimal.Decimal      `json:"totalConsumed"`
	TotalRefilled  decimal.Decimal      `json:"totalRefilled"`
	Balance        decimal.Decimal      `json:"balance"`
	Units          []UnitSummary        `json:"units"`
	Machines       []MachineConsumption `json:"machines"`
	LastRefill     *model.TankRefill    `json:"lastRefill,omitempty"`
	RecentFuelings []model.Fueling      `json:"recentFuelings"`
	PendingReviews int                  `json:"pendingReviews"`
}

const recentFuelingsLimit = 6

// BuildDashboard assembles the dashboard from one consistent state view.
func (s *Service) BuildDashboard(companyID string) *Dashboard {
	out := &Dashboard{
		TotalConsumed: decimal.Zero,
		TotalRefilled: decimal.Zero,
	}

	s.app.View(func(d *state.Data) {
		out.Tank = TankView{
			Name:         d.Tank.Name,
			Capacity:     d.Tank.Capacity,
			CurrentLevel: d.Tank.CurrentLevel,
			LowFuel:      d.Tank.CurrentLevel.LessThan(s.lowFuelThreshold),
		}

		machineNames := make(map[string]string, len(d.Machines))
		for _, m := range d.Machines {
			machineNames[m.ID] = m.Name
		}

		// Per-unit totals over the whole fleet, independent of the filter.
		for _, c := range d.Companies {
			unit := UnitSummary{ID: c.ID, Name: c.Name, Consumed: decimal.Zero, Refilled: decimal.Zero}
			for _, f := range d.Fuelings {
				if f.CompanyID == c.ID {
					unit.Consumed = unit.Consumed.Add(f.Liters)
				}
			}
			for _, r := range d.Refills {
				if r.CompanyID == c.ID {
					unit.Refilled = unit.Refilled.Add(r.Liters)
				}
			}
			unit.Balance = unit.Refilled.Sub(unit.Consumed)
			out.Units = append(out.Units, unit)
		}

		perMachine := map[string]decimal.Decimal{}
		var filtered []model.Fueling
		for _, f := range d.Fuelings {
			if companyID != "" && f.CompanyID != companyID {
				continue
			}
			filtered = append(filtered, f)
			out.TotalConsumed = out.TotalConsumed.Add(f.Liters)
			perMachine[f.MachineID] = perMachine[f.MachineID].Add(f.Liters)
			if f.CorrectionNote != nil {
				out.PendingReviews++
			}
		}
		for _, r := range d.Refills {
			if companyID != "" && r.CompanyID != companyID {
				continue
			}
			out.TotalRefilled = out.TotalRefilled.Add(r.Liters)
			rr := r
			out.LastRefill = &rr
		}

		for _, m := range d.Machines {
			liters, ok := perMachine[m.ID]
			if !ok || liters.IsZero() {
				continue
			}
			out.Machines = append(out.Machines, MachineConsumption{
				MachineID: m.ID,
				Name:      machineNames[m.ID],
				Liters:    liters,
			})
		}

		// Most recent first.
		start := len(filtered) - recentFuelingsLimit
		if start < 0 {
			start = 0
		}
		for i := len(filtered) - 1; i >= start; i-- {
			out.RecentFuelings = append(out.RecentFuelings, filtered[i])
		}
	})

	out.Balance = out.TotalRefilled.Sub(out.TotalConsumed)
	return out
}

// ConsumptionFilter narrows the consumption report. Zero times disable the
// date bounds.
type ConsumptionFilter struct {
	CompanyID string
	MachineID string
	From      time.Time
	To        time.Time
}

// Consumption is the filtered fueling list with its liters total.
type Consumption struct {
	Entries     []model.Fueling `json:"entries"`
	TotalLiters decimal.Decimal `json:"totalLiters"`
}

// BuildConsumption filters fuelings by company, machine and date range.
func (s *Service) BuildConsumption(filter ConsumptionFilter) *Consumption {
	out := &Consumption{TotalLiters: decimal.Zero}
	s.app.View(func(d *state.Data) {
		for _, f := range d.Fuelings {
			if filter.CompanyID != "" && f.CompanyID != filter.CompanyID {
				continue
			}
			if filter.MachineID != "" && f.MachineID != filter.MachineID {
				continue
			}
			if !filter.From.IsZero() && f.Date.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && f.Date.After(filter.To) {
				continue
			}
			out.Entries = append(out.Entries, f)
			out.TotalLiters = out.TotalLiters.Add(f.Liters)
		}
	})
	return out
}

// TankAudit returns the manual adjustment trail: audit entries with
// entity=TANK and action=ADJUST, oldest first.
func (s *Service) TankAudit() []model.AuditLog {
	var out []model.AuditLog
	s.app.View(func(d *state.Data) {
		for _, l := range d.Logs {
			if l.Entity == model.AuditEntityTank && l.Action == model.AuditActionAdjust {
				out = append(out, l)
			}
		}
	})
	return out
}
