// Package ledger is the tank bookkeeping engine. It is the only writer of
// the application state: every mutation deducts/restores the tank balance,
// flags the touched records unsynced, and appends an audit entry for every
// action that is not a plain creation by its own actor.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
)

// Engine mutates the tank and its event log through state.App. All
// capability checks happen here, once per operation — never in views.
type Engine struct {
	app *state.App
}

func New(app *state.App) *Engine { return &Engine{app: app} }

// ── RecordFueling ────────────────────────────────────────────────────────────

// FuelingInput is the operator-submitted dispensing event.
type FuelingInput struct {
	MachineID    string
	CompanyID    string
	Liters       decimal.Decimal
	Meter        *decimal.Decimal
	OperatorName string
	PhotoURL     *string
	Observations *string
}

// RecordFueling deducts liters from the tank and stores the unsynced record.
// The balance check is performed against the level at submission time; there
// is no locking against the remote store. No audit entry is written for a
// plain creation.
func (e *Engine) RecordFueling(actor *model.User, in FuelingInput) (*model.Fueling, error) {
	if !actor.Role.Can(model.CapRecordFueling) {
		return nil, ErrPermission
	}
	if !in.Liters.IsPositive() {
		return nil, validationErr("informe uma quantidade de litros maior que zero")
	}
	if in.OperatorName == "" {
		return nil, validationErr("informe o nome do operador")
	}

	var created model.Fueling
	err := e.app.Mutate(func(d *state.Data) ([]string, error) {
		if !companyExists(d, in.CompanyID) {
			return nil, ErrCompanyNotFound
		}
		if !machineExists(d, in.MachineID) {
			return nil, ErrMachineNotFound
		}
		if in.Liters.GreaterThan(d.Tank.CurrentLevel) {
			return nil, ErrInsufficientBalance
		}

		created = model.Fueling{
			ID:           uuid.NewString(),
			Date:         time.Now(),
			MachineID:    in.MachineID,
			CompanyID:    in.CompanyID,
			Liters:       in.Liters,
			Meter:        in.Meter,
			OperatorName: in.OperatorName,
			PhotoURL:     in.PhotoURL,
			Observations: in.Observations,
			UserID:       actor.ID,
			Synced:       false,
		}
		d.Fuelings = append(d.Fuelings, created)
		d.Tank.CurrentLevel = d.Tank.CurrentLevel.Sub(in.Liters)
		return []string{store.KeyFuelings, store.KeyTank}, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("fueling_id", created.ID).
		Str("machine_id", created.MachineID).
		Str("liters", created.Liters.String()).
		Msg("fueling recorded")
	return &created, nil
}

// ── RecordRefill ─────────────────────────────────────────────────────────────

// RefillInput is a supplier delivery. ConfirmOverfill acknowledges the
// capacity warning so the level may exceed nominal capacity — tanker trucks
// overshoot, and the books must reflect physical reality.
type RefillInput struct {
	CompanyID       string
	Liters          decimal.Decimal
	ConfirmOverfill bool
}

// RecordRefill adds liters to the tank. The level is never clamped down on a
// confirmed overfill. Refills are immutable once recorded. No audit entry.
func (e *Engine) RecordRefill(actor *model.User, in RefillInput) (*model.TankRefill, error) {
	if !actor.Role.Can(model.CapRefillTank) {
		return nil, ErrPermission
	}
	if !in.Liters.IsPositive() {
		return nil, validationErr("informe uma quantidade de litros maior que zero")
	}

	var created model.TankRefill
	err := e.app.Mutate(func(d *state.Data) ([]string, error) {
		if !companyExists(d, in.CompanyID) {
			return nil, ErrCompanyNotFound
		}
		newLevel := d.Tank.CurrentLevel.Add(in.Liters)
		if newLevel.GreaterThan(d.Tank.Capacity) && !in.ConfirmOverfill {
			return nil, ErrCapacityExceeded
		}

		created = model.TankRefill{
			ID:        uuid.NewString(),
			Date:      time.Now(),
			CompanyID: in.CompanyID,
			Liters:    in.Liters,
			UserID:    actor.ID,
			Synced:    false,
		}
		d.Refills = append(d.Refills, created)
		d.Tank.CurrentLevel = newLevel
		return []string{store.KeyRefills, store.KeyTank}, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("refill_id", created.ID).
		Str("liters", created.Liters.String()).
		Msg("tank refill recorded")
	return &created, nil
}

// ── DeleteFueling ────────────────────────────────────────────────────────────

// DeleteFueling removes the record, restores its liters to the tank (clamped
// to [0, capacity]) and appends a DELETE audit entry.
func (e *Engine) DeleteFueling(actor *model.User, id string) error {
	if !actor.Role.Can(model.CapManageFuelings) {
		return ErrPermission
	}
	return e.app.Mutate(func(d *state.Data) ([]string, error) {
		idx := findFueling(d, id)
		if idx < 0 {
			return nil, ErrFuelingNotFound
		}
		f := d.Fuelings[idx]

		d.Tank.CurrentLevel = model.ClampLevel(d.Tank.CurrentLevel.Add(f.Liters), d.Tank.Capacity)
		d.Fuelings = append(d.Fuelings[:idx], d.Fuelings[idx+1:]...)

		appendLog(d, actor.ID, model.AuditActionDelete, model.AuditEntityFueling, nil, nil,
			fmt.Sprintf("Excluiu abastecimento #%s de %sL para %s", f.ID, f.Liters, f.MachineID))
		return []string{store.KeyFuelings, store.KeyTank, store.KeyLogs}, nil
	})
}

// ── UpdateFueling ────────────────────────────────────────────────────────────

// UpdateFueling merges the patch into the record and moves the tank by the
// liters delta, clamped to [0, capacity]. The record goes back to unsynced
// and an UPDATE audit entry records old and new volumes.
func (e *Engine) UpdateFueling(actor *model.User, id string, patch model.FuelingPatch) (*model.Fueling, error) {
	if !actor.Role.Can(model.CapManageFuelings) {
		return nil, ErrPermission
	}
	if patch.Liters != nil && !patch.Liters.IsPositive() {
		return nil, validationErr("informe uma quantidade de litros maior que zero")
	}

	var updated model.Fueling
	err := e.app.Mutate(func(d *state.Data) ([]string, error) {
		idx := findFueling(d, id)
		if idx < 0 {
			return nil, ErrFuelingNotFound
		}
		if patch.CompanyID != nil && !companyExists(d, *patch.CompanyID) {
			return nil, ErrCompanyNotFound
		}
		if patch.MachineID != nil && !machineExists(d, *patch.MachineID) {
			return nil, ErrMachineNotFound
		}
		old := d.Fuelings[idx]

		keys := []string{store.KeyFuelings, store.KeyLogs}
		if patch.Liters != nil {
			delta := patch.Liters.Sub(old.Liters)
			d.Tank.CurrentLevel = model.ClampLevel(d.Tank.CurrentLevel.Sub(delta), d.Tank.Capacity)
			keys = append(keys, store.KeyTank)
		}

		f := old
		patch.Apply(&f)
		f.Synced = false
		d.Fuelings[idx] = f
		updated = f

		oldVal := old.Liters.String() + "L"
		newVal := f.Liters.String() + "L"
		appendLog(d, actor.ID, model.AuditActionUpdate, model.AuditEntityFueling, &oldVal, &newVal,
			fmt.Sprintf("Editou volume de abastecimento #%s", id))
		return keys, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ── AdjustTank ───────────────────────────────────────────────────────────────

// AdjustTank sets the level to an absolute value. A non-empty reason is
// mandatory whenever the level actually changes; rejection leaves no state
// change and no audit entry.
func (e *Engine) AdjustTank(actor *model.User, newLevel decimal.Decimal, reason string) error {
	if !actor.Role.Can(model.CapAdjustTank) {
		return ErrPermission
	}
	if newLevel.IsNegative() {
		return validationErr("o nível do tanque não pode ser negativo")
	}
	return e.app.Mutate(func(d *state.Data) ([]string, error) {
		if !newLevel.Equal(d.Tank.CurrentLevel) && reason == "" {
			return nil, validationErr("informe o motivo do ajuste de tanque")
		}
		oldVal := d.Tank.CurrentLevel.String()
		newVal := newLevel.String()
		d.Tank.CurrentLevel = newLevel

		appendLog(d, actor.ID, model.AuditActionAdjust, model.AuditEntityTank, &oldVal, &newVal, reason)
		return []string{store.KeyTank, store.KeyLogs}, nil
	})
}

// UpdateTankMetadata renames the tank and/or changes its nominal capacity.
// The current level is untouched, even when it now exceeds the new capacity.
func (e *Engine) UpdateTankMetadata(actor *model.User, name string, capacity decimal.Decimal) error {
	if !actor.Role.Can(model.CapAdjustTank) {
		return ErrPermission
	}
	if name == "" {
		return validationErr("informe o nome do tanque")
	}
	if !capacity.IsPositive() {
		return validationErr("informe uma capacidade maior que zero")
	}
	return e.app.Mutate(func(d *state.Data) ([]string, error) {
		d.Tank.Name = name
		d.Tank.Capacity = capacity
		appendLog(d, actor.ID, model.AuditActionUpdate, model.AuditEntityTank, nil, nil,
			fmt.Sprintf("Configuração do tanque atualizada: %s (%sL)", name, capacity))
		return []string{store.KeyTank, store.KeyLogs}, nil
	})
}

// ── Corrections ──────────────────────────────────────────────────────────────

// SuggestCorrection flags a fueling as awaiting manager review. A request,
// not an effect: no balance change, no audit entry.
func (e *Engine) SuggestCorrection(actor *model.User, fuelingID, note string) error {
	if note == "" {
		return validationErr("informe a observação da correção")
	}
	return e.app.Mutate(func(d *state.Data) ([]string, error) {
		idx := findFueling(d, fuelingID)
		if idx < 0 {
			return nil, ErrFuelingNotFound
		}
		d.Fuelings[idx].CorrectionNote = &note
		d.Fuelings[idx].Synced = false
		return []string{store.KeyFuelings}, nil
	})
}

// ProcessCorrection resolves a pending correction. Approval applies the new
// data with the same delta adjustment as UpdateFueling; rejection only clears
// the note. Either way one audit entry describes the decision.
func (e *Engine) ProcessCorrection(actor *model.User, fuelingID string, approved bool, patch *model.FuelingPatch) error {
	if !actor.Role.Can(model.CapManageFuelings) {
		return ErrPermission
	}
	return e.app.Mutate(func(d *state.Data) ([]string, error) {
		idx := findFueling(d, fuelingID)
		if idx < 0 {
			return nil, ErrFuelingNotFound
		}
		if approved && patch != nil {
			if patch.CompanyID != nil && !companyExists(d, *patch.CompanyID) {
				return nil, ErrCompanyNotFound
			}
			if patch.MachineID != nil && !machineExists(d, *patch.MachineID) {
				return nil, ErrMachineNotFound
			}
		}
		f := d.Fuelings[idx]

		keys := []string{store.KeyFuelings, store.KeyLogs}
		verdict := "Rejeitou"
		if approved {
			verdict = "Aprovou"
		}
		if approved && patch != nil {
			if patch.Liters != nil {
				delta := patch.Liters.Sub(f.Liters)
				d.Tank.CurrentLevel = model.ClampLevel(d.Tank.CurrentLevel.Sub(delta), d.Tank.Capacity)
				keys = append(keys, store.KeyTank)
			}
			patch.Apply(&f)
		}
		f.CorrectionNote = nil
		f.Synced = false
		d.Fuelings[idx] = f

		appendLog(d, actor.ID, model.AuditActionUpdate, model.AuditEntityFueling, nil, nil,
			fmt.Sprintf("%s correção para abastecimento %s", verdict, fuelingID))
		return keys, nil
	})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func findFueling(d *state.Data, id string) int {
	for i := range d.Fuelings {
		if d.Fuelings[i].ID == id {
			return i
		}
	}
	return -1
}

func companyExists(d *state.Data, id string) bool {
	for _, c := range d.Companies {
		if c.ID == id {
			return true
		}
	}
	return false
}

func machineExists(d *state.Data, id string) bool {
	for _, m := range d.Machines {
		if m.ID == id {
			return true
		}
	}
	return false
}

// appendLog appends an immutable audit entry. Caller holds the state lock
// (always runs inside a Mutate callback).
func appendLog(d *state.Data, userID string, action model.AuditAction, entity model.AuditEntity, oldVal, newVal *string, reason string) {
	d.Logs = append(d.Logs, model.AuditLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		OldValue:  oldVal,
		NewValue:  newVal,
		Reason:    reason,
	})
}
