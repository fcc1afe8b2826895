// Package state owns the in-memory collections and the snapshot-on-change
// persistence contract: every successful mutation immediately persists each
// touched collection whole, and startup rehydrates every collection from its
// slot or a seeded default.
package state

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
)

// Data is the full application dataset. Mutation happens only inside
// App.Mutate callbacks — handlers and views never write fields directly.
type Data struct {
	Companies []model.Company
	Machines  []model.Machine
	Users     []model.User
	Fuelings  []model.Fueling
	Refills   []model.TankRefill
	Logs      []model.AuditLog
	Tank      model.TankStatus
	Session   *model.User
}

// Listener is notified after a mutation persisted, with the slot keys that
// changed. Used by the presentation layer to re-render.
type Listener func(keys []string)

// App couples the dataset to a RecordStore. One mutex serializes every
// operation: the domain model is a single logical actor, the lock only
// protects against the HTTP server's request concurrency.
type App struct {
	mu        sync.Mutex
	store     store.RecordStore
	data      Data
	listeners []Listener
}

// Defaults carries the documented fallback values used when a slot has never
// been written.
type Defaults struct {
	TankName         string
	TankCapacity     decimal.Decimal
	TankInitialLevel decimal.Decimal
}

// Load rehydrates every collection from the store, falling back to the seed
// data on first run.
func Load(s store.RecordStore, def Defaults) (*App, error) {
	a := &App{store: s}
	a.data.Companies = SeedCompanies()

	type slot struct {
		key  string
		v    any
		seed func()
	}
	slots := []slot{
		{store.KeyMachines, &a.data.Machines, func() { a.data.Machines = SeedMachines() }},
		{store.KeyUsers, &a.data.Users, func() { a.data.Users = SeedUsers() }},
		{store.KeyFuelings, &a.data.Fuelings, nil},
		{store.KeyRefills, &a.data.Refills, nil},
		{store.KeyLogs, &a.data.Logs, nil},
		{store.KeyTank, &a.data.Tank, func() {
			a.data.Tank = model.TankStatus{
				Name:         def.TankName,
				Capacity:     def.TankCapacity,
				CurrentLevel: def.TankInitialLevel,
			}
		}},
		{store.KeySession, &a.data.Session, nil},
	}
	for _, sl := range slots {
		found, err := s.Read(sl.key, sl.v)
		if err != nil {
			return nil, fmt.Errorf("state: rehydrate %s: %w", sl.key, err)
		}
		if !found && sl.seed != nil {
			sl.seed()
		}
	}
	return a, nil
}

// Subscribe registers a change listener.
func (a *App) Subscribe(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// Mutate runs fn under the state lock. fn returns the slot keys it touched;
// each is snapshotted to the store before the lock is released. A non-nil
// error from fn aborts with zero side effects — nothing is persisted.
func (a *App) Mutate(fn func(d *Data) ([]string, error)) error {
	a.mu.Lock()
	keys, err := fn(&a.data)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	for _, key := range keys {
		if werr := a.snapshot(key); werr != nil {
			log.Error().Err(werr).Str("key", key).Msg("state: snapshot failed")
			if err == nil {
				err = werr
			}
		}
	}
	listeners := a.listeners
	a.mu.Unlock()

	if err == nil && len(keys) > 0 {
		for _, l := range listeners {
			l(keys)
		}
	}
	return err
}

// View runs fn under the state lock for consistent reads. fn must not retain
// references to slices or pointers past its return.
func (a *App) View(fn func(d *Data)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.data)
}

// Session returns the current session user, or nil when logged out.
func (a *App) Session() *model.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.data.Session == nil {
		return nil
	}
	u := *a.data.Session
	return &u
}

// snapshot persists one slot. Caller holds the lock.
func (a *App) snapshot(key string) error {
	switch key {
	case store.KeyMachines:
		return a.store.Write(key, a.data.Machines)
	case store.KeyUsers:
		return a.store.Write(key, a.data.Users)
	case store.KeyFuelings:
		return a.store.Write(key, a.data.Fuelings)
	case store.KeyRefills:
		return a.store.Write(key, a.data.Refills)
	case store.KeyLogs:
		return a.store.Write(key, a.data.Logs)
	case store.KeyTank:
		return a.store.Write(key, a.data.Tank)
	case store.KeySession:
		return a.store.Write(key, a.data.Session)
	default:
		return fmt.Errorf("state: unknown slot %q", key)
	}
}
