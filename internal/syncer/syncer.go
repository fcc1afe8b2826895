// Package syncer pushes unsynced records to the remote store: one batch per
// collection, records flipped to synced only after that exact batch is
// confirmed. Batches are independent — a failed collection stays unsynced
// and is retried on the next manual sync, while other collections may still
// succeed.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/MateusVidalm/ECOTANQUE/internal/infra"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
)

var (
	// ErrOffline — no network reachability; no call is attempted.
	ErrOffline = errors.New("sem conexão com a internet para sincronizar")

	// ErrSyncInFlight — a sync is already running; the trigger is rejected
	// instead of queued.
	ErrSyncInFlight = errors.New("sincronização já em andamento")

	// ErrNotConfigured — the remote endpoint was never set up.
	ErrNotConfigured = errors.New("configuração pendente: informe a URL e as chaves do banco online")
)

// Remote is the batch upsert surface of the central store.
type Remote interface {
	Configured() bool
	UpsertBatch(ctx context.Context, table string, records any) error
}

// OnlineProbe reports current network reachability. The platform feeds it;
// the coordinator only needs the boolean.
type OnlineProbe func() bool

// Coordinator owns the unsynced/synced partition of every collection.
type Coordinator struct {
	app      *state.App
	remote   Remote
	cb       *infra.CircuitBreaker
	online   OnlineProbe
	inFlight atomic.Bool
}

func New(app *state.App, remote Remote, cb *infra.CircuitBreaker, online OnlineProbe) *Coordinator {
	return &Coordinator{app: app, remote: remote, cb: cb, online: online}
}

// PendingCount sums unsynced fuelings, refills and machines. Users and audit
// logs stay local.
func (c *Coordinator) PendingCount() int {
	count := 0
	c.app.View(func(d *state.Data) {
		for _, f := range d.Fuelings {
			if !f.Synced {
				count++
			}
		}
		for _, r := range d.Refills {
			if !r.Synced {
				count++
			}
		}
		for _, m := range d.Machines {
			if !m.Synced {
				count++
			}
		}
	})
	return count
}

// BatchResult is the outcome of one collection's batch.
type BatchResult struct {
	Sent  int    `json:"sent"`
	Error string `json:"error,omitempty"`
}

// Result summarizes one sync run.
type Result struct {
	Machines BatchResult `json:"machines"`
	Fuelings BatchResult `json:"fuelings"`
	Refills  BatchResult `json:"refills"`
	Pending  int         `json:"pending"`
}

// Ok reports whether every attempted batch succeeded.
func (r *Result) Ok() bool {
	return r.Machines.Error == "" && r.Fuelings.Error == "" && r.Refills.Error == ""
}

// batch is a captured unsynced subset: the payload sent, plus each record's
// encoding at capture time so the confirmation flip can tell an untouched
// record from one edited while the batch was in flight.
type batch struct {
	table string
	rows  any
	sent  map[string][]byte
}

// encode snapshots a record for the changed-since-capture check. A nil
// encoding never matches, so a record that cannot be encoded stays unsynced.
func encode(rec any) []byte {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil
	}
	return raw
}

// Sync runs one user-triggered push. With zero unsynced records it performs
// no network call and returns success. Reentrant triggers are rejected while
// a run is in flight.
func (c *Coordinator) Sync(ctx context.Context) (*Result, error) {
	if !c.online() {
		return nil, ErrOffline
	}
	if !c.remote.Configured() {
		return nil, ErrNotConfigured
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSyncInFlight
	}
	defer c.inFlight.Store(false)

	batches := c.capture()
	res := &Result{}

	for _, b := range batches {
		if len(b.sent) == 0 {
			continue
		}
		err := c.cb.Execute(func() error {
			return c.remote.UpsertBatch(ctx, b.table, b.rows)
		})
		out := BatchResult{Sent: len(b.sent)}
		if err != nil {
			// Batch stays unsynced; retried on the next manual sync.
			out = BatchResult{Error: err.Error()}
			log.Warn().Err(err).Str("table", b.table).Int("records", len(b.sent)).Msg("sync: batch failed")
		} else {
			c.markSynced(b.table, b.sent)
			log.Info().Str("table", b.table).Int("records", len(b.sent)).Msg("sync: batch confirmed")
		}
		switch b.table {
		case "machines":
			res.Machines = out
		case "fuelings":
			res.Fuelings = out
		case "refills":
			res.Refills = out
		}
	}

	res.Pending = c.PendingCount()
	return res, nil
}

// capture snapshots the unsynced subsets under the state lock. Records
// created or edited after this point are missed on purpose — they stay
// unsynced and are picked up by the next run.
func (c *Coordinator) capture() []batch {
	machines := batch{table: "machines", sent: map[string][]byte{}}
	fuelings := batch{table: "fuelings", sent: map[string][]byte{}}
	refills := batch{table: "refills", sent: map[string][]byte{}}

	c.app.View(func(d *state.Data) {
		var mRows []machineRow
		for _, m := range d.Machines {
			if !m.Synced {
				machines.sent[m.ID] = encode(m)
				mRows = append(mRows, machineToRow(m))
			}
		}
		machines.rows = mRows

		var fRows []fuelingRow
		for _, f := range d.Fuelings {
			if !f.Synced {
				fuelings.sent[f.ID] = encode(f)
				fRows = append(fRows, fuelingToRow(f))
			}
		}
		fuelings.rows = fRows

		var rRows []refillRow
		for _, r := range d.Refills {
			if !r.Synced {
				refills.sent[r.ID] = encode(r)
				rRows = append(rRows, refillToRow(r))
			}
		}
		refills.rows = rRows
	})

	return []batch{machines, fuelings, refills}
}

// markSynced flips the captured records — and only those — to synced. A
// record whose content changed since capture is skipped: the version the
// remote confirmed is stale, so the edit stays unsynced for the next run.
func (c *Coordinator) markSynced(table string, sent map[string][]byte) {
	unchanged := func(id string, rec any) bool {
		captured, ok := sent[id]
		return ok && captured != nil && bytes.Equal(captured, encode(rec))
	}
	err := c.app.Mutate(func(d *state.Data) ([]string, error) {
		switch table {
		case "machines":
			for i := range d.Machines {
				if unchanged(d.Machines[i].ID, d.Machines[i]) {
					d.Machines[i].Synced = true
				}
			}
			return []string{store.KeyMachines}, nil
		case "fuelings":
			for i := range d.Fuelings {
				if unchanged(d.Fuelings[i].ID, d.Fuelings[i]) {
					d.Fuelings[i].Synced = true
				}
			}
			return []string{store.KeyFuelings}, nil
		case "refills":
			for i := range d.Refills {
				if unchanged(d.Refills[i].ID, d.Refills[i]) {
					d.Refills[i].Synced = true
				}
			}
			return []string{store.KeyRefills}, nil
		}
		return nil, nil
	})
	if err != nil {
		// Best-effort snapshot: memory already holds the flags, the remote
		// upsert is idempotent, so a stale slot heals on the next run.
		log.Error().Err(err).Str("table", table).Msg("sync: persist synced flags failed")
	}
}
