package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateusVidalm/ECOTANQUE/internal/infra"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type memStore struct {
	slots map[string][]byte
}

func newMemStore() *memStore { return &memStore{slots: map[string][]byte{}} }

func (s *memStore) Read(key string, v any) (bool, error) {
	raw, ok := s.slots[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (s *memStore) Write(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.slots[key] = raw
	return nil
}

// stubRemote records every batch call and fails the tables listed in fail.
type stubRemote struct {
	mu         sync.Mutex
	configured bool
	fail       map[string]bool
	calls      []string
	block      chan struct{} // when non-nil, UpsertBatch waits on it
}

func (r *stubRemote) Configured() bool { return r.configured }

func (r *stubRemote) UpsertBatch(_ context.Context, table string, _ any) error {
	r.mu.Lock()
	r.calls = append(r.calls, table)
	block := r.block
	fail := r.fail[table]
	r.mu.Unlock()
	if block != nil {
		<-block
	}
	if fail {
		return errors.New("remote indisponível")
	}
	return nil
}

func (r *stubRemote) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestCoordinator(t *testing.T, remote *stubRemote, online bool) (*Coordinator, *state.App) {
	t.Helper()
	app, err := state.Load(newMemStore(), state.Defaults{
		TankName:         "Tanque Principal 01",
		TankCapacity:     decimal.NewFromInt(15000),
		TankInitialLevel: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	return New(app, remote, cb, func() bool { return online }), app
}

func markAllSynced(app *state.App) {
	_ = app.Mutate(func(d *state.Data) ([]string, error) {
		for i := range d.Machines {
			d.Machines[i].Synced = true
		}
		for i := range d.Fuelings {
			d.Fuelings[i].Synced = true
		}
		for i := range d.Refills {
			d.Refills[i].Synced = true
		}
		return nil, nil
	})
}

func addUnsyncedFueling(app *state.App, id string, liters int64) {
	_ = app.Mutate(func(d *state.Data) ([]string, error) {
		d.Fuelings = append(d.Fuelings, fuelingFixture(id, liters))
		return nil, nil
	})
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestSyncOfflineIsRejectedBeforeAnyCall(t *testing.T) {
	remote := &stubRemote{configured: true}
	coord, _ := newTestCoordinator(t, remote, false)

	_, err := coord.Sync(context.Background())
	assert.ErrorIs(t, err, ErrOffline)
	assert.Zero(t, remote.callCount())
}

func TestSyncUnconfiguredIsRejected(t *testing.T) {
	remote := &stubRemote{configured: false}
	coord, _ := newTestCoordinator(t, remote, true)

	_, err := coord.Sync(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, remote.callCount())
}

func TestSyncZeroPendingMakesNoNetworkCall(t *testing.T) {
	remote := &stubRemote{configured: true}
	coord, app := newTestCoordinator(t, remote, true)
	markAllSynced(app)

	res, err := coord.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Ok())
	assert.Zero(t, res.Pending)
	assert.Zero(t, remote.callCount(), "no unsynced records means no upsert")
}

func TestSyncFlipsSyncedOnlyOnConfirmation(t *testing.T) {
	remote := &stubRemote{configured: true}
	coord, app := newTestCoordinator(t, remote, true)
	markAllSynced(app)
	addUnsyncedFueling(app, "f1", 500)

	require.Equal(t, 1, coord.PendingCount())

	res, err := coord.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Ok())
	assert.Equal(t, 1, res.Fuelings.Sent)
	assert.Zero(t, res.Pending)

	app.View(func(d *state.Data) {
		assert.True(t, d.Fuelings[0].Synced)
	})
}

func TestSyncBatchesAreIndependent(t *testing.T) {
	// Fuelings fail, machines succeed: only the failed collection stays
	// unsynced.
	remote := &stubRemote{configured: true, fail: map[string]bool{"fuelings": true}}
	coord, app := newTestCoordinator(t, remote, true)
	markAllSynced(app)
	addUnsyncedFueling(app, "f1", 500)
	_ = app.Mutate(func(d *state.Data) ([]string, error) {
		d.Machines[0].Synced = false
		return nil, nil
	})

	res, err := coord.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Ok())
	assert.Equal(t, 1, res.Machines.Sent)
	assert.NotEmpty(t, res.Fuelings.Error)
	assert.Equal(t, 1, res.Pending, "failed batch stays pending")

	app.View(func(d *state.Data) {
		assert.True(t, d.Machines[0].Synced)
		assert.False(t, d.Fuelings[0].Synced)
	})
}

func TestSyncFailedBatchRetriesNextRun(t *testing.T) {
	remote := &stubRemote{configured: true, fail: map[string]bool{"fuelings": true}}
	coord, app := newTestCoordinator(t, remote, true)
	markAllSynced(app)
	addUnsyncedFueling(app, "f1", 500)

	res, err := coord.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Ok())

	// Remote recovers; the same record goes out again.
	remote.mu.Lock()
	remote.fail = nil
	remote.mu.Unlock()

	res, err = coord.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Ok())
	assert.Equal(t, 1, res.Fuelings.Sent)
	assert.Zero(t, res.Pending)
}

func TestSyncReentrancyGuard(t *testing.T) {
	remote := &stubRemote{configured: true, block: make(chan struct{})}
	coord, app := newTestCoordinator(t, remote, true)
	markAllSynced(app)
	addUnsyncedFueling(app, "f1", 500)

	done := make(chan struct{})
	go func() {
		_, _ = coord.Sync(context.Background())
		close(done)
	}()

	// Wait until the first run is inside the remote call.
	require.Eventually(t, func() bool { return remote.callCount() > 0 }, time.Second, 5*time.Millisecond)

	_, err := coord.Sync(context.Background())
	assert.ErrorIs(t, err, ErrSyncInFlight)

	close(remote.block)
	<-done

	// After the first run finishes the guard is released.
	res, err := coord.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Ok())
}

func TestSyncRecordsEditedMidRunStayPending(t *testing.T) {
	remote := &stubRemote{configured: true, block: make(chan struct{})}
	coord, app := newTestCoordinator(t, remote, true)
	markAllSynced(app)
	addUnsyncedFueling(app, "f1", 500)

	done := make(chan *Result)
	go func() {
		res, _ := coord.Sync(context.Background())
		done <- res
	}()
	require.Eventually(t, func() bool { return remote.callCount() > 0 }, time.Second, 5*time.Millisecond)

	// Edit the captured record while its batch is in flight. The remote
	// confirmed the 500L version, so the 999L edit must stay unsynced.
	_ = app.Mutate(func(d *state.Data) ([]string, error) {
		d.Fuelings[0].Liters = decimal.NewFromInt(999)
		d.Fuelings[0].Synced = false
		return nil, nil
	})
	close(remote.block)
	res := <-done

	require.NotNil(t, res)
	assert.Equal(t, 1, res.Fuelings.Sent)
	assert.Equal(t, 1, res.Pending)
	app.View(func(d *state.Data) {
		assert.False(t, d.Fuelings[0].Synced)
	})

	// The next run carries the edited version.
	res, err := coord.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Fuelings.Sent)
	assert.Zero(t, res.Pending)
	app.View(func(d *state.Data) {
		assert.True(t, d.Fuelings[0].Synced)
		assert.True(t, d.Fuelings[0].Liters.Equal(decimal.NewFromInt(999)))
	})
}

func TestSyncRecordsCreatedMidRunStayPending(t *testing.T) {
	remote := &stubRemote{configured: true, block: make(chan struct{})}
	coord, app := newTestCoordinator(t, remote, true)
	markAllSynced(app)
	addUnsyncedFueling(app, "f1", 500)

	done := make(chan *Result)
	go func() {
		res, _ := coord.Sync(context.Background())
		done <- res
	}()
	require.Eventually(t, func() bool { return remote.callCount() > 0 }, time.Second, 5*time.Millisecond)

	// A record created after capture is not in the confirmed batch.
	addUnsyncedFueling(app, "f2", 100)
	close(remote.block)
	res := <-done

	require.NotNil(t, res)
	assert.Equal(t, 1, res.Fuelings.Sent)
	assert.Equal(t, 1, res.Pending)
	app.View(func(d *state.Data) {
		assert.True(t, d.Fuelings[0].Synced)
		assert.False(t, d.Fuelings[1].Synced)
	})
}

func TestSyncSnapshotFailureKeepsFlagsInMemory(t *testing.T) {
	// The synced-flag snapshot is best-effort: a failed write leaves the
	// persisted slot stale, but memory holds the flags and the idempotent
	// remote upsert heals the difference after a restart.
	fs := &failingStore{memStore: newMemStore()}
	app, err := state.Load(fs, state.Defaults{
		TankName:         "Tanque Principal 01",
		TankCapacity:     decimal.NewFromInt(15000),
		TankInitialLevel: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	markAllSynced(app)
	addUnsyncedFueling(app, "f1", 500)

	fs.failKey = store.KeyFuelings
	remote := &stubRemote{configured: true}
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	coord := New(app, remote, cb, func() bool { return true })

	res, err := coord.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Ok())
	assert.Zero(t, res.Pending)
	app.View(func(d *state.Data) {
		assert.True(t, d.Fuelings[0].Synced)
	})
}

// failingStore fails writes to one slot key, passing everything else through.
type failingStore struct {
	*memStore
	failKey string
}

func (s *failingStore) Write(key string, v any) error {
	if key == s.failKey {
		return errors.New("disco cheio")
	}
	return s.memStore.Write(key, v)
}
