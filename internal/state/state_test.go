package state

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
)

type memStore struct {
	slots  map[string][]byte
	writes []string
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
	s.writes = append(s.writes, key)
	return nil
}

func testDefaults() Defaults {
	return Defaults{
		TankName:         "Tanque Principal 01",
		TankCapacity:     decimal.NewFromInt(15000),
		TankInitialLevel: decimal.NewFromInt(10620),
	}
}

func TestLoadSeedsOnFirstRun(t *testing.T) {
	app, err := Load(newMemStore(), testDefaults())
	require.NoError(t, err)

	app.View(func(d *Data) {
		assert.Len(t, d.Companies, 5)
		assert.Len(t, d.Machines, 3)
		assert.Len(t, d.Users, 3)
		assert.Empty(t, d.Fuelings)
		assert.Empty(t, d.Refills)
		assert.Empty(t, d.Logs)
		assert.Equal(t, "Tanque Principal 01", d.Tank.Name)
		assert.True(t, d.Tank.CurrentLevel.Equal(decimal.NewFromInt(10620)))
		assert.Nil(t, d.Session)
	})
}

func TestLoadPrefersSnapshotOverSeed(t *testing.T) {
	s := newMemStore()
	require.NoError(t, s.Write(store.KeyUsers, []model.User{
		{ID: "custom", Name: "Só Um", Email: "so@ecofuel.com", Role: model.RoleGerente},
	}))

	app, err := Load(s, testDefaults())
	require.NoError(t, err)

	app.View(func(d *Data) {
		require.Len(t, d.Users, 1)
		assert.Equal(t, "custom", d.Users[0].ID)
	})
}

func TestMutatePersistsTouchedSlots(t *testing.T) {
	s := newMemStore()
	app, err := Load(s, testDefaults())
	require.NoError(t, err)
	s.writes = nil

	err = app.Mutate(func(d *Data) ([]string, error) {
		d.Tank.CurrentLevel = decimal.NewFromInt(9000)
		return []string{store.KeyTank}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyTank}, s.writes)

	// A fresh load sees the persisted level.
	app2, err := Load(s, testDefaults())
	require.NoError(t, err)
	app2.View(func(d *Data) {
		assert.True(t, d.Tank.CurrentLevel.Equal(decimal.NewFromInt(9000)))
	})
}

func TestMutateErrorPersistsNothing(t *testing.T) {
	s := newMemStore()
	app, err := Load(s, testDefaults())
	require.NoError(t, err)
	s.writes = nil

	boom := errors.New("boom")
	err = app.Mutate(func(d *Data) ([]string, error) {
		return []string{store.KeyTank}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.writes)
}

func TestListenersReceiveChangedKeys(t *testing.T) {
	app, err := Load(newMemStore(), testDefaults())
	require.NoError(t, err)

	var got []string
	app.Subscribe(func(keys []string) { got = append(got, keys...) })

	require.NoError(t, app.Mutate(func(d *Data) ([]string, error) {
		return []string{store.KeyTank, store.KeyLogs}, nil
	}))
	assert.Equal(t, []string{store.KeyTank, store.KeyLogs}, got)
}

func TestSessionReturnsCopy(t *testing.T) {
	app, err := Load(newMemStore(), testDefaults())
	require.NoError(t, err)
	assert.Nil(t, app.Session())

	require.NoError(t, app.Mutate(func(d *Data) ([]string, error) {
		sess := d.Users[0]
		d.Session = &sess
		return []string{store.KeySession}, nil
	}))

	u := app.Session()
	require.NotNil(t, u)
	u.Name = "mutated"

	app.View(func(d *Data) {
		assert.NotEqual(t, "mutated", d.Session.Name)
	})
}
