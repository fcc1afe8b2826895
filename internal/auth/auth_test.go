package auth

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateusVidalm/ECOTANQUE/internal/state"
)

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

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	ms := newMemStore()
	app, err := state.Load(ms, state.Defaults{
		TankName:         "Tanque Principal 01",
		TankCapacity:     decimal.NewFromInt(15000),
		TankInitialLevel: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	return NewService(app), ms
}

func TestLoginBlanksPasswordAndPersistsSession(t *testing.T) {
	svc, ms := newTestService(t)

	u, err := svc.Login("gerente@ecofuel.com", "123")
	require.NoError(t, err)
	assert.Equal(t, "u3", u.ID)
	assert.Empty(t, u.Password)

	// Session survives a restart via the persisted slot.
	raw, ok := ms.slots["user"]
	require.True(t, ok)
	assert.Contains(t, string(raw), "u3")

	cur, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "u3", cur.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login("gerente@ecofuel.com", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("ninguem@ecofuel.com", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login("carlos@ecofuel.com", "123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	require.NoError(t, svc.Logout())

	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}
