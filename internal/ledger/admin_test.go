package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
)

func TestAddMachineVehicleRequiresPlate(t *testing.T) {
	e, _ := newTestEngine(t, 10000)

	_, err := e.AddMachine(gerente, MachineInput{
		Name:      "Caminhão Pipa",
		CompanyID: "km-04",
		Type:      model.MachineTypeVeiculo,
	})
	assert.True(t, IsValidation(err))

	plate := "ABC-1234"
	m, err := e.AddMachine(gerente, MachineInput{
		Name:      "Caminhão Pipa",
		CompanyID: "km-04",
		Type:      model.MachineTypeVeiculo,
		Plate:     &plate,
	})
	require.NoError(t, err)
	assert.False(t, m.Synced)
}

func TestAddMachineStationaryNeedsNoPlate(t *testing.T) {
	e, _ := newTestEngine(t, 10000)

	_, err := e.AddMachine(gerente, MachineInput{
		Name:      "Gerador G5",
		CompanyID: "porto-cdp",
		Type:      model.MachineTypeMaquina,
	})
	assert.NoError(t, err)
}

func TestAddMachinePermission(t *testing.T) {
	e, _ := newTestEngine(t, 10000)
	_, err := e.AddMachine(abastecedor, MachineInput{Name: "X", CompanyID: "km-04", Type: model.MachineTypeMaquina})
	assert.ErrorIs(t, err, ErrPermission)
}

func TestAddUserDefaultPasswordAndDuplicateEmail(t *testing.T) {
	e, app := newTestEngine(t, 10000)

	u, err := e.AddUser(gerente, UserInput{
		Name:  "Novo Operador",
		Email: "novo@ecofuel.com",
		Role:  model.RoleAbastecedor,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultPassword, u.Password)

	_, err = e.AddUser(gerente, UserInput{
		Name:  "Outro",
		Email: "novo@ecofuel.com",
		Role:  model.RoleAbastecedor,
	})
	assert.True(t, IsValidation(err))

	app.View(func(d *state.Data) {
		assert.Len(t, d.Users, 4) // 3 seeded + 1 created
	})
}

func TestUpdateUserSelfEditWithoutCapability(t *testing.T) {
	e, _ := newTestEngine(t, 10000)

	name := "Carlos S."
	u, err := e.UpdateUser(abastecedor, abastecedor.ID, UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Carlos S.", u.Name)
	assert.False(t, u.Synced)

	// Editing someone else needs the capability.
	_, err = e.UpdateUser(abastecedor, "u2", UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrPermission)
}

func TestUpdateUserKeepsSessionCoherent(t *testing.T) {
	e, app := newTestEngine(t, 10000)

	// Log the seeded manager in.
	_ = app.Mutate(func(d *state.Data) ([]string, error) {
		sess := d.Users[2]
		d.Session = &sess
		return nil, nil
	})

	name := "Marcos O."
	_, err := e.UpdateUser(gerente, "u3", UserPatch{Name: &name})
	require.NoError(t, err)

	sess := app.Session()
	require.NotNil(t, sess)
	assert.Equal(t, "Marcos O.", sess.Name)
}

func TestUpdateUserIgnoresEmptyPassword(t *testing.T) {
	e, app := newTestEngine(t, 10000)

	empty := ""
	_, err := e.UpdateUser(gerente, "u1", UserPatch{Password: &empty})
	require.NoError(t, err)

	app.View(func(d *state.Data) {
		assert.Equal(t, "123", d.Users[0].Password)
	})
}

func TestDeleteUserWritesAudit(t *testing.T) {
	e, app := newTestEngine(t, 10000)

	require.NoError(t, e.DeleteUser(gerente, "u1"))
	assert.ErrorIs(t, e.DeleteUser(gerente, "u1"), ErrUserNotFound)

	app.View(func(d *state.Data) {
		assert.Len(t, d.Users, 2)
		require.Len(t, d.Logs, 1)
		assert.Equal(t, model.AuditActionUserDelete, d.Logs[0].Action)
		assert.Equal(t, model.AuditEntityUser, d.Logs[0].Entity)
	})
}
