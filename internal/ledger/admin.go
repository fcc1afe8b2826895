package ledger

// admin.go — machine and user management. These share the engine because
// every mutation must go through the same snapshot-and-audit pipeline as the
// tank operations.

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
)

// MachineInput describes a new fuel-consuming asset.
type MachineInput struct {
	Name      string
	CompanyID string
	Type      model.MachineType
	Plate     *string
	PhotoURL  *string
}

// AddMachine registers an asset. A license plate is required for vehicles
// and meaningless for stationary machines.
func (e *Engine) AddMachine(actor *model.User, in MachineInput) (*model.Machine, error) {
	if !actor.Role.Can(model.CapManageMachines) {
		return nil, ErrPermission
	}
	if in.Name == "" {
		return nil, validationErr("informe o nome do equipamento")
	}
	if in.Type != model.MachineTypeMaquina && in.Type != model.MachineTypeVeiculo {
		return nil, validationErr("tipo de equipamento inválido")
	}
	if in.Type == model.MachineTypeVeiculo && (in.Plate == nil || *in.Plate == "") {
		return nil, validationErr("informe a placa do veículo")
	}

	var created model.Machine
	err := e.app.Mutate(func(d *state.Data) ([]string, error) {
		if !companyExists(d, in.CompanyID) {
			return nil, ErrCompanyNotFound
		}
		created = model.Machine{
			ID:        uuid.NewString(),
			Name:      in.Name,
			CompanyID: in.CompanyID,
			Type:      in.Type,
			Plate:     in.Plate,
			PhotoURL:  in.PhotoURL,
			Synced:    false,
		}
		d.Machines = append(d.Machines, created)
		return []string{store.KeyMachines}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UserInput describes a new account. An empty password falls back to the
// fleet's provisioning default.
type UserInput struct {
	Name      string
	Email     string
	Password  string
	Role      model.Role
	CompanyID *string
	PhotoURL  *string
}

const defaultPassword = "123"

// AddUser creates an account with the given role's capability set.
func (e *Engine) AddUser(actor *model.User, in UserInput) (*model.User, error) {
	if !actor.Role.Can(model.CapManageUsers) {
		return nil, ErrPermission
	}
	if in.Name == "" || in.Email == "" {
		return nil, validationErr("informe nome e e-mail do usuário")
	}
	if !in.Role.Valid() {
		return nil, validationErr("perfil de usuário inválido")
	}
	if in.Password == "" {
		in.Password = defaultPassword
	}

	var created model.User
	err := e.app.Mutate(func(d *state.Data) ([]string, error) {
		for _, u := range d.Users {
			if u.Email == in.Email {
				return nil, validationErr("já existe um usuário com este e-mail")
			}
		}
		created = model.User{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Email:     in.Email,
			Password:  in.Password,
			Role:      in.Role,
			CompanyID: in.CompanyID,
			PhotoURL:  in.PhotoURL,
			Synced:    false,
		}
		d.Users = append(d.Users, created)
		return []string{store.KeyUsers}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UserPatch carries the editable account fields. Nil fields are untouched.
type UserPatch struct {
	Name      *string
	Email     *string
	Password  *string
	Role      *model.Role
	CompanyID *string
	PhotoURL  *string
}

// UpdateUser edits an account and appends a USER_EDIT audit entry. Editing
// your own profile needs no capability — anything else does.
func (e *Engine) UpdateUser(actor *model.User, id string, patch UserPatch) (*model.User, error) {
	if actor.ID != id && !actor.Role.Can(model.CapManageUsers) {
		return nil, ErrPermission
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, validationErr("perfil de usuário inválido")
	}

	var updated model.User
	err := e.app.Mutate(func(d *state.Data) ([]string, error) {
		idx := -1
		for i := range d.Users {
			if d.Users[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrUserNotFound
		}

		u := d.Users[idx]
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Password != nil && *patch.Password != "" {
			u.Password = *patch.Password
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if patch.CompanyID != nil {
			u.CompanyID = patch.CompanyID
		}
		if patch.PhotoURL != nil {
			u.PhotoURL = patch.PhotoURL
		}
		u.Synced = false
		d.Users[idx] = u
		updated = u

		keys := []string{store.KeyUsers, store.KeyLogs}
		// Keep the session pointer coherent when the logged-in user edits
		// their own profile.
		if d.Session != nil && d.Session.ID == id {
			sess := u
			d.Session = &sess
			keys = append(keys, store.KeySession)
		}

		appendLog(d, actor.ID, model.AuditActionUserEdit, model.AuditEntityUser, nil, nil,
			fmt.Sprintf("Editou usuário %s", id))
		return keys, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes an account and appends a USER_DELETE audit entry.
func (e *Engine) DeleteUser(actor *model.User, id string) error {
	if !actor.Role.Can(model.CapManageUsers) {
		return ErrPermission
	}
	return e.app.Mutate(func(d *state.Data) ([]string, error) {
		idx := -1
		for i := range d.Users {
			if d.Users[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrUserNotFound
		}
		d.Users = append(d.Users[:idx], d.Users[idx+1:]...)

		appendLog(d, actor.ID, model.AuditActionUserDelete, model.AuditEntityUser, nil, nil,
			fmt.Sprintf("Excluiu usuário %s", id))
		return []string{store.KeyUsers, store.KeyLogs}, nil
	})
}
