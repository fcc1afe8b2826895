// Package auth implements the authentication surface: email + password
// compared against the local user list, session = the current user object
// persisted so it survives restarts. There is deliberately no hashing, no
// token issuance and no lockout — the deployment is a shared depot terminal.
package auth

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
)

// ErrInvalidCredentials — no user matches the email/password pair.
var ErrInvalidCredentials = errors.New("credenciais inválidas")

// ErrNoSession — an operation that needs an acting user ran while logged out.
var ErrNoSession = errors.New("nenhum usuário autenticado")

type Service struct {
	app *state.App
}

func NewService(app *state.App) *Service { return &Service{app: app} }

// Login matches the credentials against the user list and persists the
// session pointer. The returned copy has the password blanked.
func (s *Service) Login(email, password string) (*model.User, error) {
	var logged *model.User
	err := s.app.Mutate(func(d *state.Data) ([]string, error) {
		for i := range d.Users {
			if d.Users[i].Email == email && d.Users[i].Password == password {
				sess := d.Users[i]
				d.Session = &sess
				out := sess
				out.Password = ""
				logged = &out
				return []string{store.KeySession}, nil
			}
		}
		return nil, ErrInvalidCredentials
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", logged.ID).Str("role", string(logged.Role)).Msg("login")
	return logged, nil
}

// Logout clears the persisted session pointer. Idempotent.
func (s *Service) Logout() error {
	return s.app.Mutate(func(d *state.Data) ([]string, error) {
		if d.Session == nil {
			return nil, nil
		}
		d.Session = nil
		return []string{store.KeySession}, nil
	})
}

// Current returns the session user, or ErrNoSession when logged out.
func (s *Service) Current() (*model.User, error) {
	u := s.app.Session()
	if u == nil {
		return nil, ErrNoSession
	}
	return u, nil
}
