package ledger

import "errors"

// Error taxonomy. Every operation aborts with zero side effects when it
// returns one of these — the in-memory state and the persisted snapshots are
// untouched.
var (
	// ErrPermission — the acting user's role lacks the required capability.
	ErrPermission = errors.New("permissão insuficiente para esta operação")

	// ErrInsufficientBalance — a fueling asks for more liters than the tank
	// holds. A soft client-side check, not a transactional guarantee.
	ErrInsufficientBalance = errors.New("saldo insuficiente no tanque")

	// ErrCapacityExceeded — a refill would push the level past nominal
	// capacity. Non-fatal: resubmitting with the override confirmation
	// proceeds without clamping.
	ErrCapacityExceeded = errors.New("a quantidade excede a capacidade do tanque")

	ErrFuelingNotFound = errors.New("abastecimento não encontrado")
	ErrMachineNotFound = errors.New("equipamento não encontrado")
	ErrCompanyNotFound = errors.New("unidade não encontrada")
	ErrUserNotFound    = errors.New("usuário não encontrado")
)

// ValidationError reports invalid input (missing required field, non-positive
// liters, missing plate for a vehicle, missing reason for a tank adjustment).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
