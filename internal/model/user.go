package model

// Role identifies the capability set of a user.
// ABASTECEDOR registers fuelings; GERENTE manages the tank, fuelings, users
// and machines; ADMINISTRADOR consumes dashboards and reports.
type Role string

const (
	RoleAbastecedor   Role = "ABASTECEDOR"
	RoleAdministrador Role = "ADMINISTRADOR"
	RoleGerente       Role = "GERENTE"
)

// Capability is a single permitted action checked once at the ledger boundary.
type Capability string

const (
	CapRecordFueling  Capability = "record_fueling"
	CapRefillTank     Capability = "refill_tank"
	CapAdjustTank     Capability = "adjust_tank"
	CapManageFuelings Capability = "manage_fuelings" // edit, delete, approve corrections
	CapManageMachines Capability = "manage_machines"
	CapManageUsers    Capability = "manage_users"
	CapViewReports    Capability = "view_reports"
)

// roleCaps maps each role to its capability set. Views and handlers never
// compare roles directly — they ask Can().
var roleCaps = map[Role]map[Capability]bool{
	RoleAbastecedor: {
		CapRecordFueling: true,
	},
	RoleGerente: {
		CapRecordFueling:  true,
		CapRefillTank:     true,
		CapAdjustTank:     true,
		CapManageFuelings: true,
		CapManageMachines: true,
		CapManageUsers:    true,
		CapViewReports:    true,
	},
	RoleAdministrador: {
		CapViewReports: true,
	},
}

// Can reports whether the role holds the given capability.
func (r Role) Can(cap Capability) bool {
	return roleCaps[r][cap]
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleCaps[r]
	return ok
}

// User is a system account. Password is stored and compared in plaintext —
// the deployment model is a single shared depot terminal with no exposure
// beyond the local network.
type User struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	Role      Role    `json:"role"`
	CompanyID *string `json:"companyId,omitempty"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
	Synced    bool    `json:"synced"`
}
