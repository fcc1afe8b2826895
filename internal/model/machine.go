package model

// MachineType distinguishes tracked vehicles (which require a license plate)
// from stationary or off-road machines.
type MachineType string

const (
	MachineTypeMaquina MachineType = "MAQUINA"
	MachineTypeVeiculo MachineType = "VEICULO"
)

// Machine is a fuel-consuming asset assigned to a company unit.
type Machine struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	CompanyID string      `json:"companyId"`
	Type      MachineType `json:"type"`
	Plate     *string     `json:"plate,omitempty"`
	PhotoURL  *string     `json:"photoUrl,omitempty"`
	Synced    bool        `json:"synced"`
}

// Company is a static reference unit. The list is seeded at first run and is
// not user-editable.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
