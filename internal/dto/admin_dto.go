package dto

import "github.com/MateusVidalm/ECOTANQUE/internal/model"

type CreateMachineRequest struct {
	Name      string            `json:"name"      validate:"required,min=2"`
	CompanyID string            `json:"companyId" validate:"required"`
	Type      model.MachineType `json:"type"      validate:"required,oneof=MAQUINA VEICULO"`
	Plate     *string           `json:"plate"`
	PhotoURL  *string           `json:"photoUrl"`
}

type CreateUserRequest struct {
	Name      string     `json:"name"      validate:"required,min=2"`
	Email     string     `json:"email"     validate:"required,email"`
	Password  string     `json:"password"  validate:"omitempty,min=3"`
	Role      model.Role `json:"role"      validate:"required,oneof=ABASTECEDOR ADMINISTRADOR GERENTE"`
	CompanyID *string    `json:"companyId"`
	PhotoURL  *string    `json:"photoUrl"`
}

type UpdateUserRequest struct {
	Name      *string     `json:"name"      validate:"omitempty,min=2"`
	Email     *string     `json:"email"     validate:"omitempty,email"`
	Password  *string     `json:"password"  validate:"omitempty,min=3"`
	Role      *model.Role `json:"role"      validate:"omitempty,oneof=ABASTECEDOR ADMINISTRADOR GERENTE"`
	CompanyID *string     `json:"companyId"`
	PhotoURL  *string     `json:"photoUrl"`
}
