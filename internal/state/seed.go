package state

import "github.com/MateusVidalm/ECOTANQUE/internal/model"

// Seed data mirrors the fleet the system was commissioned for. It only
// applies on first run — once a slot has been snapshotted, the seed is
// never consulted again.

func SeedCompanies() []model.Company {
	return []model.Company{
		{ID: "campo-rico", Name: "Campo Rico"},
		{ID: "km-12", Name: "KM-12"},
		{ID: "km-04", Name: "KM-04"},
		{ID: "porto-cdp", Name: "Porto CDP"},
		{ID: "porto-prainha", Name: "Porto Prainha"},
	}
}

func SeedMachines() []model.Machine {
	return []model.Machine{
		{ID: "m1", Name: "Escavadeira X1", CompanyID: "campo-rico", Type: model.MachineTypeMaquina},
		{ID: "m2", Name: "Trator Y2", CompanyID: "km-12", Type: model.MachineTypeMaquina},
		{ID: "m3", Name: "Caminhão Z3", CompanyID: "porto-cdp", Type: model.MachineTypeMaquina},
	}
}

func SeedUsers() []model.User {
	campoRico := "campo-rico"
	return []model.User{
		{ID: "u1", Name: "Carlos Silva", Email: "carlos@ecofuel.com", Password: "123", Role: model.RoleAbastecedor, CompanyID: &campoRico},
		{ID: "u2", Name: "Ana Mendes", Email: "admin@ecofuel.com", Password: "123", Role: model.RoleAdministrador},
		{ID: "u3", Name: "Marcos Oliveira", Email: "gerente@ecofuel.com", Password: "123", Role: model.RoleGerente},
	}
}
