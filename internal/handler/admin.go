package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MateusVidalm/ECOTANQUE/internal/dto"
	"github.com/MateusVidalm/ECOTANQUE/internal/ledger"
	"github.com/MateusVidalm/ECOTANQUE/internal/middleware"
	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
)

// AdminHandler serves the fleet registry: companies, machines, users and the
// audit trail.
type AdminHandler struct {
	engine *ledger.Engine
	app    *state.App
}

func NewAdminHandler(engine *ledger.Engine, app *state.App) *AdminHandler {
	return &AdminHandler{engine: engine, app: app}
}

// ListCompanies — GET /v1/companies
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	out := []model.Company{}
	h.app.View(func(d *state.Data) {
		out = append(out, d.Companies...)
	})
	c.JSON(http.StatusOK, out)
}

// ListMachines — GET /v1/machines
func (h *AdminHandler) ListMachines(c *gin.Context) {
	companyID := c.Query("companyId")
	out := []model.Machine{}
	h.app.View(func(d *state.Data) {
		for _, m := range d.Machines {
			if companyID != "" && m.CompanyID != companyID {
				continue
			}
			out = append(out, m)
		}
	})
	c.JSON(http.StatusOK, out)
}

// CreateMachine — POST /v1/machines
func (h *AdminHandler) CreateMachine(c *gin.Context) {
	var req dto.CreateMachineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	created, err := h.engine.AddMachine(middleware.GetActor(c), ledger.MachineInput{
		Name:      req.Name,
		CompanyID: req.CompanyID,
		Type:      req.Type,
		Plate:     req.Plate,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListUsers — GET /v1/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	out := []dto.UserResponse{}
	h.app.View(func(d *state.Data) {
		for i := range d.Users {
			out = append(out, dto.ToUserResponse(&d.Users[i]))
		}
	})
	c.JSON(http.StatusOK, out)
}

// CreateUser — POST /v1/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	created, err := h.engine.AddUser(middleware.GetActor(c), ledger.UserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		CompanyID: req.CompanyID,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(created))
}

// UpdateUser — PUT /v1/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	updated, err := h.engine.UpdateUser(middleware.GetActor(c), c.Param("id"), ledger.UserPatch{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		CompanyID: req.CompanyID,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

// DeleteUser — DELETE /v1/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.engine.DeleteUser(middleware.GetActor(c), c.Param("id")); err != nil {
		respondDomainErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLogs — GET /v1/logs
func (h *AdminHandler) ListLogs(c *gin.Context) {
	out := []model.AuditLog{}
	h.app.View(func(d *state.Data) {
		out = append(out, d.Logs...)
	})
	c.JSON(http.StatusOK, out)
}
