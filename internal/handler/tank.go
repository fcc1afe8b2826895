package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MateusVidalm/ECOTANQUE/internal/dto"
	"github.com/MateusVidalm/ECOTANQUE/internal/ledger"
	"github.com/MateusVidalm/ECOTANQUE/internal/middleware"
	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/report"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
)

type TankHandler struct {
	engine  *ledger.Engine
	reports *report.Service
	app     *state.App
}

func NewTankHandler(engine *ledger.Engine, reports *report.Service, app *state.App) *TankHandler {
	return &TankHandler{engine: engine, reports: reports, app: app}
}

// Status — GET /v1/tank
func (h *TankHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.BuildDashboard("").Tank)
}

// Refill — POST /v1/refills
func (h *TankHandler) Refill(c *gin.Context) {
	var req dto.RecordRefillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	created, err := h.engine.RecordRefill(middleware.GetActor(c), ledger.RefillInput{
		CompanyID:       req.CompanyID,
		Liters:          req.Liters,
		ConfirmOverfill: req.ConfirmOverfill,
	})
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListRefills — GET /v1/refills
func (h *TankHandler) ListRefills(c *gin.Context) {
	out := []model.TankRefill{}
	h.app.View(func(d *state.Data) {
		out = append(out, d.Refills...)
	})
	c.JSON(http.StatusOK, out)
}

// Adjust — POST /v1/tank/adjust
func (h *TankHandler) Adjust(c *gin.Context) {
	var req dto.AdjustTankRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.engine.AdjustTank(middleware.GetActor(c), req.NewLevel, req.Reason); err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.reports.BuildDashboard("").Tank)
}

// Update — PUT /v1/tank
func (h *TankHandler) Update(c *gin.Context) {
	var req dto.UpdateTankRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.engine.UpdateTankMetadata(middleware.GetActor(c), req.Name, req.Capacity); err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, h.reports.BuildDashboard("").Tank)
}

// Audit — GET /v1/reports/tank-audit
func (h *TankHandler) Audit(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.TankAudit())
}
