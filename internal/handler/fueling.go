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

type FuelingHandler struct {
	engine *ledger.Engine
	app    *state.App
}

func NewFuelingHandler(engine *ledger.Engine, app *state.App) *FuelingHandler {
	return &FuelingHandler{engine: engine, app: app}
}

// List — GET /v1/fuelings
func (h *FuelingHandler) List(c *gin.Context) {
	companyID := c.Query("companyId")
	out := []model.Fueling{}
	h.app.View(func(d *state.Data) {
		for _, f := range d.Fuelings {
			if companyID != "" && f.CompanyID != companyID {
				continue
			}
			out = append(out, f)
		}
	})
	c.JSON(http.StatusOK, out)
}

// Create — POST /v1/fuelings
func (h *FuelingHandler) Create(c *gin.Context) {
	var req dto.RecordFuelingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	created, err := h.engine.RecordFueling(middleware.GetActor(c), ledger.FuelingInput{
		MachineID:    req.MachineID,
		CompanyID:    req.CompanyID,
		Liters:       req.Liters,
		Meter:        req.Meter,
		OperatorName: req.OperatorName,
		PhotoURL:     req.PhotoURL,
		Observations: req.Observations,
	})
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update — PUT /v1/fuelings/:id
func (h *FuelingHandler) Update(c *gin.Context) {
	var req dto.UpdateFuelingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	updated, err := h.engine.UpdateFueling(middleware.GetActor(c), c.Param("id"), req.Patch())
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete — DELETE /v1/fuelings/:id
func (h *FuelingHandler) Delete(c *gin.Context) {
	if err := h.engine.DeleteFueling(middleware.GetActor(c), c.Param("id")); err != nil {
		respondDomainErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestCorrection — POST /v1/fuelings/:id/correction
func (h *FuelingHandler) SuggestCorrection(c *gin.Context) {
	var req dto.SuggestCorrectionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.engine.SuggestCorrection(middleware.GetActor(c), c.Param("id"), req.Note); err != nil {
		respondDomainErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ProcessCorrection — POST /v1/fuelings/:id/correction/process
func (h *FuelingHandler) ProcessCorrection(c *gin.Context) {
	var req dto.ProcessCorrectionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var patch *model.FuelingPatch
	if req.NewData != nil {
		p := req.NewData.Patch()
		patch = &p
	}
	if err := h.engine.ProcessCorrection(middleware.GetActor(c), c.Param("id"), req.Approved, patch); err != nil {
		respondDomainErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
