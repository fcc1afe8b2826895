package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MateusVidalm/ECOTANQUE/internal/apierror"
	"github.com/MateusVidalm/ECOTANQUE/internal/infra"
	"github.com/MateusVidalm/ECOTANQUE/internal/report"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
)

type ReportHandler struct {
	reports *report.Service
	app     *state.App
	pdfDir  string
}

func NewReportHandler(reports *report.Service, app *state.App, pdfDir string) *ReportHandler {
	return &ReportHandler{reports: reports, app: app, pdfDir: pdfDir}
}

// Dashboard — GET /v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.BuildDashboard(c.Query("companyId")))
}

// Consumption — GET /v1/reports/consumption
func (h *ReportHandler) Consumption(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.reports.BuildConsumption(filter))
}

// ConsumptionPDF — GET /v1/reports/consumption/pdf
// Generates the PDF on disk and streams it back as an attachment.
func (h *ReportHandler) ConsumptionPDF(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	consumption := h.reports.BuildConsumption(filter)

	var tankName string
	machineNames := map[string]string{}
	companyNames := map[string]string{}
	h.app.View(func(d *state.Data) {
		tankName = d.Tank.Name
		for _, m := range d.Machines {
			machineNames[m.ID] = m.Name
		}
		for _, co := range d.Companies {
			companyNames[co.ID] = co.Name
		}
	})

	rows := make([]infra.ConsumptionRow, 0, len(consumption.Entries))
	for _, f := range consumption.Entries {
		rows = append(rows, infra.ConsumptionRow{
			Date:     f.Date,
			Machine:  machineNames[f.MachineID],
			Company:  companyNames[f.CompanyID],
			Operator: f.OperatorName,
			Liters:   f.Liters,
		})
	}

	path, err := infra.GenerateConsumptionPDF(tankName, rows, consumption.TotalLiters, h.pdfDir)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.FileAttachment(path, "relatorio_consumo.pdf")
}

// parseFilter reads the query string into a ConsumptionFilter. Dates accept
// the 2006-01-02 form; the upper bound is inclusive of its whole day.
func (h *ReportHandler) parseFilter(c *gin.Context) (report.ConsumptionFilter, bool) {
	filter := report.ConsumptionFilter{
		CompanyID: c.Query("companyId"),
		MachineID: c.Query("machineId"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("data inicial inválida, use AAAA-MM-DD"))
			return filter, false
		}
		filter.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("data final inválida, use AAAA-MM-DD"))
			return filter, false
		}
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return filter, true
}
