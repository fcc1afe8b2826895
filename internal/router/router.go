// Package router assembles the Gin engine: middleware chain, route table and
// capability gates.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/MateusVidalm/ECOTANQUE/internal/auth"
	"github.com/MateusVidalm/ECOTANQUE/internal/config"
	"github.com/MateusVidalm/ECOTANQUE/internal/handler"
	"github.com/MateusVidalm/ECOTANQUE/internal/ledger"
	"github.com/MateusVidalm/ECOTANQUE/internal/middleware"
	"github.com/MateusVidalm/ECOTANQUE/internal/model"
	"github.com/MateusVidalm/ECOTANQUE/internal/report"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/syncer"
)

// Deps carries the wired services for the HTTP surface.
type Deps struct {
	Cfg     *config.Config
	App     *state.App
	Engine  *ledger.Engine
	Auth    *auth.Service
	Reports *report.Service
	Syncer  *syncer.Coordinator
}

// New builds the Gin engine with the full route table.
func New(d Deps) *gin.Engine {
	if d.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
	)

	authH := handler.NewAuthHandler(d.Auth)
	fuelingH := handler.NewFuelingHandler(d.Engine, d.App)
	tankH := handler.NewTankHandler(d.Engine, d.Reports, d.App)
	adminH := handler.NewAdminHandler(d.Engine, d.App)
	reportH := handler.NewReportHandler(d.Reports, d.App, d.Cfg.PDFStoragePath)
	syncH := handler.NewSyncHandler(d.Syncer)

	r.GET("/health", handler.Health)

	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Everything below requires a session. Capability gates mirror the
	// checks inside the ledger engine.
	v1 := r.Group("/v1", middleware.RequireSession(d.Auth))
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/session", authH.Session)

		v1.GET("/companies", adminH.ListCompanies)

		v1.GET("/machines", adminH.ListMachines)
		v1.POST("/machines", middleware.RequireCap(model.CapManageMachines), adminH.CreateMachine)

		v1.GET("/fuelings", fuelingH.List)
		v1.POST("/fuelings", middleware.RequireCap(model.CapRecordFueling), fuelingH.Create)
		v1.PUT("/fuelings/:id", middleware.RequireCap(model.CapManageFuelings), fuelingH.Update)
		v1.DELETE("/fuelings/:id", middleware.RequireCap(model.CapManageFuelings), fuelingH.Delete)
		v1.POST("/fuelings/:id/correction", fuelingH.SuggestCorrection)
		v1.POST("/fuelings/:id/correction/process", middleware.RequireCap(model.CapManageFuelings), fuelingH.ProcessCorrection)

		v1.GET("/refills", tankH.ListRefills)
		v1.POST("/refills", middleware.RequireCap(model.CapRefillTank), tankH.Refill)

		v1.GET("/tank", tankH.Status)
		v1.PUT("/tank", middleware.RequireCap(model.CapAdjustTank), tankH.Update)
		v1.POST("/tank/adjust", middleware.RequireCap(model.CapAdjustTank), tankH.Adjust)

		v1.GET("/users", middleware.RequireCap(model.CapManageUsers), adminH.ListUsers)
		v1.POST("/users", middleware.RequireCap(model.CapManageUsers), adminH.CreateUser)
		v1.PUT("/users/:id", adminH.UpdateUser) // self-edit allowed; engine enforces the rest
		v1.DELETE("/users/:id", middleware.RequireCap(model.CapManageUsers), adminH.DeleteUser)

		v1.GET("/logs", middleware.RequireCap(model.CapViewReports), adminH.ListLogs)

		v1.GET("/reports/dashboard", reportH.Dashboard)
		v1.GET("/reports/consumption", middleware.RequireCap(model.CapViewReports), reportH.Consumption)
		v1.GET("/reports/consumption/pdf", middleware.RequireCap(model.CapViewReports), reportH.ConsumptionPDF)
		v1.GET("/reports/tank-audit", middleware.RequireCap(model.CapViewReports), tankH.Audit)

		v1.POST("/sync", syncH.Trigger)
		v1.GET("/sync/pending", syncH.Pending)
	}

	return r
}
