package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateusVidalm/ECOTANQUE/internal/auth"
	"github.com/MateusVidalm/ECOTANQUE/internal/config"
	"github.com/MateusVidalm/ECOTANQUE/internal/infra"
	"github.com/MateusVidalm/ECOTANQUE/internal/ledger"
	"github.com/MateusVidalm/ECOTANQUE/internal/report"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
	"github.com/MateusVidalm/ECOTANQUE/internal/syncer"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	app, err := state.Load(s, state.Defaults{
		TankName:         "Tanque Principal 01",
		TankCapacity:     decimal.NewFromInt(15000),
		TankInitialLevel: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	authSvc := auth.NewService(app)
	remote := infra.NewRemoteClient("", "", "")
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	return New(Deps{
		Cfg:     &config.Config{Env: "development", PDFStoragePath: t.TempDir()},
		App:     app,
		Engine:  ledger.New(app),
		Auth:    authSvc,
		Reports: report.NewService(app, decimal.NewFromInt(3000)),
		Syncer:  syncer.New(app, remote, cb, func() bool { return true }),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", gin.H{"email": email, "password": "123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/v1/fuelings", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", gin.H{"email": "gerente@ecofuel.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestFuelingLifecycleOverHTTP(t *testing.T) {
	r := newTestServer(t)
	login(t, r, "gerente@ecofuel.com")

	w := doJSON(t, r, http.MethodPost, "/v1/fuelings", gin.H{
		"machineId":    "m1",
		"companyId":    "campo-rico",
		"liters":       500,
		"operatorName": "Carlos Silva",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, r, http.MethodGet, "/v1/tank", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tank struct {
		CurrentLevel decimal.Decimal `json:"currentLevel"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tank))
	assert.True(t, tank.CurrentLevel.Equal(decimal.NewFromInt(9500)))

	w = doJSON(t, r, http.MethodDelete, "/v1/fuelings/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRefillOverfillFlowOverHTTP(t *testing.T) {
	r := newTestServer(t)
	login(t, r, "gerente@ecofuel.com")

	w := doJSON(t, r, http.MethodPost, "/v1/refills", gin.H{
		"companyId": "km-12",
		"liters":    7000,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/refills", gin.H{
		"companyId":       "km-12",
		"liters":          7000,
		"confirmOverfill": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAdjustWithoutReasonIsRejected(t *testing.T) {
	r := newTestServer(t)
	login(t, r, "gerente@ecofuel.com")

	w := doJSON(t, r, http.MethodPost, "/v1/tank/adjust", gin.H{"newLevel": 9000, "reason": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCapabilityGates(t *testing.T) {
	r := newTestServer(t)

	// ADMINISTRADOR reads dashboards but cannot record fuelings.
	login(t, r, "admin@ecofuel.com")
	w := doJSON(t, r, http.MethodPost, "/v1/fuelings", gin.H{
		"machineId":    "m1",
		"companyId":    "campo-rico",
		"liters":       100,
		"operatorName": "Ana",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/reports/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// ABASTECEDOR cannot see the audit trail.
	login(t, r, "carlos@ecofuel.com")
	w = doJSON(t, r, http.MethodGet, "/v1/logs", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSyncWithoutRemoteConfigured(t *testing.T) {
	r := newTestServer(t)
	login(t, r, "gerente@ecofuel.com")

	w := doJSON(t, r, http.MethodPost, "/v1/sync", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/sync/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	// Seeded machines start unsynced.
	assert.Contains(t, w.Body.String(), `"pending":3`)
}
