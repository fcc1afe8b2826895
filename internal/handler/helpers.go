package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MateusVidalm/ECOTANQUE/internal/apierror"
	"github.com/MateusVidalm/ECOTANQUE/internal/auth"
	"github.com/MateusVidalm/ECOTANQUE/internal/ledger"
	"github.com/MateusVidalm/ECOTANQUE/internal/syncer"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondDomainErr maps the domain error taxonomy onto HTTP statuses.
func respondDomainErr(c *gin.Context, err error) {
	switch {
	case ledger.IsValidation(err), errors.Is(err, ledger.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, ledger.ErrCapacityExceeded), errors.Is(err, syncer.ErrSyncInFlight):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, ledger.ErrPermission):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, ledger.ErrFuelingNotFound),
		errors.Is(err, ledger.ErrMachineNotFound),
		errors.Is(err, ledger.ErrCompanyNotFound),
		errors.Is(err, ledger.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNoSession):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, syncer.ErrOffline), errors.Is(err, syncer.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
