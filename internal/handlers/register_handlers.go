package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	portssvc "github.com/mkravets/fx_exchange_app/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerCurrencyRoutes(v1, services.Currency)
	registerRateRoutes(v1, services.Rates)
	registerConvertRoutes(v1, services.Exchange, services.Rates, services.Currency)
}

// registerValidations installs custom binding validations. "currencycode"
// accepts any code in the ISO-4217 catalog, case-insensitively (handlers
// normalize before lookups).
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		_, err := domain.LookupCurrency(strings.ToUpper(fl.Field().String()))
		return err == nil
	})
}
