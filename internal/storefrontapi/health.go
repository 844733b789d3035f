package storefrontapi

import (
	"net/http"
	"time"

	"github.com/drwskincare/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerHealthRoutes() {
	webserver.ApiGET("/health", healthCheck)
}

// healthCheck reports 503 when the database does not answer, and the pool
// snapshot otherwise.
func healthCheck(c echo.Context) error {
	st := GetAppContext(c).Store()
	ctx := c.Request().Context()
	now := time.Now().UTC().Format(time.RFC3339)

	if !st.CheckHealth(ctx) {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"success":   false,
			"error":     "DATABASE_UNAVAILABLE",
			"message":   "Database connection failed",
			"timestamp": now,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Database connection healthy",
		"connection_pool": st.PoolSnapshot(ctx),
		"timestamp":       now,
	})
}
