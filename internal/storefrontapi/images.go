package storefrontapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/drwskincare/storefront/internal/catalog"
	"github.com/drwskincare/storefront/internal/webserver"
	"github.com/drwskincare/storefront/pkg/metrics"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// brokenImageView adds the reports received over the last day to the
// suspect photo rows.
type brokenImageView struct {
	catalog.BrokenImageStats
	ReportsLastDay int `json:"reports_last_24h"`
}

type imageReportPayload struct {
	ImageURL  string `json:"imageUrl" validate:"max=2048"`
	ProductID string `json:"productId" validate:"max=64"`
}

func registerImageRoutes() {
	webserver.ApiPOST("/images/report", reportBrokenImage)
	webserver.ApiGET("/images/report", brokenImageStats)
}

// reportBrokenImage only records the report. Photo rows are left untouched.
func reportBrokenImage(c echo.Context) error {
	var payload imageReportPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to report broken image", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to report broken image", err.Error())
	}

	zap.L().Warn("broken image reported",
		zap.String("image_url", strings.TrimSpace(payload.ImageURL)),
		zap.String("product_id", strings.TrimSpace(payload.ProductID)))
	metrics.Record(metrics.BrokenImageReport, 1)

	return c.JSON(http.StatusOK, Response{Success: true, Message: "Broken image reported"})
}

func brokenImageStats(c echo.Context) error {
	stats, err := GetAppContext(c).Catalog().BrokenImageStats(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "Failed to get stats")
	}
	return ok(c, brokenImageView{
		BrokenImageStats: stats,
		ReportsLastDay:   int(metrics.Sum(metrics.BrokenImageReport, time.Now().Add(-24*time.Hour))),
	})
}
