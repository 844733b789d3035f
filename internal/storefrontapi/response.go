package storefrontapi

import (
	"net/http"

	"github.com/drwskincare/storefront/internal/app"
	"github.com/drwskincare/storefront/internal/catalog"
	"github.com/drwskincare/storefront/internal/store"
	"github.com/drwskincare/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

type PagedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, Response{Success: false, Error: code, Message: message, Detail: detail})
}

func paged(c echo.Context, data interface{}, page catalog.Page) error {
	return c.JSON(http.StatusOK, PagedResponse{
		Success: true,
		Data:    data,
		Pagination: Pagination{
			Page:    page.Page,
			Limit:   page.PageSize,
			Total:   page.Total,
			HasMore: page.HasMore,
		},
	})
}

// storeFail maps a data access failure to a response. Driver text is logged,
// never returned.
func storeFail(c echo.Context, err error, notFoundMessage string) error {
	se := store.Classify(err)
	if se == nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
	}
	switch se.Kind {
	case store.KindNotFound:
		return fail(c, http.StatusNotFound, "NOT_FOUND", notFoundMessage, nil)
	case store.KindConnectionTimeout, store.KindConnectionUnreachable:
		zap.L().Warn("store unavailable", zap.String("op", se.Op), zap.String("kind", se.Kind.String()), zap.Error(err))
		return fail(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", se.Message(), nil)
	case store.KindUnclassified:
		zap.L().Error("store error", zap.String("op", se.Op), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", se.Message(), nil)
	default:
		zap.L().Error("unexpected error", zap.String("op", se.Op), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", se.Message(), nil)
	}
}
