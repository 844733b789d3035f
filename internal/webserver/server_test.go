package webserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drwskincare/storefront/config"
	"github.com/drwskincare/storefront/internal/app"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingQuery struct {
	Name string `query:"name" validate:"required,max=5"`
}

func setupServer(t *testing.T) *app.Application {
	a := app.NewApplication(config.DefaultAppConfig)
	Init(a)
	ApiGET("/ping", func(c echo.Context) error {
		var q pingQuery
		if err := c.Bind(&q); err != nil {
			return err
		}
		if err := c.Validate(&q); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		appCtx, ok := c.Get(AppContextKey).(app.AppContext)
		require.True(t, ok)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]string{"site": appCtx.Config().Storefront.SiteName, "name": q.Name},
		})
	})
	ApiPOST("/echo", func(c echo.Context) error {
		var body map[string]interface{}
		if err := c.Bind(&body); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, body)
	})
	return a
}

func serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	Root().ServeHTTP(rec, req)
	return rec
}

func TestServerInjectsAppContext(t *testing.T) {
	setupServer(t)

	rec := serve(httptest.NewRequest(http.MethodGet, "/api/ping?name=ayu", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"site":"DR.W Skincare","name":"ayu"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerValidationAndErrors(t *testing.T) {
	setupServer(t)

	rec := serve(httptest.NewRequest(http.MethodGet, "/api/ping?name=toolongname", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"INVALID_REQUEST"`)

	rec = serve(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"error":"NOT_FOUND"`)
}

func TestServerJSONRoundTrip(t *testing.T) {
	setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(`{"id":"9007199254740993"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"9007199254740993"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(`{broken`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = serve(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
