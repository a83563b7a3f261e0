package company_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-firme/internal/company"
	companyerrors "go-firme/internal/company/errors"
	companyMock "go-firme/internal/company/mock"
	"go-firme/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) (*gin.Engine, *companyMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService, zap.NewNop())

	_, r := gin.CreateTestContext(httptest.NewRecorder())
	r.SetHTMLTemplate(web.Templates())
	company.RegisterWebRoutes(r, handler)
	company.RegisterRoutes(r.Group("/api/v1"), handler)

	return r, mockService
}

func postForm(r http.Handler, cui string) *httptest.ResponseRecorder {
	form := url.Values{"cui": {cui}}
	req, _ := http.NewRequest(http.MethodPost, "/lookup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Index(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="cui"`)
}

func TestHandler_Submit(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("valid cui is trimmed and redirected", func(t *testing.T) {
		w := postForm(r, "  14837428 ")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/company/14837428", w.Header().Get("Location"))
	})

	t.Run("blank cui", func(t *testing.T) {
		w := postForm(r, "   ")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "CUI is required")
	})

	t.Run("non digit cui", func(t *testing.T) {
		w := postForm(r, "RO123")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "CUI is invalid")
		assert.Contains(t, w.Body.String(), `value="RO123"`)
	})
}

func TestHandler_Show(t *testing.T) {
	t.Run("renders record", func(t *testing.T) {
		r, mockService := setupRouter(t)
		mockService.EXPECT().Lookup(gomock.Any(), "14837428").Return(&company.CompanyRecord{
			CUI:         "14837428",
			CompanyName: "ACME SRL",
			Turnover:    "3.708.712 RON",
		}, nil)
		mockService.EXPECT().IsDemo("14837428").Return(false)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/company/14837428", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ACME SRL")
		assert.Contains(t, w.Body.String(), "3.708.712 RON")
		assert.NotContains(t, w.Body.String(), "Demo data")
	})

	t.Run("renders generic error", func(t *testing.T) {
		r, mockService := setupRouter(t)
		mockService.EXPECT().
			Lookup(gomock.Any(), "123").
			Return(nil, companyerrors.ErrCompanyNotFound.WithCause(assert.AnError))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/company/123", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), companyerrors.ErrCompanyNotFound.Message)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestHandler_GetByCUI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, mockService := setupRouter(t)
		mockService.EXPECT().Lookup(gomock.Any(), "14837428").Return(&company.CompanyRecord{CUI: "14837428"}, nil)
		mockService.EXPECT().IsDemo("14837428").Return(true)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/companies/14837428", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Ok   bool                   `json:"ok"`
			Data company.LookupResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.True(t, res.Ok)
		assert.True(t, res.Data.Demo)
		assert.Equal(t, "14837428", res.Data.Company.CUI)
	})

	t.Run("not configured", func(t *testing.T) {
		r, mockService := setupRouter(t)
		mockService.EXPECT().Lookup(gomock.Any(), "1").Return(nil, companyerrors.ErrNotConfigured)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/companies/1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, false, res["ok"])
		assert.Equal(t, "SERVICE_UNAVAILABLE", res["error"].(map[string]any)["code"])
	})
}
