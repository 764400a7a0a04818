package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cashdesk-api/internal/config"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ast     = time.FixedZone("AST", -4*3600)
	testNow = time.Date(2024, 3, 5, 18, 0, 0, 0, ast)
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Reason  string          `json:"reason"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	router  http.Handler
	printer *printer.Recorder
}

func testConfig() *config.Config {
	return &config.Config{
		App:         config.AppConfig{Name: "cashdesk-test"},
		JWT:         config.JWTConfig{Secret: "test-secret", ExpiryHours: time.Hour},
		RateLimit:   config.RateLimitConfig{Requests: 1000, Duration: 1},
		Printer:     config.PrinterConfig{Type: "none", Width: 48},
		Company:     config.CompanyConfig{Name: "Centro de Copias", RNC: "101000001"},
		Billing:     config.BillingConfig{TaxRate: decimal.NewFromInt(18), NCFPrefix: "E31"},
		Admin:       config.AdminConfig{Username: "admin", Password: "admin123"},
		Closing:     config.ClosingConfig{HistoryDefault: 20, HistoryMax: 500},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testConfig()
	repos := MemoryRepositories(memory.NewStore())
	rec := &printer.Recorder{}
	svc := NewServices(cfg, repos, Options{
		Location: ast,
		Printer:  rec,
		Now:      func() time.Time { return testNow },
	})
	require.NoError(t, Seed(context.Background(), cfg, svc, true))

	limiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	t.Cleanup(limiter.Stop)

	return &testServer{t: t, router: Router(cfg, repos, svc, limiter), printer: rec}
}

func (s *testServer) do(method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) decode(w *httptest.ResponseRecorder, data interface{}) envelope {
	s.t.Helper()
	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	s.decode(w, &out)
	require.NotEmpty(s.t, out.AccessToken)
	return out.AccessToken
}

func idem(key string) map[string]string {
	return map[string]string{middleware.IdempotencyKeyHeader: key}
}

type serviceView struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

func (s *testServer) findService(token, search string) serviceView {
	s.t.Helper()
	w := s.do(http.MethodGet, "/api/v1/services?search="+search, token, "", nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Items []serviceView `json:"items"`
	}
	s.decode(w, &page)
	require.Len(s.t, page.Items, 1)
	return page.Items[0]
}

func TestHealthAndAuthentication(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/invoices", "", "", nil).Code)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login("admin", "admin123")
	w = s.do(http.MethodGet, "/api/v1/profile", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	s.decode(w, &profile)
	assert.Equal(t, "admin", profile.Username)
	assert.Equal(t, "admin", profile.Role)
}

func TestBillingAndClosingFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "admin123")

	paperwork := s.findService(token, "documentos")
	color := s.findService(token, "color")
	assert.True(t, paperwork.Cost.Equal(decimal.NewFromInt(500)))

	fiscal := `{"service_id":"` + paperwork.ID + `","customer":{"name":"Ferretería Central","rnc":"130000001"},"requires_fiscal_receipt":true,"payment_method":"cash"}`

	w := s.do(http.MethodPost, "/api/v1/invoices", token, fiscal, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "idempotency key is required")

	w = s.do(http.MethodPost, "/api/v1/invoices", token, fiscal, idem("inv-1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var issued struct {
		Invoice struct {
			ID           string          `json:"id"`
			Number       string          `json:"number"`
			FiscalNumber *string         `json:"fiscal_number"`
			TotalAmount  decimal.Decimal `json:"total_amount"`
		} `json:"invoice"`
	}
	s.decode(w, &issued)
	assert.Equal(t, "FAC-2024-000001", issued.Invoice.Number)
	require.NotNil(t, issued.Invoice.FiscalNumber)
	assert.Equal(t, "E310000000001", *issued.Invoice.FiscalNumber)
	assert.True(t, issued.Invoice.TotalAmount.Equal(decimal.NewFromInt(590)))

	replay := s.do(http.MethodPost, "/api/v1/invoices", token, fiscal, idem("inv-1"))
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(middleware.ReplayedHeader))
	assert.JSONEq(t, w.Body.String(), replay.Body.String())

	w = s.do(http.MethodPost, "/api/v1/invoices", token, `{"service_id":"`+color.ID+`","quantity":2,"customer":{"name":"Juan"},"payment_method":"card"}`, idem("inv-1"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "key reused for another body")

	w = s.do(http.MethodPost, "/api/v1/invoices", token, `{"service_id":"`+color.ID+`","quantity":2,"customer":{"name":"Juan"},"payment_method":"card"}`, idem("inv-2"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/invoices", token, `{"service_id":"`+color.ID+`","customer":{"name":"Juan"},"payment_method":"cheque"}`, idem("inv-3"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/api/v1/invoices/summary?start=2024-03-05&end=2024-03-05", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var summary struct {
		TotalSales decimal.Decimal `json:"total_sales"`
		TotalCash  decimal.Decimal `json:"total_cash"`
		TotalCard  decimal.Decimal `json:"total_card"`
		Count      int             `json:"count"`
	}
	s.decode(w, &summary)
	assert.True(t, summary.TotalSales.Equal(decimal.NewFromInt(620)), summary.TotalSales.String())
	assert.True(t, summary.TotalCash.Equal(decimal.NewFromInt(590)))
	assert.True(t, summary.TotalCard.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, summary.Count)

	w = s.do(http.MethodGet, "/api/v1/invoices/"+issued.Invoice.ID+"/receipt", token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/invoices/"+issued.Invoice.ID+"/print", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s.printer.Jobs(), 1)

	w = s.do(http.MethodGet, "/api/v1/closings/preview", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var preview struct {
		Day     string `json:"day"`
		Figures struct {
			OpeningCash decimal.Decimal `json:"opening_cash"`
			ClosingCash decimal.Decimal `json:"closing_cash"`
		} `json:"figures"`
	}
	s.decode(w, &preview)
	assert.Equal(t, "2024-03-05", preview.Day)
	assert.True(t, preview.Figures.OpeningCash.IsZero())
	assert.True(t, preview.Figures.ClosingCash.Equal(decimal.NewFromInt(590)))

	w = s.do(http.MethodPost, "/api/v1/closings", token, `{"expected_prior_id":"","notes":"sin novedad"}`, idem("close-1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var closing struct {
		ID           string          `json:"id"`
		OperatorName string          `json:"operator_name"`
		ClosingCash  decimal.Decimal `json:"closing_cash"`
		InvoiceCount int             `json:"invoice_count"`
	}
	s.decode(w, &closing)
	assert.True(t, closing.ClosingCash.Equal(decimal.NewFromInt(590)))
	assert.Equal(t, 2, closing.InvoiceCount)
	assert.NotEmpty(t, closing.OperatorName)

	w = s.do(http.MethodPost, "/api/v1/closings", token, `{"expected_prior_id":""}`, idem("close-2"))
	assert.Equal(t, http.StatusConflict, w.Code, "form built before the first closing is stale")
	assert.Equal(t, apperror.ReasonStale, s.decode(w, nil).Reason)

	w = s.do(http.MethodPost, "/api/v1/closings", token, `{"manual_closing":-1}`, idem("close-3"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.ReasonInvalidInput, s.decode(w, nil).Reason)

	for i, body := range []string{`{"manual_closing":"abc"}`, `{"manual_opening":"NaN"}`, `{"manual_closing":true}`} {
		w = s.do(http.MethodPost, "/api/v1/closings", token, body, idem("close-bad-"+strconv.Itoa(i)))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		env := s.decode(w, nil)
		assert.Equal(t, apperror.ReasonInvalidInput, env.Reason, body)
		assert.NotContains(t, env.Message, "decimal", body)
	}

	w = s.do(http.MethodGet, "/api/v1/closings?limit=5", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var closings []struct {
		ID string `json:"id"`
	}
	s.decode(w, &closings)
	require.Len(t, closings, 1)
	assert.Equal(t, closing.ID, closings[0].ID)

	w = s.do(http.MethodGet, "/api/v1/closings/report.xlsx", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cierres-20240305-1800.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())

	w = s.do(http.MethodPost, "/api/v1/closings/"+closing.ID+"/print", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s.printer.Jobs(), 2)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/closings/not-a-uuid", token, "", nil).Code)
}

func TestOperatorPermissions(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")

	w := s.do(http.MethodPost, "/api/v1/users", admin, `{"username":"maria","display_name":"María Pérez","password":"caja1234","role":"user"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	op := s.login("maria", "caja1234")

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/services", op, "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/closings/preview", op, "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/printer/status", op, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/users", op, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/v1/service-types", op, `{"name":"Nuevo"}`, nil).Code)

	w = s.do(http.MethodPost, "/api/v1/customers", op, `{"name":"Ana Gómez","rnc":"00100000001"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
