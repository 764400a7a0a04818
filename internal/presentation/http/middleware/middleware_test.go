package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/session"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenTable map[string]*session.Session

func (t tokenTable) Authenticate(token string) (*session.Session, error) {
	if s, ok := t[token]; ok {
		return s, nil
	}
	return nil, apperror.ErrInvalidToken
}

var (
	operator = &session.Session{UserID: uuid.New(), Username: "maria", Role: enum.RoleUser}
	admin    = &session.Session{UserID: uuid.New(), Username: "admin", Role: enum.RoleAdmin}
	tokens   = tokenTable{"op": operator, "adm": admin}
)

func do(r http.Handler, method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		fromCtx, ok := session.FromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, fromCtx.Username)
	})
	r.GET("/users", AuthMiddleware(tokens), RequirePermission(enum.PermManageUsers), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/me", "", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/me", "", "", map[string]string{"Authorization": "Token op"}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/me", "forged", "", nil).Code)

	w := do(r, "GET", "/me", "op", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "maria", w.Body.String())

	assert.Equal(t, http.StatusForbidden, do(r, "GET", "/users", "op", "", nil).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "GET", "/users", "adm", "", nil).Code)
}

func TestIdempotencyRequired(t *testing.T) {
	var calls int32
	r := gin.New()
	r.POST("/closings",
		AuthMiddleware(tokens),
		IdempotencyRequired(IdempotencyConfig{Repo: memory.NewIdempotencyRepository()}),
		func(c *gin.Context) {
			n := atomic.AddInt32(&calls, 1)
			c.JSON(http.StatusCreated, gin.H{"n": n})
		})

	w := do(r, "POST", "/closings", "op", `{"notes":"a"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	key := map[string]string{IdempotencyKeyHeader: "k-1"}
	first := do(r, "POST", "/closings", "op", `{"notes":"a"}`, key)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := do(r, "POST", "/closings", "op", `{"notes":"a"}`, key)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(ReplayedHeader))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	mismatch := do(r, "POST", "/closings", "op", `{"notes":"b"}`, key)
	assert.Equal(t, http.StatusUnprocessableEntity, mismatch.Code)

	// keys are scoped per operator
	other := do(r, "POST", "/closings", "adm", `{"notes":"a"}`, key)
	assert.Equal(t, http.StatusCreated, other.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	var calls int32
	r := gin.New()
	r.POST("/invoices",
		AuthMiddleware(tokens),
		IdempotencyRequired(IdempotencyConfig{Repo: memory.NewIdempotencyRepository()}),
		func(c *gin.Context) {
			if atomic.AddInt32(&calls, 1) == 1 {
				c.JSON(http.StatusServiceUnavailable, gin.H{})
				return
			}
			c.JSON(http.StatusCreated, gin.H{})
		})

	key := map[string]string{IdempotencyKeyHeader: "k-2"}
	assert.Equal(t, http.StatusServiceUnavailable, do(r, "POST", "/invoices", "op", "{}", key).Code)
	assert.Equal(t, http.StatusCreated, do(r, "POST", "/invoices", "op", "{}", key).Code)
}

func TestIdempotencyExpiredKeyRunsAgain(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	var calls int32
	r := gin.New()
	r.POST("/x",
		AuthMiddleware(tokens),
		IdempotencyRequired(IdempotencyConfig{
			Repo: memory.NewIdempotencyRepository(),
			TTL:  time.Hour,
			Now:  func() time.Time { return now },
		}),
		func(c *gin.Context) {
			atomic.AddInt32(&calls, 1)
			c.JSON(http.StatusCreated, gin.H{})
		})

	key := map[string]string{IdempotencyKeyHeader: "k-3"}
	do(r, "POST", "/x", "op", "{}", key)
	now = now.Add(2 * time.Hour)
	w := do(r, "POST", "/x", "op", "{}", key)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get(ReplayedHeader))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateLimiter(t *testing.T) {
	rl := NewOperatorRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2, CleanupInterval: time.Hour, EntryTTL: time.Hour})
	defer rl.Stop()

	r := gin.New()
	r.GET("/x", AuthMiddleware(tokens), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "GET", "/x", "op", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/x", "op", "", nil).Code)
	w := do(r, "GET", "/x", "op", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// another operator has its own budget
	assert.Equal(t, http.StatusOK, do(r, "GET", "/x", "adm", "", nil).Code)
	assert.Equal(t, 2, rl.Size())

	rl.cleanup(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 0, rl.Size())
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(100, 60)
	assert.InDelta(t, 100.0/60.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 100, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(0, 60))
}

func TestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "GET", "/x", "", "", map[string]string{"X-Request-ID": "req-42"})
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = do(r, "GET", "/x", "", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

