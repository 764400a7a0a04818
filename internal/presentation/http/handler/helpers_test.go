package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ast = time.FixedZone("AST", -4*3600)

func TestParseBound(t *testing.T) {
	start, err := parseBound("2024-03-05", ast, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, ast), *start)

	end, err := parseBound("2024-03-05", ast, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, ast), *end)

	exact, err := parseBound("2024-03-05T10:30:00Z", ast, true)
	require.NoError(t, err)
	assert.True(t, exact.Equal(time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)))

	none, err := parseBound("  ", ast, false)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseBound("05/03/2024", ast, false)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
}

func TestParseDay(t *testing.T) {
	day, err := parseDay(nil, ast)
	require.NoError(t, err)
	assert.Nil(t, day)

	s := "2024-03-05"
	day, err = parseDay(&s, ast)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, ast), *day)

	bad := "marzo"
	_, err = parseDay(&bad, ast)
	assert.Equal(t, apperror.ReasonInvalidInput, apperror.GetAppError(err).Reason)
}

func TestParseAmount(t *testing.T) {
	for _, raw := range []string{"", "null", " null "} {
		got, err := parseAmount(json.RawMessage(raw), "manual_closing")
		require.NoError(t, err, raw)
		assert.Nil(t, got, raw)
	}

	for raw, want := range map[string]string{"1250.5": "1250.5", `"300"`: "300", "-5": "-5"} {
		got, err := parseAmount(json.RawMessage(raw), "manual_closing")
		require.NoError(t, err, raw)
		require.NotNil(t, got, raw)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), raw)
	}

	for _, raw := range []string{`"abc"`, `"NaN"`, `""`, "true", `{"x":1}`} {
		_, err := parseAmount(json.RawMessage(raw), "manual_opening")
		appErr := apperror.GetAppError(err)
		require.NotNil(t, appErr, raw)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code, raw)
		assert.Equal(t, apperror.ReasonInvalidInput, appErr.Reason, raw)
		require.Len(t, appErr.Errors, 1, raw)
		assert.Equal(t, "manual_opening", appErr.Errors[0].Field, raw)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := parseStatus("")
	require.NoError(t, err)
	assert.Equal(t, enum.StatusActive, st)

	st, err = parseStatus("Inactivo")
	require.NoError(t, err)
	assert.Equal(t, enum.StatusInactive, st)

	_, err = parseStatus("archived")
	assert.Error(t, err)
}

func TestLimitParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		want  int
		ok    bool
	}{
		{"", 0, true},
		{"?limit=50", 50, true},
		{"?limit=abc", 0, false},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/closings"+tc.query, nil)

		got, ok := limitParam(c)
		assert.Equal(t, tc.ok, ok, tc.query)
		assert.Equal(t, tc.want, got, tc.query)
		if !ok {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
