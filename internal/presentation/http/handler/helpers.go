package handler

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/cashclosing"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// pathID parses the :id parameter, answering 400 when it is not a UUID
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	return pagination.FromQuery(c.DefaultQuery("page", "1"), c.DefaultQuery("per_page", "15"))
}

// parseStatus reads a record status; empty means active
func parseStatus(s string) (enum.RecordStatus, error) {
	if strings.TrimSpace(s) == "" {
		return enum.StatusActive, nil
	}
	st, err := enum.ParseRecordStatus(s)
	if err != nil {
		return st, apperror.NewInvalidInputError("Status must be active or inactive",
			apperror.FieldError{Field: "status", Message: "must be active or inactive"})
	}
	return st, nil
}

// parseBound reads a query bound given as YYYY-MM-DD or RFC 3339. A bare
// date is the start of that day in loc, or its last instant when end is set.
func parseBound(s string, loc *time.Location, end bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	day, err := cashclosing.ParseDay(s, loc)
	if err != nil {
		return nil, apperror.NewInvalidInputError("Dates must be YYYY-MM-DD or RFC 3339")
	}
	start, last := cashclosing.DayWindow(day, loc)
	if end {
		return &last, nil
	}
	return &start, nil
}

// parseDay reads an optional YYYY-MM-DD business day
func parseDay(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	day, err := cashclosing.ParseDay(strings.TrimSpace(*s), loc)
	if err != nil {
		return nil, apperror.NewInvalidInputError("Day must be YYYY-MM-DD",
			apperror.FieldError{Field: "day", Message: "must be YYYY-MM-DD"})
	}
	return &day, nil
}

// parseAmount reads an optional amount given as a JSON number or numeric
// string. Absent and null mean no amount.
func parseAmount(raw json.RawMessage, field string) (*decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return nil, apperror.NewInvalidInputError("Amounts must be numbers",
			apperror.FieldError{Field: field, Message: "must be a number"})
	}
	return &d, nil
}

func bindError(c *gin.Context, err error) {
	response.BadRequest(c, "Invalid request body: "+err.Error())
}
