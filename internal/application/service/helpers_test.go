package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/domain/session"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errDown = errors.New("connection refused")
	ast     = time.FixedZone("AST", -4*3600)
	// 2024-03-05 18:00 local
	testNow = time.Date(2024, 3, 5, 18, 0, 0, 0, ast)
)

func fixedClock() time.Time { return testNow }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func operatorCtx() context.Context {
	return session.WithSession(context.Background(), &session.Session{
		UserID:      uuid.New(),
		Username:    "maria",
		DisplayName: "María Pérez",
		Role:        enum.RoleUser,
	})
}

func assertAppError(t *testing.T, err error, code int, reason string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, reason, appErr.Reason)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, http.StatusNotFound, "")
}

func seedInvoice(t *testing.T, store *memory.Store, number string, amount string, method enum.PaymentMethod, at time.Time) {
	t.Helper()
	require.NoError(t, store.Invoices.Create(context.Background(), &entity.Invoice{
		Number:        number,
		PaymentMethod: method,
		BaseAmount:    dec(amount),
		TotalAmount:   dec(amount),
		CreatedAt:     at,
	}))
}

func seedService(t *testing.T, store *memory.Store, cost string, status enum.RecordStatus) *entity.Service {
	t.Helper()
	svc := &entity.Service{Description: "Certificado de buena conducta", Cost: dec(cost), Status: status}
	require.NoError(t, store.Services.Create(context.Background(), svc))
	return svc
}

type failingInvoices struct{ *memory.InvoiceRepository }

func (failingInvoices) ListInRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	return nil, errDown
}

func (failingInvoices) Create(ctx context.Context, invoice *entity.Invoice) error {
	return errDown
}

func (failingInvoices) CreateNumbered(ctx context.Context, invoice *entity.Invoice, assign repository.NumberAssigner) error {
	return errDown
}

// failingNumbering writes invoices normally but cannot reach the sequences.
type failingNumbering struct{ *memory.InvoiceRepository }

func (failingNumbering) CreateNumbered(ctx context.Context, invoice *entity.Invoice, assign repository.NumberAssigner) error {
	return assign(ctx, failingSequences{memory.NewSequenceRepository()}, invoice)
}

type failingClosingReads struct{ *memory.ClosingRepository }

func (failingClosingReads) GetLatest(ctx context.Context) (*entity.CashClosing, error) {
	return nil, errDown
}

func (failingClosingReads) ListRecent(ctx context.Context, limit int) ([]entity.CashClosing, error) {
	return nil, errDown
}

type failingClosingWrites struct{ *memory.ClosingRepository }

func (failingClosingWrites) CreateIfLatest(ctx context.Context, closing *entity.CashClosing, expectedPriorID *uuid.UUID) error {
	return errDown
}

type failingSequences struct{ *memory.SequenceRepository }

func (failingSequences) Next(ctx context.Context, series string) (int64, error) {
	return 0, errDown
}
