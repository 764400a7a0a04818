package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingService(store *memory.Store) *BillingService {
	return NewBillingService(store.Invoices, store.Services, store.Customers, BillingOptions{
		TaxRate:   dec("18"),
		NCFPrefix: "E31",
		Header:    entity.ReceiptHeader{Name: "Ayuntamiento", TaxID: "401000001"},
		Location:  ast,
		Now:       fixedClock,
	})
}

func walkIn(name string) *InvoiceCustomerInput {
	return &InvoiceCustomerInput{Name: name}
}

func TestComputeAmounts(t *testing.T) {
	a := ComputeAmounts(dec("500"), dec("18"), true)
	assert.True(t, a.Tax.Equal(dec("90")))
	assert.True(t, a.Total.Equal(dec("590")))

	a = ComputeAmounts(dec("500"), dec("18"), false)
	assert.True(t, a.Tax.IsZero())
	assert.True(t, a.Total.Equal(dec("500")))
	assert.True(t, a.Rate.Equal(dec("18")))

	a = ComputeAmounts(dec("10.05"), dec("18"), true)
	assert.True(t, a.Tax.Equal(dec("1.81")))
}

func TestCreateFiscalInvoice(t *testing.T) {
	store := memory.NewStore()
	svc := seedService(t, store, "500", enum.StatusActive)
	billing := newBillingService(store)

	out, err := billing.CreateInvoice(operatorCtx(), &CreateInvoiceInput{
		ServiceID:             svc.ID,
		Customer:              walkIn("  Juan Rodríguez "),
		RequiresFiscalReceipt: true,
		PaymentMethod:         enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	inv := out.Invoice
	assert.Equal(t, "FAC-2024-000001", inv.Number)
	require.NotNil(t, inv.FiscalNumber)
	assert.Equal(t, "E310000000001", *inv.FiscalNumber)
	assert.NotEmpty(t, inv.VerificationCode)
	assert.True(t, inv.BaseAmount.Equal(dec("500")))
	assert.True(t, inv.TaxAmount.Equal(dec("90")))
	assert.True(t, inv.TotalAmount.Equal(dec("590")))
	assert.Equal(t, "Juan Rodríguez", inv.CustomerName)
	assert.Equal(t, "María Pérez", inv.CreatedByName)
	assert.Equal(t, testNow, inv.CreatedAt)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, svc.Description, inv.Items[0].Description)

	assert.Equal(t, "Ayuntamiento", out.Receipt.Header.Name)
	assert.Equal(t, "05/03/2024 18:00", out.Receipt.Date)
	assert.Equal(t, "Efectivo", out.Receipt.PaymentMethod)
}

func TestCreatePlainInvoiceHasNoTaxOrNCF(t *testing.T) {
	store := memory.NewStore()
	svc := seedService(t, store, "250", enum.StatusActive)
	billing := newBillingService(store)

	out, err := billing.CreateInvoice(context.Background(), &CreateInvoiceInput{
		ServiceID:     svc.ID,
		Customer:      walkIn("Ana"),
		PaymentMethod: enum.PaymentMethodCard,
	})
	require.NoError(t, err)

	assert.Nil(t, out.Invoice.FiscalNumber)
	assert.True(t, out.Invoice.TaxAmount.IsZero())
	assert.True(t, out.Invoice.TotalAmount.Equal(dec("250")))

	second, err := billing.CreateInvoice(context.Background(), &CreateInvoiceInput{
		ServiceID:     svc.ID,
		Customer:      walkIn("Ana"),
		PaymentMethod: enum.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "FAC-2024-000002", second.Invoice.Number)
}

func TestCreateInvoiceForStoredCustomer(t *testing.T) {
	store := memory.NewStore()
	svc := seedService(t, store, "100", enum.StatusActive)
	rnc, phone := "131000001", "809-555-0101"
	customer := &entity.Customer{Name: "Ferretería Central", RNC: &rnc, Phone: &phone}
	require.NoError(t, store.Customers.Create(context.Background(), customer))
	billing := newBillingService(store)

	out, err := billing.CreateInvoice(context.Background(), &CreateInvoiceInput{
		ServiceID:     svc.ID,
		CustomerID:    &customer.ID,
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, customer.ID, *out.Invoice.CustomerID)
	assert.Equal(t, "Ferretería Central", out.Invoice.CustomerName)
	assert.Equal(t, rnc, out.Invoice.CustomerRNC)
	assert.Equal(t, phone, out.Receipt.Customer.Phone)
}

func TestCreateInvoiceRejections(t *testing.T) {
	store := memory.NewStore()
	active := seedService(t, store, "100", enum.StatusActive)
	inactive := seedService(t, store, "100", enum.StatusInactive)
	billing := newBillingService(store)
	missing := uuid.New()

	tests := []struct {
		name   string
		input  CreateInvoiceInput
		code   int
		reason string
	}{
		{"unknown method", CreateInvoiceInput{ServiceID: active.ID, Customer: walkIn("A")}, http.StatusUnprocessableEntity, apperror.ReasonInvalidInput},
		{"negative quantity", CreateInvoiceInput{ServiceID: active.ID, Quantity: -1, Customer: walkIn("A"), PaymentMethod: enum.PaymentMethodCash}, http.StatusUnprocessableEntity, apperror.ReasonInvalidInput},
		{"unknown service", CreateInvoiceInput{ServiceID: uuid.New(), Customer: walkIn("A"), PaymentMethod: enum.PaymentMethodCash}, http.StatusNotFound, ""},
		{"inactive service", CreateInvoiceInput{ServiceID: inactive.ID, Customer: walkIn("A"), PaymentMethod: enum.PaymentMethodCash}, http.StatusUnprocessableEntity, apperror.ReasonInvalidInput},
		{"no customer", CreateInvoiceInput{ServiceID: active.ID, PaymentMethod: enum.PaymentMethodCash}, http.StatusUnprocessableEntity, apperror.ReasonInvalidInput},
		{"unknown customer", CreateInvoiceInput{ServiceID: active.ID, CustomerID: &missing, PaymentMethod: enum.PaymentMethodCash}, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billing.CreateInvoice(context.Background(), &tt.input)
			assertAppError(t, err, tt.code, tt.reason)
		})
	}

	_, total, err := store.Invoices.List(context.Background(), &repository.InvoiceFilterParams{Pagination: pagination.DefaultPagination()})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateInvoiceStorageFailures(t *testing.T) {
	store := memory.NewStore()
	svc := seedService(t, store, "100", enum.StatusActive)
	input := &CreateInvoiceInput{ServiceID: svc.ID, Customer: walkIn("A"), PaymentMethod: enum.PaymentMethodCash}

	billing := NewBillingService(failingInvoices{store.Invoices}, store.Services, store.Customers, BillingOptions{TaxRate: dec("18")})
	_, err := billing.CreateInvoice(context.Background(), input)
	assertAppError(t, err, http.StatusServiceUnavailable, apperror.ReasonStorageUnavailable)

	billing = NewBillingService(failingNumbering{store.Invoices}, store.Services, store.Customers, BillingOptions{TaxRate: dec("18")})
	_, err = billing.CreateInvoice(context.Background(), input)
	assertAppError(t, err, http.StatusServiceUnavailable, apperror.ReasonStorageUnavailable)
}

func TestFailedInvoiceWriteLeavesNoNumberingGap(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := seedService(t, store, "100", enum.StatusActive)
	billing := newBillingService(store)

	// An invoice stored outside the sequence makes the next write collide.
	require.NoError(t, store.Invoices.Create(ctx, &entity.Invoice{Number: "FAC-2024-000001"}))

	_, err := billing.CreateInvoice(ctx, &CreateInvoiceInput{
		ServiceID:             svc.ID,
		Customer:              walkIn("A"),
		PaymentMethod:         enum.PaymentMethodCash,
		RequiresFiscalReceipt: true,
	})
	assertAppError(t, err, http.StatusServiceUnavailable, apperror.ReasonStorageUnavailable)

	ncf, err := store.Sequences.Current(ctx, "E31")
	require.NoError(t, err)
	assert.Zero(t, ncf)
	invoices, err := store.Sequences.Current(ctx, "FAC-2024")
	require.NoError(t, err)
	assert.Zero(t, invoices)
}

func TestGetReceiptAndListInvoices(t *testing.T) {
	store := memory.NewStore()
	svc := seedService(t, store, "100", enum.StatusActive)
	billing := newBillingService(store)

	out, err := billing.CreateInvoice(context.Background(), &CreateInvoiceInput{
		ServiceID:     svc.ID,
		Customer:      walkIn("A"),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	receipt, err := billing.GetReceipt(context.Background(), out.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Invoice.Number, receipt.InvoiceNo)

	_, err = billing.GetReceipt(context.Background(), uuid.New())
	assertNotFound(t, err)

	card := enum.PaymentMethodCard
	res, err := billing.ListInvoices(context.Background(), &repository.InvoiceFilterParams{PaymentMethod: &card})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = billing.ListInvoices(context.Background(), &repository.InvoiceFilterParams{})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestInvoiceAggregatorUnavailable(t *testing.T) {
	store := memory.NewStore()
	agg := NewInvoiceAggregator(failingInvoices{store.Invoices})

	_, err := agg.Summarize(context.Background(), testNow.Add(-1), testNow)
	assertAppError(t, err, http.StatusServiceUnavailable, apperror.ReasonDataUnavailable)
}
