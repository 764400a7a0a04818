package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosingRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewClosingRepository()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	first := &entity.CashClosing{Date: day, ClosingCash: decimal.NewFromInt(100)}
	older := &entity.CashClosing{Date: day.AddDate(0, 0, -1)}
	second := &entity.CashClosing{Date: day, ClosingCash: decimal.NewFromInt(200)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, older.ID, list[2].ID)

	limited, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.ClosingCash.Equal(decimal.NewFromInt(100)))
	assert.False(t, got.CreatedAt.IsZero())

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClosingRepositoryCreateIfLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewClosingRepository()

	first := &entity.CashClosing{Date: time.Now()}
	require.NoError(t, repo.CreateIfLatest(ctx, first, nil))

	// Computed before first existed.
	err := repo.CreateIfLatest(ctx, &entity.CashClosing{Date: time.Now()}, nil)
	assert.ErrorIs(t, err, domainRepo.ErrStaleClosing)

	stale := uuid.New()
	err = repo.CreateIfLatest(ctx, &entity.CashClosing{Date: time.Now()}, &stale)
	assert.ErrorIs(t, err, domainRepo.ErrStaleClosing)

	require.NoError(t, repo.CreateIfLatest(ctx, &entity.CashClosing{Date: time.Now()}, &first.ID))

	list, _ := repo.ListRecent(ctx, 0)
	assert.Len(t, list, 2)
}

func TestClosingRepositoryDoesNotShareRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewClosingRepository()

	notes := "faltan 20"
	operator := uuid.New()
	closing := &entity.CashClosing{Date: time.Now(), Notes: &notes, OperatorID: &operator}
	require.NoError(t, repo.Create(ctx, closing))

	notes = "changed by caller"
	*closing.OperatorID = uuid.Nil

	got, err := repo.GetByID(ctx, closing.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "faltan 20", *got.Notes)
	assert.Equal(t, operator, *got.OperatorID)

	*got.Notes = "changed by reader"
	list, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "faltan 20", *list[0].Notes)

	*list[0].OperatorID = uuid.Nil
	again, err := repo.GetByID(ctx, closing.ID)
	require.NoError(t, err)
	assert.Equal(t, operator, *again.OperatorID)
}

func TestClosingRepositoryConcurrentCreateIfLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewClosingRepository()

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.CreateIfLatest(ctx, &entity.CashClosing{Date: time.Now()}, nil)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestInvoiceRepositoryRangeIsInclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(nil)
	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	for i, at := range []time.Time{start.Add(-time.Nanosecond), start, start.Add(12 * time.Hour), end, end.Add(time.Nanosecond)} {
		require.NoError(t, repo.Create(ctx, &entity.Invoice{
			Number:      "FAC-2024-00000" + string(rune('1'+i)),
			CreatedAt:   at,
			TotalAmount: decimal.NewFromInt(10),
			Items:       []entity.InvoiceItem{{Description: "x", Quantity: 1}},
		}))
	}

	got, err := repo.ListInRange(ctx, start, end)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, start, got[0].CreatedAt)
}

func TestInvoiceRepositoryRejectsDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(nil)
	require.NoError(t, repo.Create(ctx, &entity.Invoice{Number: "FAC-2024-000001"}))
	assert.Error(t, repo.Create(ctx, &entity.Invoice{Number: "FAC-2024-000001"}))
}

func TestInvoiceRepositoryCreateNumbered(t *testing.T) {
	ctx := context.Background()
	sequences := NewSequenceRepository()
	repo := NewInvoiceRepository(sequences)

	assign := func(ctx context.Context, seq domainRepo.FiscalSequenceRepository, inv *entity.Invoice) error {
		n, err := seq.Next(ctx, "FAC-2024")
		if err != nil {
			return err
		}
		inv.Number = fmt.Sprintf("FAC-2024-%06d", n)
		_, err = seq.Next(ctx, "E31")
		return err
	}

	first := &entity.Invoice{}
	require.NoError(t, repo.CreateNumbered(ctx, first, assign))
	assert.Equal(t, "FAC-2024-000001", first.Number)

	// Collides with the next number, so nothing may be consumed.
	require.NoError(t, repo.Create(ctx, &entity.Invoice{Number: "FAC-2024-000002"}))
	assert.Error(t, repo.CreateNumbered(ctx, &entity.Invoice{}, assign))

	refused := errors.New("no numbers today")
	err := repo.CreateNumbered(ctx, &entity.Invoice{}, func(ctx context.Context, seq domainRepo.FiscalSequenceRepository, inv *entity.Invoice) error {
		_, _ = seq.Next(ctx, "E31")
		return refused
	})
	assert.ErrorIs(t, err, refused)

	for series, want := range map[string]int64{"FAC-2024": 1, "E31": 1} {
		got, err := sequences.Current(ctx, series)
		require.NoError(t, err)
		assert.Equal(t, want, got, series)
	}
}

func TestInvoiceRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(nil)
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	methods := []enum.PaymentMethod{enum.PaymentMethodCash, enum.PaymentMethodCard, enum.PaymentMethodCash}
	for i, m := range methods {
		require.NoError(t, repo.Create(ctx, &entity.Invoice{
			Number:        uuid.NewString(),
			CustomerName:  "Cliente",
			PaymentMethod: m,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}))
	}

	cash := enum.PaymentMethodCash
	got, total, err := repo.List(ctx, &domainRepo.InvoiceFilterParams{
		Pagination:    &pagination.PaginationParams{Page: 1, PerPage: 1},
		PaymentMethod: &cash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 1)
	assert.Equal(t, base.Add(2*time.Hour), got[0].CreatedAt)
}

func TestSequenceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSequenceRepository()

	cur, _ := repo.Current(ctx, "E31")
	assert.Zero(t, cur)

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, "E31")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	other, _ := repo.Next(ctx, "FAC-2024")
	assert.Equal(t, int64(1), other)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository()
	user := uuid.New()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{Key: "k1", UserID: user, ResponseBody: "first", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{Key: "k1", UserID: user, ResponseBody: "second", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{Key: "k2", UserID: user, ExpiresAt: now.Add(-time.Minute)}))

	got, err := repo.Get(ctx, "k1", user)
	require.NoError(t, err)
	assert.Equal(t, "first", got.ResponseBody)

	other, err := repo.Get(ctx, "k1", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, other)

	n, err := repo.Purge(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepositoryUsernameIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "Admin"}))
	assert.Error(t, repo.Create(ctx, &entity.User{Username: "admin"}))

	u, err := repo.GetByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Admin", u.Username)
}
