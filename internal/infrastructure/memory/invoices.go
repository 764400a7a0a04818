package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
)

// InvoiceRepository is an in-memory, append-only invoice repository.
type InvoiceRepository struct {
	mu        sync.RWMutex
	data      map[uuid.UUID]entity.Invoice
	byNumber  map[string]uuid.UUID
	sequences *SequenceRepository
}

// NewInvoiceRepository constructs a repository drawing numbers from
// sequences, or from a private sequence set when it is nil.
func NewInvoiceRepository(sequences *SequenceRepository) *InvoiceRepository {
	if sequences == nil {
		sequences = NewSequenceRepository()
	}
	return &InvoiceRepository{
		data:      make(map[uuid.UUID]entity.Invoice),
		byNumber:  make(map[string]uuid.UUID),
		sequences: sequences,
	}
}

func (r *InvoiceRepository) CreateNumbered(ctx context.Context, invoice *entity.Invoice, assign domainRepo.NumberAssigner) error {
	r.sequences.mu.Lock()
	defer r.sequences.mu.Unlock()

	staged := &stagedSequences{parent: r.sequences, pending: make(map[string]int64)}
	if err := assign(ctx, staged, invoice); err != nil {
		return err
	}
	if err := r.Create(ctx, invoice); err != nil {
		return err
	}
	staged.commit()
	return nil
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byNumber[invoice.Number]; taken && invoice.Number != "" {
		return apperror.NewConflictError("invoice number already issued")
	}
	ensureID(&invoice.ID)
	stamp(&invoice.CreatedAt)
	for i := range invoice.Items {
		ensureID(&invoice.Items[i].ID)
		invoice.Items[i].InvoiceID = invoice.ID
	}
	r.data[invoice.ID] = cloneInvoice(*invoice)
	r.byNumber[invoice.Number] = invoice.ID
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

func (r *InvoiceRepository) ListInRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	_ = ctx
	r.mu.RLock()
	out := make([]entity.Invoice, 0)
	for _, inv := range r.data {
		if inv.CreatedAt.Before(start) || inv.CreatedAt.After(end) {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	_ = ctx
	r.mu.RLock()
	matched := make([]entity.Invoice, 0, len(r.data))
	for _, inv := range r.data {
		if !containsFold(filter.Search, inv.Number, deref(inv.FiscalNumber), inv.CustomerName, inv.CustomerRNC) {
			continue
		}
		if filter.PaymentMethod != nil && inv.PaymentMethod != *filter.PaymentMethod {
			continue
		}
		if filter.CustomerID != nil && (inv.CustomerID == nil || *inv.CustomerID != *filter.CustomerID) {
			continue
		}
		if filter.StartDate != nil && inv.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && inv.CreatedAt.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, cloneInvoice(inv))
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return page(matched, filter.Pagination), int64(len(matched)), nil
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	if inv.Items != nil {
		items := make([]entity.InvoiceItem, len(inv.Items))
		copy(items, inv.Items)
		inv.Items = items
	}
	return inv
}
