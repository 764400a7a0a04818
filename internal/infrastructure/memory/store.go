// Package memory implements every repository in process memory. It backs
// tests and the DB_DRIVER=memory mode; nothing survives a restart.
package memory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
)

// Store bundles one instance of each repository.
type Store struct {
	Users        *UserRepository
	ServiceTypes *ServiceTypeRepository
	Services     *ServiceRepository
	Customers    *CustomerRepository
	Invoices     *InvoiceRepository
	Closings     *ClosingRepository
	Sequences    *SequenceRepository
	Idempotency  *IdempotencyRepository
}

// NewStore constructs an empty store.
func NewStore() *Store {
	sequences := NewSequenceRepository()
	return &Store{
		Users:        NewUserRepository(),
		ServiceTypes: NewServiceTypeRepository(),
		Services:     NewServiceRepository(),
		Customers:    NewCustomerRepository(),
		Invoices:     NewInvoiceRepository(sequences),
		Closings:     NewClosingRepository(),
		Sequences:    sequences,
		Idempotency:  NewIdempotencyRepository(),
	}
}

var (
	_ domainRepo.UserRepository           = (*UserRepository)(nil)
	_ domainRepo.ServiceTypeRepository    = (*ServiceTypeRepository)(nil)
	_ domainRepo.ServiceRepository        = (*ServiceRepository)(nil)
	_ domainRepo.CustomerRepository       = (*CustomerRepository)(nil)
	_ domainRepo.InvoiceRepository        = (*InvoiceRepository)(nil)
	_ domainRepo.ClosingRepository        = (*ClosingRepository)(nil)
	_ domainRepo.FiscalSequenceRepository = (*SequenceRepository)(nil)
	_ domainRepo.FiscalSequenceRepository = (*stagedSequences)(nil)
	_ domainRepo.IdempotencyRepository    = (*IdempotencyRepository)(nil)
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func page[T any](items []T, params *pagination.PaginationParams) []T {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()
	start, end := params.Window(len(items))
	return items[start:end]
}
