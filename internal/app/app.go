// Package app wires repositories, services and handlers into a runnable API.
package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cashdesk-api/internal/application/service"
	"github.com/sangkips/cashdesk-api/internal/config"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/repository"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/routes"
	"github.com/sangkips/cashdesk-api/pkg/printer"
	"github.com/sangkips/cashdesk-api/pkg/utils"
	"gorm.io/gorm"
)

// Repositories is the storage the services run on.
type Repositories struct {
	Users        domainRepo.UserRepository
	ServiceTypes domainRepo.ServiceTypeRepository
	Services     domainRepo.ServiceRepository
	Customers    domainRepo.CustomerRepository
	Invoices     domainRepo.InvoiceRepository
	Closings     domainRepo.ClosingRepository
	Sequences    domainRepo.FiscalSequenceRepository
	Idempotency  domainRepo.IdempotencyRepository
}

// PostgresRepositories returns gorm-backed repositories.
func PostgresRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        repository.NewUserRepository(db),
		ServiceTypes: repository.NewServiceTypeRepository(db),
		Services:     repository.NewServiceRepository(db),
		Customers:    repository.NewCustomerRepository(db),
		Invoices:     repository.NewInvoiceRepository(db),
		Closings:     repository.NewClosingRepository(db),
		Sequences:    repository.NewFiscalSequenceRepository(db),
		Idempotency:  repository.NewIdempotencyRepository(db),
	}
}

// MemoryRepositories returns the repositories of an in-process store.
func MemoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Users:        store.Users,
		ServiceTypes: store.ServiceTypes,
		Services:     store.Services,
		Customers:    store.Customers,
		Invoices:     store.Invoices,
		Closings:     store.Closings,
		Sequences:    store.Sequences,
		Idempotency:  store.Idempotency,
	}
}

// Services are the application services built over one set of repositories.
type Services struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Catalog    *service.CatalogService
	Customers  *service.CustomerService
	Billing    *service.BillingService
	Aggregator *service.InvoiceAggregator
	Closings   *service.ClosingService
	Reports    *service.ReportService
	Printer    *service.PrinterService
}

// Options carries what is not read from configuration.
type Options struct {
	Location *time.Location
	Printer  printer.Printer
	Now      func() time.Time
}

// NewServices builds every service from cfg and repos.
func NewServices(cfg *config.Config, repos *Repositories, opts Options) *Services {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	header := entity.ReceiptHeader{
		Name:    cfg.Company.Name,
		TaxID:   cfg.Company.RNC,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	billing := service.NewBillingService(repos.Invoices, repos.Services, repos.Customers, service.BillingOptions{
		TaxRate:   cfg.Billing.TaxRate,
		NCFPrefix: cfg.Billing.NCFPrefix,
		Header:    header,
		Location:  opts.Location,
		Now:       opts.Now,
	})
	aggregator := service.NewInvoiceAggregator(repos.Invoices)
	closings := service.NewClosingService(aggregator, repos.Closings, service.ClosingOptions{
		Location:       opts.Location,
		HistoryDefault: cfg.Closing.HistoryDefault,
		HistoryMax:     cfg.Closing.HistoryMax,
		Now:            opts.Now,
	})

	p := opts.Printer
	if p == nil {
		p, _ = printer.New(printer.Config{Type: "none"})
	}

	return &Services{
		Auth:       service.NewAuthService(repos.Users, jwtManager),
		Users:      service.NewUserService(repos.Users),
		Catalog:    service.NewCatalogService(repos.ServiceTypes, repos.Services),
		Customers:  service.NewCustomerService(repos.Customers),
		Billing:    billing,
		Aggregator: aggregator,
		Closings:   closings,
		Reports:    service.NewReportService(closings, cfg.Company.Name),
		Printer:    service.NewPrinterService(p, billing, closings, header, cfg.Printer.Width),
	}
}

// Router builds the HTTP router over svc.
func Router(cfg *config.Config, repos *Repositories, svc *Services, limiter *middleware.OperatorRateLimiter) *gin.Engine {
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(svc.Auth),
		User:     handler.NewUserHandler(svc.Users),
		Catalog:  handler.NewCatalogHandler(svc.Catalog),
		Customer: handler.NewCustomerHandler(svc.Customers),
		Invoice:  handler.NewInvoiceHandler(svc.Billing, svc.Aggregator, svc.Printer, svc.Closings.Location()),
		Closing:  handler.NewClosingHandler(svc.Closings, svc.Reports, svc.Printer),
		Printer:  handler.NewPrinterHandler(svc.Printer),
	}
	return routes.Setup(handlers, &routes.Deps{
		Auth:            svc.Auth,
		Cfg:             cfg,
		IdempotencyRepo: repos.Idempotency,
		RateLimiter:     limiter,
	})
}
