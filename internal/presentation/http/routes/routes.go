package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/cashdesk-api/internal/config"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
	Invoice  *handler.InvoiceHandler
	Closing  *handler.ClosingHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Auth            middleware.Authenticator
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is built from Cfg.RateLimit when nil.
	RateLimiter *middleware.OperatorRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Auth))

		limiter := deps.RateLimiter
		if limiter == nil {
			limiter = middleware.NewOperatorRateLimiter(
				middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration))
		}
		protected.Use(limiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.Profile)

	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
	})

	registerCatalogRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerInvoiceRoutes(protected, h, idempotent)
	registerClosingRoutes(protected, h, idempotent)
	registerUserRoutes(protected, h)

	protected.GET("/printer/status", middleware.RequirePermission(enum.PermPrint), h.Printer.Status)
}

func registerCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	view := middleware.RequirePermission(enum.PermViewCatalog)
	manage := middleware.RequirePermission(enum.PermManageCatalog)

	types := rg.Group("/service-types")
	{
		types.GET("", view, h.Catalog.ListTypes)
		types.POST("", manage, h.Catalog.CreateType)
		types.GET("/:id", view, h.Catalog.GetType)
		types.PUT("/:id", manage, h.Catalog.UpdateType)
		types.DELETE("/:id", manage, h.Catalog.DeleteType)
	}

	services := rg.Group("/services")
	{
		services.GET("", view, h.Catalog.ListServices)
		services.POST("", manage, h.Catalog.CreateService)
		services.GET("/:id", view, h.Catalog.GetService)
		services.PUT("/:id", manage, h.Catalog.UpdateService)
		services.DELETE("/:id", manage, h.Catalog.DeleteService)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	customers.Use(middleware.RequirePermission(enum.PermManageCustomers))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	view := middleware.RequirePermission(enum.PermViewInvoices)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", view, h.Invoice.List)
		invoices.POST("", middleware.RequirePermission(enum.PermCreateInvoices), idempotent, h.Invoice.Create)
		invoices.GET("/summary", view, h.Invoice.Summary)
		invoices.GET("/:id", view, h.Invoice.Get)
		invoices.GET("/:id/receipt", view, h.Invoice.Receipt)
		invoices.POST("/:id/print", middleware.RequirePermission(enum.PermPrint), h.Invoice.Print)
	}
}

func registerClosingRoutes(rg *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	view := middleware.RequirePermission(enum.PermViewClosings)

	closings := rg.Group("/closings")
	{
		closings.GET("", view, h.Closing.List)
		closings.POST("", middleware.RequirePermission(enum.PermCreateClosings), idempotent, h.Closing.Create)
		closings.GET("/preview", view, h.Closing.Preview)
		closings.GET("/report.xlsx", view, h.Closing.Report)
		closings.GET("/:id", view, h.Closing.Get)
		closings.POST("/:id/print", middleware.RequirePermission(enum.PermPrint), h.Closing.Print)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	users := rg.Group("/users")
	users.Use(middleware.RequirePermission(enum.PermManageUsers))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
