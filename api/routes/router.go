package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retroventures/sourcehub-backend/api/controllers"
	"github.com/retroventures/sourcehub-backend/api/middleware"
	"github.com/retroventures/sourcehub-backend/internal/auth"
	"github.com/retroventures/sourcehub-backend/internal/products"
	"github.com/retroventures/sourcehub-backend/internal/reports"
	"github.com/retroventures/sourcehub-backend/internal/sourcing"
	"github.com/retroventures/sourcehub-backend/internal/users"
	"github.com/retroventures/sourcehub-backend/pkg/config"
	"github.com/retroventures/sourcehub-backend/pkg/db"
	"github.com/retroventures/sourcehub-backend/pkg/logger"
	"github.com/retroventures/sourcehub-backend/pkg/metrics"
	"github.com/retroventures/sourcehub-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics

	// MetricsHandler serves the Prometheus scrape endpoint.
	MetricsHandler http.Handler

	AuthService     auth.Service
	UsersService    users.Service
	ProductsService products.Service
	SourcingService sourcing.Service
	ReportsService  reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.Metrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, logg)).
			Get("/me", controllers.AuthMe(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequirePolicy(middleware.ResourceUsers, middleware.ActionRead, logg)).
				Get("/", controllers.ListUsers(deps.UsersService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceUsers, middleware.ActionCreate, logg)).
				Post("/", controllers.CreateUser(deps.UsersService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceUsers, middleware.ActionRead, logg)).
				Get("/{id}", controllers.GetUser(deps.UsersService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceUsers, middleware.ActionUpdate, logg)).
				Patch("/{id}", controllers.UpdateUser(deps.UsersService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceUsers, middleware.ActionDelete, logg)).
				Delete("/{id}", controllers.DeleteUser(deps.UsersService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.With(middleware.RequirePolicy(middleware.ResourceProducts, middleware.ActionRead, logg)).
				Get("/", controllers.ListProducts(deps.ProductsService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceProducts, middleware.ActionCreate, logg)).
				Post("/", controllers.CreateProduct(deps.ProductsService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceProducts, middleware.ActionRead, logg)).
				Get("/{id}", controllers.GetProduct(deps.ProductsService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceProducts, middleware.ActionUpdate, logg)).
				Patch("/{id}", controllers.UpdateProduct(deps.ProductsService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceProducts, middleware.ActionDelete, logg)).
				Delete("/{id}", controllers.DeleteProduct(deps.ProductsService, logg))
		})

		r.Route("/sourcing", func(r chi.Router) {
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionCreate, logg)).
				Post("/", controllers.CreateSourcingOrder(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionRead, logg)).
				Get("/pending", controllers.ListPendingSourcingOrders(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionRead, logg)).
				Get("/assigned", controllers.ListAssignedSourcingOrders(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionRead, logg)).
				Get("/{id}", controllers.GetSourcingOrder(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionAssign, logg)).
				Post("/{id}/assign", controllers.AssignSourcingOrder(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionUpdate, logg)).
				Patch("/{id}", controllers.UpdateSourcingOrder(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionOverride, logg)).
				Post("/{id}/freeze-totals", controllers.FreezeSourcingTotals(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionOverride, logg)).
				Post("/{id}/unfreeze-totals", controllers.UnfreezeSourcingTotals(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionUpdate, logg)).
				Post("/{id}/items", controllers.AddSourcingItem(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionUpdate, logg)).
				Patch("/items/{itemID}", controllers.PatchSourcingItem(deps.SourcingService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceSourcing, middleware.ActionDelete, logg)).
				Delete("/items/{itemID}", controllers.DeleteSourcingItem(deps.SourcingService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.With(middleware.RequirePolicy(middleware.ResourceReports, middleware.ActionDashboard, logg)).
				Get("/dashboard", controllers.DashboardReport(deps.ReportsService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceReports, middleware.ActionExport, logg)).
				Get("/dashboard/export", controllers.ExportDashboardReport(deps.ReportsService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceReports, middleware.ActionSourcerStats, logg)).
				Get("/sourcer/me", controllers.SourcerReport(deps.ReportsService, logg))
			r.With(middleware.RequirePolicy(middleware.ResourceReports, middleware.ActionPurchaserStats, logg)).
				Get("/purchaser/me", controllers.PurchaserReport(deps.ReportsService, logg))
		})
	})

	return r
}
