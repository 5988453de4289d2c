package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroventures/sourcehub-backend/internal/auth"
	"github.com/retroventures/sourcehub-backend/internal/products"
	"github.com/retroventures/sourcehub-backend/internal/reports"
	"github.com/retroventures/sourcehub-backend/internal/sourcing"
	"github.com/retroventures/sourcehub-backend/internal/users"
	pkgauth "github.com/retroventures/sourcehub-backend/pkg/auth"
	"github.com/retroventures/sourcehub-backend/pkg/config"
	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

type stubUsersService struct{}

func (stubUsersService) Create(ctx context.Context, input users.CreateUserInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}
func (stubUsersService) Get(ctx context.Context, id uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: id}, nil
}
func (stubUsersService) List(ctx context.Context, params pagination.Params) ([]users.UserDTO, error) {
	return []users.UserDTO{}, nil
}
func (stubUsersService) Update(ctx context.Context, id uuid.UUID, input users.UpdateUserInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: id}, nil
}
func (stubUsersService) Delete(ctx context.Context, actorID, id uuid.UUID) error { return nil }

type stubProductsService struct{}

func (stubProductsService) Create(ctx context.Context, input products.CreateProductInput) (*models.MasterProduct, error) {
	return &models.MasterProduct{ID: uuid.New()}, nil
}
func (stubProductsService) Get(ctx context.Context, id uuid.UUID) (*models.MasterProduct, error) {
	return &models.MasterProduct{ID: id}, nil
}
func (stubProductsService) List(ctx context.Context, params pagination.Params, filters products.ListFilters) ([]models.MasterProduct, error) {
	return []models.MasterProduct{}, nil
}
func (stubProductsService) Update(ctx context.Context, id uuid.UUID, input products.UpdateProductInput) (*models.MasterProduct, error) {
	return &models.MasterProduct{ID: id}, nil
}
func (stubProductsService) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (stubProductsService) ImportRow(ctx context.Context, input products.CreateProductInput) (*models.MasterProduct, error) {
	return &models.MasterProduct{ID: uuid.New()}, nil
}

type stubSourcingService struct{}

func (stubSourcingService) CreateOrder(ctx context.Context, input sourcing.CreateOrderInput) (*models.SourcingOrder, error) {
	return &models.SourcingOrder{ID: uuid.New()}, nil
}
func (stubSourcingService) GetOrder(ctx context.Context, orderID uuid.UUID, actor sourcing.Actor) (*models.SourcingOrder, error) {
	return &models.SourcingOrder{ID: orderID}, nil
}
func (stubSourcingService) ListPending(ctx context.Context, params pagination.Params) ([]models.SourcingOrder, error) {
	return []models.SourcingOrder{}, nil
}
func (stubSourcingService) ListAssigned(ctx context.Context, actor sourcing.Actor, params pagination.Params, filters sourcing.AssignedFilters) ([]models.SourcingOrder, error) {
	return []models.SourcingOrder{}, nil
}
func (stubSourcingService) AssignOrder(ctx context.Context, orderID uuid.UUID, actor sourcing.Actor) (*models.SourcingOrder, error) {
	return &models.SourcingOrder{ID: orderID}, nil
}
func (stubSourcingService) UpdateOrder(ctx context.Context, orderID uuid.UUID, input sourcing.UpdateOrderInput) (*models.SourcingOrder, error) {
	return &models.SourcingOrder{ID: orderID}, nil
}
func (stubSourcingService) FreezeTotals(ctx context.Context, orderID uuid.UUID, input sourcing.FreezeTotalsInput) (*models.SourcingOrder, error) {
	return &models.SourcingOrder{ID: orderID}, nil
}
func (stubSourcingService) UnfreezeTotals(ctx context.Context, orderID uuid.UUID, actor sourcing.Actor) (*models.SourcingOrder, error) {
	return &models.SourcingOrder{ID: orderID}, nil
}
func (stubSourcingService) AddItem(ctx context.Context, orderID uuid.UUID, actor sourcing.Actor, spec sourcing.ItemSpec) (*models.SourcingItem, error) {
	return &models.SourcingItem{ID: uuid.New()}, nil
}
func (stubSourcingService) PatchItem(ctx context.Context, itemID uuid.UUID, input sourcing.PatchItemInput) (*models.SourcingItem, error) {
	return &models.SourcingItem{ID: itemID}, nil
}
func (stubSourcingService) DeleteItem(ctx context.Context, itemID uuid.UUID, actor sourcing.Actor) error {
	return nil
}

type stubReportsService struct{}

func (stubReportsService) Dashboard(ctx context.Context) (*reports.DashboardStats, error) {
	return &reports.DashboardStats{}, nil
}
func (stubReportsService) ExportCSV(ctx context.Context, w io.Writer) error { return nil }
func (stubReportsService) SourcerStats(ctx context.Context, sourcerID uuid.UUID) (*reports.SourcerStats, error) {
	return &reports.SourcerStats{}, nil
}
func (stubReportsService) PurchaserStats(ctx context.Context, purchaserID uuid.UUID) (*reports.PurchaserStats, error) {
	return &reports.PurchaserStats{}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "sourcehub-test",
			ExpirationMinutes: 15,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:          testRouterConfig(),
		DB:              stubPinger{},
		AuthService:     stubAuthService{},
		UsersService:    stubUsersService{},
		ProductsService: stubProductsService{},
		SourcingService: stubSourcingService{},
		ReportsService:  stubReportsService{},
	})
}

func bearerFor(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, _, err := pkgauth.MintAccessToken(cfg.JWT, pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	}, time.Now())
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_HealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "live", payload.Data["status"])
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_PolicyGatesByRole(t *testing.T) {
	router := newTestRouter(t)
	cfg := testRouterConfig()

	cases := []struct {
		name   string
		method string
		path   string
		role   enums.UserRole
		want   int
	}{
		{"sourcer lists pending orders", http.MethodGet, "/api/v1/sourcing/pending", enums.UserRoleSourcer, http.StatusOK},
		{"sourcer cannot list users", http.MethodGet, "/api/v1/users/", enums.UserRoleSourcer, http.StatusForbidden},
		{"manager views dashboard", http.MethodGet, "/api/v1/reports/dashboard", enums.UserRoleManager, http.StatusOK},
		{"purchaser denied dashboard", http.MethodGet, "/api/v1/reports/dashboard", enums.UserRolePurchaser, http.StatusForbidden},
		{"purchaser reads own stats", http.MethodGet, "/api/v1/reports/purchaser/me", enums.UserRolePurchaser, http.StatusOK},
		{"admin lists products", http.MethodGet, "/api/v1/products/", enums.UserRoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", bearerFor(t, cfg, tc.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRouter_MeReturnsAuthenticatedUser(t *testing.T) {
	router := newTestRouter(t)
	cfg := testRouterConfig()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, enums.UserRoleSourcer))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
