package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

// SourcerPerformance is realized savings attributed to one sourcer.
type SourcerPerformance struct {
	SourcerEmail string          `json:"sourcer_email"`
	TotalSavings decimal.Decimal `json:"total_savings"`
}

// CountByUser pairs a user with how many orders reference them.
type CountByUser struct {
	UserEmail string `json:"user_email"`
	Count     int64  `json:"count"`
}

// DashboardStats is the manager/admin company-wide view.
type DashboardStats struct {
	TotalCompanySavings  decimal.Decimal      `json:"total_company_savings"`
	PerformanceBySourcer []SourcerPerformance `json:"performance_by_sourcer"`
	OrdersPerSourcer     []CountByUser        `json:"sourcing_ids_per_sourcer"`
	OrdersPerPurchaser   []CountByUser        `json:"sourcing_ids_per_purchaser"`
	AvgResponseTimeHours *float64             `json:"avg_response_time_hours,omitempty"`
}

// RequestSummary is a compact order view for the sourcer dashboard. Savings is
// only populated once the order is fulfilled.
type RequestSummary struct {
	ID           uuid.UUID         `json:"id"`
	Status       enums.OrderStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	ProductNames []string          `json:"product_names"`
	Savings      *decimal.Decimal  `json:"savings,omitempty"`
}

// SourcerStats is the per-sourcer self-service dashboard.
type SourcerStats struct {
	TotalRequestsCreated int              `json:"total_requests_created"`
	TotalSavings         decimal.Decimal  `json:"total_savings"`
	RequestsPending      int              `json:"requests_pending"`
	RequestsAssigned     int              `json:"requests_assigned"`
	RequestsPurchased    int              `json:"requests_purchased"`
	RecentRequests       []RequestSummary `json:"recent_requests"`
	AllRequests          []RequestSummary `json:"all_requests"`
}

// PurchaserStats is the per-purchaser self-service dashboard.
type PurchaserStats struct {
	RequestsAssigned int64 `json:"requests_assigned"`
	AwaitingTracking int64 `json:"awaiting_tracking"`
	ItemsPurchased   int64 `json:"items_purchased"`
}
