package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
)

const recentRequestsLimit = 5

// csvHeader is the fixed column order of the dashboard export.
var csvHeader = []string{
	"SourcingID", "CreatedAt", "AssignedAt",
	"ProductName", "SKU", "Market",
	"Category", "Status", "TotalActualCost",
}

// Service defines the behavior needed by the reports controller.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	SourcerStats(ctx context.Context, sourcerID uuid.UUID) (*SourcerStats, error)
	PurchaserStats(ctx context.Context, purchaserID uuid.UUID) (*PurchaserStats, error)
}

type service struct {
	repo Repository
}

// NewService constructs a reports service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.repo.ListOrdersWithItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	targets, err := s.targetCosts(ctx, orders)
	if err != nil {
		return nil, err
	}

	userIDs := map[uuid.UUID]struct{}{}
	for i := range orders {
		userIDs[orders[i].SourcerID] = struct{}{}
		if orders[i].PurchaserID != nil {
			userIDs[*orders[i].PurchaserID] = struct{}{}
		}
	}
	emails, err := s.repo.EmailsByUserID(ctx, keys(userIDs))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve user emails")
	}

	savingsBySourcer := map[uuid.UUID]decimal.Decimal{}
	ordersBySourcer := map[uuid.UUID]int64{}
	ordersByPurchaser := map[uuid.UUID]int64{}
	companySavings := decimal.Zero
	var responseTotal time.Duration
	var responseCount int64

	for i := range orders {
		order := &orders[i]
		ordersBySourcer[order.SourcerID]++
		if order.PurchaserID != nil {
			ordersByPurchaser[*order.PurchaserID]++
		}
		if order.AssignedAt != nil {
			responseTotal += order.AssignedAt.Sub(order.CreatedAt)
			responseCount++
		}
		if !order.Status.IsFulfilled() {
			continue
		}
		savings := orderSavings(order, targets)
		savingsBySourcer[order.SourcerID] = savingsBySourcer[order.SourcerID].Add(savings)
		companySavings = companySavings.Add(savings)
	}

	stats := &DashboardStats{
		TotalCompanySavings:  companySavings.RoundBank(2),
		PerformanceBySourcer: make([]SourcerPerformance, 0, len(savingsBySourcer)),
		OrdersPerSourcer:     make([]CountByUser, 0, len(ordersBySourcer)),
		OrdersPerPurchaser:   make([]CountByUser, 0, len(ordersByPurchaser)),
	}
	for id, savings := range savingsBySourcer {
		stats.PerformanceBySourcer = append(stats.PerformanceBySourcer, SourcerPerformance{
			SourcerEmail: emails[id],
			TotalSavings: savings.RoundBank(2),
		})
	}
	for id, count := range ordersBySourcer {
		stats.OrdersPerSourcer = append(stats.OrdersPerSourcer, CountByUser{UserEmail: emails[id], Count: count})
	}
	for id, count := range ordersByPurchaser {
		stats.OrdersPerPurchaser = append(stats.OrdersPerPurchaser, CountByUser{UserEmail: emails[id], Count: count})
	}
	sort.Slice(stats.PerformanceBySourcer, func(i, j int) bool {
		return stats.PerformanceBySourcer[i].SourcerEmail < stats.PerformanceBySourcer[j].SourcerEmail
	})
	sort.Slice(stats.OrdersPerSourcer, func(i, j int) bool {
		return stats.OrdersPerSourcer[i].UserEmail < stats.OrdersPerSourcer[j].UserEmail
	})
	sort.Slice(stats.OrdersPerPurchaser, func(i, j int) bool {
		return stats.OrdersPerPurchaser[i].UserEmail < stats.OrdersPerPurchaser[j].UserEmail
	})

	if responseCount > 0 {
		hours := responseTotal.Hours() / float64(responseCount)
		stats.AvgResponseTimeHours = &hours
	}
	return stats, nil
}

// ExportCSV streams one row per order item, flattened with its parent order.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	orders, err := s.repo.ListOrdersWithItems(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for i := range orders {
		order := &orders[i]
		actual := order.SellersPrice.Add(order.ShippingPrice).Add(order.Tax)
		market := ""
		if order.Market != nil {
			market = string(*order.Market)
		}
		assignedAt := ""
		if order.AssignedAt != nil {
			assignedAt = order.AssignedAt.Format(time.RFC3339)
		}
		for _, item := range order.Items {
			record := []string{
				order.ID.String(),
				order.CreatedAt.Format(time.RFC3339),
				assignedAt,
				item.ProductName,
				item.SKU,
				market,
				item.Category,
				string(order.Status),
				actual.StringFixed(2),
			}
			if err := writer.Write(record); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

func (s *service) SourcerStats(ctx context.Context, sourcerID uuid.UUID) (*SourcerStats, error) {
	orders, err := s.repo.ListSourcerOrders(ctx, sourcerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sourcer orders")
	}
	targets, err := s.targetCosts(ctx, orders)
	if err != nil {
		return nil, err
	}

	stats := &SourcerStats{
		TotalRequestsCreated: len(orders),
		TotalSavings:         decimal.Zero,
		RecentRequests:       []RequestSummary{},
		AllRequests:          make([]RequestSummary, 0, len(orders)),
	}
	for i := range orders {
		order := &orders[i]
		switch order.Status {
		case enums.OrderStatusPending:
			stats.RequestsPending++
		case enums.OrderStatusAssigned:
			stats.RequestsAssigned++
		}

		summary := RequestSummary{
			ID:           order.ID,
			Status:       order.Status,
			CreatedAt:    order.CreatedAt,
			ProductNames: productNames(order.Items),
		}
		if order.Status.IsFulfilled() {
			stats.RequestsPurchased++
			savings := orderSavings(order, targets).RoundBank(2)
			stats.TotalSavings = stats.TotalSavings.Add(savings)
			summary.Savings = &savings
		}
		stats.AllRequests = append(stats.AllRequests, summary)
	}
	stats.TotalSavings = stats.TotalSavings.RoundBank(2)

	// ListSourcerOrders returns newest first, so recent is a prefix.
	if len(stats.AllRequests) > recentRequestsLimit {
		stats.RecentRequests = stats.AllRequests[:recentRequestsLimit]
	} else {
		stats.RecentRequests = stats.AllRequests
	}
	return stats, nil
}

func (s *service) PurchaserStats(ctx context.Context, purchaserID uuid.UUID) (*PurchaserStats, error) {
	assigned, err := s.repo.CountByPurchaser(ctx, purchaserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count assigned orders")
	}
	awaiting, err := s.repo.CountByPurchaserTracking(ctx, purchaserID, enums.TrackingStatusAwaiting)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count awaiting tracking")
	}
	purchased, err := s.repo.CountByPurchaserStatus(ctx, purchaserID, enums.OrderStatusPurchased)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count purchased orders")
	}
	return &PurchaserStats{
		RequestsAssigned: assigned,
		AwaitingTracking: awaiting,
		ItemsPurchased:   purchased,
	}, nil
}

// targetCosts resolves catalog target costs for every SKU referenced by the
// given orders. SKUs absent from the catalog contribute zero.
func (s *service) targetCosts(ctx context.Context, orders []models.SourcingOrder) (map[string]decimal.Decimal, error) {
	seen := map[string]struct{}{}
	skus := []string{}
	for i := range orders {
		for _, item := range orders[i].Items {
			if _, ok := seen[item.SKU]; ok {
				continue
			}
			seen[item.SKU] = struct{}{}
			skus = append(skus, item.SKU)
		}
	}
	targets, err := s.repo.TargetCostsBySKU(ctx, skus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve target costs")
	}
	return targets, nil
}

// orderSavings is catalog target total minus order-level actual cost. The
// actual side uses the order header components, not the per-item costs.
func orderSavings(order *models.SourcingOrder, targets map[string]decimal.Decimal) decimal.Decimal {
	target := decimal.Zero
	for _, item := range order.Items {
		unit, ok := targets[item.SKU]
		if !ok {
			continue
		}
		target = target.Add(unit.Mul(decimal.NewFromInt(int64(item.QuantityNeeded))))
	}
	actual := order.SellersPrice.Add(order.ShippingPrice).Add(order.Tax)
	return target.Sub(actual)
}

func productNames(items []models.SourcingItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.ProductName)
	}
	return names
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
