package enums

import "fmt"

// OrderStatus tracks a sourcing order through its fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusAssigned       OrderStatus = "Assigned"
	OrderStatusOffer          OrderStatus = "Offer"
	OrderStatusPurchased      OrderStatus = "Purchased"
	OrderStatusDisapproved    OrderStatus = "Disapproved"
	OrderStatusSold           OrderStatus = "Sold"
	OrderStatusHold           OrderStatus = "Hold"
	OrderStatusSellerRejected OrderStatus = "Seller Rejected"
	OrderStatusDropshipped    OrderStatus = "Dropshipped"
	OrderStatusReturned       OrderStatus = "Returned"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAssigned,
	OrderStatusOffer,
	OrderStatusPurchased,
	OrderStatusDisapproved,
	OrderStatusSold,
	OrderStatusHold,
	OrderStatusSellerRejected,
	OrderStatusDropshipped,
	OrderStatusReturned,
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusAssigned},
	OrderStatusAssigned: {
		OrderStatusOffer,
		OrderStatusPurchased,
		OrderStatusDropshipped,
		OrderStatusDisapproved,
		OrderStatusSellerRejected,
		OrderStatusHold,
		OrderStatusReturned,
		OrderStatusSold,
	},
	OrderStatusOffer: {
		OrderStatusPurchased,
		OrderStatusDropshipped,
		OrderStatusDisapproved,
		OrderStatusSellerRejected,
		OrderStatusHold,
		OrderStatusReturned,
		OrderStatusSold,
	},
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsFulfilled reports whether the order counts toward realized savings.
func (s OrderStatus) IsFulfilled() bool {
	return s == OrderStatusPurchased || s == OrderStatusDropshipped
}

// CanTransitionTo reports whether the lifecycle allows moving to the target status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, candidate := range orderStatusTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
