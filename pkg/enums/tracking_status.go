package enums

import "fmt"

// TrackingStatus follows a shipment from purchase to inventory intake.
type TrackingStatus string

const (
	TrackingStatusAwaiting  TrackingStatus = "Awaiting"
	TrackingStatusInTransit TrackingStatus = "In Transit"
	TrackingStatusReceived  TrackingStatus = "Received"
	TrackingStatusQC        TrackingStatus = "QC"
	TrackingStatusInventory TrackingStatus = "Inventory"
)

var validTrackingStatuses = []TrackingStatus{
	TrackingStatusAwaiting,
	TrackingStatusInTransit,
	TrackingStatusReceived,
	TrackingStatusQC,
	TrackingStatusInventory,
}

// String implements fmt.Stringer.
func (t TrackingStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TrackingStatus.
func (t TrackingStatus) IsValid() bool {
	for _, candidate := range validTrackingStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTrackingStatus converts raw input into a TrackingStatus.
func ParseTrackingStatus(value string) (TrackingStatus, error) {
	for _, candidate := range validTrackingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tracking status %q", value)
}
