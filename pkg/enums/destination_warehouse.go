package enums

import "fmt"

// DestinationWarehouse names where a purchased order ships to.
type DestinationWarehouse string

const (
	WarehouseFleetwood DestinationWarehouse = "Fleetwood"
	WarehouseLahore    DestinationWarehouse = "Lahore"
	WarehouseOsaka     DestinationWarehouse = "Osaka"
	WarehouseQuebec    DestinationWarehouse = "Quebec"
	WarehouseSharjah   DestinationWarehouse = "Sharjah"
	WarehouseCustomer  DestinationWarehouse = "Customer"
)

var validDestinationWarehouses = []DestinationWarehouse{
	WarehouseFleetwood,
	WarehouseLahore,
	WarehouseOsaka,
	WarehouseQuebec,
	WarehouseSharjah,
	WarehouseCustomer,
}

// String implements fmt.Stringer.
func (d DestinationWarehouse) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DestinationWarehouse.
func (d DestinationWarehouse) IsValid() bool {
	for _, candidate := range validDestinationWarehouses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDestinationWarehouse converts raw input into a DestinationWarehouse.
func ParseDestinationWarehouse(value string) (DestinationWarehouse, error) {
	for _, candidate := range validDestinationWarehouses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid destination warehouse %q", value)
}
