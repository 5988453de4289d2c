package enums

import "fmt"

// ProductCondition grades the physical state of a sourced item.
type ProductCondition string

const (
	ProductConditionExcellent    ProductCondition = "Excellent"
	ProductConditionRefurbished  ProductCondition = "Refurbished"
	ProductConditionAcceptable   ProductCondition = "Acceptable"
	ProductConditionScratched    ProductCondition = "Scratched"
	ProductConditionUnacceptable ProductCondition = "Unacceptable"
)

var validProductConditions = []ProductCondition{
	ProductConditionExcellent,
	ProductConditionRefurbished,
	ProductConditionAcceptable,
	ProductConditionScratched,
	ProductConditionUnacceptable,
}

// String implements fmt.Stringer.
func (p ProductCondition) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCondition.
func (p ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCondition converts raw input into a ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}
