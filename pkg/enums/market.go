package enums

import "fmt"

// Market identifies the listing marketplace an order was sourced from.
type Market string

const (
	MarketMercari  Market = "Mercari"
	MarketEBay     Market = "eBay"
	MarketFacebook Market = "Facebook"
	MarketEtsy     Market = "Etsy"
)

var validMarkets = []Market{
	MarketMercari,
	MarketEBay,
	MarketFacebook,
	MarketEtsy,
}

// String implements fmt.Stringer.
func (m Market) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Market.
func (m Market) IsValid() bool {
	for _, candidate := range validMarkets {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMarket converts raw input into a Market.
func ParseMarket(value string) (Market, error) {
	for _, candidate := range validMarkets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid market %q", value)
}
