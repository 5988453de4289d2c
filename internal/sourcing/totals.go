package sourcing

import (
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
)

// moneyScale is the precision every derived monetary field is rounded to.
const moneyScale = 2

// RecomputeTotals is the single authoritative derivation of an order's
// monetary fields from its full current item set. It mutates the per-item
// derived fields in place and, unless the order is frozen by a manual
// override, replaces TargetTotal, SourcedPrice, and Savings.
//
// Callers run this exactly once per mutating request, after all order and
// item changes, inside the surrounding write transaction.
func RecomputeTotals(order *models.SourcingOrder, items []models.SourcingItem) {
	targetTotal := decimal.Zero
	actualTotal := decimal.Zero

	for i := range items {
		item := &items[i]
		qty := decimal.NewFromInt(int64(item.QuantityNeeded))

		itemTarget := item.TargetCostPerUnit.Mul(qty)
		itemActual := item.SourcedPrice.Add(item.ShippingCharges).Add(item.Tax)

		item.ItemTargetTotal = itemTarget.RoundBank(moneyScale)
		item.SKUEfficiency = itemTarget.Sub(itemActual).RoundBank(moneyScale)

		targetTotal = targetTotal.Add(itemTarget)
		actualTotal = actualTotal.Add(itemActual.Mul(qty))
	}

	if order.IsManualOverride {
		return
	}

	order.TargetTotal = targetTotal.RoundBank(moneyScale)
	order.SourcedPrice = actualTotal.RoundBank(moneyScale)
	order.Savings = targetTotal.Sub(actualTotal).RoundBank(moneyScale)
}
