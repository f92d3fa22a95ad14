package service

import (
	"cmp"
	"slices"
	"sort"

	"wallet_view/internal/domain/entity"
	"wallet_view/internal/pkg/utils"
)

// classifyBalance returns the priority of b and, when b must not be displayed,
// the reason it is excluded.
func classifyBalance(b entity.WalletBalance, policy entity.PriorityPolicy) (int, entity.ExclusionReason, bool) {
	priority := policy.Priority(b.Blockchain)
	switch {
	case priority <= entity.ExcludeSentinel:
		return priority, entity.ExcludedUnknownBlockchain, false
	case !b.HasFiniteAmount():
		return priority, entity.ExcludedInvalidAmount, false
	case b.Amount <= 0:
		return priority, entity.ExcludedNonPositiveAmount, false
	}
	return priority, "", true
}

// FilterBalances returns the balances whose blockchain is ranked above
// entity.ExcludeSentinel and whose amount is finite and strictly positive.
// Input order is preserved and balances is not modified.
func FilterBalances(balances []entity.WalletBalance, policy entity.PriorityPolicy) []entity.WalletBalance {
	kept, _ := filterBalances(balances, policy)
	return kept
}

func filterBalances(balances []entity.WalletBalance, policy entity.PriorityPolicy) ([]entity.WalletBalance, map[entity.ExclusionReason]int) {
	kept := make([]entity.WalletBalance, 0, len(balances))
	excluded := make(map[entity.ExclusionReason]int)
	for _, b := range balances {
		if _, reason, ok := classifyBalance(b, policy); !ok {
			excluded[reason]++
			continue
		}
		kept = append(kept, b)
	}
	return kept, excluded
}

// SortBalances returns a new slice ordered by descending blockchain priority.
// Balances with equal priority keep their relative input order.
func SortBalances(balances []entity.WalletBalance, policy entity.PriorityPolicy) []entity.WalletBalance {
	type ranked struct {
		balance  entity.WalletBalance
		priority int
	}
	items := make([]ranked, len(balances))
	for i, b := range balances {
		items[i] = ranked{balance: b, priority: policy.Priority(b.Blockchain)}
	}
	slices.SortStableFunc(items, func(a, b ranked) int {
		return cmp.Compare(b.priority, a.priority)
	})

	sorted := make([]entity.WalletBalance, len(items))
	for i, item := range items {
		sorted[i] = item.balance
	}
	return sorted
}

// MaterializeRows derives one view model per balance, keeping order.
// A currency without a usable price, or whose value overflows a float64,
// gets USDValue 0 and PriceAvailable false.
func MaterializeRows(balances []entity.WalletBalance, prices entity.PriceTable) []entity.WalletRowViewModel {
	rows := make([]entity.WalletRowViewModel, 0, len(balances))
	for _, b := range balances {
		row := entity.WalletRowViewModel{
			Currency:        b.Currency,
			Blockchain:      b.Blockchain,
			Amount:          b.Amount,
			FormattedAmount: utils.FormatWholeAmount(b.Amount),
		}
		if price, ok := prices.Price(b.Currency); ok {
			if value, ok := utils.USDValue(price, b.Amount); ok {
				row.USDValue = value
				row.PriceAvailable = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildWalletRows runs filter, sort and materialize over one snapshot of
// balances and prices and summarises the outcome.
func BuildWalletRows(balances []entity.WalletBalance, prices entity.PriceTable, policy entity.PriorityPolicy) entity.WalletRows {
	kept, excluded := filterBalances(balances, policy)
	rows := MaterializeRows(SortBalances(kept, policy), prices)

	values := make([]float64, 0, len(rows))
	unpricedSet := make(map[string]struct{})
	for _, row := range rows {
		if !row.PriceAvailable {
			unpricedSet[row.Currency] = struct{}{}
			continue
		}
		values = append(values, row.USDValue)
	}
	unpriced := make([]string, 0, len(unpricedSet))
	for currency := range unpricedSet {
		unpriced = append(unpriced, currency)
	}
	sort.Strings(unpriced)

	total, ok := utils.SumUSD(values...)
	return entity.WalletRows{
		Rows:               rows,
		TotalUSDValue:      total,
		TotalUSDCapped:     !ok,
		Excluded:           excluded,
		UnpricedCurrencies: unpriced,
	}
}
