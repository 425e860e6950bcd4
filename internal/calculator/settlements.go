package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Settlement is one suggested payment. It carries member ids alongside the
// display names so consumers can disambiguate members who share a name.
type Settlement struct {
	FromMemberID string
	FromName     string
	ToMemberID   string
	ToName       string
	Amount       decimal.Decimal // positive, rounded to 2 decimal places
}

// party is locally-owned working state for the greedy matcher. Copying the
// balances into parties keeps the matcher's decrements from ever touching
// caller-visible data.
type party struct {
	id     string
	name   string
	amount decimal.Decimal
}

// CalculateSettlements greedily matches net creditors against net debtors and
// returns the minimal list of payments that zeroes every balance. Balances
// within epsilon of zero are already settled and excluded.
//
// Largest-remaining-first matching with a two-pointer walk yields at most
// creditors+debtors-1 transactions, which is optimal for unconstrained debt
// netting. Both sorts are stable with input order as the tie-break, so the
// plan is deterministic.
//
// The second return value is the residual left unmatched when total credit
// and total debt disagree beyond rounding. A closed set of expenses and
// transfers over one membership always nets to zero, so a residual above
// epsilon signals inconsistent input; callers should surface it rather than
// trust the truncated plan silently.
func CalculateSettlements(balances []MemberBalance) ([]Settlement, decimal.Decimal) {
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Balance.GreaterThan(epsilon):
			creditors = append(creditors, party{id: b.MemberID, name: b.MemberName, amount: b.Balance})
		case b.Balance.LessThan(epsilon.Neg()):
			debtors = append(debtors, party{id: b.MemberID, name: b.MemberName, amount: b.Balance.Neg()})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].amount.GreaterThan(creditors[j].amount)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].amount.GreaterThan(debtors[j].amount)
	})

	var settlements []Settlement
	i, j := 0, 0

	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := decimal.Min(creditor.amount, debtor.amount)

		if amount.GreaterThan(epsilon) {
			settlements = append(settlements, Settlement{
				FromMemberID: debtor.id,
				FromName:     debtor.name,
				ToMemberID:   creditor.id,
				ToName:       creditor.name,
				Amount:       amount.Round(2),
			})
		}

		creditor.amount = creditor.amount.Sub(amount)
		debtor.amount = debtor.amount.Sub(amount)

		// Both may advance in one step when the match exhausts both sides.
		if creditor.amount.LessThan(epsilon) {
			i++
		}
		if debtor.amount.LessThan(epsilon) {
			j++
		}
	}

	residual := decimal.Zero
	for ; i < len(creditors); i++ {
		residual = residual.Add(creditors[i].amount)
	}
	for ; j < len(debtors); j++ {
		residual = residual.Add(debtors[j].amount)
	}

	return settlements, residual
}
