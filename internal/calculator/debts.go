package calculator

import "github.com/shopspring/decimal"

// CalculateDebtMatrix builds a gross pairwise ledger of raw expense-share
// obligations: matrix[debtorID][creditorID] is the cumulative amount debtorID
// owes creditorID across all expenses creditorID paid.
//
// The matrix is deliberately not netted: if A owes B for one expense and B
// owes A for another, both directed cells stay populated. Transfers are
// excluded. It backs the per-pair detail view; the netted settlement plan
// comes from CalculateSettlements instead.
//
// Self-shares (the payer's own slice of their expense) are skipped, as are
// shares naming members outside memberIDs.
func CalculateDebtMatrix(memberIDs []string, expenses []Expense) map[string]map[string]decimal.Decimal {
	matrix := make(map[string]map[string]decimal.Decimal, len(memberIDs))
	for _, id := range memberIDs {
		matrix[id] = make(map[string]decimal.Decimal)
	}

	for _, expense := range expenses {
		if expense.PayerID == "" {
			continue
		}
		for _, share := range expense.Shares {
			if share.MemberID == "" || share.MemberID == expense.PayerID {
				continue
			}
			row, ok := matrix[share.MemberID]
			if !ok {
				continue
			}
			if owed, ok := row[expense.PayerID]; ok {
				row[expense.PayerID] = owed.Add(share.ShareAmount)
			} else {
				row[expense.PayerID] = share.ShareAmount
			}
		}
	}

	return matrix
}
