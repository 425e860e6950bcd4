// Package calculator computes trip balances, pairwise debts, and settlement
// suggestions. It is purely functional: inputs are never mutated, no I/O is
// performed, and identical input always produces identical output, so it is
// safe to call concurrently with per-request snapshots.
//
// All amounts are decimal.Decimal; anything within 0.01 of zero is treated as
// settled to absorb cent-level rounding noise.
package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// epsilon is the cent-level threshold below which a balance counts as zero.
var epsilon = decimal.NewFromFloat(0.01)

// Member identifies one trip participant for balance calculations.
// Name is the resolved display name (user name, else email).
type Member struct {
	ID   string
	Name string
}

// Share is one member's slice of an expense.
type Share struct {
	MemberID    string
	ShareAmount decimal.Decimal
}

// Expense is a paid bill with its per-member shares. Callers must resolve the
// payer to a single canonical member id before invoking the calculator.
type Expense struct {
	Amount  decimal.Decimal
	PayerID string
	Shares  []Share
}

// Transfer is a direct payment between two members, settled outside the
// expense-splitting mechanism (e.g. cash handed over).
type Transfer struct {
	Amount       decimal.Decimal
	FromMemberID string
	ToMemberID   string
}

// MemberBalance is one member's aggregate position.
type MemberBalance struct {
	MemberID   string
	MemberName string
	Paid       decimal.Decimal // amounts fronted: expenses paid + transfers sent
	Owed       decimal.Decimal // amounts consumed: shares + transfers received
	Balance    decimal.Decimal // Paid - Owed; positive = owed money, negative = owes
}

// CalculateBalances folds expenses and transfers into one MemberBalance per
// member, sorted by balance descending (ties keep input member order).
//
// A transfer is modeled as the sender "pre-paying" and the receiver "having
// been paid": sender's Paid and receiver's Owed both grow by the amount, which
// nets out exactly like an expense the sender alone incurred and the receiver
// alone consumed. That is what lets a recorded payment cancel balances created
// by expenses.
//
// Dangling references (an expense payer, share member, or transfer party not
// present in members) are skipped, not errors: the calculator is a best-effort
// summary over whatever snapshot the caller hands it, not a validator.
func CalculateBalances(members []Member, expenses []Expense, transfers []Transfer) []MemberBalance {
	balances := make([]MemberBalance, len(members))
	index := make(map[string]*MemberBalance, len(members))

	for i, m := range members {
		balances[i] = MemberBalance{
			MemberID:   m.ID,
			MemberName: m.Name,
			Paid:       decimal.Zero,
			Owed:       decimal.Zero,
		}
		index[m.ID] = &balances[i]
	}

	for _, expense := range expenses {
		if payer, ok := index[expense.PayerID]; ok {
			payer.Paid = payer.Paid.Add(expense.Amount)
		}
		for _, share := range expense.Shares {
			if member, ok := index[share.MemberID]; ok {
				member.Owed = member.Owed.Add(share.ShareAmount)
			}
		}
	}

	for _, transfer := range transfers {
		if from, ok := index[transfer.FromMemberID]; ok {
			from.Paid = from.Paid.Add(transfer.Amount)
		}
		if to, ok := index[transfer.ToMemberID]; ok {
			to.Owed = to.Owed.Add(transfer.Amount)
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].Paid.Sub(balances[i].Owed)
	}

	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Balance.GreaterThan(balances[j].Balance)
	})

	return balances
}
