package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_EqualSplitAcrossAllMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "Alice", "alice@example.com")
	bob := env.user(t, "Bob", "bob@example.com")
	carol := env.user(t, "Carol", "carol@example.com")
	trip := env.seedTrip(t, alice, bob, carol)

	// No participants given: split across all three members.
	expense, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
		PayerID:     trip.Members[0].ID,
		Amount:      decimal.NewFromInt(100),
		Description: "Boat tour",
	})
	require.NoError(t, err)

	require.Len(t, expense.Shares, 3)
	total := decimal.Zero
	for _, share := range expense.Shares {
		total = total.Add(share.ShareAmount)
	}
	// 100/3 does not divide evenly; the shares sum back within a cent.
	diff := decimal.NewFromInt(100).Sub(total).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)), "shares sum = %s", total)
	assert.True(t, expense.Shares[0].ShareAmount.Equal(expense.Shares[1].ShareAmount))
}

func TestExpenseService_SubsetOfParticipants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "Alice", "alice@example.com")
	bob := env.user(t, "Bob", "bob@example.com")
	carol := env.user(t, "Carol", "carol@example.com")
	trip := env.seedTrip(t, alice, bob, carol)

	aliceMember := trip.Members[0]
	bobMember := trip.Members[1]

	// Carol skipped dinner; only Alice and Bob split it.
	expense, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
		PayerID:        aliceMember.ID,
		Amount:         decimal.NewFromInt(50),
		Description:    "Dinner",
		ParticipantIDs: []string{aliceMember.ID, bobMember.ID},
	})
	require.NoError(t, err)

	require.Len(t, expense.Shares, 2)
	assert.True(t, expense.Shares[0].ShareAmount.Equal(decimal.NewFromInt(25)))

	report, err := env.trips.Balances(ctx, trip.ID, alice.ID)
	require.NoError(t, err)
	byMember := make(map[string]decimal.Decimal)
	for _, b := range report.Balances {
		byMember[b.MemberID] = b.Balance
	}
	assert.True(t, byMember[trip.Members[2].ID].IsZero(), "carol should owe nothing")
}

func TestExpenseService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "Alice", "alice@example.com")
	mallory := env.user(t, "Mallory", "mallory@example.com")
	trip := env.seedTrip(t, alice)
	aliceMember := trip.Members[0]

	t.Run("non-member cannot record", func(t *testing.T) {
		_, err := env.expenses.Create(ctx, trip.ID, mallory.ID, CreateExpenseInput{
			PayerID:     aliceMember.ID,
			Amount:      decimal.NewFromInt(10),
			Description: "Taxi",
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		_, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
			PayerID:     aliceMember.ID,
			Amount:      decimal.NewFromInt(-5),
			Description: "Taxi",
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("payer must belong to the trip", func(t *testing.T) {
		_, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
			PayerID:     "stranger",
			Amount:      decimal.NewFromInt(10),
			Description: "Taxi",
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("participants must belong to the trip", func(t *testing.T) {
		_, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
			PayerID:        aliceMember.ID,
			Amount:         decimal.NewFromInt(10),
			Description:    "Taxi",
			ParticipantIDs: []string{aliceMember.ID, "stranger"},
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("description is required", func(t *testing.T) {
		_, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
			PayerID: aliceMember.ID,
			Amount:  decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestExpenseService_DateDefaultsToLatestExpense(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.user(t, "Alice", "alice@example.com")
	trip := env.seedTrip(t, alice)
	aliceMember := trip.Members[0]

	first, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
		PayerID:     aliceMember.ID,
		Amount:      decimal.NewFromInt(10),
		Description: "Breakfast",
		Date:        1700000000,
	})
	require.NoError(t, err)

	// Entered without a date: lands on the same day as the latest receipt.
	second, err := env.expenses.Create(ctx, trip.ID, alice.ID, CreateExpenseInput{
		PayerID:     aliceMember.ID,
		Amount:      decimal.NewFromInt(20),
		Description: "Lunch",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Date, second.Date)
}
