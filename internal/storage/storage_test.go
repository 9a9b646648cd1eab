package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertalk/ledgertalk/internal/common"
	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/ledgertalk/ledgertalk/internal/service"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()

	db, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestMigrate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Running migrations again must be a no-op.
	require.NoError(t, db.Migrate(ctx))

	var version int
	err := db.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_versions`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSaveEvents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	events := []model.Event{
		model.NewTransactionEvent(model.TransactionPayload{
			Direction:   model.DirectionExpense,
			Amount:      decimal.NewFromInt(15),
			Category:    "transport",
			Description: "taxi",
			AccountName: "Checking",
		}),
		model.NewNullStatementEvent(),
		model.NewBudgetEvent(model.BudgetPayload{
			Category: "food",
			Amount:   decimal.NewFromInt(2000),
			Period:   "month",
		}),
	}

	count, err := db.SaveEvents(ctx, events, "taxi 15, food budget 2000")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "null statements are not persisted")

	stored, err := db.GetEvents(ctx, service.EventFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, se := range stored {
		assert.NotEmpty(t, se.ID)
		assert.Equal(t, "taxi 15, food budget 2000", se.Summary)
		assert.False(t, se.CreatedAt.IsZero())
	}
}

func TestSaveEventsSkipsUnresolved(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	events := []model.Event{
		model.NewMoreInfoEvent(model.NeedsMoreInfo{
			OriginalIntent: model.KindTransaction,
			MissingFields:  []string{model.FieldAmount},
			Question:       "How much was it?",
		}),
	}

	count, err := db.SaveEvents(ctx, events, "")
	require.NoError(t, err)
	assert.Zero(t, count)

	stored, err := db.GetEvents(ctx, service.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGetEventsFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	events := []model.Event{
		model.NewTransactionEvent(model.TransactionPayload{
			Direction: model.DirectionExpense,
			Amount:    decimal.NewFromInt(30),
			Category:  "food",
		}),
		model.NewHoldingEvent(model.HoldingPayload{
			Instrument: "VOO",
			Action:     model.ActionBuy,
			Quantity:   decimal.NewFromInt(2),
		}),
		model.NewTransactionEvent(model.TransactionPayload{
			Direction: model.DirectionIncome,
			Amount:    decimal.NewFromInt(5000),
			Category:  "salary",
		}),
	}

	_, err := db.SaveEvents(ctx, events, "mixed batch")
	require.NoError(t, err)

	txns, err := db.GetEvents(ctx, service.EventFilter{Kind: model.KindTransaction})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	for _, se := range txns {
		assert.Equal(t, model.KindTransaction, se.Event.Kind)
		require.NotNil(t, se.Event.Transaction)
	}

	limited, err := db.GetEvents(ctx, service.EventFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEventRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	original := model.NewTransactionEvent(model.TransactionPayload{
		Direction:   model.DirectionExpense,
		Amount:      decimal.RequireFromString("42.50"),
		Category:    "dining",
		Description: "lunch",
		CardID:      "card-1",
	})

	_, err := db.SaveEvents(ctx, []model.Event{original}, "lunch")
	require.NoError(t, err)

	stored, err := db.GetEvents(ctx, service.EventFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got := stored[0].Event
	require.NotNil(t, got.Transaction)
	assert.Equal(t, model.DirectionExpense, got.Transaction.Direction)
	assert.True(t, got.Transaction.Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, "card-1", got.Transaction.CardID)
}

func TestCreateAccount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	account := &model.Account{
		Name:     "Checking",
		Kind:     model.AccountBank,
		Currency: "USD",
		Balance:  decimal.NewFromInt(100),
	}
	require.NoError(t, db.CreateAccount(ctx, account))
	assert.NotEmpty(t, account.ID, "ID is assigned on insert")

	got, err := db.GetAccountByName(ctx, "Checking")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, model.AccountBank, got.Kind)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
}

func TestCreateAccountDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := &model.Account{Name: "Wallet", Kind: model.AccountCash}
	require.NoError(t, db.CreateAccount(ctx, first))

	dup := &model.Account{Name: "Wallet", Kind: model.AccountCash}
	err := db.CreateAccount(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestGetAccountByNameNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetAccountByName(context.Background(), "Nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListAccounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	accounts, err := db.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	require.NoError(t, db.CreateAccount(ctx, &model.Account{Name: "Checking", Kind: model.AccountBank}))
	require.NoError(t, db.CreateAccount(ctx, &model.Account{Name: "Schwab", Kind: model.AccountInvestment}))

	accounts, err = db.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}

func TestCards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	card := &model.Card{Name: "Sapphire", LastFour: "4421"}
	require.NoError(t, db.CreateCard(ctx, card))
	assert.NotEmpty(t, card.ID)

	err := db.CreateCard(ctx, &model.Card{Name: "Sapphire", LastFour: "9999"})
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	cards, err := db.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "4421", cards[0].LastFour)
}

func TestValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("nil account", func(t *testing.T) {
		assert.Error(t, db.CreateAccount(ctx, nil))
	})

	t.Run("empty account name", func(t *testing.T) {
		assert.Error(t, db.CreateAccount(ctx, &model.Account{Kind: model.AccountBank}))
	})

	t.Run("empty lookup name", func(t *testing.T) {
		_, err := db.GetAccountByName(ctx, "")
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := db.ListAccounts(cancelled)
		assert.Error(t, err)
	})
}
