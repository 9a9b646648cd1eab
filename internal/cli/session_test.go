package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/ledgertalk/ledgertalk/internal/service"
)

type fakeInterpreter struct {
	responses map[string][]model.Event
	calls     []string
}

func (f *fakeInterpreter) Interpret(_ context.Context, text string) ([]model.Event, error) {
	f.calls = append(f.calls, text)
	if events, ok := f.responses[text]; ok {
		return events, nil
	}
	return nil, fmt.Errorf("no scripted response for %q", text)
}

type fakeStorage struct {
	accounts []model.Account
	cards    []model.Card
	saved    [][]model.Event
}

func (f *fakeStorage) SaveEvents(_ context.Context, events []model.Event, _ string) (int, error) {
	f.saved = append(f.saved, events)
	return len(events), nil
}

func (f *fakeStorage) GetEvents(_ context.Context, _ service.EventFilter) ([]service.StoredEvent, error) {
	return nil, nil
}

func (f *fakeStorage) ListAccounts(_ context.Context) ([]model.Account, error) {
	return f.accounts, nil
}

func (f *fakeStorage) GetAccountByName(_ context.Context, name string) (*model.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].Name == name {
			return &f.accounts[i], nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeStorage) CreateAccount(_ context.Context, account *model.Account) error {
	account.ID = fmt.Sprintf("acct-%d", len(f.accounts)+1)
	f.accounts = append(f.accounts, *account)
	return nil
}

func (f *fakeStorage) ListCards(_ context.Context) ([]model.Card, error) {
	return f.cards, nil
}

func (f *fakeStorage) CreateCard(_ context.Context, card *model.Card) error {
	f.cards = append(f.cards, *card)
	return nil
}

func (f *fakeStorage) Migrate(_ context.Context) error { return nil }
func (f *fakeStorage) Close() error                    { return nil }

func neverPick(_ string, _ []model.SelectedAccount) (model.SelectedAccount, bool, error) {
	return model.SelectedAccount{}, false, nil
}

func runSession(t *testing.T, interp *fakeInterpreter, store *fakeStorage, pick PickerFunc, lines ...string) string {
	t.Helper()

	input := strings.Join(append(lines, "/quit"), "\n") + "\n"
	var out bytes.Buffer

	session := NewSession(interp, store, strings.NewReader(input), &out, pick)
	require.NoError(t, session.Run(context.Background()))

	return out.String()
}

func TestSessionTextFollowUpRoundTrip(t *testing.T) {
	taxi := model.NewTransactionEvent(model.TransactionPayload{
		Direction:   model.DirectionExpense,
		Amount:      decimal.NewFromInt(15),
		Category:    "transport",
		Description: "taxi",
		AccountName: "Checking",
	})

	interp := &fakeInterpreter{responses: map[string][]model.Event{
		"taxi": {model.NewMoreInfoEvent(model.NeedsMoreInfo{
			OriginalIntent: model.KindTransaction,
			MissingFields:  []string{model.FieldAmount},
			Question:       "How much was the taxi?",
			Transaction: &model.TransactionPayload{
				Direction:   model.DirectionExpense,
				Description: "taxi",
			},
		})},
		"taxi expense 15块": {taxi},
	}}
	store := &fakeStorage{accounts: []model.Account{
		{ID: "a1", Name: "Checking", Kind: model.AccountBank},
	}}

	out := runSession(t, interp, store, neverPick, "taxi", "15", "y")

	assert.Contains(t, out, "How much was the taxi?")
	require.Equal(t, []string{"taxi", "taxi expense 15块"}, interp.calls)
	require.Len(t, store.saved, 1)
	require.Len(t, store.saved[0], 1)
	assert.Equal(t, model.KindTransaction, store.saved[0][0].Kind)
	assert.Contains(t, out, "Saved 1 record(s)")
}

func TestSessionPickerFlow(t *testing.T) {
	unresolved := model.NewTransactionEvent(model.TransactionPayload{
		Direction: model.DirectionExpense,
		Amount:    decimal.NewFromInt(30),
		Category:  "food",
	})

	interp := &fakeInterpreter{responses: map[string][]model.Event{
		"lunch 30": {unresolved},
	}}
	store := &fakeStorage{accounts: []model.Account{
		{ID: "a1", Name: "Checking", Kind: model.AccountBank},
		{ID: "a2", Name: "Schwab", Kind: model.AccountInvestment},
	}}

	var offered []model.SelectedAccount
	pick := func(_ string, targets []model.SelectedAccount) (model.SelectedAccount, bool, error) {
		offered = targets
		return targets[0], true, nil
	}

	out := runSession(t, interp, store, pick, "lunch 30", "y")

	// Only the liquid account is offered for an expense.
	require.Len(t, offered, 1)
	assert.Equal(t, "Checking", offered[0].Name)

	require.Len(t, store.saved, 1)
	saved := store.saved[0][0]
	require.NotNil(t, saved.Transaction)
	assert.Equal(t, "Checking", saved.Transaction.AccountName)
	assert.Contains(t, out, "Filed 1 record(s) under Checking")
}

func TestSessionPickerDismissedCancels(t *testing.T) {
	unresolved := model.NewTransactionEvent(model.TransactionPayload{
		Direction: model.DirectionExpense,
		Amount:    decimal.NewFromInt(30),
	})
	passthrough := model.NewTransactionEvent(model.TransactionPayload{
		Direction:   model.DirectionExpense,
		Amount:      decimal.NewFromInt(5),
		AccountName: "Checking",
	})

	interp := &fakeInterpreter{responses: map[string][]model.Event{
		"lunch 30": {unresolved},
		"coffee 5": {passthrough},
	}}
	store := &fakeStorage{accounts: []model.Account{
		{ID: "a1", Name: "Checking", Kind: model.AccountBank},
	}}

	out := runSession(t, interp, store, neverPick, "lunch 30", "coffee 5", "y")

	// The dismissed picker must not leave a pending descriptor behind: the
	// next statement goes to the interpreter verbatim.
	assert.Equal(t, []string{"lunch 30", "coffee 5"}, interp.calls)
	require.Len(t, store.saved, 1)
	assert.Contains(t, out, "dropped that")
}

func TestSessionNoAccountsThenCreate(t *testing.T) {
	unresolved := model.NewTransactionEvent(model.TransactionPayload{
		Direction: model.DirectionExpense,
		Amount:    decimal.NewFromInt(30),
		Category:  "food",
	})

	interp := &fakeInterpreter{responses: map[string][]model.Event{
		"lunch 30": {unresolved},
	}}
	store := &fakeStorage{}

	out := runSession(t, interp, store, neverPick,
		"lunch 30",
		`add a bank account called Checking`)

	assert.Contains(t, out, "spendable account")
	assert.Contains(t, out, "Created bank account Checking")
	assert.Contains(t, out, "Linked 1 earlier record(s) to Checking")

	require.Len(t, store.saved, 1)
	saved := store.saved[0][0]
	require.NotNil(t, saved.Transaction)
	assert.Equal(t, "Checking", saved.Transaction.AccountName)
}

func TestSessionDiscard(t *testing.T) {
	event := model.NewTransactionEvent(model.TransactionPayload{
		Direction:   model.DirectionExpense,
		Amount:      decimal.NewFromInt(5),
		AccountName: "Checking",
	})

	interp := &fakeInterpreter{responses: map[string][]model.Event{
		"coffee 5": {event},
	}}
	store := &fakeStorage{accounts: []model.Account{
		{ID: "a1", Name: "Checking", Kind: model.AccountBank},
	}}

	out := runSession(t, interp, store, neverPick, "coffee 5", "n")

	assert.Contains(t, out, "Discarded")
	assert.Empty(t, store.saved)
}

func TestSessionNullStatement(t *testing.T) {
	interp := &fakeInterpreter{responses: map[string][]model.Event{
		"nice weather today": {model.NewNullStatementEvent()},
	}}
	store := &fakeStorage{}

	out := runSession(t, interp, store, neverPick, "nice weather today")

	assert.Contains(t, out, "Nothing to record")
	assert.Empty(t, store.saved)
}

func TestParseAccountCreation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantKind model.AccountKind
		wantOK   bool
	}{
		{
			name:     "bank account",
			input:    "add a bank account called Checking",
			wantName: "Checking",
			wantKind: model.AccountBank,
			wantOK:   true,
		},
		{
			name:     "brokerage maps to investment",
			input:    `create a brokerage account named "Schwab"`,
			wantName: "Schwab",
			wantKind: model.AccountInvestment,
			wantOK:   true,
		},
		{
			name:     "ewallet with hyphen",
			input:    "add an e-wallet account called Alipay",
			wantName: "Alipay",
			wantKind: model.AccountEWallet,
			wantOK:   true,
		},
		{
			name:   "plain statement is not a creation",
			input:  "spent 30 on lunch",
			wantOK: false,
		},
		{
			name:   "missing name",
			input:  "add a bank account called ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, ok := parseAccountCreation(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, account)
				assert.Equal(t, tt.wantName, account.Name)
				assert.Equal(t, tt.wantKind, account.Kind)
			}
		})
	}
}

func TestRenderEventCard(t *testing.T) {
	t.Run("transaction", func(t *testing.T) {
		card := renderEventCard(model.NewTransactionEvent(model.TransactionPayload{
			Direction:   model.DirectionExpense,
			Amount:      decimal.RequireFromString("42.50"),
			Category:    "dining",
			Description: "lunch",
			AccountName: "Checking",
		}))
		assert.Contains(t, card, "42.5")
		assert.Contains(t, card, "lunch")
		assert.Contains(t, card, "Checking")
	})

	t.Run("empty payload renders nothing", func(t *testing.T) {
		assert.Empty(t, renderEventCard(model.Event{Kind: model.KindTransaction}))
	})

	t.Run("null statement renders nothing", func(t *testing.T) {
		assert.Empty(t, renderEventCard(model.NewNullStatementEvent()))
	})
}
