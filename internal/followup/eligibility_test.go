package followup

import (
	"testing"

	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestHasEligibleTarget(t *testing.T) {
	bank := model.Account{ID: "a1", Name: "Checking", Kind: model.AccountBank}
	cash := model.Account{ID: "a2", Name: "Wallet", Kind: model.AccountCash}
	broker := model.Account{ID: "a3", Name: "Brokerage", Kind: model.AccountInvestment}
	crypto := model.Account{ID: "a4", Name: "Cold Wallet", Kind: model.AccountCrypto}
	loan := model.Account{ID: "a5", Name: "Car Loan", Kind: model.AccountOtherLiability}

	tests := []struct {
		name     string
		category model.PickerCategory
		accounts []model.Account
		want     bool
	}{
		{
			name:     "no category needs any account",
			category: model.PickerNone,
			accounts: []model.Account{loan},
			want:     true,
		},
		{
			name:     "no category with empty inventory",
			category: model.PickerNone,
			accounts: nil,
			want:     false,
		},
		{
			name:     "expense account needs a liquid kind",
			category: model.PickerExpenseAccount,
			accounts: []model.Account{bank},
			want:     true,
		},
		{
			name:     "expense account rejects investment-only inventory",
			category: model.PickerExpenseAccount,
			accounts: []model.Account{broker, crypto},
			want:     false,
		},
		{
			name:     "income account accepts cash",
			category: model.PickerIncomeAccount,
			accounts: []model.Account{crypto, cash},
			want:     true,
		},
		{
			name:     "auto pay source rejects liabilities",
			category: model.PickerAutoPaySource,
			accounts: []model.Account{loan},
			want:     false,
		},
		{
			name:     "investment account accepts brokerage",
			category: model.PickerInvestmentAccount,
			accounts: []model.Account{bank, broker},
			want:     true,
		},
		{
			name:     "investment account rejects bank-only inventory",
			category: model.PickerInvestmentAccount,
			accounts: []model.Account{bank, cash},
			want:     false,
		},
		{
			name:     "credit card picker only needs a non-empty list",
			category: model.PickerCreditCard,
			accounts: []model.Account{loan},
			want:     true,
		},
		{
			name:     "credit card picker with empty inventory",
			category: model.PickerCreditCard,
			accounts: []model.Account{},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasEligibleTarget(tt.category, tt.accounts))
		})
	}
}
