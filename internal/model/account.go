package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account in the user's inventory.
type AccountKind string

// Account kind constants.
const (
	AccountBank           AccountKind = "bank"
	AccountCash           AccountKind = "cash"
	AccountEWallet        AccountKind = "ewallet"
	AccountSavings        AccountKind = "savings"
	AccountOtherAsset     AccountKind = "other_asset"
	AccountInvestment     AccountKind = "investment"
	AccountCrypto         AccountKind = "crypto"
	AccountRetirement     AccountKind = "retirement"
	AccountOtherLiability AccountKind = "other_liability"
)

// Liquid reports whether the kind can fund day-to-day transactions.
func (k AccountKind) Liquid() bool {
	switch k {
	case AccountBank, AccountCash, AccountEWallet, AccountSavings, AccountOtherAsset:
		return true
	default:
		return false
	}
}

// Investable reports whether the kind can hold tradeable instruments.
func (k AccountKind) Investable() bool {
	switch k {
	case AccountInvestment, AccountCrypto, AccountRetirement:
		return true
	default:
		return false
	}
}

// Account is one entry in the user's account inventory.
type Account struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Currency  string
	Kind      AccountKind
	Balance   decimal.Decimal
}

// Card is one credit card in the user's inventory.
type Card struct {
	CreatedAt time.Time
	ID        string
	Name      string
	LastFour  string
}

// SelectedAccount is the target the user chose in a picker. It is ephemeral:
// consumed by one resolution step and never persisted. CardID is set only
// when the chosen target is a credit card.
type SelectedAccount struct {
	ID     string
	Name   string
	Icon   string
	CardID string
	IsCard bool
}
