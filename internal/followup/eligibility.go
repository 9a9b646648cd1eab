package followup

import "github.com/ledgertalk/ledgertalk/internal/model"

// HasEligibleTarget reports whether the current account inventory contains
// at least one target a picker for the given category could offer. Pure
// predicate; callers must pass a fresh snapshot whenever the inventory
// changes.
func HasEligibleTarget(category model.PickerCategory, accounts []model.Account) bool {
	switch category {
	case model.PickerExpenseAccount, model.PickerIncomeAccount, model.PickerAutoPaySource:
		for _, a := range accounts {
			if a.Kind.Liquid() {
				return true
			}
		}
		return false
	case model.PickerInvestmentAccount:
		for _, a := range accounts {
			if a.Kind.Investable() {
				return true
			}
		}
		return false
	default:
		// PickerNone and any unrecognized category only require that some
		// account exists.
		return len(accounts) > 0
	}
}

// PickerTargets builds the choices a picker for the given category should
// offer. Liquid pickers for expenses additionally offer credit cards, since a
// payment can come off a card directly.
func PickerTargets(category model.PickerCategory, accounts []model.Account, cards []model.Card) []model.SelectedAccount {
	var targets []model.SelectedAccount

	include := func(a model.Account) bool {
		switch category {
		case model.PickerExpenseAccount, model.PickerIncomeAccount, model.PickerAutoPaySource:
			return a.Kind.Liquid()
		case model.PickerInvestmentAccount:
			return a.Kind.Investable()
		case model.PickerCreditCard:
			return false
		default:
			return true
		}
	}

	for _, a := range accounts {
		if include(a) {
			targets = append(targets, model.SelectedAccount{
				ID:   a.ID,
				Name: a.Name,
				Icon: iconForKind(a.Kind),
			})
		}
	}

	if category == model.PickerExpenseAccount || category == model.PickerCreditCard {
		for _, c := range cards {
			targets = append(targets, model.SelectedAccount{
				Name:   c.Name,
				Icon:   "💳",
				CardID: c.ID,
				IsCard: true,
			})
		}
	}

	return targets
}

func iconForKind(kind model.AccountKind) string {
	switch kind {
	case model.AccountBank, model.AccountSavings:
		return "🏦"
	case model.AccountCash:
		return "💵"
	case model.AccountEWallet:
		return "📱"
	case model.AccountInvestment, model.AccountRetirement:
		return "📈"
	case model.AccountCrypto:
		return "🪙"
	default:
		return "💰"
	}
}
