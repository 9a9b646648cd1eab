package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgertalk/ledgertalk/internal/common"
	"github.com/ledgertalk/ledgertalk/internal/model"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func mapConstraintError(err error) error {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
		return common.ErrDuplicateEntry
	}
	return err
}

// ListAccounts returns the full account inventory, oldest first.
func (s *SQLiteStorage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, COALESCE(currency, ''), balance, created_at FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// GetAccountByName looks up one account by its display name.
func (s *SQLiteStorage) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, kind, COALESCE(currency, ''), balance, created_at FROM accounts WHERE name = ?`, name)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount inserts a new account, assigning an ID when absent.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("account cannot be nil")
	}
	if err := validateString(account.Name, "account name"); err != nil {
		return err
	}
	if err := validateString(string(account.Kind), "account kind"); err != nil {
		return err
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, kind, currency, balance, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID, account.Name, string(account.Kind), account.Currency,
		account.Balance.String(), account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account %q: %w", account.Name, mapConstraintError(err))
	}

	return nil
}

// ListCards returns the card inventory, oldest first.
func (s *SQLiteStorage) ListCards(ctx context.Context) ([]model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, last_four, created_at FROM cards ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []model.Card
	for rows.Next() {
		var card model.Card
		if err := rows.Scan(&card.ID, &card.Name, &card.LastFour, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// CreateCard inserts a new credit card, assigning an ID when absent.
func (s *SQLiteStorage) CreateCard(ctx context.Context, card *model.Card) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if card == nil {
		return fmt.Errorf("card cannot be nil")
	}
	if err := validateString(card.Name, "card name"); err != nil {
		return err
	}
	if err := validateString(card.LastFour, "card last four"); err != nil {
		return err
	}

	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (id, name, last_four, created_at) VALUES (?, ?, ?, ?)`,
		card.ID, card.Name, card.LastFour, card.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert card %q: %w", card.Name, mapConstraintError(err))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (model.Account, error) {
	var account model.Account
	var kind, balance string
	if err := row.Scan(&account.ID, &account.Name, &kind, &account.Currency, &balance, &account.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to scan account: %w", err)
	}
	account.Kind = model.AccountKind(kind)

	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return model.Account{}, fmt.Errorf("invalid balance for account %s: %w", account.ID, err)
	}
	account.Balance = parsed

	return account, nil
}
