// Package ofx converts OFX/QFX bank statements into candidate events so that
// historical activity can seed a fresh ledger without retyping it.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

// Statement is one parsed OFX statement with the events it produced.
type Statement struct {
	AccountID string
	IsCard    bool
	Events    []model.Event
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case but some banks emit Info/Warn/Error
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing bracket on a bare tag
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns one Statement per account
// found in it.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var statements []Statement

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		accountID := string(stmt.BankAcctFrom.AcctID)
		events := p.convertTransactions(stmt.BankTranList, accountID, false)
		statements = append(statements, Statement{
			AccountID: accountID,
			Events:    events,
		})
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		accountID := string(stmt.CCAcctFrom.AcctID)
		events := p.convertTransactions(stmt.BankTranList, accountID, true)
		statements = append(statements, Statement{
			AccountID: accountID,
			IsCard:    true,
			Events:    events,
		})
	}

	total := 0
	for _, s := range statements {
		total += len(s.Events)
	}
	slog.Info("Parsed OFX file",
		"statements", len(statements),
		"events", total)

	return statements, nil
}

func (p *Parser) convertTransactions(list *ofxgo.TransactionList, accountID string, isCard bool) []model.Event {
	if list == nil {
		return nil
	}

	events := make([]model.Event, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		events = append(events, p.convertTransaction(ofxTx, accountID, isCard))
	}
	return events
}

// convertTransaction maps one OFX transaction to a candidate event. OFX uses
// signed amounts: debits are negative.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string, isCard bool) model.Event {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	direction := model.DirectionExpense
	if amount.IsPositive() {
		direction = model.DirectionIncome
	}
	amount = amount.Abs()

	payload := model.TransactionPayload{
		Direction:   direction,
		Amount:      amount,
		Description: p.extractMerchantName(ofxTx),
		Category:    categoryForType(fmt.Sprintf("%v", ofxTx.TrnType)),
	}
	if isCard {
		payload.CardID = accountID
	} else {
		payload.AccountName = accountID
	}

	return model.NewTransactionEvent(payload)
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip a leading "MM/DD " date stamp
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func categoryForType(trnType string) string {
	switch trnType {
	case "INT":
		return "interest"
	case "FEE":
		return "fees"
	case "ATM":
		return "cash"
	default:
		return ""
	}
}

// isGenericDescription checks if a transaction name is too generic to show.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	default:
		return false
	}
}
