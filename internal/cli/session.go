package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledgertalk/ledgertalk/internal/followup"
	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/ledgertalk/ledgertalk/internal/service"
)

// PickerFunc presents an account chooser and returns the user's choice.
// It reports false when the user dismissed the picker.
type PickerFunc func(question string, targets []model.SelectedAccount) (model.SelectedAccount, bool, error)

// Session runs the interactive chat loop: free text in, resolved events out.
type Session struct {
	interpreter service.Interpreter
	storage     service.Storage
	manager     *followup.Manager
	reader      *LineReader
	out         io.Writer
	pick        PickerFunc
}

// NewSession creates a chat session.
func NewSession(interpreter service.Interpreter, storage service.Storage, in io.Reader, out io.Writer, pick PickerFunc) *Session {
	return &Session{
		interpreter: interpreter,
		storage:     storage,
		manager:     followup.NewManager(),
		reader:      NewLineReader(in),
		out:         out,
		pick:        pick,
	}
}

// Run drives the chat loop until the user quits or the context is canceled.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, FormatTitle("ledgertalk"))
	fmt.Fprintln(s.out, SubtleStyle.Render("Tell me what happened. /cancel drops a pending question, /quit exits."))
	fmt.Fprintln(s.out)

	for {
		fmt.Fprint(s.out, FormatPrompt("you"))

		input, err := s.reader.ReadLine(ctx)
		if errors.Is(err, ErrInputCancelled) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "/quit", "/q", "exit":
			return nil
		case "/cancel":
			s.manager.Cancel()
			fmt.Fprintln(s.out, SubtleStyle.Render("Okay, dropped that."))
			continue
		case "/accounts":
			if err := s.printAccounts(ctx); err != nil {
				fmt.Fprintln(s.out, FormatError(err.Error()))
			}
			continue
		}

		if err := s.handleInput(ctx, input); err != nil {
			fmt.Fprintln(s.out, FormatError(err.Error()))
		}
	}
}

func (s *Session) handleInput(ctx context.Context, input string) error {
	if account, ok := parseAccountCreation(input); ok {
		return s.createAccount(ctx, account)
	}

	text := input
	if combined, ok := s.manager.CombinedTextForFollowUp(input); ok {
		text = combined
	}

	events, err := s.interpreter.Interpret(ctx, text)
	if err != nil {
		return err
	}

	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return err
	}

	return s.handleOutcome(ctx, s.manager.ProcessParseResult(events, accounts), input)
}

func (s *Session) handleOutcome(ctx context.Context, outcome followup.Outcome, input string) error {
	switch outcome.Kind {
	case followup.OutcomeTextFollowUp:
		fmt.Fprintln(s.out, FormatQuestion(outcome.Question))
		return nil

	case followup.OutcomePicker:
		return s.runPicker(ctx, outcome, input)

	case followup.OutcomeEventCards:
		return s.presentAndPersist(ctx, outcome.Events, "", input)

	case followup.OutcomeNone:
		fmt.Fprintln(s.out, SubtleStyle.Render("Nothing to record there."))
		return nil

	case followup.OutcomeNoAccounts:
		fmt.Fprintln(s.out, FormatWarning(outcome.Message))
		return nil

	default:
		return fmt.Errorf("unknown outcome %q", outcome.Kind)
	}
}

func (s *Session) runPicker(ctx context.Context, outcome followup.Outcome, input string) error {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return err
	}
	cards, err := s.storage.ListCards(ctx)
	if err != nil {
		return err
	}

	targets := followup.PickerTargets(outcome.Descriptor.Picker, accounts, cards)
	selected, chosen, err := s.pick(outcome.Question, targets)
	if err != nil {
		return err
	}
	if !chosen {
		s.manager.Cancel()
		fmt.Fprintln(s.out, SubtleStyle.Render("Okay, dropped that."))
		return nil
	}

	events, confirm, ok := s.manager.HandlePickerSelection(selected, outcome.Descriptor)
	if !ok {
		return fmt.Errorf("could not resolve the selection")
	}
	return s.presentAndPersist(ctx, events, confirm, input)
}

func (s *Session) presentAndPersist(ctx context.Context, events []model.Event, confirm, summary string) error {
	for _, ev := range events {
		card := renderEventCard(ev)
		if card != "" {
			fmt.Fprintln(s.out, card)
		}
	}
	if confirm != "" {
		fmt.Fprintln(s.out, InfoStyle.Render(confirm))
	}

	fmt.Fprint(s.out, FormatPrompt("save? [Y/n]"))
	answer, err := s.reader.ReadLine(ctx)
	if err != nil {
		return err
	}
	if answer != "" && !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(s.out, SubtleStyle.Render("Discarded."))
		return nil
	}

	count, err := s.storage.SaveEvents(ctx, events, summary)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, FormatSuccess(fmt.Sprintf("Saved %d record(s)", count)))
	return nil
}

func (s *Session) createAccount(ctx context.Context, account *model.Account) error {
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return err
	}
	fmt.Fprintln(s.out, FormatSuccess(fmt.Sprintf("Created %s account %s", account.Kind, account.Name)))

	events, confirm, ok := s.manager.ApplyPendingToNewAccount(*account)
	if !ok {
		return nil
	}

	count, err := s.storage.SaveEvents(ctx, events, "linked after account creation")
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, FormatSuccess(confirm))
	fmt.Fprintln(s.out, SubtleStyle.Render(fmt.Sprintf("Saved %d record(s)", count)))
	return nil
}

func (s *Session) printAccounts(ctx context.Context) error {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return err
	}
	cards, err := s.storage.ListCards(ctx)
	if err != nil {
		return err
	}

	if len(accounts) == 0 && len(cards) == 0 {
		fmt.Fprintln(s.out, SubtleStyle.Render("No accounts yet."))
		return nil
	}

	for _, a := range accounts {
		fmt.Fprintf(s.out, "  %s %s (%s) %s\n", BankIcon, a.Name, a.Kind, SubtleStyle.Render(a.Balance.String()))
	}
	for _, c := range cards {
		fmt.Fprintf(s.out, "  %s %s ••%s\n", CardIcon, c.Name, c.LastFour)
	}
	return nil
}

var accountCreationRe = regexp.MustCompile(
	`(?i)^(?:add|create)\s+(?:a|an)?\s*(bank|checking|cash|savings|e-?wallet|wallet|brokerage|investment|crypto|retirement)\s+account\s+(?:called|named)\s+(.+)$`)

// parseAccountCreation recognizes statements like "add a bank account called
// Checking". Handled locally so account creation works even when the
// interpreter is unreachable, and so stashed events can be linked in the same
// turn.
func parseAccountCreation(input string) (*model.Account, bool) {
	matches := accountCreationRe.FindStringSubmatch(strings.TrimSpace(input))
	if matches == nil {
		return nil, false
	}

	name := strings.Trim(strings.TrimSpace(matches[2]), `"'`)
	if name == "" {
		return nil, false
	}

	return &model.Account{
		Name: name,
		Kind: accountKindForWord(strings.ToLower(matches[1])),
	}, true
}

func accountKindForWord(word string) model.AccountKind {
	switch word {
	case "bank", "checking":
		return model.AccountBank
	case "cash":
		return model.AccountCash
	case "savings":
		return model.AccountSavings
	case "ewallet", "e-wallet", "wallet":
		return model.AccountEWallet
	case "brokerage", "investment":
		return model.AccountInvestment
	case "crypto":
		return model.AccountCrypto
	case "retirement":
		return model.AccountRetirement
	default:
		return model.AccountOtherAsset
	}
}
