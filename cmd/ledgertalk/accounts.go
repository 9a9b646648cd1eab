package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgertalk/ledgertalk/internal/cli"
	"github.com/ledgertalk/ledgertalk/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the account inventory",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsAddCardCmd())

	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts and cards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := store.ListAccounts(ctx)
			if err != nil {
				return err
			}
			cards, err := store.ListCards(ctx)
			if err != nil {
				return err
			}

			if len(accounts) == 0 && len(cards) == 0 {
				fmt.Println("No accounts yet. Add one with: ledgertalk accounts add <name> --kind bank")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tCURRENCY\tBALANCE")
			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Kind, a.Currency, a.Balance.String())
			}
			for _, c := range cards {
				fmt.Fprintf(w, "%s\tcredit_card\t\t••%s\n", c.Name, c.LastFour)
			}
			return w.Flush()
		},
	}
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Long: `Add an account to the inventory.

Kinds: bank, cash, ewallet, savings, other_asset, investment, crypto, retirement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, _ := cmd.Flags().GetString("kind")
			currency, _ := cmd.Flags().GetString("currency")
			balanceStr, _ := cmd.Flags().GetString("balance")

			balance, err := decimal.NewFromString(balanceStr)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", balanceStr, err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			account := &model.Account{
				Name:     args[0],
				Kind:     model.AccountKind(kind),
				Currency: currency,
				Balance:  balance,
			}
			if err := store.CreateAccount(ctx, account); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s account %s", account.Kind, account.Name)))
			return nil
		},
	}

	cmd.Flags().String("kind", "bank", "account kind")
	cmd.Flags().String("currency", "", "account currency")
	cmd.Flags().String("balance", "0", "starting balance")

	return cmd
}

func accountsAddCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-card <name>",
		Short: "Add a credit card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lastFour, _ := cmd.Flags().GetString("last-four")
			if len(lastFour) != 4 {
				return fmt.Errorf("--last-four must be exactly 4 digits")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			card := &model.Card{Name: args[0], LastFour: lastFour}
			if err := store.CreateCard(ctx, card); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created card %s ••%s", card.Name, card.LastFour)))
			return nil
		},
	}

	cmd.Flags().String("last-four", "", "last four digits of the card number")
	_ = cmd.MarkFlagRequired("last-four")

	return cmd
}
