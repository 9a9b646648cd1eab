package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgertalk/ledgertalk/internal/common"
	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/ledgertalk/ledgertalk/internal/ofx"
	"github.com/ledgertalk/ledgertalk/internal/storage"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Seed the ledger from OFX/QFX bank statements",
		Long: `Import transactions from OFX or QFX files exported from your bank.

Accounts named in the statements are created on first sight: bank statements
become bank accounts, credit card statements become cards.

Examples:
  ledgertalk import-ofx ~/Downloads/chase_jan_2024.qfx
  ledgertalk import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	parser := ofx.NewParser()

	var statements []ofx.Statement
	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse file", "file", filepath.Base(filePath), "error", err)
			continue
		}
		statements = append(statements, parsed...)
	}

	total := 0
	for _, stmt := range statements {
		total += len(stmt.Events)
	}
	if total == 0 {
		return fmt.Errorf("no transactions found in %d file(s)", len(allFiles))
	}

	if dryRun {
		fmt.Printf("Would import %d transaction(s) from %d statement(s)\n", total, len(statements))
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing transactions..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	imported := 0
	for _, stmt := range statements {
		if err := ensureStatementAccount(cmd, store, stmt); err != nil {
			return err
		}

		summary := fmt.Sprintf("imported statement %s", stmt.AccountID)
		count, err := store.SaveImportedEvents(ctx, stmt.Events, summary)
		if err != nil {
			return fmt.Errorf("failed to save events for %s: %w", stmt.AccountID, err)
		}
		imported += count
		_ = bar.Add(len(stmt.Events))
	}

	slog.Info("Import complete",
		"files", len(allFiles),
		"statements", len(statements),
		"imported", imported)
	fmt.Printf("Imported %d transaction(s)\n", imported)
	return nil
}

// ensureStatementAccount creates the account or card a statement refers to if
// it is not in the inventory yet.
func ensureStatementAccount(cmd *cobra.Command, store *storage.SQLiteStorage, stmt ofx.Statement) error {
	ctx := cmd.Context()

	if stmt.IsCard {
		cards, err := store.ListCards(ctx)
		if err != nil {
			return err
		}
		for _, c := range cards {
			if c.Name == stmt.AccountID {
				return nil
			}
		}
		lastFour := stmt.AccountID
		if len(lastFour) > 4 {
			lastFour = lastFour[len(lastFour)-4:]
		}
		return store.CreateCard(ctx, &model.Card{Name: stmt.AccountID, LastFour: lastFour})
	}

	_, err := store.GetAccountByName(ctx, stmt.AccountID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	return store.CreateAccount(ctx, &model.Account{
		Name: stmt.AccountID,
		Kind: model.AccountBank,
	})
}
