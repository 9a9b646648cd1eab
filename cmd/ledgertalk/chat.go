package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgertalk/ledgertalk/internal/cli"
	"github.com/ledgertalk/ledgertalk/internal/tui"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive ledger session",
		Long: `Start the chat loop. Type statements like "spent 30 on lunch" or
"bought 2 shares of VOO at 580" and confirm the records ledgertalk proposes.

When a statement is missing a detail you'll get a follow-up question; answer
it in plain text or pick an account from the chooser it shows.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	interp, err := initInterpreter(store)
	if err != nil {
		return err
	}

	session := cli.NewSession(interp, store, os.Stdin, os.Stdout, tui.RunPicker)
	return session.Run(ctx)
}
