package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/ledgertalk/ledgertalk/internal/service"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recorded events",
		RunE:  runEvents,
	}

	cmd.Flags().String("kind", "", "only show events of this kind")
	cmd.Flags().IntP("limit", "n", 20, "maximum number of events to show")

	return cmd
}

func runEvents(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	events, err := store.GetEvents(ctx, service.EventFilter{
		Kind:  model.EventKind(kind),
		Limit: limit,
	})
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tKIND\tDETAIL")
	for _, se := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			se.CreatedAt.Format("2006-01-02 15:04"),
			se.Event.Kind,
			eventDetail(se.Event))
	}
	return w.Flush()
}

func eventDetail(ev model.Event) string {
	switch {
	case ev.Transaction != nil:
		detail := fmt.Sprintf("%s %s", ev.Transaction.Direction, ev.Transaction.Amount.String())
		if ev.Transaction.Description != "" {
			detail += " " + ev.Transaction.Description
		}
		return detail
	case ev.Holding != nil:
		return fmt.Sprintf("%s %s %s", ev.Holding.Action, ev.Holding.Quantity.String(), ev.Holding.Instrument)
	case ev.AssetUpdate != nil:
		return fmt.Sprintf("%s balance %s", ev.AssetUpdate.AccountName, ev.AssetUpdate.Balance.String())
	case ev.CardUpdate != nil:
		return ev.CardUpdate.CardName
	case ev.Budget != nil:
		return fmt.Sprintf("%s %s", ev.Budget.Category, ev.Budget.Amount.String())
	case ev.AutoPayment != nil:
		return fmt.Sprintf("%s %s", ev.AutoPayment.Name, ev.AutoPayment.Amount.String())
	default:
		return ""
	}
}
