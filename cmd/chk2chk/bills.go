package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chk2chk/chk2chk/internal/bills"
	"github.com/spf13/cobra"
)

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage recurring bills",
	}

	cmd.AddCommand(listBillsCmd())
	cmd.AddCommand(payBillCmd())

	return cmd
}

func listBillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all bills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			allBills, err := bills.NewService(store).GetAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to get bills: %w", err)
			}

			if len(allBills) == 0 {
				fmt.Println("No bills found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tName\tAmount\tDue\tFrequency\tPaid")
			for _, b := range allBills {
				paid := "no"
				if b.IsPaid {
					paid = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
					b.ID, b.Name, b.Amount, b.DueDate, b.Frequency, paid)
			}
			return nil
		},
	}
}

func payBillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a bill as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			bill, err := bills.NewService(store).MarkPaid(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Marked %s paid on %s\n", bill.Name, bill.LastPaidDate)
			return nil
		},
	}
}
