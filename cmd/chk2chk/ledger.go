package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chk2chk/chk2chk/internal/ledger"
	"github.com/spf13/cobra"
)

func ledgerCmd() *cobra.Command {
	var sortField, csvType string
	var desc bool

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show the unified transaction ledger",
		Long: `Merge income and expense records into one transaction stream.

With --csv the ledger is written as CSV to stdout instead of a table;
the value selects which records to include (income, expenses, all).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := ledger.NewService(store)

			if csvType != "" {
				out, csvErr := svc.ExportCSV(ctx, ledger.ExportType(csvType))
				if csvErr != nil {
					return csvErr
				}
				fmt.Println(out)
				return nil
			}

			transactions, err := svc.GetAllTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to build ledger: %w", err)
			}

			direction := ledger.SortAsc
			if desc {
				direction = ledger.SortDesc
			}
			transactions = ledger.SortTransactions(transactions, ledger.SortField(sortField), direction)

			if len(transactions) == 0 {
				fmt.Println("No transactions found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "Type\tDate\tAmount\tDescription\tCategory")
			for _, txn := range transactions {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
					txn.Type, txn.Date, txn.Amount, txn.Description, txn.Category)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortField, "sort", "date", "sort field (date, amount, type, description)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&csvType, "csv", "", "export as CSV (income, expenses, all)")
	return cmd
}
