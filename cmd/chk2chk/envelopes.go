package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/chk2chk/chk2chk/internal/envelope"
	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/spf13/cobra"
)

func envelopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envelope",
		Short: "Manage budget envelopes",
		Long:  `Create envelopes, allocate funds into them, and spend from them.`,
	}

	cmd.AddCommand(listEnvelopesCmd())
	cmd.AddCommand(addEnvelopeCmd())
	cmd.AddCommand(allocateCmd())
	cmd.AddCommand(spendCmd())

	return cmd
}

func listEnvelopesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all envelopes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			envelopes, err := envelope.NewService(store).GetAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to get envelopes: %w", err)
			}

			if len(envelopes) == 0 {
				fmt.Println("No envelopes found. Use 'chk2chk envelope add' to create one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tName\tAllocated\tSpent\tBalance")
			for _, env := range envelopes {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\n",
					env.ID, env.Name, env.AllocatedAmount, env.SpentAmount, env.Balance)
			}
			return nil
		},
	}
}

func addEnvelopeCmd() *cobra.Command {
	var allocated float64
	var categoryID string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			env, err := envelope.NewService(store).Create(ctx, model.Envelope{
				Name:            args[0],
				AllocatedAmount: allocated,
				CategoryID:      categoryID,
			})
			if err != nil {
				return fmt.Errorf("failed to create envelope: %w", err)
			}
			fmt.Printf("Created envelope %s (%s) with balance %.2f\n", env.Name, env.ID, env.Balance)
			return nil
		},
	}

	cmd.Flags().Float64Var(&allocated, "allocated", 0, "initial allocated amount")
	cmd.Flags().StringVar(&categoryID, "category", "", "linked category id")
	return cmd
}

func allocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allocate <id> <amount>",
		Short: "Allocate funds into an envelope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			env, err := envelope.NewService(store).Allocate(ctx, args[0], amount)
			if err != nil {
				return err
			}
			fmt.Printf("Envelope %s: allocated %.2f, balance %.2f\n", env.Name, env.AllocatedAmount, env.Balance)
			return nil
		},
	}
}

func spendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spend <id> <amount>",
		Short: "Spend from an envelope",
		Long:  `Record spending against an envelope. Fails if the amount exceeds the envelope's current balance.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			env, err := envelope.NewService(store).Spend(ctx, args[0], amount)
			if err != nil {
				return err
			}
			fmt.Printf("Envelope %s: spent %.2f, balance %.2f\n", env.Name, env.SpentAmount, env.Balance)
			return nil
		},
	}
}
