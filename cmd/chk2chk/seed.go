package main

import (
	"fmt"

	"github.com/chk2chk/chk2chk/internal/bootstrap"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed default categories and settings",
		Long: `Seed the database with the default category list and settings record.

Seeding is idempotent: categories are only created when none exist, and the
settings record is only created when missing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			bootstrap.InitializeDefaultData(ctx, store)

			categories, err := store.GetAllCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to count categories: %w", err)
			}
			fmt.Printf("Database ready: %d categories\n", len(categories))
			return nil
		},
	}
}
