package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the complete dataset",
	}

	cmd.AddCommand(exportCmd())
	cmd.AddCommand(importCmd())

	return cmd
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every record to a JSON snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			snapshot, err := store.ExportAllData(ctx)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode snapshot: %w", err)
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}

			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			fmt.Printf("Exported %d records to %s\n", snapshot.Metadata.TotalRecords, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write snapshot to file instead of stdout")
	return cmd
}

func importCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the entire dataset from a JSON snapshot",
		Long: `Import a snapshot produced by 'chk2chk backup export'.

This is destructive: every existing record is removed before the snapshot's
records are written. Original ids and timestamps are preserved, so a restored
dataset is indistinguishable from the one that was exported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Print("This replaces ALL existing data. Continue? [y/N] ")
				var answer string
				_, _ = fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			var snapshot model.Snapshot
			if err := json.Unmarshal(data, &snapshot); err != nil {
				return fmt.Errorf("failed to decode snapshot: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ImportAllData(ctx, &snapshot); err != nil {
				return err
			}
			fmt.Printf("Imported %d records (snapshot version %s)\n",
				snapshot.TotalRecords(), snapshot.Version)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run a data-integrity scan",
		Long: `Check every envelope's stored balance against its allocated and spent
amounts, and every expense's category reference. Problems are reported, never
repaired.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := store.ValidateDataIntegrity(ctx)
			if err != nil {
				return err
			}

			if report.Valid {
				fmt.Println("Data integrity OK.")
				return nil
			}

			fmt.Printf("Found %d problem(s):\n", len(report.Errors))
			for _, msg := range report.Errors {
				fmt.Printf("  - %s\n", msg)
			}
			return fmt.Errorf("data integrity check failed")
		},
	}
}
