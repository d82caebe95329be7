package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.GetAllCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println("No categories found. Use 'chk2chk seed' to create the defaults.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tName\tColor\tIcon")
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Color, cat.Icon)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var color, icon string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := store.CreateCategory(ctx, categoryFromFlags(args[0], color, icon))
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}
			fmt.Printf("Created category %s (%s)\n", cat.Name, cat.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "#64748B", "hex color")
	cmd.Flags().StringVar(&icon, "icon", "", "icon")
	return cmd
}

func categoryFromFlags(name, color, icon string) model.Category {
	return model.Category{Name: name, Color: color, Icon: icon}
}
