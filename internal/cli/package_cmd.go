package cli

import (
	"fmt"

	"github.com/alexanderramin/scurve/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPackageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "package",
		Aliases: []string{"pkg"},
		Short:   "List and inspect maintenance packages",
	}
	cmd.AddCommand(newPackageListCmd(app), newPackageShowCmd(app))
	return cmd
}

func newPackageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packages with their weighted hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Catalog.ListPackages(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPackageList(rows))
			return nil
		},
	}
}

func newPackageShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <package>",
		Short: "Show a package tree with each service's current progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePackageID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			tree, err := app.Catalog.PackageTree(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPackageTree(tree))
			return nil
		},
	}
}
