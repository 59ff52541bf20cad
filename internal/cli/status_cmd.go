package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scurve/internal/cli/formatter"
	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var (
		packages []string
		on       *time.Time
		loc      *time.Location
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show every package ranked by schedule risk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewStatusRequest()
			for _, p := range packages {
				id, err := resolvePackageID(cmd.Context(), app, p)
				if err != nil {
					return err
				}
				req.PackageScope = append(req.PackageScope, id)
			}
			req.Location = loc
			if req.Location == nil {
				req.Location = app.location()
			}
			if on != nil {
				y, m, d := on.Date()
				now := time.Date(y, m, d, 12, 0, 0, 0, req.Location)
				req.Now = &now
			}

			resp, err := app.Status.GetStatus(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&packages, "package", nil, "Limit to these packages (repeatable)")
	cmd.Flags().Var(newDayFlag(&on), "on", "Reference day (default today)")
	cmd.Flags().Var(newLocationFlag(&loc), "tz", "IANA time zone for day bucketing")

	return cmd
}
