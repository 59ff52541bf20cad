package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/scurve/internal/cli/formatter"
	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/spf13/cobra"
)

func newCurveCmd(app *App) *cobra.Command {
	var (
		on    *time.Time
		loc   *time.Location
		raw   bool
		every int
	)

	cmd := &cobra.Command{
		Use:       "curve {service|subpackage|package} <id>",
		Short:     "Show planned vs realized curves and indicators",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.ScopeService), string(domain.ScopeSubpackage), string(domain.ScopePackage)},
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := domain.Scope(args[0])
			id := args[1]
			if scope == domain.ScopePackage {
				var err error
				if id, err = resolvePackageID(cmd.Context(), app, id); err != nil {
					return err
				}
			}

			req := contract.NewCurveRequest(scope, id)
			req.On = on
			req.Location = loc
			if req.Location == nil {
				req.Location = app.location()
			}

			resp, err := fetchCurve(cmd.Context(), app, req)
			if err != nil {
				return err
			}

			showRaw := !app.SmoothDisplay
			if cmd.Flags().Changed("raw") {
				showRaw = raw
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCurve(resp, formatter.CurveOptions{Raw: showRaw, Every: every}))
			return nil
		},
	}

	cmd.Flags().Var(newDayFlag(&on), "on", "Reference day for indicators (default today)")
	cmd.Flags().Var(newLocationFlag(&loc), "tz", "IANA time zone for day bucketing")
	cmd.Flags().BoolVar(&raw, "raw", false, "Show realized values with downward corrections")
	cmd.Flags().IntVar(&every, "every", 1, "Show one row every N days")

	return cmd
}

func fetchCurve(ctx context.Context, app *App, req contract.CurveRequest) (*contract.CurveResponse, error) {
	switch req.Scope {
	case domain.ScopeService:
		return app.Curves.ServiceCurve(ctx, req)
	case domain.ScopeSubpackage:
		return app.Curves.SubpackageCurve(ctx, req)
	case domain.ScopePackage:
		return app.Curves.PackageCurve(ctx, req)
	default:
		return nil, fmt.Errorf("unknown scope %q: use service, subpackage or package", req.Scope)
	}
}
