package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/scurve/internal/cli/formatter"
	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record and inspect service progress",
	}
	cmd.AddCommand(newProgressLogCmd(app), newProgressShowCmd(app))
	return cmd
}

func newProgressLogCmd(app *App) *cobra.Command {
	var (
		day    *time.Time
		author string
		note   string
	)

	cmd := &cobra.Command{
		Use:   "log <service-id> [percent]",
		Short: "Record a manual completion percentage",
		Long: `Record a manual completion percentage for a service.
The entry overrides the checklist until a checklist item changes after it.
Without a percent on an interactive terminal, a form asks for the values.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			serviceID := args[0]

			var req contract.ManualEntryRequest
			if len(args) == 2 {
				pct, err := parsePercent(args[1])
				if err != nil {
					return err
				}
				req = contract.NewManualEntryRequest(serviceID, pct)
				req.Day = day
				req.Author = author
				req.Description = note
			} else {
				if !app.interactive() {
					return fmt.Errorf("percent is required when not running in a terminal")
				}
				current, err := app.Progress.Current(cmd.Context(), serviceID)
				if err != nil {
					return err
				}
				in := manualEntryInput{Author: author, Note: note}
				if day != nil {
					in.Day = day.Format("2006-01-02")
				}
				if err := manualEntryForm(current.ServiceName, current.Percent, &in).Run(); err != nil {
					return err
				}
				if req, err = in.request(serviceID); err != nil {
					return err
				}
			}

			view, err := app.Progress.LogManual(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgress(view))
			return nil
		},
	}

	cmd.Flags().Var(newDayFlag(&day), "day", "Worked day the entry refers to (default today)")
	cmd.Flags().StringVar(&author, "author", "", "Who reported the value")
	cmd.Flags().StringVar(&note, "note", "", "Free-text description")

	return cmd
}

func newProgressShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <service-id>",
		Short: "Show reconciled progress and checklist of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Progress.Current(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgress(view))
			return nil
		},
	}
}

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Update service checklist items",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <service-id> <item-id> <percent>",
		Short: "Set the progress of one checklist item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid percent %q", args[2])
			}
			view, err := app.Progress.SetChecklistItem(cmd.Context(), args[0], args[1], pct)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgress(view))
			return nil
		},
	})
	return cmd
}
