package cli

import (
	"time"

	"github.com/alexanderramin/scurve/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Curves   service.CurveService
	Status   service.StatusService
	Progress service.ProgressService
	Imports  service.ImportService
	Catalog  service.CatalogService

	// Location is the configured zone for day bucketing.
	Location *time.Location
	// SmoothDisplay selects the never-decreasing realized series by default.
	SmoothDisplay bool

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

// NewRootCmd creates the top-level "scurve" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scurve",
		Short:         "Planned vs realized S-curves for maintenance packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newPackageCmd(app),
		newCurveCmd(app),
		newStatusCmd(app),
		newProgressCmd(app),
		newChecklistCmd(app),
		newBrowseCmd(app),
	)

	return root
}
