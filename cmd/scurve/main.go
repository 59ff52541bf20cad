package main

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/alexanderramin/scurve/internal/cli"
	"github.com/alexanderramin/scurve/internal/config"
	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/repository"
	"github.com/alexanderramin/scurve/internal/service"
	"github.com/mattn/go-isatty"
)

// Use cases slower than this are logged at WARN.
const slowUseCase = 500 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	packageRepo := repository.NewSQLitePackageRepo(database)
	subpackageRepo := repository.NewSQLiteSubpackageRepo(database)
	serviceRepo := repository.NewSQLiteServiceRepo(database)
	checklistRepo := repository.NewSQLiteChecklistRepo(database)
	eventRepo := repository.NewSQLiteProgressEventRepo(database)
	overlayRepo := repository.NewSQLiteOverlayRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, service.WithSlowThreshold(slowUseCase)))
	}
	if cfg.MetricsFile != "" {
		metrics := service.NewMetricsObserver()
		observers = append(observers, metrics)
		defer func() {
			if werr := metrics.WriteTextfile(cfg.MetricsFile); werr != nil && err == nil {
				err = fmt.Errorf("writing metrics: %w", werr)
			}
		}()
	}

	loc := cfg.Location
	app := &cli.App{
		Curves:        service.NewCurveService(packageRepo, subpackageRepo, serviceRepo, checklistRepo, eventRepo, loc, observers...),
		Status:        service.NewStatusService(packageRepo, subpackageRepo, serviceRepo, checklistRepo, eventRepo, loc, observers...),
		Progress:      service.NewProgressService(serviceRepo, checklistRepo, overlayRepo, uow, loc, observers...),
		Imports:       service.NewImportService(uow, observers...),
		Catalog:       service.NewCatalogService(packageRepo, subpackageRepo, serviceRepo, checklistRepo, overlayRepo, observers...),
		Location:      loc,
		SmoothDisplay: cfg.SmoothDisplay,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
