package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"forfettario/internal/config"
	"forfettario/internal/fiscal"
	"forfettario/internal/logger"
	"forfettario/internal/reconciliation"
	"forfettario/internal/sheets"
	"forfettario/internal/simulation"
	"forfettario/internal/store/sqlite"
	"forfettario/pkg/models"
	"forfettario/pkg/services"
)

// app bundles what a command needs: configuration, the calculators built on
// the configured rates, and the ledger source.
type app struct {
	cfg        *config.Config
	engine     *fiscal.Engine
	reconciler *reconciliation.Reconciler
	simulator  *simulation.Simulator
	source     services.SnapshotSource
	store      *sqlite.Store // nil unless the source is sqlite
	log        zerolog.Logger
}

func newApp(cmd *cobra.Command, component string) (*app, error) {
	const op = "newApp"

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	source, _ := cmd.Flags().GetString("source")
	owner, _ := cmd.Flags().GetString("owner")
	db, _ := cmd.Flags().GetString("db")
	if err := cfg.ApplyOverrides(source, owner, db); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rates, err := cfg.Rates()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load tax rates: %w", op, err)
	}

	engine := fiscal.NewEngine(rates)
	a := &app{
		cfg:        cfg,
		engine:     engine,
		reconciler: reconciliation.NewReconciler(engine, cfg.TaxCategory),
		simulator:  simulation.NewSimulator(engine),
		log:        logger.WithOwner(component, cfg.Owner),
	}

	ctx := cmd.Context()
	switch cfg.LedgerSource {
	case config.SourceSheets:
		svc, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to initialize Google Sheets service: %w", op, err)
		}
		a.source = sheets.NewLedgerReader(svc)
	default:
		store, err := sqlite.Open(cfg.LedgerDB)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.store = store
		a.source = store
	}

	a.log.Debug().
		Str("source", cfg.LedgerSource).
		Int("rates_year", rates.Year).
		Msg("Application initialized")

	return a, nil
}

func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func (a *app) snapshot(ctx context.Context) (models.Ledger, error) {
	l, err := a.source.Snapshot(ctx, a.cfg.Owner)
	if err != nil {
		return models.Ledger{}, fmt.Errorf("failed to read ledger: %w", err)
	}
	return l, nil
}

// ledgerStore returns the writable store, which only the sqlite source has.
func (a *app) ledgerStore() (services.LedgerStore, error) {
	if a.store == nil {
		return nil, fmt.Errorf("the %s source is read-only, use --source sqlite", a.cfg.LedgerSource)
	}
	return a.store, nil
}

// year returns the --year flag when given, otherwise FISCAL_YEAR (0 = all years).
func (a *app) year(cmd *cobra.Command) int {
	if cmd.Flags().Changed("year") {
		year, _ := cmd.Flags().GetInt("year")
		return year
	}
	return a.cfg.FiscalYear
}

// referenceYear is like year but falls back to the year of the tax rates
// instead of all years.
func (a *app) referenceYear(cmd *cobra.Command) int {
	if cmd.Flags().Changed("year") {
		year, _ := cmd.Flags().GetInt("year")
		return year
	}
	return a.cfg.ReferenceYear(a.engine.Rates())
}

func jsonOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}
