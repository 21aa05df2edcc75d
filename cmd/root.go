package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"forfettario/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "forfettario",
	Short: "Bookkeeping and tax planning for the Italian flat-rate regime",
	Long: `forfettario keeps the ledger of a sole proprietor under the Italian
"regime forfettario" (invoices, withdrawals, outflows, inflows) and answers
the questions that matter during the year: how much tax the invoices carry,
how much money is really in the bank, and how much of it can be withdrawn
without touching what is owed to the tax office.

The ledger is read from a local SQLite database or from a Google Sheet with
one sheet per collection (Fatture, Prelievi, Uscite, Entrate).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	log := logger.WithComponent("cmd")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("source", "", "Ledger source: sqlite or sheets (default from LEDGER_SOURCE)")
	rootCmd.PersistentFlags().String("owner", "", "Ledger owner (default from FORFETTARIO_OWNER)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (default from LEDGER_DB)")
	rootCmd.PersistentFlags().Bool("json", false, "Print JSON instead of text")
}
