package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"forfettario/internal/config"
	"forfettario/internal/ledger"
	"forfettario/internal/sheets"
	"forfettario/pkg/models"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage the records of the local ledger",
	Long: `Add, list, delete and reclassify records in the local SQLite ledger, or import
them from the Google Sheet. Collections: fatture (invoices), prelievi
(withdrawals), uscite (outflows), entrate (inflows).`,
}

var ledgerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a record",
	Example: `  forfettario ledger add --kind fatture --date 2025-03-20 --client "Acme srl" --amount 1.500,00
  forfettario ledger add --kind uscite --date 2025-06-16 --category Tasse --amount 2321,79 --description "F24 saldo"`,
	RunE: runLedgerAdd,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records of a collection",
	RunE:  runLedgerList,
}

var ledgerDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runLedgerDelete,
}

var ledgerReclassifyCmd = &cobra.Command{
	Use:   "reclassify <id>",
	Short: "Move a record to another collection",
	Long: `Move a record to another collection, e.g. an outflow that was really a
withdrawal. The record is inserted in the destination and then removed from the
source; if the removal fails the copy is removed again.`,
	Example: `  forfettario ledger reclassify 3f2a... --from uscite --to prelievi`,
	Args:    cobra.ExactArgs(1),
	RunE:    runLedgerReclassify,
}

var ledgerImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the ledger from Google Sheets into SQLite",
	Long: `Read the Fatture, Prelievi, Uscite and Entrate sheets of GOOGLE_SHEET_URL and
store every valid row in the local ledger. Rows that cannot be parsed are logged
and skipped. With --replace the owner's records are deleted first.`,
	RunE: runLedgerImport,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerAddCmd, ledgerListCmd, ledgerDeleteCmd, ledgerReclassifyCmd, ledgerImportCmd)

	ledgerAddCmd.Flags().String("kind", "", "Collection: fatture, prelievi, uscite, entrate")
	ledgerAddCmd.Flags().String("date", "", "Date (YYYY-MM-DD or DD/MM/YYYY)")
	ledgerAddCmd.Flags().String("amount", "", "Amount, positive (e.g. 1500 or 1.500,00)")
	ledgerAddCmd.Flags().String("description", "", "Description")
	ledgerAddCmd.Flags().String("client", "", "Client (invoices)")
	ledgerAddCmd.Flags().String("category", "", "Category (outflows and inflows)")
	ledgerAddCmd.Flags().String("note", "", "Free note")
	ledgerAddCmd.Flags().Bool("excluded", false, "Exclude from charts (outflows and inflows)")
	ledgerAddCmd.MarkFlagRequired("kind")
	ledgerAddCmd.MarkFlagRequired("date")
	ledgerAddCmd.MarkFlagRequired("amount")

	ledgerListCmd.Flags().String("kind", "", "Collection: fatture, prelievi, uscite, entrate")
	ledgerListCmd.Flags().Int("year", 0, "Only records of this year (0 = all years)")
	ledgerListCmd.MarkFlagRequired("kind")

	ledgerReclassifyCmd.Flags().String("from", "", "Source collection")
	ledgerReclassifyCmd.Flags().String("to", "", "Destination collection")
	ledgerReclassifyCmd.MarkFlagRequired("from")
	ledgerReclassifyCmd.MarkFlagRequired("to")

	ledgerImportCmd.Flags().Bool("replace", false, "Delete the owner's records before importing")
}

func kindFlag(cmd *cobra.Command, name string) (models.Kind, error) {
	raw, _ := cmd.Flags().GetString(name)
	kind, err := models.ParseKind(raw)
	if err != nil {
		return "", fmt.Errorf("invalid --%s: %w", name, err)
	}
	return kind, nil
}

func runLedgerAdd(cmd *cobra.Command, args []string) error {
	kind, err := kindFlag(cmd, "kind")
	if err != nil {
		return err
	}

	dateStr, _ := cmd.Flags().GetString("date")
	date, err := ledger.ParseDate(dateStr)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := ledger.ParseAmount(amountStr)
	if err != nil {
		return fmt.Errorf("invalid --amount: %w", err)
	}

	record := models.Record{Kind: kind, Date: date, Amount: amount}
	record.Description, _ = cmd.Flags().GetString("description")
	record.Client, _ = cmd.Flags().GetString("client")
	record.Category, _ = cmd.Flags().GetString("category")
	record.Note, _ = cmd.Flags().GetString("note")
	record.ExcludedFromCharts, _ = cmd.Flags().GetBool("excluded")

	a, err := newApp(cmd, "ledger")
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.ledgerStore()
	if err != nil {
		return err
	}

	id, err := store.Create(cmd.Context(), a.cfg.Owner, record)
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	a.log.Info().Str("kind", string(kind)).Str("id", id).Msg("Record added")

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"id": id})
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	kind, err := kindFlag(cmd, "kind")
	if err != nil {
		return err
	}
	year, _ := cmd.Flags().GetInt("year")

	a, err := newApp(cmd, "ledger")
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.ledgerStore()
	if err != nil {
		return err
	}

	records, err := store.List(cmd.Context(), a.cfg.Owner, kind)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	var filtered []models.Record
	for _, r := range records {
		if r.Date.InYear(year) {
			filtered = append(filtered, r)
		}
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), filtered)
	}
	printRecords(cmd.OutOrStdout(), kind, filtered)
	return nil
}

func printRecords(w io.Writer, kind models.Kind, records []models.Record) {
	if len(records) == 0 {
		fmt.Fprintf(w, "Nessun record in %s.\n", kind)
		return
	}
	for _, r := range records {
		detail := r.Client
		if kind == models.KindOutflow || kind == models.KindInflow {
			detail = r.Category
			if r.ExcludedFromCharts {
				detail += " (escluso)"
			}
		}
		fmt.Fprintf(w, "%s  %-36s %14s  %-20s %s\n", r.Date, r.ID, formatEuro(r.Amount), truncate(detail, 20), r.Description)
	}
}

func runLedgerDelete(cmd *cobra.Command, args []string) error {
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, "ledger")
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.ledgerStore()
	if err != nil {
		return err
	}

	if err := store.Delete(cmd.Context(), a.cfg.Owner, kind, args[1]); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	a.log.Info().Str("kind", string(kind)).Str("id", args[1]).Msg("Record deleted")
	return nil
}

func runLedgerReclassify(cmd *cobra.Command, args []string) error {
	from, err := kindFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := kindFlag(cmd, "to")
	if err != nil {
		return err
	}

	a, err := newApp(cmd, "ledger")
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.ledgerStore()
	if err != nil {
		return err
	}

	newID, err := ledger.Reclassify(cmd.Context(), store, a.cfg.Owner, from, args[0], to)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"id": newID, "kind": string(to)})
	}
	fmt.Fprintln(cmd.OutOrStdout(), newID)
	return nil
}

func runLedgerImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "ledger-import")
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.ledgerStore()
	if err != nil {
		return err
	}
	if a.cfg.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL environment variable is required")
	}

	ctx := cmd.Context()
	svc, err := sheets.NewSheetsService(ctx, a.cfg.GoogleSheetURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}
	reader := sheets.NewLedgerReader(svc)

	replace, _ := cmd.Flags().GetBool("replace")
	counts := make(map[models.Kind]int)
	for _, kind := range models.Kinds {
		records, err := reader.ReadKind(ctx, kind)
		if err != nil {
			return err
		}

		if replace {
			existing, err := store.List(ctx, a.cfg.Owner, kind)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", kind, err)
			}
			for _, r := range existing {
				if err := store.Delete(ctx, a.cfg.Owner, kind, r.ID); err != nil {
					return fmt.Errorf("failed to delete %s %s: %w", kind, r.ID, err)
				}
			}
		}

		for _, r := range records {
			r.ID = "" // row numbers are not stable ids
			if _, err := store.Create(ctx, a.cfg.Owner, r); err != nil {
				return fmt.Errorf("failed to import %s: %w", kind, err)
			}
			counts[kind]++
		}
	}

	a.log.Info().
		Str("source", config.SourceSheets).
		Int("fatture", counts[models.KindInvoice]).
		Int("prelievi", counts[models.KindWithdrawal]).
		Int("uscite", counts[models.KindOutflow]).
		Int("entrate", counts[models.KindInflow]).
		Msg("Ledger imported")

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), counts)
	}
	for _, kind := range models.Kinds {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", kind, counts[kind])
	}
	return nil
}
