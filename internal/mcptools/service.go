// Package mcptools exposes the calculations as read-only MCP tools. Every
// call reads a fresh ledger snapshot and answers with plain text.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"forfettario/internal/cashflow"
	"forfettario/internal/fiscal"
	"forfettario/internal/kpi"
	"forfettario/internal/reconciliation"
	"forfettario/internal/simulation"
	"forfettario/pkg/models"
	"forfettario/pkg/services"
)

// Service answers tool calls for one owner.
type Service struct {
	source     services.SnapshotSource
	owner      string
	engine     *fiscal.Engine
	reconciler *reconciliation.Reconciler
	simulator  *simulation.Simulator
}

// NewService creates a Service reading owner's ledger from source.
func NewService(source services.SnapshotSource, owner string, engine *fiscal.Engine, reconciler *reconciliation.Reconciler, simulator *simulation.Simulator) *Service {
	return &Service{
		source:     source,
		owner:      owner,
		engine:     engine,
		reconciler: reconciler,
		simulator:  simulator,
	}
}

func (s *Service) snapshot(ctx context.Context) (models.Ledger, error) {
	l, err := s.source.Snapshot(ctx, s.owner)
	if err != nil {
		return models.Ledger{}, fmt.Errorf("read ledger: %w", err)
	}
	return l, nil
}

// AnnualSummary returns the tax summary of the invoices of year (0 = all).
func (s *Service) AnnualSummary(ctx context.Context, year int) (string, error) {
	l, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	invoices := fiscal.FilterInvoices(l.Invoices, year)
	if len(invoices) == 0 {
		return fmt.Sprintf("No invoices found for %s.", yearLabel(year)), nil
	}

	sum := s.engine.AnnualSummary(invoices)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Annual summary (%s, %d invoices)\n", yearLabel(year), len(invoices))
	writeSummary(&sb, sum)
	fmt.Fprintf(&sb, "Tax burden: %s%%\n", sum.TaxBurdenPercentage().StringFixed(2))
	return sb.String(), nil
}

// BankBalance returns the cumulative balance up to the end of year.
func (s *Service) BankBalance(ctx context.Context, year int) (string, error) {
	l, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	b := s.reconciler.LedgerBalance(reconciliation.UpToYear(l, year))
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bank balance (up to %s)\n", yearLabel(year))
	fmt.Fprintf(&sb, "  Net from invoices:  %s EUR\n", money(b.NetFromInvoices))
	fmt.Fprintf(&sb, "  Withdrawals:       -%s EUR\n", money(b.TotalWithdrawals))
	fmt.Fprintf(&sb, "  Outflows:          -%s EUR\n", money(b.TotalOutflows))
	fmt.Fprintf(&sb, "  Inflows:           +%s EUR\n", money(b.TotalInflows))
	fmt.Fprintf(&sb, "  Net available:      %s EUR\n", money(b.NetAvailable))
	return sb.String(), nil
}

// SafeToWithdraw returns the reserve for year and what is left after it.
func (s *Service) SafeToWithdraw(ctx context.Context, year int) (string, error) {
	l, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	r, err := s.reconciler.Reserve(l, year)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tax reserve for %d\n", year)
	fmt.Fprintf(&sb, "  Net available:               %s EUR\n", money(r.Balance.NetAvailable))
	fmt.Fprintf(&sb, "  Theoretical tax for %d:    %s EUR\n", year, money(r.TheoreticalTaxForYear))
	fmt.Fprintf(&sb, "  Taxes paid in %d:          %s EUR\n", year-1, money(r.TaxesPaidPriorYear))
	fmt.Fprintf(&sb, "  Taxes paid in %d:          %s EUR\n", year, money(r.TaxesAlreadyPaid))
	fmt.Fprintf(&sb, "  Balance due for %d:        %s EUR\n", year, money(r.BalanceDueForYear))
	fmt.Fprintf(&sb, "  First advance for %d:      %s EUR\n", year+1, money(r.FirstInstallmentNextYear))
	fmt.Fprintf(&sb, "  Total to reserve:            %s EUR\n", money(r.TotalToReserve))
	fmt.Fprintf(&sb, "Safe to withdraw: %s EUR\n", money(r.SafeNetAvailable))
	return sb.String(), nil
}

// KPIs returns the headline indicators for year (0 = all).
func (s *Service) KPIs(ctx context.Context, year int) (string, error) {
	l, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	k := kpi.FromLedger(l, year)
	var sb strings.Builder
	fmt.Fprintf(&sb, "KPIs (%s)\n", yearLabel(year))
	fmt.Fprintf(&sb, "  Total income:      %s EUR\n", money(k.TotalIncome))
	fmt.Fprintf(&sb, "  Total expense:     %s EUR\n", money(k.TotalExpense))
	fmt.Fprintf(&sb, "  Net balance:       %s EUR\n", money(k.NetBalance))
	fmt.Fprintf(&sb, "  Monthly average:   %s EUR\n", money(k.AverageMonthlyInvoiced))
	fmt.Fprintf(&sb, "  Best client:       %s (%s EUR)\n", k.BestClient.Name, money(k.BestClient.Amount))
	fmt.Fprintf(&sb, "  Invoices/clients:  %d/%d\n", k.InvoiceCount, k.ClientCount)
	return sb.String(), nil
}

// SimulateInvoice compares the summary of year with and without an extra invoice.
func (s *Service) SimulateInvoice(ctx context.Context, amount decimal.Decimal, year int) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("amount must be greater than zero")
	}
	l, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	c := s.simulator.Compare(fiscal.FilterInvoices(l.Invoices, year), amount)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Simulation of an extra invoice of %s EUR (%s)\n", money(amount), yearLabel(year))
	sb.WriteString("With the extra invoice:\n")
	writeSummary(&sb, c.Simulated)
	fmt.Fprintf(&sb, "Extra tax and contributions: %s EUR\n", money(c.ExtraTax))
	fmt.Fprintf(&sb, "Extra net: %s EUR\n", money(c.ExtraNet))
	return sb.String(), nil
}

// CategoryBreakdown aggregates outflows or inflows of year by category.
func (s *Service) CategoryBreakdown(ctx context.Context, kind models.Kind, year int) (string, error) {
	l, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	var items []cashflow.Movement
	switch kind {
	case models.KindOutflow:
		items = cashflow.FromOutflows(l.Outflows)
	case models.KindInflow:
		items = cashflow.FromInflows(l.Inflows)
	default:
		return "", fmt.Errorf("kind must be outflows or inflows, got %q", kind)
	}

	var filtered []cashflow.Movement
	for _, m := range items {
		if m.Date.InYear(year) {
			filtered = append(filtered, m)
		}
	}

	totals := cashflow.ByCategory(filtered)
	if len(totals) == 0 {
		return fmt.Sprintf("No %s found for %s.", kind, yearLabel(year)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s by category (%s)\n", strings.ToUpper(string(kind[:1]))+string(kind[1:]), yearLabel(year))
	for _, t := range totals {
		fmt.Fprintf(&sb, "  %-24s %12s EUR  %6s%%\n", t.Category, money(t.Total), t.PercentageOfGroup.StringFixed(1))
	}
	return sb.String(), nil
}

func writeSummary(sb *strings.Builder, sum fiscal.Summary) {
	fmt.Fprintf(sb, "  Total invoiced:       %s EUR\n", money(sum.TotalInvoiced))
	fmt.Fprintf(sb, "  Taxable income:       %s EUR\n", money(sum.TaxableIncome))
	fmt.Fprintf(sb, "  Social contribution:  %s EUR\n", money(sum.SocialContribution))
	fmt.Fprintf(sb, "  Substitute tax:       %s EUR\n", money(sum.SubstituteTax))
	fmt.Fprintf(sb, "  Total tax:            %s EUR\n", money(sum.TotalTax))
	fmt.Fprintf(sb, "  Net from invoices:    %s EUR\n", money(sum.NetFromInvoices))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func yearLabel(year int) string {
	if year == 0 {
		return "all years"
	}
	return fmt.Sprintf("%d", year)
}
