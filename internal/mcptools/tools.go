package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"forfettario/pkg/models"
)

// NewServer creates an MCP server with every tool registered.
func NewServer(svc *Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"forfettario",
		version,
		server.WithToolCapabilities(false),
	)
	RegisterTools(s, svc)
	return s
}

// RegisterTools adds all forfettario MCP tools to the server.
func RegisterTools(s *server.MCPServer, svc *Service) {
	registerAnnualSummary(s, svc)
	registerBankBalance(s, svc)
	registerSafeToWithdraw(s, svc)
	registerKPIs(s, svc)
	registerSimulateInvoice(s, svc)
	registerCategoryBreakdown(s, svc)
}

func yearOption(desc string) mcp.ToolOption {
	return mcp.WithNumber("year", mcp.Description(desc))
}

func textResult(result string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func registerAnnualSummary(s *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("annual_summary",
		mcp.WithDescription("Flat-rate tax summary of the invoices: taxable income, INPS contribution, substitute tax, total tax and net, plus the tax burden percentage."),
		yearOption("Fiscal year (YYYY). Omit for all years."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := mcp.ParseInt(request, "year", 0)
		return textResult(svc.AnnualSummary(ctx, year))
	})
}

func registerBankBalance(s *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("bank_balance",
		mcp.WithDescription("Theoretical bank balance: net from invoices minus withdrawals and outflows plus inflows, cumulative up to the end of the year."),
		yearOption("Last fiscal year included (YYYY). Omit for everything."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := mcp.ParseInt(request, "year", 0)
		return textResult(svc.BankBalance(ctx, year))
	})
}

func registerSafeToWithdraw(s *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("safe_to_withdraw",
		mcp.WithDescription("Amount that can be withdrawn after reserving the balance due for the year and the first advance of the next one."),
		mcp.WithNumber("year",
			mcp.Required(),
			mcp.Description("Fiscal year (YYYY)"),
		),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := mcp.ParseInt(request, "year", 0)
		if year <= 0 {
			return mcp.NewToolResultError("year is required"), nil
		}
		return textResult(svc.SafeToWithdraw(ctx, year))
	})
}

func registerKPIs(s *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("kpis",
		mcp.WithDescription("Headline indicators: total income and expense, net balance, monthly average invoiced, best client."),
		yearOption("Fiscal year (YYYY). Omit for all years."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := mcp.ParseInt(request, "year", 0)
		return textResult(svc.KPIs(ctx, year))
	})
}

func registerSimulateInvoice(s *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("simulate_invoice",
		mcp.WithDescription("What-if: recompute the annual summary as if an extra invoice of the given gross amount were issued today."),
		mcp.WithString("amount",
			mcp.Required(),
			mcp.Description("Gross amount of the extra invoice in EUR, e.g. 1500.00"),
		),
		yearOption("Fiscal year whose invoices are the baseline (YYYY). Omit for all years."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("amount")
		if err != nil {
			return mcp.NewToolResultError("amount is required"), nil
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return mcp.NewToolResultError("amount must be a number"), nil
		}
		year := mcp.ParseInt(request, "year", 0)
		return textResult(svc.SimulateInvoice(ctx, amount, year))
	})
}

func registerCategoryBreakdown(s *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("category_breakdown",
		mcp.WithDescription("Outflows or inflows grouped by category with totals and share of the group, largest first. Opening balance and excluded movements are left out."),
		mcp.WithString("kind",
			mcp.Description("outflows (default) or inflows"),
		),
		yearOption("Fiscal year (YYYY). Omit for all years."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := models.ParseKind(mcp.ParseString(request, "kind", "outflows"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		year := mcp.ParseInt(request, "year", 0)
		return textResult(svc.CategoryBreakdown(ctx, kind, year))
	})
}
