package cmd

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"forfettario/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the calculations as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing read-only
tools: annual_summary, bank_balance, safe_to_withdraw, kpis, simulate_invoice
and category_breakdown. Logs go to LOG_OUTPUT, which must not be stdout.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "mcp")
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.LogOutput == "stdout" {
		return fmt.Errorf("LOG_OUTPUT=stdout would corrupt the MCP stream")
	}

	svc := mcptools.NewService(a.source, a.cfg.Owner, a.engine, a.reconciler, a.simulator)
	s := mcptools.NewServer(svc, version)

	a.log.Info().Str("owner", a.cfg.Owner).Msg("MCP server listening on stdio")

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
