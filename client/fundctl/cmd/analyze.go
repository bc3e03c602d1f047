package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract funding data from documents, websites and investors",
}

var analyzeURLCmd = &cobra.Command{
	Use:   "url [address]",
	Short: "Scan a website for a funding scheme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var res analysisResult
		if err := newClient().PostJSON(ctx, "/api/v1/analyze/url", map[string]string{"url": args[0]}, &res); err != nil {
			return err
		}
		return printAnalysis(cmd, res)
	},
}

var analyzeInvestorCmd = &cobra.Command{
	Use:   "investor [name]",
	Short: "Build an investor profile",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var res analysisResult
		if err := newClient().PostJSON(ctx, "/api/v1/analyze/investor", map[string]string{"name": strings.Join(args, " ")}, &res); err != nil {
			return err
		}
		return printAnalysis(cmd, res)
	},
}

var analyzeDocumentCmd = &cobra.Command{
	Use:   "document [file]",
	Short: "Upload a policy document or image for analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var res analysisResult
		if err := newClient().UploadFile(ctx, "/api/v1/analyze/document", "file", filepath.Base(args[0]), data, &res); err != nil {
			return err
		}
		return printAnalysis(cmd, res)
	},
}

var analyzeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the analysis workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		return newClient().PostJSON(ctx, "/api/v1/analyze/reset", nil, nil)
	},
}

func printAnalysis(cmd *cobra.Command, res analysisResult) error {
	if outputJSON {
		return printJSON(cmd, res)
	}
	w := cmd.OutOrStdout()
	switch {
	case res.Error != "":
		fmt.Fprintln(w, res.Error)
	case res.Draft != nil:
		printItem(w, *res.Draft)
	case res.Investor != nil:
		printInvestor(w, *res.Investor)
	}
	return nil
}

func printInvestor(w io.Writer, p investorProfile) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.Type)
	fmt.Fprintf(w, "  Ticket size:     %s\n", p.TicketSize)
	fmt.Fprintf(w, "  Acceptance rate: %s\n", p.AcceptanceRate)
	fmt.Fprintf(w, "  Focus areas:     %s\n", strings.Join(p.FocusAreas, ", "))
	fmt.Fprintf(w, "  Recent exits:    %s\n", strings.Join(p.RecentExits, ", "))
	fmt.Fprintf(w, "  Red flags:       %s\n", strings.Join(p.RedFlags, ", "))
}

func init() {
	analyzeCmd.AddCommand(analyzeURLCmd, analyzeInvestorCmd, analyzeDocumentCmd, analyzeResetCmd)
	rootCmd.AddCommand(analyzeCmd)
}
