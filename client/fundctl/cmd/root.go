package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"FundingIntel/backend/go/pkg/circuitbreaker"
	pkghttp "FundingIntel/backend/go/pkg/http"

	"github.com/spf13/cobra"
)

var (
	serverURL  string
	timeout    time.Duration
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:          "fundctl",
	Short:        "A CLI client for the Funding Intelligence service",
	Long:         `fundctl talks to a running funding_service over its JSON API.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fundctl: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	defaultServer := os.Getenv("FUNDCTL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "funding service base URL (env FUNDCTL_SERVER)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print raw JSON responses")
}

// newClient builds the API client. A breaker trips after repeated server
// errors so scripted loops fail fast.
func newClient() *pkghttp.Client {
	return pkghttp.NewClientWithBreaker(serverURL, circuitbreaker.New(circuitbreaker.Config{
		Name:             "fundctl",
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          10 * time.Second,
	}))
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
