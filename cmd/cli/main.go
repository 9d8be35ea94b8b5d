package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/solobooks/ledger/internal/fx"
	"github.com/solobooks/ledger/internal/infrastructure/config"
	"github.com/solobooks/ledger/internal/infrastructure/logger"
	"github.com/solobooks/ledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Ledger CLI tool",
		Long:  `A command line interface for the account ledger service.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(migrateCmd(), ratesCmd(), totalCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Run: func(cmd *cobra.Command, args []string) {
				runMigrations(false)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Run: func(cmd *cobra.Command, args []string) {
				runMigrations(true)
			},
		},
	)

	return cmd
}

func runMigrations(down bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})

	if down {
		err = postgres.RunMigrationsDown(log, cfg.DatabaseURL, cfg.MigrationsPath)
	} else {
		err = postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath)
	}
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func ratesCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Fetch current exchange rates",
		Run: func(cmd *cobra.Command, args []string) {
			fetchRates(base)
		},
	}

	cmd.Flags().StringVar(&base, "base", "USD", "Base currency")

	return cmd
}

func fetchRates(base string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	provider := fx.NewHTTPProvider(cfg.FXAPIURL, timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	rates, err := provider.FetchRates(ctx, base)
	if err != nil {
		fmt.Printf("Failed to fetch rates: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rates for %s:\n", base)
	for currency, rate := range rates {
		fmt.Printf("  %s: %s\n", currency, rate)
	}
}

func totalCmd() *cobra.Command {
	var (
		ownerID  string
		base     string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Show an owner's total across all accounts",
		Run: func(cmd *cobra.Command, args []string) {
			fetchTotal(ownerID, base, currency)
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID (required)")
	cmd.Flags().StringVar(&base, "base", "", "Base currency for the total")
	cmd.Flags().StringVar(&currency, "currency", "", "Restrict to accounts in this currency")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func fetchTotal(ownerID, base, currency string) {
	params := url.Values{}
	params.Set("owner_id", ownerID)
	if base != "" {
		params.Set("base", base)
	}
	if currency != "" {
		params.Set("currency", currency)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/reports/total?" + params.Encode())
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Total (%v): %v\n", result["base"], result["total"])
}
