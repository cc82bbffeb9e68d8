package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"rental-insights/internal/analytics"
	"rental-insights/internal/app"
	"rental-insights/internal/config"
	"rental-insights/internal/logging"
	"rental-insights/internal/models"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	properties := flag.String("properties", "", "properties file (overrides config)")
	tenants := flag.String("tenants", "", "tenants file (overrides config)")
	ids := flag.String("ids", "p_1002", "comma-separated property ids to report on")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *properties != "" {
		cfg.Dataset.PropertiesPath = *properties
	}
	if *tenants != "" {
		cfg.Dataset.TenantsPath = *tenants
	}

	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	svc, err := app.LoadService(cfg, logger)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	writeReport(os.Stdout, svc, splitIDs(*ids))
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// writeReport prints the region averages, the per-property figures for ids
// and the invalid postcode list. Query errors are printed inline.
func writeReport(w io.Writer, svc *analytics.Service, ids []string) {
	fmt.Fprintln(w, "Average rent by region (pence)")
	for _, region := range models.Regions {
		avg, err := svc.AverageRentForRegion(region)
		switch {
		case errors.Is(err, analytics.ErrNoDataForRegion):
			fmt.Fprintf(w, "  %-10s no properties\n", region)
		case err != nil:
			fmt.Fprintf(w, "  %-10s error: %v\n", region, err)
		default:
			fmt.Fprintf(w, "  %-10s %d\n", region, avg)
		}
	}

	for _, id := range ids {
		fmt.Fprintf(w, "\nProperty %s\n", id)
		status, err := svc.PropertyStatus(id)
		if err != nil {
			fmt.Fprintf(w, "  error: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "  status:                %s\n", status)

		pence, err := svc.MonthlyRentPerTenant(id, analytics.CurrencyPence)
		if err != nil {
			fmt.Fprintf(w, "  rent per tenant:       %v\n", err)
			continue
		}
		fmt.Fprintf(w, "  rent per tenant (p):   %g\n", pence)

		pounds, err := svc.MonthlyRentPerTenant(id, analytics.CurrencyPound)
		if err != nil {
			fmt.Fprintf(w, "  rent per tenant (GBP): %v\n", err)
			continue
		}
		fmt.Fprintf(w, "  rent per tenant (GBP): %g\n", pounds)
	}

	invalid := svc.PropertyIDsWithInvalidPostcodes()
	fmt.Fprintf(w, "\nInvalid postcodes (%d)\n", len(invalid))
	for _, id := range invalid {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
