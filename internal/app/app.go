// Package app wires configuration, the dataset source and the query
// service together. Both commands start through here.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"rental-insights/internal/analytics"
	"rental-insights/internal/config"
	"rental-insights/internal/database"
	"rental-insights/internal/dataset"
)

var (
	_ dataset.Source = dataset.CSVSource{}
	_ dataset.Source = (*database.GormDB)(nil)
	_ dataset.Source = (*database.DB)(nil)
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSource returns the dataset source selected by cfg.Dataset.Source.
// The returned closer releases any database connection.
func OpenSource(cfg *config.Config) (dataset.Source, io.Closer, error) {
	switch cfg.Dataset.Source {
	case "", "csv":
		comma, err := cfg.Dataset.Comma()
		if err != nil {
			return nil, nil, err
		}
		return dataset.CSVSource{
			PropertiesPath: cfg.Dataset.PropertiesPath,
			TenantsPath:    cfg.Dataset.TenantsPath,
			Comma:          comma,
		}, nopCloser{}, nil
	case "mysql":
		db, err := database.NewGormDB(cfg.Database.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		return db, db, nil
	case "postgres":
		db, err := database.NewDB(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		return db, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// LoadService loads the dataset once and returns a query service bound to
// the configured timezone.
func LoadService(cfg *config.Config, logger *slog.Logger) (*analytics.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	src, closer, err := OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	ds, err := dataset.Load(src)
	if err != nil {
		return nil, err
	}

	logger.Info("dataset loaded",
		"source", cfg.Dataset.Source,
		"properties", ds.Len(),
		"tenants", ds.TenantLen(),
		"timezone", loc.String(),
	)

	return analytics.NewService(ds, analytics.WithLocation(loc)), nil
}
