package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"rental-insights/internal/config"
	"rental-insights/internal/models"
)

// DB reads the properties and tenants tables from PostgreSQL through
// database/sql. It satisfies dataset.Source and never writes.
type DB struct {
	conn *sql.DB
}

func NewDB(cfg config.PostgresConfig) (*DB, error) {
	conn, err := sql.Open("postgres", postgresConnString(cfg))
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// NewDBFromConn wraps an already opened connection pool
func NewDBFromConn(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// LoadProperties returns every property ordered by id
func (db *DB) LoadProperties() ([]models.Property, error) {
	rows, err := db.conn.Query(`
		SELECT id, address, postcode, monthly_rent_pence, region, capacity, tenancy_end_date
		FROM properties
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		var region string
		if err := rows.Scan(&p.ID, &p.Address, &p.Postcode, &p.MonthlyRentPence, &region, &p.Capacity, &p.TenancyEndDate); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		p.Region = models.Region(region)
		p.TenancyEndDate = dateOnly(p.TenancyEndDate)
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// LoadTenants returns every tenant ordered by id
func (db *DB) LoadTenants() ([]models.Tenant, error) {
	rows, err := db.conn.Query(`SELECT id, property_id, name FROM tenants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.PropertyID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	return tenants, rows.Err()
}

func postgresConnString(cfg config.PostgresConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteConnValue(cfg.Host), cfg.Port, quoteConnValue(cfg.User),
		quoteConnValue(cfg.Password), quoteConnValue(cfg.Database), sslmode)
}

// quoteConnValue quotes a keyword/value connection parameter when it is
// empty or contains spaces, quotes or backslashes.
func quoteConnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
