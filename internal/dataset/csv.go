package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"rental-insights/internal/models"
)

// Column names expected in the header rows.
var (
	PropertyColumns = []string{"id", "address", "postcode", "monthlyRentPence", "region", "capacity", "tenancyEndDate"}
	TenantColumns   = []string{"id", "propertyId", "name"}
)

// dateLayouts are tried in order when parsing tenancyEndDate.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	time.RFC3339,
}

// CSVSource reads the two tables from delimited text files.
type CSVSource struct {
	PropertiesPath string
	TenantsPath    string
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

func (s CSVSource) LoadProperties() ([]models.Property, error) {
	f, err := os.Open(s.PropertiesPath)
	if err != nil {
		return nil, &LoadError{Source: s.PropertiesPath, Err: err}
	}
	defer f.Close()

	return ParseProperties(f, s.PropertiesPath, s.Comma)
}

func (s CSVSource) LoadTenants() ([]models.Tenant, error) {
	f, err := os.Open(s.TenantsPath)
	if err != nil {
		return nil, &LoadError{Source: s.TenantsPath, Err: err}
	}
	defer f.Close()

	return ParseTenants(f, s.TenantsPath, s.Comma)
}

// ParseProperties reads a header row followed by property rows. Columns may
// appear in any order; unknown columns are ignored. Only the rent, capacity
// and end date fields are coerced; other fields are kept verbatim.
func ParseProperties(r io.Reader, name string, comma rune) ([]models.Property, error) {
	var properties []models.Property

	err := readTable(r, name, comma, PropertyColumns, func(row int, get func(string) string) error {
		p := models.Property{
			ID:       get("id"),
			Address:  get("address"),
			Postcode: get("postcode"),
			Region:   models.Region(get("region")),
		}

		rent, err := strconv.ParseInt(strings.TrimSpace(get("monthlyRentPence")), 10, 64)
		if err != nil {
			return &LoadError{Source: name, Row: row, Column: "monthlyRentPence", Err: err}
		}
		p.MonthlyRentPence = rent

		capacity, err := strconv.Atoi(strings.TrimSpace(get("capacity")))
		if err != nil {
			return &LoadError{Source: name, Row: row, Column: "capacity", Err: err}
		}
		p.Capacity = capacity

		end, err := ParseDate(get("tenancyEndDate"))
		if err != nil {
			return &LoadError{Source: name, Row: row, Column: "tenancyEndDate", Err: err}
		}
		p.TenancyEndDate = end

		properties = append(properties, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return properties, nil
}

// ParseTenants reads a header row followed by tenant rows.
func ParseTenants(r io.Reader, name string, comma rune) ([]models.Tenant, error) {
	var tenants []models.Tenant

	err := readTable(r, name, comma, TenantColumns, func(_ int, get func(string) string) error {
		tenants = append(tenants, models.Tenant{
			ID:         get("id"),
			PropertyID: get("propertyId"),
			Name:       get("name"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tenants, nil
}

// ParseDate parses a calendar date and returns midnight UTC of that day.
// Timestamps keep only their date part as written.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// readTable maps the header to column positions and calls fn once per data
// row with a getter keyed by column name.
func readTable(r io.Reader, name string, comma rune, required []string, fn func(row int, get func(string) string) error) error {
	reader := csv.NewReader(r)
	if comma != 0 {
		reader.Comma = comma
	}

	header, err := reader.Read()
	if err == io.EOF {
		return &LoadError{Source: name, Err: errors.New("missing header row")}
	}
	if err != nil {
		return &LoadError{Source: name, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		positions[h] = i
	}
	for _, col := range required {
		if _, ok := positions[col]; !ok {
			return &LoadError{Source: name, Column: col, Err: errors.New("missing column")}
		}
	}

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		row++
		if err != nil {
			return &LoadError{Source: name, Row: row, Err: err}
		}

		get := func(col string) string {
			return record[positions[col]]
		}
		if err := fn(row, get); err != nil {
			return err
		}
	}
}
