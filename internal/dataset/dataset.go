// Package dataset loads the properties and tenants tables once and exposes
// them as a read-only Dataset. A Dataset never changes after New returns, so
// any number of goroutines may query it without locking.
package dataset

import (
	"fmt"
	"iter"
	"slices"

	"rental-insights/internal/models"
)

// Source yields the two raw tables. Implementations: CSVSource here,
// database.GormDB (MySQL) and database.DB (PostgreSQL).
type Source interface {
	LoadProperties() ([]models.Property, error)
	LoadTenants() ([]models.Tenant, error)
}

type Dataset struct {
	properties   []models.Property
	tenants      []models.Tenant
	index        map[string]int
	tenantCounts map[string]int
}

// Load reads both tables from src and builds a Dataset. Every failure is a
// *LoadError and matches ErrLoadFailure.
func Load(src Source) (*Dataset, error) {
	properties, err := src.LoadProperties()
	if err != nil {
		return nil, asLoadError("properties", err)
	}

	tenants, err := src.LoadTenants()
	if err != nil {
		return nil, asLoadError("tenants", err)
	}

	return New(properties, tenants)
}

// New copies the given rows into a Dataset. Property order is preserved.
// Property ids must be unique; tenant references are not checked.
func New(properties []models.Property, tenants []models.Tenant) (*Dataset, error) {
	ds := &Dataset{
		properties:   slices.Clone(properties),
		tenants:      slices.Clone(tenants),
		index:        make(map[string]int, len(properties)),
		tenantCounts: make(map[string]int),
	}

	for i, p := range ds.properties {
		if first, exists := ds.index[p.ID]; exists {
			return nil, &LoadError{
				Source: "properties",
				Row:    i + 1,
				Column: "id",
				Err:    fmt.Errorf("duplicate property id %q (first seen in row %d)", p.ID, first+1),
			}
		}
		ds.index[p.ID] = i
	}

	for _, t := range ds.tenants {
		ds.tenantCounts[t.PropertyID]++
	}

	return ds, nil
}

// Properties returns the properties in load order. The slice is a copy.
func (d *Dataset) Properties() []models.Property {
	return slices.Clone(d.properties)
}

// All yields the properties in load order without copying the table.
func (d *Dataset) All() iter.Seq[models.Property] {
	return func(yield func(models.Property) bool) {
		for _, p := range d.properties {
			if !yield(p) {
				return
			}
		}
	}
}

// TenantLen returns the number of tenants, dangling references included.
func (d *Dataset) TenantLen() int {
	return len(d.tenants)
}

// Tenants returns the tenants in load order. The slice is a copy.
func (d *Dataset) Tenants() []models.Tenant {
	return slices.Clone(d.tenants)
}

// Property looks up a property by id.
func (d *Dataset) Property(id string) (models.Property, bool) {
	i, ok := d.index[id]
	if !ok {
		return models.Property{}, false
	}
	return d.properties[i], true
}

// TenantCount is the number of tenants whose PropertyID equals id. It is
// zero for unknown ids.
func (d *Dataset) TenantCount(id string) int {
	return d.tenantCounts[id]
}

// Len returns the number of properties.
func (d *Dataset) Len() int {
	return len(d.properties)
}
