// Package analytics answers the rent and occupancy queries over a loaded
// dataset. Every method is a read-only scan or lookup.
package analytics

import (
	"fmt"
	"time"

	"rental-insights/internal/dataset"
	"rental-insights/internal/models"
	"rental-insights/internal/postcode"
)

// Currency selects the unit of a rent result.
type Currency string

const (
	CurrencyPence Currency = "pence"
	CurrencyPound Currency = "pound"
)

// Service runs queries against one immutable dataset.
type Service struct {
	ds  *dataset.Dataset
	now func() time.Time
	loc *time.Location
}

func NewService(ds *dataset.Dataset, opts ...Option) *Service {
	s := &Service{
		ds:  ds,
		now: time.Now,
		loc: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AverageRentForRegion returns the mean monthly rent in pence of the
// properties in region, rounded half up to a whole penny. A region with no
// properties (including any unknown region) yields ErrNoDataForRegion.
func (s *Service) AverageRentForRegion(region models.Region) (int64, error) {
	var total, count int64
	for p := range s.ds.All() {
		if p.Region == region {
			total += p.MonthlyRentPence
			count++
		}
	}

	if count == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoDataForRegion, region)
	}

	return roundHalfUp(total, count), nil
}

// MonthlyRentPerTenant splits a property's monthly rent evenly between its
// tenants. The result is not rounded. An empty currency means pence.
func (s *Service) MonthlyRentPerTenant(propertyID string, currency Currency) (float64, error) {
	if currency == "" {
		currency = CurrencyPence
	}
	if currency != CurrencyPence && currency != CurrencyPound {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}

	p, ok := s.ds.Property(propertyID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPropertyNotFound, propertyID)
	}

	tenants := s.ds.TenantCount(propertyID)
	if tenants == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoTenants, propertyID)
	}

	perTenant := float64(p.MonthlyRentPence) / float64(tenants)
	if currency == CurrencyPound {
		return perTenant / 100, nil
	}
	return perTenant, nil
}

// PropertyIDsWithInvalidPostcodes lists, in load order, the ids of properties
// whose postcode does not match postcode.Grammar. The result is empty, not
// nil, when every postcode is valid.
func (s *Service) PropertyIDsWithInvalidPostcodes() []string {
	ids := []string{}
	for p := range s.ds.All() {
		if !postcode.Valid(p.Postcode) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// PropertyStatus classifies a property as of today. The checks run in order
// and the first match wins:
//
//  1. no tenants: PROPERTY_VACANT
//  2. today is on or after the tenancy end date: PROPERTY_OVERDUE
//  3. fewer tenants than capacity: PARTIALLY_VACANT
//  4. otherwise, over-capacity included: PROPERTY_ACTIVE
func (s *Service) PropertyStatus(propertyID string) (models.PropertyStatus, error) {
	p, ok := s.ds.Property(propertyID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPropertyNotFound, propertyID)
	}
	return s.status(p, s.Today()), nil
}

// Location is the timezone in which "today" is decided.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today is the current calendar date in the service's location, as
// midnight UTC so it compares directly with loaded tenancy end dates.
func (s *Service) Today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) status(p models.Property, today time.Time) models.PropertyStatus {
	tenants := s.ds.TenantCount(p.ID)

	switch {
	case tenants == 0:
		return models.PropertyStatusVacant
	case !today.Before(p.TenancyEndDate):
		return models.PropertyStatusOverdue
	case tenants < p.Capacity:
		return models.PropertyStatusPartiallyVacant
	default:
		return models.PropertyStatusActive
	}
}

// roundHalfUp divides n by d (d > 0) rounding halves towards +Inf.
func roundHalfUp(n, d int64) int64 {
	q, r := n/d, n%d
	switch {
	case r > 0 && 2*r >= d:
		q++
	case r < 0 && -2*r > d:
		q--
	}
	return q
}
