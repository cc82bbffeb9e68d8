package analytics

import "errors"

var (
	// ErrPropertyNotFound is returned when no property has the given id.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrNoTenants is returned when a property exists but no tenant references it.
	ErrNoTenants = errors.New("property has no tenants")
	// ErrNoDataForRegion is returned when an average is asked for a region with
	// no properties, instead of dividing by zero.
	ErrNoDataForRegion = errors.New("no properties in region")
	// ErrUnknownCurrency is returned for a currency other than pence or pound.
	ErrUnknownCurrency = errors.New("unknown currency")
)
