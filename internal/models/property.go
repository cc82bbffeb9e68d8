package models

import "time"

type Property struct {
	ID               string    `gorm:"type:varchar(32);primaryKey" json:"id"`
	Address          string    `gorm:"type:text" json:"address"`
	Postcode         string    `gorm:"type:varchar(16)" json:"postcode"`
	MonthlyRentPence int64     `gorm:"type:bigint;not null" json:"monthly_rent_pence"`
	Region           Region    `gorm:"type:varchar(20);index" json:"region"`
	Capacity         int       `gorm:"type:int;not null" json:"capacity"`
	TenancyEndDate   time.Time `gorm:"type:date;not null" json:"tenancy_end_date"`
}

// TableName pins the table name used by the gorm source
func (Property) TableName() string {
	return "properties"
}

// Region is one of the UK constituent countries. Values outside the known
// set are kept as loaded and simply match nothing.
type Region string

const (
	RegionEngland         Region = "ENGLAND"
	RegionWales           Region = "WALES"
	RegionScotland        Region = "SCOTLAND"
	RegionNorthernIreland Region = "N.IRELAND"
)

// Regions lists the known regions in reporting order.
var Regions = []Region{RegionEngland, RegionWales, RegionScotland, RegionNorthernIreland}

// IsKnown reports whether r is one of the four enumerated regions.
func (r Region) IsKnown() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// PropertyStatus is the occupancy state of a property on a given day
type PropertyStatus string

const (
	PropertyStatusVacant          PropertyStatus = "PROPERTY_VACANT"
	PropertyStatusPartiallyVacant PropertyStatus = "PARTIALLY_VACANT"
	PropertyStatusActive          PropertyStatus = "PROPERTY_ACTIVE"
	PropertyStatusOverdue         PropertyStatus = "PROPERTY_OVERDUE"
)

// PropertyStatuses lists every status in reporting order.
var PropertyStatuses = []PropertyStatus{
	PropertyStatusVacant,
	PropertyStatusPartiallyVacant,
	PropertyStatusActive,
	PropertyStatusOverdue,
}
