package models

// Tenant occupies a property. PropertyID is not checked against the
// properties table; a dangling reference just never counts.
type Tenant struct {
	ID         string `gorm:"type:varchar(32);primaryKey" json:"id"`
	PropertyID string `gorm:"type:varchar(32);index" json:"property_id"`
	Name       string `gorm:"type:text" json:"name"`
}

func (Tenant) TableName() string {
	return "tenants"
}
