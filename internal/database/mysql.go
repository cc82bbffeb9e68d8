package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-insights/internal/config"
	"rental-insights/internal/models"
)

// GormDB reads the properties and tenants tables from MySQL. It satisfies
// dataset.Source and never writes.
type GormDB struct {
	db *gorm.DB
}

func NewGormDB(cfg config.MySQLConfig) (*GormDB, error) {
	db, err := gorm.Open(mysql.Open(mysqlDSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadProperties returns every property ordered by id. End dates are
// reduced to their calendar date.
func (gdb *GormDB) LoadProperties() ([]models.Property, error) {
	var properties []models.Property
	if err := gdb.db.Order("id ASC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	for i := range properties {
		properties[i].TenancyEndDate = dateOnly(properties[i].TenancyEndDate)
	}
	return properties, nil
}

// LoadTenants returns every tenant ordered by id
func (gdb *GormDB) LoadTenants() ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := gdb.db.Order("id ASC").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("query tenants: %w", err)
	}
	return tenants, nil
}

func mysqlDSN(cfg config.MySQLConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
}

// dateOnly keeps the calendar date of t as written, at midnight UTC
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
