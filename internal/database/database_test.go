package database

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"rental-insights/internal/config"
	"rental-insights/internal/dataset"
	"rental-insights/internal/models"
)

var propertyColumns = []string{"id", "address", "postcode", "monthly_rent_pence", "region", "capacity", "tenancy_end_date"}

var tenantColumns = []string{"id", "property_id", "name"}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewDBFromConn(conn), mock
}

func newMockGormDB(t *testing.T) (*GormDB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return NewGormDBFromDB(db), mock
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.MySQLConfig{
		Host:     "mysql",
		Port:     3306,
		User:     "reader",
		Password: "secret",
		Database: "rentals",
	})
	assert.Equal(t, "reader:secret@tcp(mysql:3306)/rentals?charset=utf8mb4&parseTime=True&loc=UTC", dsn)
}

func TestPostgresConnString(t *testing.T) {
	got := postgresConnString(config.PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "reader",
		Password: "it's a secret",
		Database: "rentals",
	})
	assert.Equal(t, `host=db port=5432 user=reader password='it\'s a secret' dbname=rentals sslmode=disable`, got)
}

func TestQuoteConnValue(t *testing.T) {
	assert.Equal(t, "plain", quoteConnValue("plain"))
	assert.Equal(t, "''", quoteConnValue(""))
	assert.Equal(t, `'a\\b'`, quoteConnValue(`a\b`))
}

func TestDateOnly(t *testing.T) {
	bst := time.FixedZone("BST", 60*60)
	got := dateOnly(time.Date(2030, time.June, 30, 23, 30, 0, 0, bst))
	assert.Equal(t, time.Date(2030, time.June, 30, 0, 0, 0, 0, time.UTC), got)
}

func TestPostgresLoadProperties(t *testing.T) {
	db, mock := newMockDB(t)
	bst := time.FixedZone("BST", 60*60)

	mock.ExpectQuery(`SELECT (.+) FROM properties ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(propertyColumns).
			AddRow("p_1001", "1 High Street", "SW1A 1AA", 150000, "ENGLAND", 2, time.Date(2030, 6, 30, 23, 30, 0, 0, bst)).
			AddRow("p_1002", "4 Castle Road", "CF10 1EP", 98000, "WALES", 2, time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC)))

	properties, err := db.LoadProperties()
	require.NoError(t, err)
	require.Len(t, properties, 2)

	assert.Equal(t, models.Property{
		ID:               "p_1001",
		Address:          "1 High Street",
		Postcode:         "SW1A 1AA",
		MonthlyRentPence: 150000,
		Region:           models.RegionEngland,
		Capacity:         2,
		TenancyEndDate:   time.Date(2030, 6, 30, 0, 0, 0, 0, time.UTC),
	}, properties[0])
	assert.Equal(t, "p_1002", properties[1].ID)
	assert.Equal(t, models.RegionWales, properties[1].Region)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLoadTenants(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, property_id, name FROM tenants ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(tenantColumns).
			AddRow("t_2001", "p_1001", "Alice").
			AddRow("t_2002", "p_9999", "Bob"))

	tenants, err := db.LoadTenants()
	require.NoError(t, err)
	assert.Equal(t, []models.Tenant{
		{ID: "t_2001", PropertyID: "p_1001", Name: "Alice"},
		{ID: "t_2002", PropertyID: "p_9999", Name: "Bob"},
	}, tenants)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresScanErrorIsLoadFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM properties ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(propertyColumns).
			AddRow("p_1001", "1 High Street", "SW1A 1AA", "not a number", "ENGLAND", 2, time.Now()))

	_, err := dataset.Load(db)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrLoadFailure)

	var le *dataset.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "properties", le.Source)
	assert.Contains(t, err.Error(), "scan property")
}

func TestPostgresRowsErrorIsReturned(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, property_id, name FROM tenants ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(tenantColumns).
			AddRow("t_2001", "p_1001", "Alice").
			AddRow("t_2002", "p_1001", "Bob").
			RowError(1, errors.New("connection reset")))

	_, err := db.LoadTenants()
	assert.EqualError(t, err, "connection reset")
}

func TestPostgresQueryErrorIsWrapped(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM properties ORDER BY id`).
		WillReturnError(errors.New("relation \"properties\" does not exist"))

	_, err := db.LoadProperties()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query properties")
}

func TestGormLoadProperties(t *testing.T) {
	gdb, mock := newMockGormDB(t)
	bst := time.FixedZone("BST", 60*60)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `properties` ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(propertyColumns).
			AddRow("p_1029", "18 Queen Street", "G1 3DX", 110000, "SCOTLAND", 3, time.Date(2030, 1, 31, 23, 0, 0, 0, bst)).
			AddRow("p_1100", "Nowhere", "NOT A CODE", 50000, "ATLANTIS", 1, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))

	properties, err := gdb.LoadProperties()
	require.NoError(t, err)
	require.Len(t, properties, 2)

	assert.Equal(t, models.Property{
		ID:               "p_1029",
		Address:          "18 Queen Street",
		Postcode:         "G1 3DX",
		MonthlyRentPence: 110000,
		Region:           models.RegionScotland,
		Capacity:         3,
		TenancyEndDate:   time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC),
	}, properties[0])
	// Unknown regions are loaded as data.
	assert.Equal(t, models.Region("ATLANTIS"), properties[1].Region)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLoadTenants(t *testing.T) {
	gdb, mock := newMockGormDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `tenants` ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(tenantColumns).
			AddRow("t_2001", "p_1029", "Alice"))

	tenants, err := gdb.LoadTenants()
	require.NoError(t, err)
	assert.Equal(t, []models.Tenant{{ID: "t_2001", PropertyID: "p_1029", Name: "Alice"}}, tenants)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormQueryErrorIsLoadFailure(t *testing.T) {
	gdb, mock := newMockGormDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `properties` ORDER BY id ASC")).
		WillReturnError(errors.New("table doesn't exist"))

	_, err := dataset.Load(gdb)
	assert.ErrorIs(t, err, dataset.ErrLoadFailure)
	assert.Contains(t, err.Error(), "query properties")
}
