package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-insights/internal/models"
)

type stubSource struct {
	properties    []models.Property
	tenants       []models.Tenant
	propertiesErr error
	tenantsErr    error
}

func (s stubSource) LoadProperties() ([]models.Property, error) {
	return s.properties, s.propertiesErr
}

func (s stubSource) LoadTenants() ([]models.Tenant, error) {
	return s.tenants, s.tenantsErr
}

func TestNew(t *testing.T) {
	properties := []models.Property{{ID: "p_2"}, {ID: "p_1"}, {ID: "p_3"}}
	tenants := []models.Tenant{
		{ID: "t_1", PropertyID: "p_1"},
		{ID: "t_2", PropertyID: "p_1"},
		{ID: "t_3", PropertyID: "p_3"},
		{ID: "t_4", PropertyID: "p_gone"},
	}

	ds, err := New(properties, tenants)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.TenantCount("p_1"))
	assert.Equal(t, 0, ds.TenantCount("p_2"))
	assert.Equal(t, 1, ds.TenantCount("p_gone"))
	assert.Equal(t, 0, ds.TenantCount("nope"))

	p, ok := ds.Property("p_3")
	require.True(t, ok)
	assert.Equal(t, "p_3", p.ID)

	_, ok = ds.Property("nope")
	assert.False(t, ok)

	ids := make([]string, 0, ds.Len())
	for _, p := range ds.Properties() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p_2", "p_1", "p_3"}, ids)
}

func TestNewIsolatedFromCaller(t *testing.T) {
	properties := []models.Property{{ID: "p_1", MonthlyRentPence: 100}}
	ds, err := New(properties, nil)
	require.NoError(t, err)

	properties[0].MonthlyRentPence = 999
	got := ds.Properties()
	got[0].MonthlyRentPence = 5

	p, _ := ds.Property("p_1")
	assert.Equal(t, int64(100), p.MonthlyRentPence)
}

func TestNewDuplicateID(t *testing.T) {
	_, err := New([]models.Property{{ID: "p_1"}, {ID: "p_2"}, {ID: "p_1"}}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailure)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Row)
	assert.Equal(t, "id", le.Column)
}

func TestLoadWrapsSourceErrors(t *testing.T) {
	boom := errors.New("connection refused")

	_, err := Load(stubSource{propertiesErr: boom})
	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load properties")

	_, err = Load(stubSource{tenantsErr: boom})
	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.Contains(t, err.Error(), "load tenants")
}

func TestLoadKeepsLocatedErrors(t *testing.T) {
	located := &LoadError{Source: "x.csv", Row: 4, Column: "capacity", Err: errors.New("bad")}

	_, err := Load(stubSource{propertiesErr: located})
	assert.Same(t, located, err)
}

func TestAllYieldsLoadOrder(t *testing.T) {
	ds, err := New([]models.Property{{ID: "p_3"}, {ID: "p_1"}, {ID: "p_2"}}, []models.Tenant{{ID: "t_1", PropertyID: "p_9"}})
	require.NoError(t, err)

	var ids []string
	for p := range ds.All() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p_3", "p_1", "p_2"}, ids)
	assert.Equal(t, 1, ds.TenantLen())

	// Breaking out early stops the iteration.
	ids = nil
	for p := range ds.All() {
		ids = append(ids, p.ID)
		break
	}
	assert.Equal(t, []string{"p_3"}, ids)
}
