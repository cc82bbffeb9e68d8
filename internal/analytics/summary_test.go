package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-insights/internal/dataset"
	"rental-insights/internal/models"
)

func TestRegionSummaries(t *testing.T) {
	svc := newTestService(t)

	summaries := svc.RegionSummaries()
	require.Len(t, summaries, 4)

	byRegion := make(map[models.Region]RegionSummary)
	for _, s := range summaries {
		byRegion[s.Region] = s
	}

	assert.Equal(t, 2, byRegion[models.RegionEngland].Properties)
	require.NotNil(t, byRegion[models.RegionEngland].AverageRentPence)
	assert.Equal(t, int64(75000), *byRegion[models.RegionEngland].AverageRentPence)

	require.NotNil(t, byRegion[models.RegionWales].AverageRentPence)
	assert.Equal(t, int64(90001), *byRegion[models.RegionWales].AverageRentPence)

	for _, s := range summaries {
		if s.AverageRentPence == nil {
			continue
		}
		avg, err := svc.AverageRentForRegion(s.Region)
		require.NoError(t, err)
		assert.Equal(t, avg, *s.AverageRentPence, s.Region)
	}
}

func TestRegionSummariesEmptyAndUnknownRegions(t *testing.T) {
	ds, err := dataset.New([]models.Property{
		{ID: "p_1", Region: "MARS", MonthlyRentPence: 10},
		{ID: "p_2", Region: models.RegionWales, MonthlyRentPence: 20},
		{ID: "p_3", Region: "MARS", MonthlyRentPence: 30},
	}, nil)
	require.NoError(t, err)

	summaries := NewService(ds).RegionSummaries()
	require.Len(t, summaries, 5)

	assert.Equal(t, models.RegionEngland, summaries[0].Region)
	assert.Equal(t, 0, summaries[0].Properties)
	assert.Nil(t, summaries[0].AverageRentPence)

	assert.Equal(t, models.Region("MARS"), summaries[4].Region)
	assert.Equal(t, 2, summaries[4].Properties)
	require.NotNil(t, summaries[4].AverageRentPence)
	assert.Equal(t, int64(20), *summaries[4].AverageRentPence)
}

func TestStatusCounts(t *testing.T) {
	svc := newTestService(t)

	assert.Equal(t, []StatusCount{
		{Status: models.PropertyStatusVacant, Count: 1},
		{Status: models.PropertyStatusPartiallyVacant, Count: 1},
		{Status: models.PropertyStatusActive, Count: 2},
		{Status: models.PropertyStatusOverdue, Count: 2},
	}, svc.StatusCounts())
}
