package analytics

import "rental-insights/internal/models"

// RegionSummary is the property count and average rent of one region.
// AverageRentPence is nil when the region has no properties.
type RegionSummary struct {
	Region           models.Region `json:"region"`
	Properties       int           `json:"properties"`
	AverageRentPence *int64        `json:"average_rent_pence"`
}

// RegionSummaries reports every known region in models.Regions order,
// followed by any unknown regions found in the data in first-seen order.
func (s *Service) RegionSummaries() []RegionSummary {
	totals := make(map[models.Region]int64)
	counts := make(map[models.Region]int)
	regions := append([]models.Region(nil), models.Regions...)

	for p := range s.ds.All() {
		if counts[p.Region] == 0 && !p.Region.IsKnown() {
			regions = append(regions, p.Region)
		}
		totals[p.Region] += p.MonthlyRentPence
		counts[p.Region]++
	}

	summaries := make([]RegionSummary, 0, len(regions))
	for _, r := range regions {
		summary := RegionSummary{Region: r, Properties: counts[r]}
		if n := counts[r]; n > 0 {
			avg := roundHalfUp(totals[r], int64(n))
			summary.AverageRentPence = &avg
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// StatusCount is the number of properties in one status.
type StatusCount struct {
	Status models.PropertyStatus `json:"status"`
	Count  int                   `json:"count"`
}

// StatusCounts classifies every property as of today and counts each
// status, in models.PropertyStatuses order. Statuses with no properties are
// reported with a zero count.
func (s *Service) StatusCounts() []StatusCount {
	today := s.Today()
	counts := make(map[models.PropertyStatus]int, len(models.PropertyStatuses))
	for p := range s.ds.All() {
		counts[s.status(p, today)]++
	}

	result := make([]StatusCount, 0, len(models.PropertyStatuses))
	for _, st := range models.PropertyStatuses {
		result = append(result, StatusCount{Status: st, Count: counts[st]})
	}
	return result
}
