package cluster

import (
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

// AssembleProfiles builds the country -> profile output mapping. Each
// profile copies the profile-facing subset of the country's aggregated means
// and attaches the label resolved from its cluster assignment.
func AssembleProfiles(aggs []*model.CountryAggregate, assignments []int, stable int) map[string]model.CountryProfile {
	profiles := make(map[string]model.CountryProfile, len(aggs))

	for i, agg := range aggs {
		indicators := make(map[string]float64, len(registry.ProfileKeys()))
		for _, key := range registry.ProfileKeys() {
			indicators[key] = agg.Mean(key)
		}

		c := assignments[i]
		profiles[agg.Country] = model.CountryProfile{
			Country:      agg.Country,
			Cluster:      c,
			Label:        LabelFor(c, stable),
			Observations: agg.Observations,
			Indicators:   indicators,
		}
	}

	return profiles
}
