// Package cluster implements the country clustering pipeline: aggregation of
// yearly records into per-country indicator means, feature standardization,
// deterministic two-cluster partitioning, and semantic labeling of the
// resulting clusters.
package cluster

import (
	"strings"

	"go.uber.org/zap"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

// accumulator holds running sums and counts for one country while scanning.
type accumulator struct {
	sums    map[string]float64
	counts  map[string]int
	records int
}

// Aggregate groups records by country and computes the arithmetic mean of
// every registry indicator across all years with an observed value. Records
// with an empty or whitespace-only country name are discarded. The returned
// slice preserves first-seen country order, which downstream centroid
// seeding depends on.
func Aggregate(records []model.RawRecord) []*model.CountryAggregate {
	accs := make(map[string]*accumulator)
	var order []string

	for _, rec := range records {
		country := strings.TrimSpace(rec.Country)
		if country == "" {
			continue
		}

		acc, ok := accs[country]
		if !ok {
			acc = &accumulator{
				sums:   make(map[string]float64),
				counts: make(map[string]int),
			}
			accs[country] = acc
			order = append(order, country)
		}
		acc.records++

		for _, key := range registry.Indicators() {
			if v, present := rec.Value(key); present {
				acc.sums[key] += v
				acc.counts[key]++
			}
		}
	}

	out := make([]*model.CountryAggregate, 0, len(order))
	for _, country := range order {
		acc := accs[country]
		means := make(map[string]float64, registry.Size())
		for _, key := range registry.Indicators() {
			if n := acc.counts[key]; n > 0 {
				means[key] = acc.sums[key] / float64(n)
			} else {
				means[key] = 0
			}
		}
		out = append(out, &model.CountryAggregate{
			Country:      country,
			Means:        means,
			Observations: acc.records,
		})
	}

	zap.L().Debug("cluster: aggregation complete",
		zap.Int("records", len(records)),
		zap.Int("countries", len(out)),
	)

	return out
}
