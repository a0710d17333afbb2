package cluster

import (
	"math"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

// BuildVectors projects each aggregate's means, in registry order, into a
// feature vector. Non-finite values are coerced to 0. A country whose vector
// has no finite value at all is excluded from clustering; the returned
// aggregates slice contains only the included countries, aligned index-for-
// index with the returned vectors.
func BuildVectors(aggs []*model.CountryAggregate) ([]*model.CountryAggregate, [][]float64) {
	keys := registry.Indicators()

	included := make([]*model.CountryAggregate, 0, len(aggs))
	vectors := make([][]float64, 0, len(aggs))

	for _, agg := range aggs {
		vec := make([]float64, len(keys))
		anyFinite := false
		for i, key := range keys {
			v := agg.Mean(key)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				vec[i] = 0
				continue
			}
			vec[i] = v
			anyFinite = true
		}
		if !anyFinite {
			continue
		}
		included = append(included, agg)
		vectors = append(vectors, vec)
	}

	return included, vectors
}

// Standardize rescales every dimension to zero mean and unit variance using
// population statistics (denominator n, not n-1). A dimension with zero
// standard deviation standardizes to 0 for every country, so constant
// indicators contribute nothing to distances.
func Standardize(vectors [][]float64) [][]float64 {
	n := len(vectors)
	if n == 0 {
		return nil
	}
	dims := len(vectors[0])

	means := make([]float64, dims)
	for _, vec := range vectors {
		for d, v := range vec {
			means[d] += v
		}
	}
	for d := range means {
		means[d] /= float64(n)
	}

	stds := make([]float64, dims)
	for _, vec := range vectors {
		for d, v := range vec {
			diff := v - means[d]
			stds[d] += diff * diff
		}
	}
	for d := range stds {
		stds[d] = math.Sqrt(stds[d] / float64(n))
	}

	out := make([][]float64, n)
	for i, vec := range vectors {
		std := make([]float64, dims)
		for d, v := range vec {
			if stds[d] == 0 {
				std[d] = 0
				continue
			}
			std[d] = (v - means[d]) / stds[d]
		}
		out[i] = std
	}

	return out
}
