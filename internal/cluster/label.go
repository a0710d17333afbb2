package cluster

import (
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

// GroupSummary holds the per-cluster means of the two labeling indicators.
type GroupSummary struct {
	MeanScore float64 `json:"mean_score"` // overall conflict score, lower = more peaceful
	MeanGini  float64 `json:"mean_gini"`  // inequality coefficient, lower = more equal
	Size      int     `json:"size"`
}

// SummarizeGroups computes, per cluster, the arithmetic mean of the overall
// conflict score and the Gini index over the countries assigned to it.
// Summaries are taken from the aggregated (unstandardized) means. An empty
// group summarizes to zeros.
func SummarizeGroups(aggs []*model.CountryAggregate, assignments []int) [numClusters]GroupSummary {
	var sumScore, sumGini [numClusters]float64
	var sizes [numClusters]int

	for i, agg := range aggs {
		c := assignments[i]
		sumScore[c] += agg.Mean(registry.KeyOverallScore)
		sumGini[c] += agg.Mean(registry.KeyGiniIndex)
		sizes[c]++
	}

	var out [numClusters]GroupSummary
	for c := 0; c < numClusters; c++ {
		out[c].Size = sizes[c]
		if sizes[c] > 0 {
			out[c].MeanScore = sumScore[c] / float64(sizes[c])
			out[c].MeanGini = sumGini[c] / float64(sizes[c])
		}
	}
	return out
}

// StableCluster decides which cluster index represents the stable archetype.
// Cluster 0 is stable only when it strictly dominates cluster 1 on both
// metrics (lower mean score AND lower mean Gini); in every other case,
// including mixed dominance and exact ties, cluster 1 is stable. The
// asymmetric fallback is intentional and must not be "fixed" without new
// product guidance.
func StableCluster(g0, g1 GroupSummary) int {
	if g0.MeanScore < g1.MeanScore && g0.MeanGini < g1.MeanGini {
		return 0
	}
	return 1
}

// LabelFor returns the semantic label for a cluster index given the resolved
// stable cluster.
func LabelFor(cluster, stable int) model.ClusterLabel {
	if cluster == stable {
		return model.LabelStable
	}
	return model.LabelVolatile
}
