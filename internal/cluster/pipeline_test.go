package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

func scoreGini(score, gini float64) map[string]float64 {
	return map[string]float64{
		registry.KeyOverallScore: score,
		registry.KeyGiniIndex:    gini,
	}
}

// Two peaceful, equal countries and one conflict-ridden, unequal outlier:
// the peaceful pair must cluster together and carry the stable label.
func TestPipeline_StableVsVolatileSplit(t *testing.T) {
	records := []model.RawRecord{
		rec("X", 2020, scoreGini(10, 20)),
		rec("Y", 2020, scoreGini(12, 22)),
		rec("Z", 2020, scoreGini(80, 70)),
	}

	result := New(0).Run(records)
	require.Len(t, result.Profiles, 3)
	assert.True(t, result.Converged)

	x, y, z := result.Profiles["X"], result.Profiles["Y"], result.Profiles["Z"]
	assert.Equal(t, x.Cluster, y.Cluster)
	assert.NotEqual(t, x.Cluster, z.Cluster)

	assert.Equal(t, model.LabelStable, x.Label)
	assert.Equal(t, model.LabelStable, y.Label)
	assert.Equal(t, model.LabelVolatile, z.Label)
}

func TestPipeline_EmptyInput(t *testing.T) {
	result := New(0).Run(nil)
	assert.Empty(t, result.Profiles)
	assert.Equal(t, 0, result.Records)
}

func TestPipeline_AllBlankCountries(t *testing.T) {
	result := New(0).Run([]model.RawRecord{
		rec("", 2020, scoreGini(1, 1)),
		rec("  ", 2021, scoreGini(2, 2)),
	})
	assert.Empty(t, result.Profiles)
}

// Single-country input exercises the n < k branch: one centroid, one
// cluster, reproduced as-is rather than padded to two.
func TestPipeline_SingleCountry(t *testing.T) {
	result := New(0).Run([]model.RawRecord{
		rec("Iceland", 2020, scoreGini(1.1, 26)),
	})
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, []int{0}, result.Assignments)
	assert.True(t, result.Converged)

	// Group 1 is empty, so cluster 0 cannot strictly dominate it and the
	// fallback declares cluster 1 stable: the lone country is volatile.
	assert.Equal(t, 1, result.StableCluster)
	assert.Equal(t, model.LabelVolatile, result.Profiles["Iceland"].Label)
}

func TestPipeline_Deterministic(t *testing.T) {
	records := []model.RawRecord{
		rec("A", 2018, scoreGini(1.2, 25)),
		rec("A", 2019, scoreGini(1.3, 26)),
		rec("B", 2018, scoreGini(3.1, 52)),
		rec("C", 2018, scoreGini(1.5, 28)),
		rec("D", 2018, scoreGini(2.9, 48)),
		rec("E", 2018, scoreGini(2.2, 39)),
	}

	p := New(0)
	first := p.Run(records)
	for i := 0; i < 5; i++ {
		again := p.Run(records)
		assert.Equal(t, first.Profiles, again.Profiles)
		assert.Equal(t, first.Assignments, again.Assignments)
		assert.Equal(t, first.StableCluster, again.StableCluster)
		assert.Equal(t, first.Iterations, again.Iterations)
	}
}

// Whenever cluster 0 strictly dominates, the stable group must have means
// at or below the volatile group's on both labeling dimensions.
func TestPipeline_LabelingConsistency(t *testing.T) {
	records := []model.RawRecord{
		rec("P1", 2020, scoreGini(1.0, 22)),
		rec("P2", 2020, scoreGini(1.2, 24)),
		rec("P3", 2020, scoreGini(1.4, 25)),
		rec("V1", 2020, scoreGini(3.2, 55)),
		rec("V2", 2020, scoreGini(3.4, 58)),
		rec("V3", 2020, scoreGini(3.0, 52)),
	}

	result := New(0).Run(records)
	require.Len(t, result.Profiles, 6)

	stable := result.Summaries[result.StableCluster]
	volatile := result.Summaries[1-result.StableCluster]
	if result.StableCluster == 0 {
		assert.Less(t, stable.MeanScore, volatile.MeanScore)
		assert.Less(t, stable.MeanGini, volatile.MeanGini)
	}
	assert.LessOrEqual(t, stable.MeanScore, volatile.MeanScore)
	assert.LessOrEqual(t, stable.MeanGini, volatile.MeanGini)
}

func TestPipeline_ProfileContents(t *testing.T) {
	values := scoreGini(2.0, 35)
	values["gdp_per_capita"] = 12000
	values["urban_population_pct"] = 61.5

	result := New(0).Run([]model.RawRecord{
		rec("Brazil", 2019, values),
		rec("Japan", 2019, scoreGini(1.2, 32)),
		rec("Syria", 2019, scoreGini(3.5, 55)),
	})

	p, ok := result.Profiles["Brazil"]
	require.True(t, ok)
	assert.Equal(t, "Brazil", p.Country)
	assert.Equal(t, 1, p.Observations)
	assert.Len(t, p.Indicators, len(registry.ProfileKeys()))
	assert.InDelta(t, 12000, p.Indicators["gdp_per_capita"], 1e-9)
	assert.InDelta(t, 61.5, p.Indicators["urban_population_pct"], 1e-9)
	// Profiles expose only the profile-facing subset.
	_, hasWeapons := p.Indicators["weapons_imports"]
	assert.False(t, hasWeapons)
}

func TestPipeline_CountriesInFirstSeenOrder(t *testing.T) {
	result := New(0).Run([]model.RawRecord{
		rec("C", 2020, scoreGini(1, 1)),
		rec("A", 2020, scoreGini(2, 2)),
		rec("B", 2020, scoreGini(3, 3)),
		rec("A", 2021, scoreGini(2, 2)),
	})
	assert.Equal(t, []string{"C", "A", "B"}, result.Countries)
}
