package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

func rec(country string, year int, values map[string]float64) model.RawRecord {
	return model.RawRecord{Country: country, Year: year, Values: values}
}

func TestAggregate_MeansAcrossYears(t *testing.T) {
	records := []model.RawRecord{
		rec("Norway", 2019, map[string]float64{registry.KeyOverallScore: 1.5, "gdp_per_capita": 75000}),
		rec("Norway", 2020, map[string]float64{registry.KeyOverallScore: 1.7, "gdp_per_capita": 67000}),
		rec("Norway", 2021, map[string]float64{registry.KeyOverallScore: 1.6}),
	}

	aggs := Aggregate(records)
	require.Len(t, aggs, 1)

	agg := aggs[0]
	assert.Equal(t, "Norway", agg.Country)
	assert.Equal(t, 3, agg.Observations)
	assert.InDelta(t, 1.6, agg.Mean(registry.KeyOverallScore), 1e-12)
	// gdp observed in only two of three years: mean over the two, not three.
	assert.InDelta(t, 71000, agg.Mean("gdp_per_capita"), 1e-9)
}

func TestAggregate_MissingIndicatorMeansZero(t *testing.T) {
	aggs := Aggregate([]model.RawRecord{
		rec("Chile", 2020, map[string]float64{registry.KeyGiniIndex: 44.9}),
	})
	require.Len(t, aggs, 1)
	assert.Equal(t, 0.0, aggs[0].Mean("homicide_rate"))
	// Every registry indicator has an entry, even unobserved ones.
	assert.Len(t, aggs[0].Means, registry.Size())
}

func TestAggregate_DiscardsBlankCountries(t *testing.T) {
	aggs := Aggregate([]model.RawRecord{
		rec("", 2020, map[string]float64{registry.KeyOverallScore: 2}),
		rec("   ", 2020, map[string]float64{registry.KeyOverallScore: 2}),
		rec("Kenya", 2020, map[string]float64{registry.KeyOverallScore: 2.2}),
	})
	require.Len(t, aggs, 1)
	assert.Equal(t, "Kenya", aggs[0].Country)
}

func TestAggregate_PreservesFirstSeenOrder(t *testing.T) {
	aggs := Aggregate([]model.RawRecord{
		rec("Zimbabwe", 2019, nil),
		rec("Austria", 2019, nil),
		rec("Zimbabwe", 2020, nil),
		rec("Mexico", 2019, nil),
	})
	require.Len(t, aggs, 3)
	assert.Equal(t, "Zimbabwe", aggs[0].Country)
	assert.Equal(t, "Austria", aggs[1].Country)
	assert.Equal(t, "Mexico", aggs[2].Country)
}

func TestAggregate_EmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
