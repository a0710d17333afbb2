package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/cluster"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

func sampleProfiles() []model.CountryProfile {
	return []model.CountryProfile{
		{
			Country: "Norway", Cluster: 0, Label: model.LabelStable,
			Observations: 3,
			Indicators: map[string]float64{
				registry.KeyOverallScore: 1.5,
				registry.KeyGiniIndex:    27,
			},
		},
		{
			Country: "Chad", Cluster: 1, Label: model.LabelVolatile,
			Observations: 2,
			Indicators: map[string]float64{
				registry.KeyOverallScore: 2.9,
				registry.KeyGiniIndex:    43.3,
			},
		},
	}
}

func TestWriteProfileJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProfileJSON(&buf, sampleProfiles()))

	var decoded []model.CountryProfile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Norway", decoded[0].Country)
	assert.Equal(t, model.LabelVolatile, decoded[1].Label)

	// Pretty-printed.
	assert.Contains(t, buf.String(), "  ")
}

func TestWriteProfileYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProfileYAML(&buf, sampleProfiles()))

	var decoded []model.CountryProfile
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Chad", decoded[1].Country)
}

func TestWriteProfileCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProfileCSV(&buf, sampleProfiles()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Header: fixed columns then every profile indicator.
	assert.Equal(t, "country", rows[0][0])
	assert.Len(t, rows[0], 4+len(registry.ProfileKeys()))
	assert.Equal(t, "Norway", rows[1][0])
	assert.Equal(t, "Stable Urbanizers", rows[1][2])
}

func TestWriteProfileTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProfileTable(&buf, sampleProfiles()))

	out := buf.String()
	assert.Contains(t, out, "Norway")
	assert.Contains(t, out, "Volatile Urbanizers")
	assert.Contains(t, out, "43.30")
}

func TestOrderedProfiles_FirstSeenOrder(t *testing.T) {
	result := cluster.Result{
		Countries: []string{"Zambia", "Austria"},
		Profiles: map[string]model.CountryProfile{
			"Austria": {Country: "Austria"},
			"Zambia":  {Country: "Zambia"},
		},
	}

	ordered := orderedProfiles(result)
	require.Len(t, ordered, 2)
	assert.Equal(t, "Zambia", ordered[0].Country)
	assert.Equal(t, "Austria", ordered[1].Country)
}
