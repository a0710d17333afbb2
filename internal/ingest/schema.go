package ingest

import (
	"strings"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/registry"
)

// countryAliases and yearAliases are the normalized header names accepted
// for the two structural columns.
var countryAliases = []string{registry.KeyCountry, "country_name", "nation", "country_or_territory"}

var yearAliases = []string{"year", "time", "reporting_year"}

// indicatorAliases maps alternate normalized header names onto registry
// keys. The registry key itself always matches; these cover the synonyms
// seen across source exports.
var indicatorAliases = map[string]string{
	"score":                    registry.KeyOverallScore,
	"gpi_score":                registry.KeyOverallScore,
	"global_peace_index":       registry.KeyOverallScore,
	"gini":                     registry.KeyGiniIndex,
	"gini_coefficient":         registry.KeyGiniIndex,
	"gini_index_world_bank":    registry.KeyGiniIndex,
	"gdp_per_capita_usd":       "gdp_per_capita",
	"gdp_growth":               "gdp_growth_pct",
	"unemployment":             "unemployment_rate",
	"inflation":                "inflation_rate",
	"urban_population":         "urban_population_pct",
	"urban_pop_growth":         "urban_population_growth_pct",
	"population":               "population_total",
	"co2_per_capita":           "co2_emissions_per_capita",
	"pm2_5_exposure":           "pm25_exposure",
	"military_expenditure":     "military_expenditure_pct_gdp",
	"refugees_and_idps":        "refugees_displaced_pct",
	"access_to_electricity":    "access_electricity_pct",
	"access_to_clean_water":    "access_clean_water_pct",
	"internet_users":           "internet_users_pct",
	"mobile_cellular_subs":     "mobile_subscriptions",
	"life_expectancy_at_birth": "life_expectancy",
}

// summaryRows are aggregate pseudo-rows excluded from ingestion: regional
// and grouping rows that would otherwise pollute country clustering.
var summaryRows = map[string]bool{
	"world":                     true,
	"africa":                    true,
	"asia":                      true,
	"europe":                    true,
	"oceania":                   true,
	"north america":             true,
	"south america":             true,
	"central america":           true,
	"middle east":               true,
	"middle east and north africa": true,
	"sub-saharan africa":        true,
	"latin america & caribbean": true,
	"latin america and caribbean": true,
	"east asia & pacific":       true,
	"east asia and pacific":     true,
	"south asia":                true,
	"european union":            true,
	"euro area":                 true,
	"arab world":                true,
	"oecd members":              true,
	"small states":              true,
	"fragile and conflict affected situations": true,
}

// isSummaryRow reports whether a country cell names a regional or income
// grouping rather than a country.
func isSummaryRow(country string) bool {
	lower := strings.ToLower(strings.TrimSpace(country))
	if summaryRows[lower] {
		return true
	}
	// "High income", "Low & middle income", "Upper middle income", ...
	return strings.Contains(lower, "income")
}

// columnLayout is the resolved mapping from file columns to record fields.
type columnLayout struct {
	country    int
	year       int
	indicators map[string]int // registry key -> column index
}

// resolveLayout maps a header row onto the fixed schema. Unknown columns
// are ignored; missing country or year columns are a hard error surfaced by
// the caller.
func resolveLayout(header []string) (columnLayout, bool) {
	byName := mapColumnsNormalized(header)

	layout := columnLayout{
		country:    -1,
		year:       -1,
		indicators: make(map[string]int),
	}

	for _, alias := range countryAliases {
		if idx, ok := byName[alias]; ok {
			layout.country = idx
			break
		}
	}
	for _, alias := range yearAliases {
		if idx, ok := byName[alias]; ok {
			layout.year = idx
			break
		}
	}

	// Walk the header in file order so duplicate synonyms resolve to the
	// leftmost column, deterministically.
	for i, col := range header {
		name := normalizeCol(col)
		if name == "" {
			continue
		}
		key := name
		if canonical, ok := indicatorAliases[name]; ok {
			key = canonical
		}
		if !registry.Has(key) {
			continue
		}
		if _, taken := layout.indicators[key]; !taken {
			layout.indicators[key] = i
		}
	}

	return layout, layout.country >= 0 && layout.year >= 0
}
