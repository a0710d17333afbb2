// Package registry defines the fixed, ordered indicator schema shared by the
// whole pipeline. The order of Indicators is the feature-vector dimension
// order: the feature builder, the standardizer, and centroid arithmetic all
// index dimensions through this package and nothing else.
package registry

// Labeler inputs. Both are "lower is better" indicators.
const (
	KeyOverallScore = "overall_score" // composite conflict score, lower = more peaceful
	KeyGiniIndex    = "gini_index"    // income inequality, lower = more equal
)

const KeyCountry = "country"

// indicators is the canonical ordered registry. Append-only between releases;
// reordering changes feature-vector semantics for every stored run.
var indicators = []string{
	// Conflict and security.
	KeyOverallScore,
	"internal_conflicts_fought",
	"external_conflicts_fought",
	"deaths_internal_conflict",
	"deaths_external_conflict",
	"neighboring_countries_relations",
	"political_instability",
	"political_terror_scale",
	"terrorism_impact",
	"homicide_rate",
	"violent_crime",
	"violent_demonstrations",
	"incarceration_rate",
	"internal_security_officers",
	"armed_services_personnel",
	"military_expenditure_pct_gdp",
	"weapons_imports",
	"weapons_exports",
	"refugees_displaced_pct",
	"perceptions_of_criminality",

	// Governance.
	"corruption_perceptions_index",
	"rule_of_law_index",
	"government_effectiveness",
	"voice_accountability",

	// Economy.
	"gdp_per_capita",
	"gdp_growth_pct",
	KeyGiniIndex,
	"unemployment_rate",
	"inflation_rate",
	"fdi_net_inflows_pct",
	"trade_pct_gdp",
	"poverty_headcount_pct",

	// Demographics and urbanization.
	"population_total",
	"population_density",
	"urban_population_pct",
	"urban_population_growth_pct",
	"life_expectancy",
	"literacy_rate",
	"school_enrollment_pct",

	// Environment and infrastructure.
	"co2_emissions_per_capita",
	"pm25_exposure",
	"forest_area_pct",
	"access_electricity_pct",
	"access_clean_water_pct",
	"internet_users_pct",
	"mobile_subscriptions",
}

// profileKeys is the subset of aggregated indicators exposed on a
// CountryProfile. Order here is presentation order only.
var profileKeys = []string{
	KeyOverallScore,
	"political_instability",
	"political_terror_scale",
	"terrorism_impact",
	"homicide_rate",
	"violent_crime",
	"military_expenditure_pct_gdp",
	"refugees_displaced_pct",
	"corruption_perceptions_index",
	"rule_of_law_index",
	"government_effectiveness",
	"gdp_per_capita",
	"gdp_growth_pct",
	KeyGiniIndex,
	"unemployment_rate",
	"inflation_rate",
	"poverty_headcount_pct",
	"population_total",
	"urban_population_pct",
	"urban_population_growth_pct",
	"life_expectancy",
	"co2_emissions_per_capita",
	"pm25_exposure",
	"access_electricity_pct",
}

var indexByKey = func() map[string]int {
	m := make(map[string]int, len(indicators))
	for i, k := range indicators {
		m[k] = i
	}
	return m
}()

// Indicators returns the ordered indicator keys. The returned slice is a
// copy; callers may not mutate the registry.
func Indicators() []string {
	out := make([]string, len(indicators))
	copy(out, indicators)
	return out
}

// ProfileKeys returns the ordered profile-facing indicator subset.
func ProfileKeys() []string {
	out := make([]string, len(profileKeys))
	copy(out, profileKeys)
	return out
}

// Size returns the number of registered indicators, i.e. the feature-vector
// dimension.
func Size() int {
	return len(indicators)
}

// Has reports whether key is a registered indicator.
func Has(key string) bool {
	_, ok := indexByKey[key]
	return ok
}

// Index returns the dimension index of key, or -1 if not registered.
func Index(key string) int {
	i, ok := indexByKey[key]
	if !ok {
		return -1
	}
	return i
}
