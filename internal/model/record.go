package model

// RawRecord is one country-year observation as produced by the ingest layer.
// Values holds only the indicators that were present and numeric in the
// source row; a missing key means the observation was null.
type RawRecord struct {
	Country string             `json:"country"`
	Year    int                `json:"year"`
	Values  map[string]float64 `json:"values"`
}

// Value returns the named indicator value and whether it was observed.
func (r RawRecord) Value(key string) (float64, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// CountryAggregate holds per-indicator arithmetic means across all observed
// years for one country. Means contains an entry for every registry
// indicator; indicators with no observations have mean 0.
type CountryAggregate struct {
	Country      string             `json:"country"`
	Means        map[string]float64 `json:"means"`
	Observations int                `json:"observations"`
}

// Mean returns the aggregated mean for key, 0 when no value was observed.
func (a *CountryAggregate) Mean(key string) float64 {
	return a.Means[key]
}
