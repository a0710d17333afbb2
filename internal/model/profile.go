package model

import "time"

// ClusterLabel is the semantic archetype assigned to a country.
type ClusterLabel string

const (
	LabelStable   ClusterLabel = "Stable Urbanizers"
	LabelVolatile ClusterLabel = "Volatile Urbanizers"
)

// CountryProfile is the final output entity: the profile-facing subset of a
// country's aggregated indicator means plus its resolved cluster label.
// Immutable once assembled.
type CountryProfile struct {
	Country      string             `json:"country"`
	Cluster      int                `json:"cluster"`
	Label        ClusterLabel       `json:"label"`
	Observations int                `json:"observations"`
	Indicators   map[string]float64 `json:"indicators"`
}

// ClusterRun records one completed pipeline invocation.
type ClusterRun struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Records       int       `json:"records"`
	Countries     int       `json:"countries"`
	Iterations    int       `json:"iterations"`
	Converged     bool      `json:"converged"`
	StableCluster int       `json:"stable_cluster"`
	CreatedAt     time.Time `json:"created_at"`
}
