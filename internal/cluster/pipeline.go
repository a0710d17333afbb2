package cluster

import (
	"go.uber.org/zap"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

// Result is the output of one pipeline run.
type Result struct {
	Profiles      map[string]model.CountryProfile `json:"profiles"`
	Countries     []string                        `json:"countries"` // first-seen order
	Assignments   []int                           `json:"assignments"`
	Summaries     [numClusters]GroupSummary       `json:"summaries"`
	StableCluster int                             `json:"stable_cluster"`
	Records       int                             `json:"records"`
	Iterations    int                             `json:"iterations"`
	Converged     bool                            `json:"converged"`
}

// Pipeline runs the full clustering computation as a one-shot, in-memory
// batch: aggregate, build features, standardize, partition, label, assemble.
// The computation is deterministic: identical input always yields identical
// output.
type Pipeline struct {
	maxIterations int
}

// New returns a Pipeline. maxIterations <= 0 uses DefaultMaxIterations.
func New(maxIterations int) *Pipeline {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Pipeline{maxIterations: maxIterations}
}

// Run executes the pipeline over the record sequence. Degenerate inputs
// (no records, no valid countries) return an empty Result rather than an
// error.
func (p *Pipeline) Run(records []model.RawRecord) Result {
	result := Result{
		Profiles: map[string]model.CountryProfile{},
		Records:  len(records),
	}

	aggs := Aggregate(records)
	if len(aggs) == 0 {
		zap.L().Info("cluster: no valid countries in input, returning empty result")
		return result
	}

	included, vectors := BuildVectors(aggs)
	if len(included) == 0 {
		zap.L().Warn("cluster: all feature vectors invalid, returning empty result")
		return result
	}

	standardized := Standardize(vectors)
	part := PartitionVectors(standardized, p.maxIterations)

	summaries := SummarizeGroups(included, part.Assignments)
	stable := StableCluster(summaries[0], summaries[1])

	result.Profiles = AssembleProfiles(included, part.Assignments, stable)
	result.Assignments = part.Assignments
	result.Summaries = summaries
	result.StableCluster = stable
	result.Iterations = part.Iterations
	result.Converged = part.Converged

	result.Countries = make([]string, len(included))
	for i, agg := range included {
		result.Countries[i] = agg.Country
	}

	zap.L().Info("cluster: pipeline complete",
		zap.Int("records", result.Records),
		zap.Int("countries", len(result.Countries)),
		zap.Int("iterations", result.Iterations),
		zap.Bool("converged", result.Converged),
		zap.Int("stable_cluster", result.StableCluster),
		zap.Int("stable_size", summaries[stable].Size),
		zap.Int("volatile_size", summaries[1-stable].Size),
	)

	return result
}
