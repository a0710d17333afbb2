package cluster

import "math"

const (
	// numClusters is fixed: the pipeline partitions countries into exactly
	// two archetypes.
	numClusters = 2

	// DefaultMaxIterations caps the assign/update loop.
	DefaultMaxIterations = 300
)

// Partition is the result of the two-cluster partitioning.
type Partition struct {
	Assignments []int       `json:"assignments"`
	Centroids   [][]float64 `json:"centroids"`
	Iterations  int         `json:"iterations"`
	Converged   bool        `json:"converged"`
}

// PartitionVectors runs a deterministic Lloyd's-algorithm variant with k=2
// over the given vectors. maxIter <= 0 falls back to DefaultMaxIterations.
//
// Initialization is index-based, never random: with n <= 2 inputs each
// vector seeds its own centroid (n < k deliberately yields fewer than k
// effective clusters); otherwise centroid i seeds from the vector at index
// min(i*floor(n/k), n-1), in first-seen country order.
//
// A cluster that receives no points in an iteration keeps its previous
// centroid unchanged, even if that leaves it permanently empty.
func PartitionVectors(vectors [][]float64, maxIter int) Partition {
	n := len(vectors)
	if n == 0 {
		return Partition{}
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	centroids := seedCentroids(vectors)

	prev := make([]int, n)
	for i := range prev {
		prev[i] = -1
	}

	var p Partition
	for iter := 1; iter <= maxIter; iter++ {
		assign := assignPoints(vectors, centroids)
		p.Iterations = iter

		if equalAssignments(assign, prev) {
			p.Converged = true
			break
		}
		prev = assign

		updateCentroids(vectors, assign, centroids)
	}

	p.Assignments = prev
	p.Centroids = centroids
	return p
}

// seedCentroids builds the initial centroids as copies of input vectors.
func seedCentroids(vectors [][]float64) [][]float64 {
	n := len(vectors)

	if n <= numClusters {
		centroids := make([][]float64, n)
		for i, vec := range vectors {
			centroids[i] = copyVector(vec)
		}
		return centroids
	}

	step := n / numClusters
	centroids := make([][]float64, numClusters)
	for i := 0; i < numClusters; i++ {
		idx := i * step
		if idx > n-1 {
			idx = n - 1
		}
		centroids[i] = copyVector(vectors[idx])
	}
	return centroids
}

// assignPoints maps every vector to its nearest centroid. Ties resolve to
// the lower-indexed centroid because the comparison is strict.
func assignPoints(vectors, centroids [][]float64) []int {
	assign := make([]int, len(vectors))
	for i, vec := range vectors {
		best := 0
		bestDist := math.Inf(1)
		for c, centroid := range centroids {
			if d := squaredDistance(vec, centroid); d < bestDist {
				bestDist = d
				best = c
			}
		}
		assign[i] = best
	}
	return assign
}

// updateCentroids recomputes each centroid as the coordinate-wise mean of
// its assigned points, in place. Empty clusters are skipped.
func updateCentroids(vectors [][]float64, assign []int, centroids [][]float64) {
	dims := len(vectors[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dims)
	}

	for i, vec := range vectors {
		c := assign[i]
		counts[c]++
		for d, v := range vec {
			sums[c][d] += v
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for d := range centroids[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

// squaredDistance is the squared Euclidean distance. Squared form preserves
// ordering, so the strict-< tie policy is unaffected.
func squaredDistance(a, b []float64) float64 {
	var sum float64
	for d := range a {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return sum
}

func equalAssignments(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
