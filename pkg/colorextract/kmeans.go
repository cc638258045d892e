package colorextract

import "math/rand"

// runKMeansRepeats implements spec.md §4.G's K-means schedule: repeat
// the whole clustering 5 times (each attempt itself picking the best of
// 3 K-means++ restarts by lowest SSE), then keep the attempt whose
// largest cluster has the most points overall, as a stochasticity
// tiebreaker. Returns the centroid of that winning largest cluster.
func runKMeansRepeats(points [][3]float64, seed int64) ([3]float64, bool) {
	if len(points) < kClusters {
		if len(points) == 0 {
			return [3]float64{}, false
		}
		return largestClusterFallback(points), true
	}

	rng := rand.New(rand.NewSource(seed))

	var bestCenter [3]float64
	bestSize := -1
	found := false

	for attempt := 0; attempt < repeats; attempt++ {
		centers, assignments, ok := bestRestart(points, rng)
		if !ok {
			continue
		}
		idx, size := largestCluster(assignments, kClusters)
		if size > bestSize {
			bestSize = size
			bestCenter = centers[idx]
			found = true
		}
	}
	return bestCenter, found
}

// bestRestart runs `restarts` independent K-means++ clusterings and
// returns the one with lowest final SSE.
func bestRestart(points [][3]float64, rng *rand.Rand) (centers [kClusters][3]float64, assignments []int, ok bool) {
	bestSSE := -1.0
	for r := 0; r < restarts; r++ {
		c, a, sse, converged := kmeansOnce(points, rng)
		if !converged {
			continue
		}
		if bestSSE < 0 || sse < bestSSE {
			bestSSE = sse
			centers = c
			assignments = a
			ok = true
		}
	}
	return
}

func kmeansOnce(points [][3]float64, rng *rand.Rand) (centers [kClusters][3]float64, assignments []int, sse float64, converged bool) {
	centers = kmeansPlusPlusInit(points, rng)
	assignments = make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		moved := 0.0
		for i, p := range points {
			best, bestDist := 0, dist2(p, centers[0])
			for k := 1; k < kClusters; k++ {
				if d := dist2(p, centers[k]); d < bestDist {
					best, bestDist = k, d
				}
			}
			assignments[i] = best
		}

		var sums [kClusters][3]float64
		var counts [kClusters]int
		for i, p := range points {
			k := assignments[i]
			sums[k][0] += p[0]
			sums[k][1] += p[1]
			sums[k][2] += p[2]
			counts[k]++
		}
		for k := 0; k < kClusters; k++ {
			if counts[k] == 0 {
				continue
			}
			newCenter := [3]float64{
				sums[k][0] / float64(counts[k]),
				sums[k][1] / float64(counts[k]),
				sums[k][2] / float64(counts[k]),
			}
			moved += dist2(newCenter, centers[k])
			centers[k] = newCenter
		}
		if moved < epsilon*epsilon {
			break
		}
	}

	for i, p := range points {
		sse += dist2(p, centers[assignments[i]])
	}
	return centers, assignments, sse, true
}

// kmeansPlusPlusInit seeds initial centers with K-means++: the first
// center is uniform-random, each subsequent center is chosen with
// probability proportional to its squared distance from the nearest
// already-chosen center.
func kmeansPlusPlusInit(points [][3]float64, rng *rand.Rand) [kClusters][3]float64 {
	var centers [kClusters][3]float64
	centers[0] = points[rng.Intn(len(points))]
	for k := 1; k < kClusters; k++ {
		weights := make([]float64, len(points))
		var total float64
		for i, p := range points {
			minDist := dist2(p, centers[0])
			for j := 1; j < k; j++ {
				if d := dist2(p, centers[j]); d < minDist {
					minDist = d
				}
			}
			weights[i] = minDist
			total += minDist
		}
		if total == 0 {
			centers[k] = points[rng.Intn(len(points))]
			continue
		}
		target := rng.Float64() * total
		var cum float64
		chosen := len(points) - 1
		for i, w := range weights {
			cum += w
			if cum >= target {
				chosen = i
				break
			}
		}
		centers[k] = points[chosen]
	}
	return centers
}

func dist2(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

func largestCluster(assignments []int, k int) (idx, size int) {
	counts := make([]int, k)
	for _, a := range assignments {
		counts[a]++
	}
	best, bestSize := 0, counts[0]
	for i := 1; i < k; i++ {
		if counts[i] > bestSize {
			best, bestSize = i, counts[i]
		}
	}
	return best, bestSize
}

// largestClusterFallback handles the degenerate case of fewer samples
// than clusters: every point is its own cluster, so the "largest" one
// is simply the mean of all points.
func largestClusterFallback(points [][3]float64) [3]float64 {
	var sum [3]float64
	for _, p := range points {
		sum[0] += p[0]
		sum[1] += p[1]
		sum[2] += p[2]
	}
	n := float64(len(points))
	return [3]float64{sum[0] / n, sum[1] / n, sum[2] / n}
}
