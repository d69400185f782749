package hotspot

import "sync"

// TransformParallel computes the same CRFD points as TransformBrute using
// multiple goroutines. Each worker owns a contiguous range of observations
// and counts, for each of them, the values strictly below it. The normalized
// values are shared read-only, so no synchronization is needed for writes.
// Falls back to the sequential TransformBrute if numWorkers <= 1.
//
// The result is bitwise identical to Transform and TransformBrute.
func TransformParallel(obs []Observation, numWorkers int) ([]CRFDPoint, error) {
	if numWorkers <= 1 || len(obs) <= 1 {
		return TransformBrute(obs)
	}

	xs, err := normalizeValues(obs)
	if err != nil {
		return nil, err
	}

	n := float64(len(xs))
	points := make([]CRFDPoint, len(xs))
	parallelRange(len(xs), numWorkers, func(start, end int) {
		for i := start; i < end; i++ {
			points[i] = CRFDPoint{X: xs[i], Y: float64(countBelow(xs, xs[i])) / n, Index: i}
		}
	})
	return points, nil
}

// parallelRange splits [0, n) into numWorkers contiguous ranges and calls fn
// on each range in its own goroutine, returning once all have finished.
// Ranges never overlap, so fn may write to per-index output slots freely.
func parallelRange(n, numWorkers int, fn func(start, end int)) {
	if numWorkers <= 1 || n <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(startRow, endRow)
	}

	wg.Wait()
}
