package ktree

import (
	"runtime"
	"sync"

	"github.com/suborbital-ctf/satkey/internal/logging"
)

// Interval is one [Lo, Hi] covering request in a CoverBatch call.
type Interval struct {
	RootKey [32]byte
	Lo      uint64
	Hi      uint64
}

// Result is the outcome of one Interval in a CoverBatch call.
type Result struct {
	Nodes []Node
	Err   error
}

// CoverBatch runs Cover for every entry of ivals concurrently across a
// pool of threads goroutines (0 means runtime.GOMAXPROCS(0)), a
// worker-pool pattern for expensive per-subtree work. Each Interval is
// independent (spec §5: "callers may parallelize independent invocations
// across threads freely"); CoverBatch is the sanctioned way to do that
// without requiring every caller to hand-roll its own goroutine pool.
// Results are returned in the same order as ivals.
func CoverBatch(ivals []Interval, threads int) []Result {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > len(ivals) {
		threads = len(ivals)
	}
	if threads < 1 {
		return nil
	}

	results := make([]Result, len(ivals))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				nodes, err := Cover(ivals[i].RootKey, ivals[i].Lo, ivals[i].Hi)
				results[i] = Result{Nodes: nodes, Err: err}
			}
		}()
	}

	for i := range ivals {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	logging.Logf("ktree: batch-covered %d intervals across %d workers", len(ivals), threads)
	return results
}
