// Package fileset reads groups of files with bounded
// concurrency while keeping results in request order.
package fileset

import (
	"context"
	"os"
	"sync"

	"github.com/byte4ever/hbs_renderer/fault"
)

// DefaultParallelism bounds concurrent reads when the caller
// passes a non-positive value.
const DefaultParallelism = 8

// Read returns the contents of every path, in the order of
// paths. Reads run on at most parallelism workers. The first
// failure (in path order) is returned as a fault.ErrIO and no
// contents are returned.
func Read(
	ctx context.Context,
	paths []string,
	parallelism int,
) ([]string, error) {
	const errCtx = "reading file"

	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	contents := make([]string, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup

	sem := make(chan struct{}, parallelism)

	for idx, pa := range paths {
		if err := ctx.Err(); err != nil {
			errs[idx] = fault.IO(errCtx, pa, err)

			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, pa string) {
			defer wg.Done()
			defer func() { <-sem }()

			by, err := os.ReadFile(pa) //nolint:gosec // paths resolved by caller
			if err != nil {
				errs[idx] = fault.IO(errCtx, pa, err)

				return
			}

			contents[idx] = string(by)
		}(idx, pa)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return contents, nil
}
