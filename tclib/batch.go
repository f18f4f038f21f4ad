package tclib

import (
	"cmp"
	"context"
	"runtime"

	"github.com/creachadair/mds/slice"
	"github.com/creachadair/tripcode"
	"golang.org/x/sync/errgroup"
)

// A Result is the outcome of generating a tripcode for an Input.
type Result struct {
	Input
	Tripcode string // the tripcode, or tripcode.Invalid if Err != nil
	Err      error  // non-nil if the password is not valid for the format
}

// GenerateAll generates tripcodes in format f for each of the inputs, using
// up to jobs concurrent workers. If jobs <= 0, it uses one worker per CPU.
// The results are in the same order as the inputs.
//
// A password the format rejects does not stop the batch; its Result reports
// the error. GenerateAll reports an error only if ctx ends before the batch
// is complete.
func GenerateAll(ctx context.Context, f tripcode.Format, inputs []Input, jobs int) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	out := make([]Result, len(inputs))
	size := max(1, (len(inputs)+jobs-1)/jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	var next int
	for _, chunk := range slice.Chunks(inputs, size) {
		res := out[next : next+len(chunk)]
		next += len(chunk)
		g.Go(func() error {
			for i, in := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				trip, err := tripcode.TryGenerate(f, in.Data)
				res[i] = Result{Input: in, Tripcode: cmp.Or(trip, tripcode.Invalid), Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
