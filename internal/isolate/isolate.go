// Package isolate coordinates a compile pass with its trace-log sink under
// a single errgroup, so that a failure or cancellation on either side tears
// down the other instead of leaking a goroutine.
package isolate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mini3c/mini3c/internal/panicerr"
)

// Run runs compile to completion, concurrently running sink when it is
// non-nil, and returns the first error from either side. Canceling ctx (or either side failing) stops both: compile
// sees ctx.Err() on its next opportunity to check, and sink's Run is
// expected to stop writing once ctx is done.
//
// compile itself is further isolated with panicerr.Recover so that an
// unexpected panic deep in the compiler surfaces as an error carrying a
// stack trace rather than crashing the whole process.
func Run(ctx context.Context, name string, compile func(context.Context) error, sink func(context.Context) error) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return panicerr.Recover(name, func() error {
			return compile(ctx)
		})
	})

	if sink != nil {
		eg.Go(func() error {
			return sink(ctx)
		})
	}

	return eg.Wait()
}
