package journal

import (
	"context"
	"errors"

	"gridwright/internal/app/ports"
)

// Fanout appends every record to each sink in order. A failing sink does not
// stop the others; all failures are joined into the returned error.
type Fanout []ports.DecisionJournal

func (f Fanout) Append(ctx context.Context, rec ports.DecisionRecord) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Append(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
