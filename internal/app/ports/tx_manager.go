package ports

import (
	"context"

	"gridwright/internal/domain/world"
)

// WorldStore owns the session's world.State and is the only way to reach it.
// Update runs fn with exclusive access, View with shared read access; fn must
// not keep the pointer after it returns.
type WorldStore interface {
	View(ctx context.Context, fn func(s *world.State) error) error
	Update(ctx context.Context, fn func(s *world.State) error) error
	// Reset swaps in a fresh state for a new session.
	Reset(ctx context.Context, s *world.State) error
}
