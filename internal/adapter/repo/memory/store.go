package memory

import (
	"sync"

	"gridwright/internal/app/ports"
	"gridwright/internal/domain/world"
)

// Store keeps the live world.State and the decision journal in process
// memory. The world lock serializes every World State access in the process;
// the journal has its own lock so audit writes never wait on a decision.
type Store struct {
	mu    sync.RWMutex
	world *world.State

	journalMu sync.RWMutex
	decisions map[int][]ports.DecisionRecord
}

func NewStore(initial *world.State) *Store {
	return &Store{
		world:     initial,
		decisions: make(map[int][]ports.DecisionRecord),
	}
}
