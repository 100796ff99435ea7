package memory

import (
	"context"

	"gridwright/internal/app/ports"
	"gridwright/internal/domain/world"
)

var ErrNoSession = ports.ErrNoSession

type WorldStore struct {
	store *Store
}

func NewWorldStore(store *Store) WorldStore {
	return WorldStore{store: store}
}

func (w WorldStore) View(ctx context.Context, fn func(s *world.State) error) error {
	w.store.mu.RLock()
	defer w.store.mu.RUnlock()
	if w.store.world == nil {
		return ErrNoSession
	}
	return fn(w.store.world)
}

func (w WorldStore) Update(ctx context.Context, fn func(s *world.State) error) error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	if w.store.world == nil {
		return ErrNoSession
	}
	return fn(w.store.world)
}

func (w WorldStore) Reset(_ context.Context, s *world.State) error {
	if s == nil {
		return ErrNoSession
	}
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	w.store.world = s
	return nil
}
