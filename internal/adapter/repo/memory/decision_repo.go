package memory

import (
	"context"

	"gridwright/internal/app/ports"
)

type DecisionRepo struct {
	store *Store
}

func NewDecisionRepo(store *Store) DecisionRepo {
	return DecisionRepo{store: store}
}

func (r DecisionRepo) Append(_ context.Context, rec ports.DecisionRecord) error {
	r.store.journalMu.Lock()
	defer r.store.journalMu.Unlock()
	r.store.decisions[rec.AgentID] = append(r.store.decisions[rec.AgentID], rec)
	return nil
}

func (r DecisionRepo) ListByAgentID(_ context.Context, agentID int, limit int) ([]ports.DecisionRecord, error) {
	r.store.journalMu.RLock()
	defer r.store.journalMu.RUnlock()
	recs := r.store.decisions[agentID]
	n := len(recs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ports.DecisionRecord, 0, n)
	for i := len(recs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}
