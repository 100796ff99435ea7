package inmemory

import "sync"

type Snapshot struct {
	DecisionTotal uint64            `json:"decision_total"`
	NotFoundTotal uint64            `json:"not_found_total"`
	IdleTotal     uint64            `json:"idle_total"`
	ByAction      map[string]uint64 `json:"by_action"`
}

type Recorder struct {
	mu       sync.Mutex
	total    uint64
	notFound uint64
	byAction map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[string]uint64{},
	}
}

func (r *Recorder) RecordDecision(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.byAction[kind]++
}

func (r *Recorder) RecordNotFound() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		DecisionTotal: r.total,
		NotFoundTotal: r.notFound,
		IdleTotal:     r.byAction["NONE"],
		ByAction:      make(map[string]uint64, len(r.byAction)),
	}
	for k, v := range r.byAction {
		out.ByAction[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
