package inmemory

import (
	"sync"
	"testing"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordDecision("EXPLORE")
	r.RecordDecision("NONE")
	r.RecordDecision("NONE")
	r.RecordNotFound()

	s := r.Snapshot()
	if s.DecisionTotal != 3 {
		t.Fatalf("expected total 3, got %d", s.DecisionTotal)
	}
	if s.NotFoundTotal != 1 {
		t.Fatalf("expected not found 1, got %d", s.NotFoundTotal)
	}
	if s.IdleTotal != 2 {
		t.Fatalf("expected idle 2, got %d", s.IdleTotal)
	}
	if s.ByAction["EXPLORE"] != 1 {
		t.Fatalf("expected explore count 1")
	}
}

func TestRecorderSnapshotIsCopy(t *testing.T) {
	r := NewRecorder()
	r.RecordDecision("MOVE")
	s := r.Snapshot()
	s.ByAction["MOVE"] = 99
	if got := r.Snapshot().ByAction["MOVE"]; got != 1 {
		t.Fatalf("expected recorder unaffected, got %d", got)
	}
}

func TestRecorderConcurrentUse(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.RecordDecision("DEPLOY")
			}
		}()
	}
	wg.Wait()
	if got := r.Snapshot().DecisionTotal; got != 800 {
		t.Fatalf("expected total 800, got %d", got)
	}
}
