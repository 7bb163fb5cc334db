package worker_test

import (
	"fmt"
	"testing"

	"github.com/permitprep/backend/internal/worker"
)

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := worker.NewPool[int](2, 4)

	for i := 0; i < 3; i++ {
		n := i
		p.Submit(fmt.Sprintf("job-%d", i), func() int { return n * 2 })
	}
	p.Close()

	got := make(map[string]int)
	for r := range p.Results() {
		got[r.JobID] = r.Output
	}
	if len(got) != 3 {
		t.Fatalf("collected %d results, want 3", len(got))
	}
	for i := 0; i < 3; i++ {
		if got[fmt.Sprintf("job-%d", i)] != i*2 {
			t.Errorf("job-%d = %d, want %d", i, got[fmt.Sprintf("job-%d", i)], i*2)
		}
	}
}

func TestPool_CloseClosesResults(t *testing.T) {
	p := worker.NewPool[string](1, 2)
	p.Submit("only", func() string { return "done" })
	p.Close()

	// Pending work is still delivered, then the channel closes so a
	// consumer ranging over it terminates.
	r, ok := <-p.Results()
	if !ok || r.Output != "done" {
		t.Fatalf("first receive = (%v, %v), want (done, true)", r.Output, ok)
	}
	if _, ok := <-p.Results(); ok {
		t.Error("results channel still open after Close")
	}
}
