package scheduler

import (
	"testing"
)

type testJob struct {
	id          uint64
	phase       Phase
	fn          func()
	invalidated bool
}

func (j *testJob) JobID() uint64     { return j.id }
func (j *testJob) JobPhase() Phase   { return j.phase }
func (j *testJob) Invoke()           { j.fn() }
func (j *testJob) Invalidated() bool { return j.invalidated }

func job(id uint64, phase Phase, fn func()) *testJob {
	return &testJob{id: id, phase: phase, fn: fn}
}

func TestFlushOrder(t *testing.T) {
	q := NewQueue(nil)
	var order []uint64
	record := func(id uint64) func() {
		return func() { order = append(order, id) }
	}

	// Scheduled out of order across phases.
	q.Schedule(job(30, PhasePost, record(30)))
	q.Schedule(job(20, PhaseRender, record(20)))
	q.Schedule(job(11, PhasePre, record(11)))
	q.Schedule(job(10, PhasePre, record(10)))
	q.Schedule(job(21, PhaseRender, record(21)))

	q.Flush()

	want := []uint64{10, 11, 20, 21, 30}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestScheduleDedupsByID(t *testing.T) {
	q := NewQueue(nil)
	runs := 0
	j := job(1, PhaseRender, func() { runs++ })

	q.Schedule(j)
	q.Schedule(j)
	q.Schedule(j)
	q.Flush()

	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestJobScheduledMidFlushJoinsSamePass(t *testing.T) {
	q := NewQueue(nil)
	var order []string

	late := job(50, PhaseRender, func() { order = append(order, "late") })
	first := job(1, PhaseRender, func() {
		order = append(order, "first")
		q.Schedule(late)
	})

	q.Schedule(first)
	q.Flush()

	if len(order) != 2 || order[0] != "first" || order[1] != "late" {
		t.Errorf("order = %v, want [first late]", order)
	}
}

func TestInvalidatedJobSkipped(t *testing.T) {
	q := NewQueue(nil)
	runs := 0
	j := job(7, PhaseRender, func() { runs++ })

	q.Schedule(j)
	q.Invalidate(7)
	q.Flush()
	if runs != 0 {
		t.Errorf("runs = %d, want 0", runs)
	}

	// The ID is freed for immediate re-scheduling.
	q.Schedule(j)
	q.Flush()
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestInvalidatedFlagSkipped(t *testing.T) {
	q := NewQueue(nil)
	runs := 0
	j := job(3, PhaseRender, func() { runs++ })
	j.invalidated = true

	q.Schedule(j)
	q.Flush()
	if runs != 0 {
		t.Errorf("runs = %d, want 0", runs)
	}
}

func TestPostJobsRunAfterRenderJobs(t *testing.T) {
	q := NewQueue(nil)
	var order []string

	// The render job schedules a post job; one Flush must run both,
	// post last.
	q.Schedule(job(1, PhaseRender, func() {
		order = append(order, "render")
		q.Schedule(job(2, PhasePost, func() { order = append(order, "post") }))
	}))

	q.Flush()
	if len(order) != 2 || order[0] != "render" || order[1] != "post" {
		t.Errorf("order = %v, want [render post]", order)
	}
}

func TestJobPanicIsolated(t *testing.T) {
	var errs []error
	q := NewQueue(func(err error) { errs = append(errs, err) })
	runs := 0

	q.Schedule(job(1, PhaseRender, func() { panic("boom") }))
	q.Schedule(job(2, PhaseRender, func() { runs++ }))
	q.Flush()

	if runs != 1 {
		t.Errorf("runs = %d, want 1 (panic must not abort the flush)", runs)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v", errs)
	}
	if errs[0].Error() != "scheduler: job panicked: boom" {
		t.Errorf("err = %q", errs[0].Error())
	}
}

func TestNotifyFiresOncePerWake(t *testing.T) {
	q := NewQueue(nil)

	q.Schedule(job(1, PhaseRender, func() {}))
	q.Schedule(job(2, PhaseRender, func() {}))

	select {
	case <-q.Notify():
	default:
		t.Fatal("expected a notify token")
	}
	select {
	case <-q.Notify():
		t.Fatal("notify channel must coalesce")
	default:
	}

	q.Flush()
	if q.HasPending() {
		t.Error("queue not drained")
	}
}

func TestSelfRetriggerRunsNextPass(t *testing.T) {
	q := NewQueue(nil)
	runs := 0

	var j *testJob
	j = job(1, PhaseRender, func() {
		runs++
		if runs < 3 {
			q.Schedule(j)
		}
	})

	q.Schedule(j)
	q.Flush()

	if runs != 3 {
		t.Errorf("runs = %d, want 3 (flush settles re-triggers)", runs)
	}
}
