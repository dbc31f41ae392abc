// Package scheduler implements the deferred flush queue that batches
// reactive effect re-runs. Triggering state synchronously only enqueues
// work; the queue drains later, in one pass, so every effect observes the
// final settled state of a mutation burst rather than intermediate values.
//
// Go has no microtask queue, so the deferral point is explicit: a driver
// loop (the live session, a test, an embedding application) waits on
// Notify and calls Flush after its synchronous work unwinds. FlushSync is
// the escape hatch for code that needs immediate consistency.
package scheduler

import (
	"fmt"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// Phase orders jobs within one flush: pre jobs before render jobs before
// post jobs, and within a phase ascending by job ID (creation order), which
// puts parent component renders before their children.
type Phase int8

const (
	PhasePre Phase = iota
	PhaseRender
	PhasePost
)

// Job is one schedulable unit of work.
type Job interface {
	// JobID is the dedup and ordering key. Lower IDs flush first within
	// a phase.
	JobID() uint64

	// JobPhase selects the flush phase.
	JobPhase() Phase

	// Invoke runs the job. Panics are isolated by the queue.
	Invoke()

	// Invalidated jobs are skipped at flush time. This is how unmounting
	// a component cancels its pending update.
	Invalidated() bool
}

// Queue is the pending-job queue. All methods are safe for concurrent use,
// though the intended model is a single driver loop.
type Queue struct {
	mu       sync.Mutex
	jobs     []Job // pre + render, sorted by (phase, id)
	postJobs []Job // post, sorted by id, flushed after the main queue

	// queued tracks IDs currently in either queue, excluding the job being
	// invoked right now, so a job re-triggering itself mid-flush schedules
	// a fresh pass.
	queued mapset.Set[uint64]

	flushing   bool
	flushIndex int

	notify chan struct{}

	// onError receives panics recovered from jobs. nil falls back to
	// re-panicking, which is only acceptable in tests.
	onError func(error)
}

// NewQueue creates an empty queue. handler receives errors recovered from
// jobs during a flush; the flush continues with the remaining jobs either
// way. A nil handler re-panics.
func NewQueue(handler func(error)) *Queue {
	return &Queue{
		queued:  mapset.NewSet[uint64](),
		notify:  make(chan struct{}, 1),
		onError: handler,
	}
}

// Notify returns a channel that receives one token when the queue goes from
// empty to non-empty outside a flush. Driver loops select on it and call
// Flush.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}

// Schedule adds a job unless an identical job (same ID) is already pending.
// During a flush, a job whose turn has not yet come joins the current pass;
// a job that already ran this pass is queued for the next one.
func (q *Queue) Schedule(job Job) {
	q.mu.Lock()
	if !q.queued.Add(job.JobID()) {
		q.mu.Unlock()
		return
	}

	if job.JobPhase() == PhasePost {
		q.postJobs = insertSorted(q.postJobs, job, 0)
	} else {
		// Never insert before the position currently being flushed.
		floor := 0
		if q.flushing {
			floor = q.flushIndex + 1
		}
		q.jobs = insertSorted(q.jobs, job, floor)
	}
	wake := !q.flushing
	q.mu.Unlock()

	if wake {
		select {
		case q.notify <- struct{}{}:
		default:
		}
	}
}

// insertSorted places job into jobs keeping (phase, id) order, never before
// index floor.
func insertSorted(jobs []Job, job Job, floor int) []Job {
	i := sort.Search(len(jobs), func(i int) bool {
		if jobs[i].JobPhase() != job.JobPhase() {
			return jobs[i].JobPhase() > job.JobPhase()
		}
		return jobs[i].JobID() > job.JobID()
	})
	if i < floor {
		i = floor
	}
	jobs = append(jobs, nil)
	copy(jobs[i+1:], jobs[i:])
	jobs[i] = job
	return jobs
}

// HasPending reports whether any job is waiting.
func (q *Queue) HasPending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs) > 0 || len(q.postJobs) > 0
}

// Invalidate removes a pending job by ID so the flush skips it. Jobs whose
// Invalidated method reports true are skipped regardless; this additionally
// frees the ID for immediate re-scheduling.
func (q *Queue) Invalidate(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queued.Remove(id)
}

// Flush drains the queue: pre and render jobs in order, then post jobs,
// then any jobs scheduled by those, until the queue settles. Job panics are
// recovered, handed to the error handler, and do not abort the remaining
// jobs.
func (q *Queue) Flush() {
	q.mu.Lock()
	if q.flushing {
		q.mu.Unlock()
		return
	}
	q.flushing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.flushing = false
		q.mu.Unlock()
	}()

	for {
		ran := false
		for q.flushMain() || q.flushPost() {
			ran = true
		}
		if !ran {
			return
		}
	}
}

// flushMain runs pending pre/render jobs. Returns true if any job ran.
func (q *Queue) flushMain() bool {
	ran := false
	for {
		q.mu.Lock()
		if q.flushIndex >= len(q.jobs) {
			q.jobs = q.jobs[:0]
			q.flushIndex = 0
			q.mu.Unlock()
			return ran
		}
		job := q.jobs[q.flushIndex]
		// Releasing the ID before Invoke means a self-re-trigger lands in
		// the queue again, after this position, joining this same pass.
		live := q.queued.Contains(job.JobID())
		q.queued.Remove(job.JobID())
		q.mu.Unlock()

		if live && !job.Invalidated() {
			q.invoke(job)
			ran = true
		}

		q.mu.Lock()
		q.flushIndex++
		q.mu.Unlock()
	}
}

// flushPost runs the post queue accumulated so far. Returns true if any
// job ran.
func (q *Queue) flushPost() bool {
	q.mu.Lock()
	jobs := q.postJobs
	q.postJobs = nil
	q.mu.Unlock()

	ran := false
	for _, job := range jobs {
		q.mu.Lock()
		live := q.queued.Contains(job.JobID())
		q.queued.Remove(job.JobID())
		q.mu.Unlock()
		if live && !job.Invalidated() {
			q.invoke(job)
			ran = true
		}
	}
	return ran
}

func (q *Queue) invoke(job Job) {
	defer func() {
		if r := recover(); r != nil {
			if q.onError == nil {
				panic(r)
			}
			if err, ok := r.(error); ok {
				q.onError(err)
			} else {
				q.onError(&jobPanicError{value: r})
			}
		}
	}()
	job.Invoke()
}

// jobPanicError wraps a non-error panic value from a job.
type jobPanicError struct {
	value any
}

func (e *jobPanicError) Error() string {
	return fmt.Sprintf("scheduler: job panicked: %v", e.value)
}
