package runtime

import (
	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/scheduler"
)

// effectJob adapts a reactive effect to the scheduler's Job interface.
// The effect ID doubles as the job ID, so a twice-triggered effect flushes
// once, and creation order (parent before child) becomes flush order.
type effectJob struct {
	e *reactive.Effect
}

func (j effectJob) JobID() uint64 {
	return j.e.ID()
}

func (j effectJob) JobPhase() scheduler.Phase {
	switch j.e.Phase() {
	case reactive.FlushPre:
		return scheduler.PhasePre
	case reactive.FlushPost:
		return scheduler.PhasePost
	default:
		return scheduler.PhaseRender
	}
}

func (j effectJob) Invoke() {
	j.e.Run()
}

func (j effectJob) Invalidated() bool {
	return j.e.Stopped()
}
