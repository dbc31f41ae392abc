package runtime

import (
	"fmt"

	"github.com/tideui/tide/internal/errors"
)

// handleError routes an error raised inside inst (render, effect, or
// event handler) up the component chain: each ancestor's OnErrorCaptured
// hooks get a chance to absorb it. Unabsorbed errors fall through to the
// renderer's application handler, then the log.
func (r *Renderer) handleError(err error, inst *ComponentInstance, phase string) {
	if err == nil {
		return
	}
	err = errors.Wrap(err, errors.ErrInternal, fmt.Sprintf("component %s failed", phase))

	for cursor := inst; cursor != nil; cursor = cursor.parent {
		for _, hook := range cursor.errorHooks {
			if captured := runErrorHook(hook, err); captured {
				return
			}
		}
	}
	r.reportUncaught(err)
}

// runErrorHook invokes a boundary hook, treating a panic inside the hook
// itself as "not captured" so the error still surfaces.
func runErrorHook(hook func(error) bool, err error) (captured bool) {
	defer func() {
		if recover() != nil {
			captured = false
		}
	}()
	return hook(err)
}

func (r *Renderer) reportUncaught(err error) {
	if r.onError != nil {
		r.onError(err)
		return
	}
	r.logger.Error("uncaught runtime error", "error", err)
}
