package services

import "log"

// sagaStep is one action in a multi-step operation across independently
// failing systems, paired with an optional compensation that undoes it when a
// later step fails.
//
// Step kinds:
//   - compensable (default): failure unwinds the compensations of every
//     completed step, in reverse order, before the error is returned.
//   - forward: failure returns the error without unwinding anything. Used
//     past the point where rolling back would destroy assets worth keeping.
//   - bestEffort: failure is recorded as a warning and the saga continues;
//     the overall operation still succeeds.
type sagaStep struct {
	name       string
	run        func() error
	compensate func() error
	forward    bool
	bestEffort bool
}

// runSaga executes steps strictly in order. It returns the error of the first
// failing blocking step, plus any warnings gathered from best-effort steps.
func runSaga(steps []sagaStep) (warnings []string, err error) {
	var completed []sagaStep

	for _, step := range steps {
		runErr := step.run()
		if runErr == nil {
			completed = append(completed, step)
			continue
		}

		if step.bestEffort {
			log.Printf("saga step %s failed (best effort, continuing): %v", step.name, runErr)
			warnings = append(warnings, step.name+": "+runErr.Error())
			continue
		}

		if !step.forward {
			unwind(completed)
		}
		return warnings, runErr
	}

	return warnings, nil
}

func unwind(completed []sagaStep) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(); err != nil {
			// Compensation is itself best-effort; a failed undo leaves an
			// orphan, not a corrupt record.
			log.Printf("saga compensation for %s failed: %v", step.name, err)
		}
	}
}
