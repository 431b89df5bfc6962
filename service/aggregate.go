package service

import (
	"fmt"
	"math"

	"github.com/JLTC3111/contract-management-app-sub001/model"
)

// PhaseProgress computes a phase's progress percentage from its tasks.
// A phase with no tasks has zero progress. Halves round up.
func PhaseProgress(phase *model.Phase) int {
	total := len(phase.Tasks)
	if total == 0 {
		return 0
	}

	completed := 0
	for i := range phase.Tasks {
		if phase.Tasks[i].Completed {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(total)))
}

// PhaseStatusOf derives a phase's status from its task completion.
func PhaseStatusOf(phase *model.Phase) model.PhaseStatus {
	progress := PhaseProgress(phase)
	switch {
	case progress == 100 && len(phase.Tasks) > 0:
		return model.PhaseCompleted
	case progress == 0:
		return model.PhasePending
	default:
		return model.PhaseInProgress
	}
}

// ContractProgress computes a contract's overall progress as the equally
// weighted average of its six phases, truncated to an integer.
//
// The phase set must be exactly {1..6}. A partial contract (mid-migration)
// fails with ErrMalformedLifecycle instead of silently averaging over fewer
// phases, which would report a misleading number.
func ContractProgress(phases []model.Phase) (int, error) {
	if len(phases) != model.PhaseCount {
		return 0, fmt.Errorf("%w: have %d phases, want %d", ErrMalformedLifecycle, len(phases), model.PhaseCount)
	}

	seen := make(map[int]bool, model.PhaseCount)
	sum := 0
	for i := range phases {
		n := phases[i].Number
		if n < 1 || n > model.PhaseCount || seen[n] {
			return 0, fmt.Errorf("%w: invalid or duplicate phase number %d", ErrMalformedLifecycle, n)
		}
		seen[n] = true
		sum += PhaseProgress(&phases[i])
	}

	return sum / model.PhaseCount, nil
}
