package service

import (
	"errors"
	"testing"

	"github.com/JLTC3111/contract-management-app-sub001/model"
)

func phaseWithTasks(number, total, completed int) model.Phase {
	phase := model.Phase{Number: number}
	for i := 0; i < total; i++ {
		phase.Tasks = append(phase.Tasks, model.Task{Completed: i < completed})
	}
	return phase
}

func TestPhaseProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		expected  int
	}{
		{name: "no tasks", total: 0, completed: 0, expected: 0},
		{name: "none completed", total: 4, completed: 0, expected: 0},
		{name: "all completed", total: 4, completed: 4, expected: 100},
		{name: "one third rounds down", total: 3, completed: 1, expected: 33},
		{name: "two thirds rounds up", total: 3, completed: 2, expected: 67},
		{name: "half rounds up", total: 8, completed: 1, expected: 13},
		{name: "seven eighths rounds up", total: 8, completed: 7, expected: 88},
		{name: "single task completed", total: 1, completed: 1, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase := phaseWithTasks(1, tt.total, tt.completed)
			if got := PhaseProgress(&phase); got != tt.expected {
				t.Errorf("Expected progress %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPhaseStatusOf(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		expected  model.PhaseStatus
	}{
		{name: "no tasks is pending", total: 0, completed: 0, expected: model.PhasePending},
		{name: "untouched is pending", total: 3, completed: 0, expected: model.PhasePending},
		{name: "partially done is in progress", total: 3, completed: 1, expected: model.PhaseInProgress},
		{name: "all done is completed", total: 3, completed: 3, expected: model.PhaseCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase := phaseWithTasks(1, tt.total, tt.completed)
			if got := PhaseStatusOf(&phase); got != tt.expected {
				t.Errorf("Expected status %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestContractProgress(t *testing.T) {
	// Six phases at 100, 50, 0, 0, 0, 0 -> average 25
	phases := []model.Phase{
		phaseWithTasks(1, 2, 2),
		phaseWithTasks(2, 2, 1),
		phaseWithTasks(3, 2, 0),
		phaseWithTasks(4, 2, 0),
		phaseWithTasks(5, 2, 0),
		phaseWithTasks(6, 2, 0),
	}

	progress, err := ContractProgress(phases)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if progress != 25 {
		t.Errorf("Expected progress 25, got %d", progress)
	}
}

func TestContractProgressTruncates(t *testing.T) {
	// 100+100+100+100+100+0 = 500 / 6 = 83.33 -> 83
	phases := []model.Phase{
		phaseWithTasks(1, 1, 1),
		phaseWithTasks(2, 1, 1),
		phaseWithTasks(3, 1, 1),
		phaseWithTasks(4, 1, 1),
		phaseWithTasks(5, 1, 1),
		phaseWithTasks(6, 1, 0),
	}

	progress, err := ContractProgress(phases)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if progress != 83 {
		t.Errorf("Expected progress 83, got %d", progress)
	}
}

func TestContractProgressMalformed(t *testing.T) {
	tests := []struct {
		name   string
		phases []model.Phase
	}{
		{
			name: "too few phases",
			phases: []model.Phase{
				phaseWithTasks(1, 1, 1),
				phaseWithTasks(2, 1, 1),
				phaseWithTasks(3, 1, 1),
			},
		},
		{
			name:   "no phases",
			phases: nil,
		},
		{
			name: "duplicate phase number",
			phases: []model.Phase{
				phaseWithTasks(1, 1, 1),
				phaseWithTasks(1, 1, 1),
				phaseWithTasks(3, 1, 1),
				phaseWithTasks(4, 1, 1),
				phaseWithTasks(5, 1, 1),
				phaseWithTasks(6, 1, 1),
			},
		},
		{
			name: "phase number out of range",
			phases: []model.Phase{
				phaseWithTasks(1, 1, 1),
				phaseWithTasks(2, 1, 1),
				phaseWithTasks(3, 1, 1),
				phaseWithTasks(4, 1, 1),
				phaseWithTasks(5, 1, 1),
				phaseWithTasks(7, 1, 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ContractProgress(tt.phases)
			if !errors.Is(err, ErrMalformedLifecycle) {
				t.Errorf("Expected ErrMalformedLifecycle, got %v", err)
			}
		})
	}
}
