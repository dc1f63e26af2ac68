package workspace

import "github.com/sashaai2006/AstroMind/pkg/backend"

// Cohort is a tier of pipeline steps executed together. Steps sharing a
// parallel_group form one cohort; a step without a group is a singleton
// cohort keyed by its own id.
type Cohort struct {
	Key   string
	Steps []backend.PipelineStep
}

// GroupSteps partitions steps into cohorts ordered by first appearance
// in the step list, matching how the pipeline schedules them.
func GroupSteps(steps []backend.PipelineStep) []Cohort {
	byKey := make(map[string]int)

	var cohorts []Cohort
	for _, step := range steps {
		key := step.ParallelGroup
		if key == "" {
			key = step.ID
		}
		idx, ok := byKey[key]
		if !ok {
			idx = len(cohorts)
			byKey[key] = idx
			cohorts = append(cohorts, Cohort{Key: key})
		}
		cohorts[idx].Steps = append(cohorts[idx].Steps, step)
	}
	return cohorts
}

// CohortStatus summarizes a tier: failed if any step failed, running if
// any step is running, done only when every step is done, otherwise
// pending.
func CohortStatus(c Cohort) backend.StepStatus {
	allDone := len(c.Steps) > 0
	anyRunning := false
	for _, step := range c.Steps {
		switch step.Status {
		case backend.StepFailed:
			return backend.StepFailed
		case backend.StepRunning:
			anyRunning = true
			allDone = false
		case backend.StepDone:
		default:
			allDone = false
		}
	}
	if anyRunning {
		return backend.StepRunning
	}
	if allDone {
		return backend.StepDone
	}
	return backend.StepPending
}
