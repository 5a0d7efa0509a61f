package plan

import (
	"encoding/json"
	"errors"

	"github.com/lgznml/WorkoutTracker/internal/program"
)

var (
	ErrInvalidWeekday   = errors.New("invalid weekday")
	ErrIndexOutOfRange  = errors.New("exercise index out of range")
	ErrTemplateNotFound = errors.New("workout template not found")
)

// WeekTarget is the sets/reps goal for one week of the program cycle.
// Both fields are free text, the original data holds values like "3" or
// "8-10" next to plain numbers.
type WeekTarget struct {
	Sets string `json:"sets"`
	Reps string `json:"reps"`
}

// Exercise is one exercise slot within a weekday's template, carrying a
// target for each week of the program cycle.
type Exercise struct {
	Name         string       `json:"name"`
	RecoveryTime string       `json:"recoveryTime"`
	Notes        string       `json:"notes"`
	Targets      []WeekTarget `json:"targets"`
}

// UnmarshalJSON tolerates the legacy single sets/reps shape: entries
// stored before per-week targets existed carry one flat pair, which gets
// replicated across all weeks of the cycle on read.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	type exerciseAlias Exercise
	aux := struct {
		*exerciseAlias
		LegacySets string `json:"sets"`
		LegacyReps string `json:"reps"`
	}{
		exerciseAlias: (*exerciseAlias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Targets = normalizeTargets(e.Targets, WeekTarget{Sets: aux.LegacySets, Reps: aux.LegacyReps})
	return nil
}

// NewExercise returns a blank exercise with the full set of week targets.
func NewExercise() Exercise {
	return Exercise{
		Targets: make([]WeekTarget, program.ProgramWeeks),
	}
}

// TargetForWeek returns the sets/reps goal for a 1-based program week.
func (e Exercise) TargetForWeek(week int) WeekTarget {
	if week < 1 || week > len(e.Targets) {
		return WeekTarget{}
	}
	return e.Targets[week-1]
}

func normalizeTargets(targets []WeekTarget, fallback WeekTarget) []WeekTarget {
	if len(targets) == program.ProgramWeeks {
		return targets
	}
	if len(targets) > program.ProgramWeeks {
		return targets[:program.ProgramWeeks]
	}

	normalized := make([]WeekTarget, program.ProgramWeeks)
	copy(normalized, targets)
	if len(targets) > 0 {
		fallback = targets[len(targets)-1]
	}
	for i := len(targets); i < program.ProgramWeeks; i++ {
		normalized[i] = fallback
	}
	return normalized
}
