package plan

import (
	"github.com/lgznml/WorkoutTracker/internal/program"
)

// Plan maps every weekday label to its ordered exercise list. All 7 day
// keys are always present, a rest day simply holds an empty list. Order
// within a day is insertion order, deletion addresses exercises by index.
type Plan map[string][]Exercise

func New() Plan {
	p := make(Plan, len(program.Weekdays))
	for _, day := range program.Weekdays {
		p[day] = []Exercise{}
	}
	return p
}

// Normalize restores the all-weekdays invariant and the per-exercise
// week-target count after external input (JSON body, storage rows).
func (p Plan) Normalize() {
	for _, day := range program.Weekdays {
		exercises := p[day]
		if exercises == nil {
			exercises = []Exercise{}
		}
		for i := range exercises {
			exercises[i].Targets = normalizeTargets(exercises[i].Targets, WeekTarget{})
		}
		p[day] = exercises
	}
	for day := range p {
		if !program.IsWeekday(day) {
			delete(p, day)
		}
	}
}

// AddExercise appends the given exercise to a day, a zero-value argument
// adds a blank slot to be filled in through edits.
func (p Plan) AddExercise(day string, exercise Exercise) error {
	if !program.IsWeekday(day) {
		return ErrInvalidWeekday
	}
	exercise.Targets = normalizeTargets(exercise.Targets, WeekTarget{})
	p[day] = append(p[day], exercise)
	return nil
}

// DeleteExercise removes the exercise at the given position of a day.
func (p Plan) DeleteExercise(day string, index int) error {
	if !program.IsWeekday(day) {
		return ErrInvalidWeekday
	}
	exercises := p[day]
	if index < 0 || index >= len(exercises) {
		return ErrIndexOutOfRange
	}
	p[day] = append(exercises[:index], exercises[index+1:]...)
	return nil
}

// ExerciseFor finds a day's exercise by name, used to prefill session
// log entries from the template.
func (p Plan) ExerciseFor(day, name string) (Exercise, bool) {
	for _, exercise := range p[day] {
		if exercise.Name == name {
			return exercise, true
		}
	}
	return Exercise{}, false
}
