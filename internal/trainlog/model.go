package trainlog

// Entry is one completed exercise within a logged session. Target fields
// are copied from the plan at logging time so later plan edits never
// rewrite history. Performed values stay free text, the way they are
// entered ("8,8,7", "bodyweight", "60kg").
type Entry struct {
	ExerciseName  string `json:"exerciseName"`
	TargetSets    string `json:"targetSets"`
	TargetReps    string `json:"targetReps"`
	RecoveryTime  string `json:"recoveryTime"`
	WeightUsed    string `json:"weightUsed"`
	SetsPerformed string `json:"setsPerformed"`
	RepsPerformed string `json:"repsPerformed"`
	GoalMet       bool   `json:"goalMet"`
}

// Session is one logged workout, at most one per calendar date per user.
type Session struct {
	Date        string  `json:"date"` // zero-padded YYYY-MM-DD
	Weekday     string  `json:"weekday"`
	ProgramWeek int     `json:"programWeek"`
	Exercises   []Entry `json:"exercises"`
}

// HistoryEntry is a session log entry augmented with its session context,
// returned by per-exercise history queries.
type HistoryEntry struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	ProgramWeek int    `json:"programWeek"`
	Entry
}

// ProgressionPoint is one charted weight measurement.
type ProgressionPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Progression is the numeric weight series of one exercise. Entries whose
// weight does not parse are left out of the series but still count in
// the raw history.
type Progression struct {
	ExerciseName  string             `json:"exerciseName"`
	Points        []ProgressionPoint `json:"points"`
	MinWeight     float64            `json:"minWeight"`
	MaxWeight     float64            `json:"maxWeight"`
	CurrentWeight float64            `json:"currentWeight"`
	// Delta is the difference between the latest and the first charted weight.
	Delta float64 `json:"delta"`
}
