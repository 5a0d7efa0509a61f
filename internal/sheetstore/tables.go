package sheetstore

// Table names and column layouts of the legacy spreadsheet mirror. The
// sheet is kept as a secondary, human-readable copy of the primary
// store, so the layout matches the original flat tables exactly.
type Table struct {
	Name   string
	Header []string
	// Partitioned marks tables whose rows belong to one user each,
	// keyed by the leading Username column.
	Partitioned bool
}

var (
	TemplateTable = Table{
		Name:        "Template",
		Header:      []string{"Username", "Weekday", "ExerciseListJSON"},
		Partitioned: true,
	}
	HistoryTable = Table{
		Name:        "History",
		Header:      []string{"Username", "Date", "Weekday", "ProgramWeek", "ExerciseLogJSON"},
		Partitioned: true,
	}
	ConfigTable = Table{
		Name:        "Config",
		Header:      []string{"Username", "Key", "Value"},
		Partitioned: true,
	}
	WeightCaloriesTable = Table{
		Name:        "WeightCalories",
		Header:      []string{"Username", "Date", "Weight", "Calories"},
		Partitioned: true,
	}
	UsersTable = Table{
		Name:   "Users",
		Header: []string{"Username", "Password", "FullName"},
	}
	DevicesTable = Table{
		Name:   "Devices",
		Header: []string{"DeviceID", "LastUsername", "LastLoginDate", "AutoLoginEnabled"},
	}
)

// Tables lists every mirrored table in backup order.
var Tables = []Table{
	TemplateTable,
	HistoryTable,
	ConfigTable,
	WeightCaloriesTable,
	UsersTable,
	DevicesTable,
}
