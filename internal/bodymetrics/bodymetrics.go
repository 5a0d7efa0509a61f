package bodymetrics

// Entry is one day's body measurement. Weight and calories stay strings:
// an empty value means "not provided", which is different from zero, and
// unparsable values remain visible in raw views.
type Entry struct {
	Date     string `json:"date"` // zero-padded YYYY-MM-DD
	Weight   string `json:"weight"`
	Calories string `json:"calories"`
}

// SeriesPoint is one charted measurement.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is the chartable numeric view of the metrics log. Entries whose
// value does not parse are excluded per series, not per entry.
type Series struct {
	Weight   []SeriesPoint `json:"weight"`
	Calories []SeriesPoint `json:"calories"`
}
