package domain

// DateCount is one row of the import activity histogram.
type DateCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// KindCount is one row of the pending task breakdown.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// StatsOverview is everything the stats page shows. TotalArtifacts is the
// sum over ImportDates, so the two always agree.
type StatsOverview struct {
	ImportDates    []DateCount `json:"import_dates"`
	TotalArtifacts int64       `json:"total_artifacts"`
	PendingTasks   []KindCount `json:"pending_tasks"`
}
