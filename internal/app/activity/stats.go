package activity

// ActivityStats is the published statistics snapshot. It is derived state:
// always recomputable from the directory and the ledger, never stored truth.
type ActivityStats struct {
	TotalUsers    int     `json:"totalUsers"`
	TodayCheckins int     `json:"todayCheckins"`
	ActiveHorses  int     `json:"activeHorses"`
	TotalRedpacks float64 `json:"totalRedpacks"`
}

// RecomputeStats derives a fresh snapshot. It has no side effects and is
// idempotent: without intervening mutation, repeated calls return identical
// values. ActiveHorses equals TotalUsers, since every user is considered to
// have one avatar on the display.
func RecomputeStats(directory *UserDirectory, ledger *CheckinLedger) ActivityStats {
	return ActivityStats{
		TotalUsers:    directory.Size(),
		TodayCheckins: ledger.TodayCount(),
		ActiveHorses:  directory.Size(),
		TotalRedpacks: ledger.TotalRewards(),
	}
}
