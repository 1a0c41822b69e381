package activity

import "time"

// LedgerCapacity bounds the retained check-in history. Once exceeded, the
// oldest records are discarded.
const LedgerCapacity = 1000

// CheckinStatusSuccess is the status stamped on every accepted check-in.
const CheckinStatusSuccess = "success"

// CheckinRecord is one immutable check-in event. Timestamps are epoch
// milliseconds, matching the wire format the clients use.
type CheckinRecord struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	UserName      string  `json:"userName"`
	Timestamp     int64   `json:"timestamp"`
	Location      string  `json:"location"`
	RedpackAmount float64 `json:"redpackAmount"`
	Status        string  `json:"status"`
}

// CheckinLedger is the bounded, most-recent-first store of check-in records.
// It is not safe for concurrent use; the ActivityCoordinator serializes all
// access.
type CheckinLedger struct {
	records []CheckinRecord
	loc     *time.Location

	// now is the clock used for "today" comparisons; swapped out in tests.
	now func() time.Time
}

// NewCheckinLedger builds an empty ledger. The location decides which
// calendar day a record's timestamp falls on; the source never pinned a
// timezone, so it is configured rather than hard-coded.
func NewCheckinLedger(loc *time.Location) *CheckinLedger {
	if loc == nil {
		loc = time.Local
	}
	return &CheckinLedger{
		loc: loc,
		now: time.Now,
	}
}

// Append inserts the record at the front and truncates to LedgerCapacity,
// dropping the oldest records first.
func (l *CheckinLedger) Append(rec CheckinRecord) {
	l.records = append([]CheckinRecord{rec}, l.records...)
	if len(l.records) > LedgerCapacity {
		l.records = l.records[:LedgerCapacity]
	}
}

// All returns the retained records, most recent first.
func (l *CheckinLedger) All() []CheckinRecord {
	out := make([]CheckinRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of retained records.
func (l *CheckinLedger) Len() int {
	return len(l.records)
}

// TodayCount counts records whose timestamp falls on the current calendar
// day in the configured location.
func (l *CheckinLedger) TodayCount() int {
	ty, tm, td := l.now().In(l.loc).Date()

	count := 0
	for _, rec := range l.records {
		y, m, d := time.UnixMilli(rec.Timestamp).In(l.loc).Date()
		if y == ty && m == tm && d == td {
			count++
		}
	}
	return count
}

// TotalRewards sums the reward amounts of the retained records. After the
// ledger has truncated, evicted records no longer contribute.
func (l *CheckinLedger) TotalRewards() float64 {
	total := 0.0
	for _, rec := range l.records {
		total += rec.RedpackAmount
	}
	return total
}

// Clear discards every retained record.
func (l *CheckinLedger) Clear() {
	l.records = nil
}
