package activity

// UserStatusActive marks a user who has checked in at least once.
const UserStatusActive = "active"

// UserState is the last-known aggregate state for one user.
type UserState struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LastCheckin  int64   `json:"lastCheckin"`
	RedpackTotal float64 `json:"redpackTotal"`
	CheckinCount int     `json:"checkinCount"`
	Status       string  `json:"status"`
}

// UserDirectory holds per-user aggregates keyed by user id. It is not safe
// for concurrent use; the ActivityCoordinator serializes all access.
type UserDirectory struct {
	users map[string]UserState
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]UserState)}
}

// Upsert records one check-in for the user: a fresh entry starts at count 1
// with the delta as its total, an existing entry accumulates. Name and last
// check-in time are refreshed either way.
func (d *UserDirectory) Upsert(userID, name string, timestamp int64, rewardDelta float64) {
	state := d.users[userID]

	state.ID = userID
	state.Name = name
	state.LastCheckin = timestamp
	state.RedpackTotal += rewardDelta
	state.CheckinCount++
	state.Status = UserStatusActive

	d.users[userID] = state
}

// Get returns the state for one user, if present.
func (d *UserDirectory) Get(userID string) (UserState, bool) {
	state, ok := d.users[userID]
	return state, ok
}

// Size returns the number of distinct users seen.
func (d *UserDirectory) Size() int {
	return len(d.users)
}

// All returns a snapshot of every entry, in no particular order.
func (d *UserDirectory) All() []UserState {
	out := make([]UserState, 0, len(d.users))
	for _, state := range d.users {
		out = append(out, state)
	}
	return out
}

// Clear empties the directory.
func (d *UserDirectory) Clear() {
	d.users = make(map[string]UserState)
}
