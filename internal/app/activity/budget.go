package activity

import (
	"math/rand/v2"
	"slices"
)

// FloorAmount is the smallest payout handed out once the budget is spent.
// The cap is a soft target: draws past exhaustion keep returning the floor
// instead of failing, so late check-ins still get an amount.
const FloorAmount = 0.01

// BudgetConfig is the reward draw configuration: the catalog of allowed
// amounts, the total spending cap, and the running used counter.
type BudgetConfig struct {
	Amounts     []float64 `json:"amounts"`
	TotalBudget float64   `json:"totalBudget"`
	UsedBudget  float64   `json:"usedBudget"`
}

// BudgetPatch carries a partial budget update from the admin console.
// Nil (or absent) fields leave the current value untouched.
type BudgetPatch struct {
	Amounts     []float64 `json:"amounts"`
	TotalBudget *float64  `json:"totalBudget"`
	UsedBudget  *float64  `json:"usedBudget"`
}

// RewardAllocator draws reward amounts from a fixed catalog under the soft
// spending cap. It is not safe for concurrent use; the ActivityCoordinator
// serializes all draws.
type RewardAllocator struct {
	cfg BudgetConfig

	// pick selects a catalog index; swapped out in tests for determinism.
	pick func(n int) int
}

func NewRewardAllocator(amounts []float64, totalBudget float64) *RewardAllocator {
	return &RewardAllocator{
		cfg: BudgetConfig{
			Amounts:     slices.Clone(amounts),
			TotalBudget: totalBudget,
		},
		pick: rand.IntN,
	}
}

// Draw returns the next reward amount. While budget remains it selects
// uniformly from the catalog and counts the selection against the budget;
// once used reaches the cap every subsequent draw returns FloorAmount
// uncounted. Draw never fails.
func (a *RewardAllocator) Draw() float64 {
	if a.cfg.UsedBudget >= a.cfg.TotalBudget || len(a.cfg.Amounts) == 0 {
		return FloorAmount
	}

	amount := a.cfg.Amounts[a.pick(len(a.cfg.Amounts))]
	a.cfg.UsedBudget += amount

	return amount
}

// Merge applies the non-nil fields of the patch and returns the resulting
// configuration.
func (a *RewardAllocator) Merge(patch BudgetPatch) BudgetConfig {
	if patch.Amounts != nil {
		a.cfg.Amounts = slices.Clone(patch.Amounts)
	}
	if patch.TotalBudget != nil {
		a.cfg.TotalBudget = *patch.TotalBudget
	}
	if patch.UsedBudget != nil {
		a.cfg.UsedBudget = *patch.UsedBudget
	}

	return a.Config()
}

// Reset zeroes the used counter, re-arming the catalog draw.
func (a *RewardAllocator) Reset() {
	a.cfg.UsedBudget = 0
}

// Config returns a copy of the current budget configuration.
func (a *RewardAllocator) Config() BudgetConfig {
	cfg := a.cfg
	cfg.Amounts = slices.Clone(a.cfg.Amounts)
	return cfg
}
