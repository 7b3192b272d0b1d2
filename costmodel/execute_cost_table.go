package costmodel

import (
	"sync"

	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

// DefaultModeCost is returned by GetMode when the table holds no entry.
const DefaultModeCost uint64 = 0

// ExecuteCostTable maps program ids to execution cost estimates in compute
// units. It is shared by many concurrent estimation readers and an
// occasional maintenance writer; the cost map and the mode tracking
// counters always change atomically with respect to readers.
type ExecuteCostTable struct {
	lock        sync.RWMutex
	costs       map[txbasic.Address]uint64
	occurrences map[uint64]int
	mode        uint64
	modeCount   int
}

func NewExecuteCostTable() *ExecuteCostTable {
	return &ExecuteCostTable{
		costs:       make(map[txbasic.Address]uint64),
		occurrences: make(map[uint64]int),
	}
}

// truncatedAverage is floor((a+b)/2) without intermediate overflow.
func truncatedAverage(a, b uint64) uint64 {
	return a/2 + b/2 + (a%2+b%2)/2
}

// Upsert inserts newCost verbatim for an unseen program; for a known program
// it stores the truncated average of the old and new cost, smoothing noisy
// single-sample observations. Returns the stored cost.
func (t *ExecuteCostTable) Upsert(program txbasic.Address, newCost uint64) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	stored := newCost
	if oldCost, ok := t.costs[program]; ok {
		stored = truncatedAverage(oldCost, newCost)
		t.decOccurrence(oldCost)
	}

	t.costs[program] = stored
	t.incOccurrence(stored)

	return stored
}

func (t *ExecuteCostTable) GetCost(program txbasic.Address) (uint64, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	cost, ok := t.costs[program]
	return cost, ok
}

// GetMode returns the most frequently occurring cost value among current
// entries, or DefaultModeCost when the table is empty. When two values reach
// equal frequency the earlier mode is retained until strictly exceeded.
func (t *ExecuteCostTable) GetMode() uint64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if len(t.costs) == 0 {
		return DefaultModeCost
	}

	return t.mode
}

func (t *ExecuteCostTable) Len() int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return len(t.costs)
}

// GetCostTable returns a snapshot copy of the full mapping; mutating the
// returned map never affects the table.
func (t *ExecuteCostTable) GetCostTable() map[txbasic.Address]uint64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	snapshot := make(map[txbasic.Address]uint64, len(t.costs))
	for program, cost := range t.costs {
		snapshot[program] = cost
	}

	return snapshot
}

func (t *ExecuteCostTable) incOccurrence(cost uint64) {
	n := t.occurrences[cost] + 1
	t.occurrences[cost] = n
	if cost == t.mode {
		t.modeCount = n
		return
	}

	if n > t.modeCount {
		t.mode = cost
		t.modeCount = n
	}
}

func (t *ExecuteCostTable) decOccurrence(cost uint64) {
	n := t.occurrences[cost] - 1
	if n <= 0 {
		delete(t.occurrences, cost)
		n = 0
	} else {
		t.occurrences[cost] = n
	}

	if cost != t.mode {
		return
	}

	// The demoted mode may have been overtaken; rescan the frequency
	// counters, which hold one entry per distinct cost value, not per
	// program. The following incOccurrence of the replacing value restores
	// the invariant that the mode is a value present in the table.
	t.modeCount = n
	for value, count := range t.occurrences {
		if count > t.modeCount {
			t.mode = value
			t.modeCount = count
		}
	}
}
