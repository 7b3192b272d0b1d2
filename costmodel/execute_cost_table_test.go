package costmodel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

func randAddress(t *testing.T) txbasic.Address {
	addr, err := txbasic.NewAddressFromBytes(frand.Bytes(txbasic.AddressLen))
	require.Equal(t, nil, err)
	return addr
}

func TestExecuteCostTableUpsertFresh(t *testing.T) {
	table := NewExecuteCostTable()

	program := randAddress(t)
	stored := table.Upsert(program, 100)
	assert.Equal(t, uint64(100), stored)

	cost, ok := table.GetCost(program)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(100), cost)
	assert.Equal(t, 1, table.Len())
}

func TestExecuteCostTableUpsertAverages(t *testing.T) {
	table := NewExecuteCostTable()

	program := randAddress(t)
	table.Upsert(program, 100)
	stored := table.Upsert(program, 200)
	assert.Equal(t, uint64(150), stored)

	cost, ok := table.GetCost(program)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(150), cost)
	assert.Equal(t, 1, table.Len())
}

func TestExecuteCostTableGetModeEmpty(t *testing.T) {
	table := NewExecuteCostTable()
	assert.Equal(t, DefaultModeCost, table.GetMode())

	_, ok := table.GetCost(randAddress(t))
	assert.Equal(t, false, ok)
}

func TestExecuteCostTableModeTracking(t *testing.T) {
	table := NewExecuteCostTable()

	table.Upsert(randAddress(t), 10)
	assert.Equal(t, uint64(10), table.GetMode())

	table.Upsert(randAddress(t), 20)
	table.Upsert(randAddress(t), 20)
	assert.Equal(t, uint64(20), table.GetMode())

	// ties keep the current mode
	table.Upsert(randAddress(t), 10)
	assert.Equal(t, uint64(20), table.GetMode())
}

func TestExecuteCostTableModeFollowsOverwrite(t *testing.T) {
	table := NewExecuteCostTable()

	program := randAddress(t)
	table.Upsert(program, 5)
	assert.Equal(t, uint64(5), table.GetMode())

	stored := table.Upsert(program, 15)
	assert.Equal(t, uint64(10), stored)

	// the old value no longer occurs, the mode must be a present value
	assert.Equal(t, uint64(10), table.GetMode())
}

func TestExecuteCostTableSnapshotIsolation(t *testing.T) {
	table := NewExecuteCostTable()

	program := randAddress(t)
	table.Upsert(program, 100)

	snapshot := table.GetCostTable()
	assert.Equal(t, 1, len(snapshot))
	assert.Equal(t, uint64(100), snapshot[program])

	snapshot[program] = 999
	delete(snapshot, program)

	cost, ok := table.GetCost(program)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(100), cost)
}

func TestExecuteCostTableConcurrentReadersOneWriter(t *testing.T) {
	table := NewExecuteCostTable()

	program := randAddress(t)
	table.Upsert(program, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		if i == 5 {
			go func() {
				defer wg.Done()
				table.Upsert(program, 200)
			}()
		} else {
			go func() {
				defer wg.Done()
				for n := 0; n < 100; n++ {
					cost, ok := table.GetCost(program)
					assert.Equal(t, true, ok)
					// pre state 100 or post state (100+200)/2, never partial
					assert.Equal(t, true, cost == 100 || cost == 150)

					mode := table.GetMode()
					assert.Equal(t, true, mode == 100 || mode == 150)
				}
			}()
		}
	}
	wg.Wait()

	cost, _ := table.GetCost(program)
	assert.Equal(t, uint64(150), cost)
	assert.Equal(t, uint64(150), table.GetMode())
}
