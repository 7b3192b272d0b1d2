package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/TopiaNetwork/topia-costmodel/configuration"
	"github.com/TopiaNetwork/topia-costmodel/costmodel"
	tplog "github.com/TopiaNetwork/topia-costmodel/log"
	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

func testLogger(t *testing.T) tplog.Logger {
	log, err := tplog.CreateMainLogger(tplog.ErrorLevel, tplog.DefaultLogFormat, tplog.StdErrOutput, "")
	require.Equal(t, nil, err)
	return log
}

func randAddress(t *testing.T) txbasic.Address {
	addr, err := txbasic.NewAddressFromBytes(frand.Bytes(txbasic.AddressLen))
	require.Equal(t, nil, err)
	return addr
}

func TestCheckpointStoreSaveLoad(t *testing.T) {
	log := testLogger(t)

	store, err := NewCheckpointStore(log, "test", t.TempDir())
	require.Equal(t, nil, err)
	defer store.Close()

	// empty store has no checkpoint
	snapshot, _, err := store.Load()
	require.Equal(t, nil, err)
	assert.Equal(t, 0, len(snapshot))

	saved := map[txbasic.Address]uint64{
		randAddress(t): 10,
		randAddress(t): 20,
		randAddress(t): 30,
	}
	version, err := store.Save(saved)
	require.Equal(t, nil, err)
	assert.Equal(t, uint64(1), version)

	loaded, loadedVersion, err := store.Load()
	require.Equal(t, nil, err)
	assert.Equal(t, version, loadedVersion)
	assert.Equal(t, saved, loaded)

	// a second save advances the checkpoint version
	version, err = store.Save(saved)
	require.Equal(t, nil, err)
	assert.Equal(t, uint64(2), version)
}

func TestCheckpointRunnerSaveAndRestore(t *testing.T) {
	log := testLogger(t)
	path := t.TempDir()
	chkConfig := configuration.DefCheckpointConfiguration()

	costModel := costmodel.NewCostModel(log, configuration.DefCostConfiguration())
	program := randAddress(t)
	_, err := costModel.UpsertInstructionCost(program, 100)
	require.Equal(t, nil, err)

	store, err := NewCheckpointStore(log, "test", path)
	require.Equal(t, nil, err)

	runner := NewCheckpointRunner(log, costModel, store, chkConfig)
	assert.Equal(t, RunnerState_Idle, runner.State())

	err = runner.SaveCheckpoint()
	require.Equal(t, nil, err)

	// unchanged table skips the next save
	err = runner.SaveCheckpoint()
	require.Equal(t, nil, err)

	_, version, err := store.Load()
	require.Equal(t, nil, err)
	assert.Equal(t, uint64(1), version)

	require.Equal(t, nil, store.Close())

	// a fresh model restored from the checkpoint prices the observed
	// program and the built-in baseline
	store2, err := NewCheckpointStore(log, "test", path)
	require.Equal(t, nil, err)
	defer store2.Close()

	restoredModel := costmodel.NewCostModel(log, configuration.DefCostConfiguration())
	runner2 := NewCheckpointRunner(log, restoredModel, store2, chkConfig)
	err = runner2.Restore()
	require.Equal(t, nil, err)

	assert.Equal(t, uint64(100), restoredModel.FindInstructionCost(program))

	restoredTable := restoredModel.GetInstructionCostTable()
	for _, builtin := range configuration.BuiltinProgramCosts() {
		_, ok := restoredTable[builtin.Program]
		assert.Equal(t, true, ok)
	}
}

func TestCheckpointRunnerRestoreEmpty(t *testing.T) {
	log := testLogger(t)

	store, err := NewCheckpointStore(log, "test", t.TempDir())
	require.Equal(t, nil, err)
	defer store.Close()

	costModel := costmodel.NewCostModel(log, configuration.DefCostConfiguration())
	runner := NewCheckpointRunner(log, costModel, store, configuration.DefCheckpointConfiguration())

	err = runner.Restore()
	require.Equal(t, nil, err)

	// built-in baseline only
	table := costModel.GetInstructionCostTable()
	assert.Equal(t, len(configuration.BuiltinProgramCosts()), len(table))
}
