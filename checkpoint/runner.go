package checkpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/subchen/go-trylock/v2"
	"go.uber.org/atomic"

	"github.com/TopiaNetwork/topia-costmodel/configuration"
	"github.com/TopiaNetwork/topia-costmodel/costmodel"
	tplog "github.com/TopiaNetwork/topia-costmodel/log"
)

const (
	MOD_NAME = "checkpoint"
)

type RunnerState uint32

const (
	RunnerState_Unknown RunnerState = iota
	RunnerState_Idle
	RunnerState_Saving
)

// CheckpointRunner periodically snapshots a CostModel's instruction cost
// table into a CheckpointStore. One save runs at a time; estimation readers
// are never blocked by a checkpoint.
type CheckpointRunner struct {
	log              tplog.Logger
	costModel        *costmodel.CostModel
	store            *CheckpointStore
	saveInterval     time.Duration
	saveMutex        trylock.TryLocker
	runnerState      *atomic.Uint32
	lastSavedVersion *atomic.Uint64
	cancel           context.CancelFunc
}

func NewCheckpointRunner(log tplog.Logger, costModel *costmodel.CostModel, store *CheckpointStore, config *configuration.CheckpointConfiguration) *CheckpointRunner {
	chkLog := tplog.CreateModuleLogger(tplog.InfoLevel, MOD_NAME, log)
	return &CheckpointRunner{
		log:              chkLog,
		costModel:        costModel,
		store:            store,
		saveInterval:     config.Check().SaveInterval,
		saveMutex:        trylock.New(),
		runnerState:      atomic.NewUint32(uint32(RunnerState_Idle)),
		lastSavedVersion: atomic.NewUint64(0),
	}
}

func (r *CheckpointRunner) State() RunnerState {
	return RunnerState(r.runnerState.Load())
}

// Restore cold-starts the cost model from the latest checkpoint, then the
// built-in baseline is applied by InitializeCostTable. No checkpoint is not
// an error.
func (r *CheckpointRunner) Restore() error {
	snapshot, version, err := r.store.Load()
	if err != nil {
		return err
	}

	if snapshot == nil {
		r.log.Info("No cost table checkpoint, initializing from built-in baseline only")
		return r.costModel.InitializeCostTable(nil)
	}

	entries := make([]configuration.ProgramCostEntry, 0, len(snapshot))
	for program, cost := range snapshot {
		entries = append(entries, configuration.ProgramCostEntry{Program: program, Cost: cost})
	}

	if err := r.costModel.InitializeCostTable(entries); err != nil {
		return err
	}

	r.log.Infof("Restored cost table checkpoint: version=%d, entries=%d", version, len(entries))

	return nil
}

// SaveCheckpoint snapshots the table once. Only one save may run at a time.
func (r *CheckpointRunner) SaveCheckpoint() error {
	if ok := r.saveMutex.TryLockTimeout(1 * time.Second); !ok {
		err := fmt.Errorf("A cost table checkpoint is saving, try later again")
		r.log.Errorf("%v", err)
		return err
	}
	defer r.saveMutex.Unlock()

	r.runnerState.Store(uint32(RunnerState_Saving))
	defer r.runnerState.Store(uint32(RunnerState_Idle))

	tableVersion := r.costModel.TableVersion()
	if tableVersion == r.lastSavedVersion.Load() {
		r.log.Debugf("Cost table unchanged since last checkpoint: version=%d", tableVersion)
		return nil
	}

	snapshot := r.costModel.GetInstructionCostTable()
	chkVersion, err := r.store.Save(snapshot)
	if err != nil {
		r.log.Errorf("Save cost table checkpoint err: %v", err)
		return err
	}

	r.lastSavedVersion.Store(tableVersion)
	r.log.Debugf("Saved cost table checkpoint: version=%d, entries=%d", chkVersion, len(snapshot))

	return nil
}

func (r *CheckpointRunner) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	go func() {
		ticker := time.NewTicker(r.saveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := r.SaveCheckpoint(); err != nil {
					r.log.Warnf("Periodic cost table checkpoint err: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (r *CheckpointRunner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (s RunnerState) String() string {
	switch s {
	case RunnerState_Idle:
		return "Idle"
	case RunnerState_Saving:
		return "Saving"
	default:
		return "Unknown"
	}
}
