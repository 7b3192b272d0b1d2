package costmodel

import (
	"errors"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"

	tpcmm "github.com/TopiaNetwork/topia-costmodel/common"
	"github.com/TopiaNetwork/topia-costmodel/configuration"
	tplog "github.com/TopiaNetwork/topia-costmodel/log"
	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

const (
	MOD_NAME = "costmodel"
)

// MaxWritableAccounts is the capacity pre-reserved for the writable account
// list on the estimation hot path.
const MaxWritableAccounts = 256

// ErrCostReadBack signals that a cost stored by an upsert can't be read back
// immediately, an internal invariant violation fatal to the maintenance
// path but not to in-flight estimations.
var ErrCostReadBack = errors.New("failed to upsert to ExecuteCostTable")

// TransactionCost holds the four cost components of one estimated
// transaction, in compute units. An instance belongs to exactly one
// estimation call; reuse it via Reset only from its single owner.
type TransactionCost struct {
	WritableAccounts []txbasic.Address
	SignatureCost    uint64
	WriteLockCost    uint64
	DataBytesCost    uint64
	ExecutionCost    uint64
}

func NewTransactionCostWithCapacity(capacity int) *TransactionCost {
	return &TransactionCost{
		WritableAccounts: make([]txbasic.Address, 0, capacity),
	}
}

func (txCost *TransactionCost) Reset() {
	txCost.WritableAccounts = txCost.WritableAccounts[:0]
	txCost.SignatureCost = 0
	txCost.WriteLockCost = 0
	txCost.DataBytesCost = 0
	txCost.ExecutionCost = 0
}

// Sum is computed on demand and never cached.
func (txCost *TransactionCost) Sum() uint64 {
	sum := tpcmm.SaturatingAddUint64(txCost.SignatureCost, txCost.WriteLockCost)
	sum = tpcmm.SaturatingAddUint64(sum, txCost.DataBytesCost)
	return tpcmm.SaturatingAddUint64(sum, txCost.ExecutionCost)
}

func (txCost *TransactionCost) DeepCopy() *TransactionCost {
	dst := &TransactionCost{
		WritableAccounts: make([]txbasic.Address, len(txCost.WritableAccounts)),
		SignatureCost:    txCost.SignatureCost,
		WriteLockCost:    txCost.WriteLockCost,
		DataBytesCost:    txCost.DataBytesCost,
		ExecutionCost:    txCost.ExecutionCost,
	}
	copy(dst.WritableAccounts, txCost.WritableAccounts)

	return dst
}

// CostModel estimates a transaction's resource cost before scheduling, from
// the transaction's structural fields and a shared ExecuteCostTable refined
// over time from observed execution.
type CostModel struct {
	log                           tplog.Logger
	config                        *configuration.CostConfiguration
	instructionExecutionCostTable *ExecuteCostTable
	tableVersion                  *atomic.Uint64
}

func NewCostModel(log tplog.Logger, config *configuration.CostConfiguration) *CostModel {
	cmLog := tplog.CreateModuleLogger(tplog.InfoLevel, MOD_NAME, log)
	return &CostModel{
		log:                           cmLog,
		config:                        config.Check(),
		instructionExecutionCostTable: NewExecuteCostTable(),
		tableVersion:                  atomic.NewUint64(0),
	}
}

// InitializeCostTable bulk-loads the table at cold start: externally
// supplied entries first, then the built-in baseline, so built-ins always
// end up priced. Not for the per-transaction hot path.
func (cm *CostModel) InitializeCostTable(costTable []configuration.ProgramCostEntry) error {
	var merr *multierror.Error
	for _, entry := range append(costTable, configuration.BuiltinProgramCosts()...) {
		storedCost, err := cm.UpsertInstructionCost(entry.Program, entry.Cost)
		if err != nil {
			cm.log.Errorf("Initiating cost table failed for instruction %s: %v", entry.Program, err)
			merr = multierror.Append(merr, err)
			continue
		}
		cm.log.Debugf("Initiating cost table, instruction %s has cost %d", entry.Program, storedCost)
	}

	cm.log.Debugf("Restored cost model instruction cost table, current entry count %d", cm.instructionExecutionCostTable.Len())

	return merr.ErrorOrNil()
}

// CalculateCost aggregates the four cost components of tx. It is a pure
// function of the transaction structure and the current table state; it
// always produces a TransactionCost.
func (cm *CostModel) CalculateCost(tx *txbasic.Transaction, demoteProgramWriteLocks bool) *TransactionCost {
	txCost := NewTransactionCostWithCapacity(MaxWritableAccounts)

	txCost.SignatureCost = cm.getSignatureCost(tx)
	cm.getWriteLockCost(txCost, tx, demoteProgramWriteLocks)
	txCost.DataBytesCost = cm.getDataBytesCost(tx)
	txCost.ExecutionCost = cm.getTransactionCost(tx)

	cm.log.Debugf("Transaction with %d signatures and %d instructions has cost %d", len(tx.Signatures), len(tx.Message.Instructions), txCost.Sum())

	return txCost
}

// UpsertInstructionCost records an observed execution cost for program,
// returning the smoothed stored value. The one signaled failure kind is the
// stored value not being readable back, which is non-retryable.
func (cm *CostModel) UpsertInstructionCost(program txbasic.Address, cost uint64) (uint64, error) {
	storedCost := cm.instructionExecutionCostTable.Upsert(program, cost)
	readBack, ok := cm.instructionExecutionCostTable.GetCost(program)
	if !ok || readBack != storedCost {
		cm.log.Errorf("Upserted instruction %s cost %d can't be read back", program, storedCost)
		return 0, ErrCostReadBack
	}

	cm.tableVersion.Inc()

	return storedCost, nil
}

// FindInstructionCost is the single point applying the exact-lookup,
// else-mode fallback policy for pricing one program.
func (cm *CostModel) FindInstructionCost(program txbasic.Address) uint64 {
	cost, ok := cm.instructionExecutionCostTable.GetCost(program)
	if ok {
		return cost
	}

	defaultValue := cm.instructionExecutionCostTable.GetMode()
	cm.log.Debugf("Program %s does not have assigned cost, using mode %d", program, defaultValue)

	return defaultValue
}

// GetInstructionCostTable exposes a snapshot of the full mapping for
// introspection and the external persistence collaborator.
func (cm *CostModel) GetInstructionCostTable() map[txbasic.Address]uint64 {
	return cm.instructionExecutionCostTable.GetCostTable()
}

// TableVersion increases on every table write; estimate caches use it to
// detect staleness.
func (cm *CostModel) TableVersion() uint64 {
	return cm.tableVersion.Load()
}

func (cm *CostModel) getSignatureCost(tx *txbasic.Transaction) uint64 {
	return tpcmm.SaturatingMulUint64(uint64(len(tx.Signatures)), cm.config.SignatureCost)
}

func (cm *CostModel) getWriteLockCost(txCost *TransactionCost, tx *txbasic.Transaction, demoteProgramWriteLocks bool) {
	message := &tx.Message
	for i, key := range message.AccountKeys {
		if message.IsWritable(i, demoteProgramWriteLocks) {
			txCost.WritableAccounts = append(txCost.WritableAccounts, key)
			txCost.WriteLockCost = tpcmm.SaturatingAddUint64(txCost.WriteLockCost, cm.config.WriteLockUnits)
		}
	}
}

func (cm *CostModel) getDataBytesCost(tx *txbasic.Transaction) uint64 {
	var dataBytesCost uint64
	for _, ix := range tx.Message.Instructions {
		dataBytesCost = tpcmm.SaturatingAddUint64(dataBytesCost, uint64(len(ix.Data))/cm.config.DataBytesUnits)
	}

	return dataBytesCost
}

func (cm *CostModel) getTransactionCost(tx *txbasic.Transaction) uint64 {
	var cost uint64
	for _, progIx := range tx.Message.ProgramInstructions() {
		instructionCost := cm.FindInstructionCost(progIx.Program)
		cm.log.Tracef("Instruction of program %s has cost of %d", progIx.Program, instructionCost)
		cost = tpcmm.SaturatingAddUint64(cost, instructionCost)
	}

	return cost
}
