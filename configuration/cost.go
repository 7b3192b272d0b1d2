package configuration

import (
	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

// All values are expressed in compute units.
type CostConfiguration struct {
	SignatureCost       uint64 //cost of verifying one signature
	WriteLockUnits      uint64 //cost of taking one account write lock
	DataBytesUnits      uint64 //instruction payload bytes per one compute unit
	MaxWritableAccounts int
	BlockMaxCostUnits   uint64
}

func DefCostConfiguration() *CostConfiguration {
	return &CostConfiguration{
		SignatureCost:       720,
		WriteLockUnits:      300,
		DataBytesUnits:      550,
		MaxWritableAccounts: 256,
		BlockMaxCostUnits:   48000000,
	}
}

func (config *CostConfiguration) Check() *CostConfiguration {
	conf := *config
	if conf.SignatureCost == 0 {
		conf.SignatureCost = DefCostConfiguration().SignatureCost
	}
	if conf.WriteLockUnits == 0 {
		conf.WriteLockUnits = DefCostConfiguration().WriteLockUnits
	}
	if conf.DataBytesUnits == 0 {
		conf.DataBytesUnits = DefCostConfiguration().DataBytesUnits
	}
	if conf.MaxWritableAccounts <= 0 {
		conf.MaxWritableAccounts = DefCostConfiguration().MaxWritableAccounts
	}
	if conf.BlockMaxCostUnits < DefCostConfiguration().BlockMaxCostUnits {
		conf.BlockMaxCostUnits = DefCostConfiguration().BlockMaxCostUnits
	}

	return &conf
}

type ProgramCostEntry struct {
	Program txbasic.Address
	Cost    uint64
}

// BuiltinProgramCosts is the hard-coded execution cost baseline of the
// native programs. InitializeCostTable applies it after externally supplied
// entries so built-ins are always priced even when the external source omits
// them.
func BuiltinProgramCosts() []ProgramCostEntry {
	return []ProgramCostEntry{
		{txbasic.NativeProgramAddress("native_system"), 450},
		{txbasic.NativeProgramAddress("native_vote"), 2100},
		{txbasic.NativeProgramAddress("native_stake"), 750},
		{txbasic.NativeProgramAddress("native_config"), 450},
		{txbasic.NativeProgramAddress("native_loader"), 570},
	}
}
