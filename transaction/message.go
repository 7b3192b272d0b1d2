package transaction

import "fmt"

// CompiledInstruction references its target program and accounts by index
// into the message account key list.
type CompiledInstruction struct {
	ProgramIDIndex uint8   `json:"programIdIndex"`
	Accounts       []uint8 `json:"accounts"`
	Data           []byte  `json:"data"`
}

// TxMessage lists account keys in canonical order: writable signers first,
// then readonly signers, then writable non-signers, then readonly
// non-signers. The header counts delimit the four groups.
type TxMessage struct {
	NumRequiredSignatures       uint8                 `json:"numRequiredSignatures"`
	NumReadonlySignedAccounts   uint8                 `json:"numReadonlySignedAccounts"`
	NumReadonlyUnsignedAccounts uint8                 `json:"numReadonlyUnsignedAccounts"`
	AccountKeys                 []Address             `json:"accountKeys"`
	Instructions                []CompiledInstruction `json:"instructions"`
}

type ProgramInstruction struct {
	Program     Address
	Instruction *CompiledInstruction
}

func (m *TxMessage) IsSigner(i int) bool {
	return i < int(m.NumRequiredSignatures)
}

// isKeyCalledAsProgram reports whether account key i is invoked as the target
// program of any instruction in the message.
func (m *TxMessage) isKeyCalledAsProgram(i int) bool {
	for ixIndex := 0; ixIndex < len(m.Instructions); ixIndex++ {
		if int(m.Instructions[ixIndex].ProgramIDIndex) == i {
			return true
		}
	}

	return false
}

// IsWritable reports whether account key i will be locked for writing.
// When demoteProgramWriteLocks is set, an otherwise writable account is
// excluded if it is invoked as a program.
func (m *TxMessage) IsWritable(i int, demoteProgramWriteLocks bool) bool {
	if i >= len(m.AccountKeys) {
		return false
	}

	numSigned := int(m.NumRequiredSignatures)
	writable := i < numSigned-int(m.NumReadonlySignedAccounts) ||
		(i >= numSigned && i < len(m.AccountKeys)-int(m.NumReadonlyUnsignedAccounts))
	if !writable {
		return false
	}

	if demoteProgramWriteLocks && m.isKeyCalledAsProgram(i) {
		return false
	}

	return true
}

func (m *TxMessage) ProgramID(ixIndex int) (Address, error) {
	if ixIndex >= len(m.Instructions) {
		return UndefAddress, fmt.Errorf("Invalid instruction index %d, total %d", ixIndex, len(m.Instructions))
	}

	keyIndex := int(m.Instructions[ixIndex].ProgramIDIndex)
	if keyIndex >= len(m.AccountKeys) {
		return UndefAddress, fmt.Errorf("Invalid program id index %d, total account keys %d", keyIndex, len(m.AccountKeys))
	}

	return m.AccountKeys[keyIndex], nil
}

// ProgramInstructions pairs every instruction with its resolved target
// program, in program-execution order. Instructions whose program id index
// is out of range resolve to UndefAddress.
func (m *TxMessage) ProgramInstructions() []ProgramInstruction {
	progIxs := make([]ProgramInstruction, 0, len(m.Instructions))
	for i := 0; i < len(m.Instructions); i++ {
		program := UndefAddress
		if keyIndex := int(m.Instructions[i].ProgramIDIndex); keyIndex < len(m.AccountKeys) {
			program = m.AccountKeys[keyIndex]
		}

		progIxs = append(progIxs, ProgramInstruction{
			Program:     program,
			Instruction: &m.Instructions[i],
		})
	}

	return progIxs
}
