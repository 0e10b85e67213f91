package vm

import (
	"fmt"
)

// Operation is the closed set of instruction kinds.
type Operation int

//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_CLEAR     = Operation(0)  // CLEAR
	OP_AT        = Operation(1)  // AT
	OP_SET       = Operation(2)  // SET
	OP_INSERT    = Operation(3)  // INSERT
	OP_ERASE     = Operation(4)  // ERASE
	OP_ADDCONST  = Operation(5)  // ADDCONST
	OP_SUBCONST  = Operation(6)  // SUBCONST
	OP_MULCONST  = Operation(7)  // MULCONST
	OP_DIVCONST  = Operation(8)  // DIVCONST
	OP_ADDMEM    = Operation(9)  // ADDMEM
	OP_SUBMEM    = Operation(10) // SUBMEM
	OP_MULMEM    = Operation(11) // MULMEM
	OP_DIVMEM    = Operation(12) // DIVMEM
	OP_JUMPREL   = Operation(13) // JUMPREL
	OP_JUMPZERO  = Operation(14) // JUMPZERO
	OP_JUMPNZERO = Operation(15) // JUMPNZERO
	OP_NOOP      = Operation(16) // NOOP
	OP_HALT      = Operation(17) // HALT
	OP_OUTPUT    = Operation(18) // OUTPUT
	OP_CHECKMEM  = Operation(19) // CHECKMEM

	opCount = 20
)

// Valid returns true if the operation is a member of the instruction set.
func (op Operation) Valid() bool {
	return op >= 0 && op < opCount
}

// UsesArgument returns true if the operation reads its argument.
func (op Operation) UsesArgument() bool {
	switch op {
	case OP_CLEAR, OP_NOOP, OP_HALT, OP_OUTPUT:
		return false
	}
	return op.Valid()
}

// mnemonicMap maps the listing mnemonics to operations.
var mnemonicMap = func() map[string]Operation {
	ops := make(map[string]Operation, opCount)
	for op := range Operation(opCount) {
		ops[op.String()] = op
	}
	return ops
}()

// LookupOperation finds the operation for a case-sensitive mnemonic.
func LookupOperation(mnemonic string) (op Operation, ok bool) {
	op, ok = mnemonicMap[mnemonic]
	return
}

// Instruction is a decoded operation with its argument.
type Instruction struct {
	Operation Operation
	Argument  int64
}

// String returns the listing form of the instruction.
func (inst Instruction) String() string {
	if !inst.Operation.UsesArgument() && inst.Argument == 0 {
		return inst.Operation.String()
	}
	return fmt.Sprintf("%v %d", inst.Operation, inst.Argument)
}
