package vm

import (
	"log"
	"slices"
)

// evaluate executes one instruction and returns the relative jump
// distance to the next one. A fault sets ERRORED and returns 0.
func (m *Machine) evaluate(inst Instruction) (jump int64) {
	if m.Verbose {
		log.Printf("%03d: %v acc=%d", m.ip, inst, m.accumulator)
	}

	arg := inst.Argument
	jump = 1

	switch inst.Operation {
	case OP_CLEAR:
		m.accumulator = 0
	case OP_AT:
		if !m.indexValid(arg) {
			return m.faulted(inst, ErrMemoryIndex)
		}
		m.accumulator = m.dataMem[arg]
	case OP_SET:
		if !m.indexValid(arg) {
			return m.faulted(inst, ErrMemoryIndex)
		}
		m.dataMem[arg] = m.accumulator
	case OP_INSERT:
		// Inserting at len(dataMem) appends.
		if arg < 0 || arg > int64(len(m.dataMem)) {
			return m.faulted(inst, ErrMemoryIndex)
		}
		m.dataMem = slices.Insert(m.dataMem, int(arg), m.accumulator)
	case OP_ERASE:
		if !m.indexValid(arg) {
			return m.faulted(inst, ErrMemoryIndex)
		}
		m.dataMem = slices.Delete(m.dataMem, int(arg), int(arg)+1)
	case OP_ADDCONST:
		m.accumulator += arg
	case OP_SUBCONST:
		m.accumulator -= arg
	case OP_MULCONST:
		m.accumulator *= arg
	case OP_DIVCONST:
		if arg == 0 {
			return m.faulted(inst, ErrDivideByZero)
		}
		m.accumulator /= arg
	case OP_ADDMEM, OP_SUBMEM, OP_MULMEM, OP_DIVMEM:
		if !m.indexValid(arg) {
			return m.faulted(inst, ErrMemoryIndex)
		}
		value := m.dataMem[arg]
		switch inst.Operation {
		case OP_ADDMEM:
			m.accumulator += value
		case OP_SUBMEM:
			m.accumulator -= value
		case OP_MULMEM:
			m.accumulator *= value
		case OP_DIVMEM:
			if value == 0 {
				return m.faulted(inst, ErrDivideByZero)
			}
			m.accumulator /= value
		}
	case OP_JUMPREL, OP_JUMPZERO, OP_JUMPNZERO:
		if arg == 0 {
			return m.faulted(inst, ErrJumpZero)
		}
		switch {
		case inst.Operation == OP_JUMPREL:
			jump = arg
		case inst.Operation == OP_JUMPZERO && m.accumulator == 0:
			jump = arg
		case inst.Operation == OP_JUMPNZERO && m.accumulator != 0:
			jump = arg
		}
	case OP_NOOP:
		// pass
	case OP_HALT:
		m.setStatus(STATUS_HALTED)
		jump = 0
	case OP_OUTPUT:
		if m.Output != nil {
			m.Output(m.accumulator)
		}
	case OP_CHECKMEM:
		// A check of exactly len(dataMem) passes.
		if arg > int64(len(m.dataMem)) {
			return m.faulted(inst, ErrMemoryCheck)
		}
	default:
		return m.faulted(inst, ErrOperationInvalid)
	}

	return
}

// indexValid returns true if index addresses an existing working memory cell.
func (m *Machine) indexValid(index int64) bool {
	return index >= 0 && index < int64(len(m.dataMem))
}

// faulted records a runtime fault and moves to ERRORED.
func (m *Machine) faulted(inst Instruction, err error) int64 {
	m.fault = &ErrFault{Index: m.ip, Instruction: inst, Err: err}
	if m.Verbose {
		log.Printf("vm: %v", m.fault)
	}
	m.setStatus(STATUS_ERRORED)
	return 0
}
