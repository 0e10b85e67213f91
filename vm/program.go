package vm

import (
	"iter"
	"strings"
)

// Statement is a single parsed listing line.
type Statement struct {
	LineNo int      // 1-based line in the listing.
	Words  []string // Source words, after expression expansion.
	Instruction
}

// Program is an ordered, immutable instruction memory.
type Program struct {
	Statements []Statement
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Statements)
}

// Empty returns true if the program contains no instructions.
func (prog *Program) Empty() bool {
	return prog.Len() == 0
}

// At returns the instruction at an index.
func (prog *Program) At(index int) (inst Instruction, ok bool) {
	if index < 0 || index >= prog.Len() {
		return
	}
	return prog.Statements[index].Instruction, true
}

// LineNo returns the listing line for an instruction index, or 0 if out of range.
func (prog *Program) LineNo(index int) int {
	if index < 0 || index >= prog.Len() {
		return 0
	}
	return prog.Statements[index].LineNo
}

// Instructions iterates the instruction memory in order.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(index int, inst Instruction) bool) {
		for n := range prog.Len() {
			if !yield(n, prog.Statements[n].Instruction) {
				return
			}
		}
	}
}

// String returns a canonical listing of the program.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, inst := range prog.Instructions() {
		sb.WriteString(inst.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
