package vm

import (
	"io"
	"log"
	"os"
	"slices"
	"strings"
)

// Sink receives the accumulator value emitted by OUTPUT.
type Sink func(value int64)

// Machine is the execution engine: instruction memory, working memory,
// accumulator, instruction pointer and status.
//
// A Machine may be loaded, run, reset and reloaded any number of times.
// It performs no internal locking; callers sharing one across goroutines
// must serialize access themselves.
type Machine struct {
	Verbose bool // Set to enable verbose logging.
	Output  Sink // Receiver of OUTPUT values. May be nil.

	accumulator int64
	status      Status
	program     *Program
	ip          int
	dataMem     []int64
	fault       error
}

// NewMachine creates a machine in the WAITING state.
func NewMachine() *Machine {
	return &Machine{status: STATUS_WAITING}
}

// Load reads a listing from a file and loads it.
// Has no effect unless the machine is WAITING.
func (m *Machine) Load(filename string, initialMemory []int64) (status Status, err error) {
	if !m.status.accepts(eventLoad) {
		return m.status, nil
	}

	inf, err := os.Open(filename)
	if err != nil {
		return m.status, err
	}
	defer inf.Close()

	return m.LoadReader(inf, initialMemory)
}

// LoadFromString parses and loads a listing held in a string.
// Has no effect unless the machine is WAITING.
func (m *Machine) LoadFromString(text string, initialMemory []int64) (status Status, err error) {
	return m.LoadReader(strings.NewReader(text), initialMemory)
}

// LoadReader parses and loads a listing from an input stream.
// Has no effect unless the machine is WAITING.
func (m *Machine) LoadReader(input io.Reader, initialMemory []int64) (status Status, err error) {
	if !m.status.accepts(eventLoad) {
		return m.status, nil
	}

	ps := &Parser{Verbose: m.Verbose}
	prog, err := ps.Parse(input)
	if err != nil {
		return m.status, err
	}

	return m.LoadProgram(prog, initialMemory), nil
}

// LoadProgram installs an already parsed program and a copy of the
// initial working memory. An empty program leaves the machine WAITING.
func (m *Machine) LoadProgram(prog *Program, initialMemory []int64) Status {
	if !m.status.accepts(eventLoad) {
		return m.status
	}

	if prog.Empty() {
		if m.Verbose {
			log.Printf("vm: empty program")
		}
		return m.status
	}

	m.program = prog
	m.dataMem = slices.Clone(initialMemory)
	if m.dataMem == nil {
		m.dataMem = []int64{}
	}
	m.accumulator = 0
	m.ip = 0
	m.fault = nil
	m.setStatus(STATUS_READY)

	return m.status
}

// Run executes from the current instruction until the machine halts or
// faults. Has no effect unless the machine is READY.
//
// Run does not return for a program that loops forever; use Step with
// a caller-imposed bound for untrusted listings.
func (m *Machine) Run() Status {
	if !m.status.accepts(eventRun) {
		return m.status
	}

	m.setStatus(STATUS_RUNNING)

	for m.status == STATUS_RUNNING && m.inBounds() {
		m.advance(m.evaluate(m.program.Statements[m.ip].Instruction))
	}

	return m.status
}

// Step executes a single instruction. Has no effect unless the machine
// is READY or RUNNING.
func (m *Machine) Step() Status {
	if !m.status.accepts(eventStep) {
		return m.status
	}

	m.setStatus(STATUS_RUNNING)

	if m.inBounds() {
		m.advance(m.evaluate(m.program.Statements[m.ip].Instruction))
	} else {
		m.setStatus(STATUS_HALTED)
	}

	return m.status
}

// Reset clears all machine state and returns to WAITING.
func (m *Machine) Reset() Status {
	if !m.status.accepts(eventReset) {
		return m.status
	}

	if m.Verbose {
		log.Printf("vm: reset")
	}

	m.accumulator = 0
	m.program = nil
	m.dataMem = nil
	m.ip = 0
	m.fault = nil
	m.status = STATUS_WAITING

	return m.status
}

// DataMem returns a copy of the working memory.
func (m *Machine) DataMem() []int64 {
	return slices.Clone(m.dataMem)
}

// Accumulator returns the accumulator value.
func (m *Machine) Accumulator() int64 {
	return m.accumulator
}

// Status returns the machine status.
func (m *Machine) Status() Status {
	return m.status
}

// InstructionIndex returns the instruction pointer.
func (m *Machine) InstructionIndex() int {
	return m.ip
}

// Program returns the loaded program, or nil while WAITING.
func (m *Machine) Program() *Program {
	return m.program
}

// Instruction returns the instruction at the instruction pointer.
func (m *Machine) Instruction() (inst Instruction, ok bool) {
	return m.program.At(m.ip)
}

// Fault returns the cause of an ERRORED status, or nil.
func (m *Machine) Fault() error {
	return m.fault
}

func (m *Machine) inBounds() bool {
	return m.ip >= 0 && m.ip < m.program.Len()
}

func (m *Machine) setStatus(status Status) {
	if m.Verbose && status != m.status {
		log.Printf("vm: %v -> %v", m.status, status)
	}
	m.status = status
}

// advance moves the instruction pointer by a relative jump distance.
// A zero distance or a fault leaves the pointer where it is.
func (m *Machine) advance(jump int64) {
	if jump == 0 || m.status == STATUS_ERRORED {
		return
	}

	m.ip += int(jump)

	if !m.inBounds() {
		m.setStatus(STATUS_HALTED)
	}
}
