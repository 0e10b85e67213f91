// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/ezrec/gritvm/vm"
)

// OUTPUT_FORMAT is how OUTPUT values are written to Emulator.Output.
const OUTPUT_FORMAT = "output: %d\n"

// Emulator state. Machine + program listing + host IO.
type Emulator struct {
	Verbose     bool        // If set, enables verbose logging.
	*vm.Machine             // Reference to the machine simulation.
	Program     *vm.Program // Reference to the currently loaded program listing.
	Memory      []int64     // Initial working memory, copied on Reset.

	Output    io.Writer // Receives OUTPUT values. May be nil.
	StepLimit int       // Maximum steps for Execute. Zero is unbounded.

	steps   int
	outputs []int64
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(),
		Program: &vm.Program{},
	}

	emu.Machine.Output = emu.output

	return
}

// output is the Sink for the machine's OUTPUT operation.
func (emu *Emulator) output(value int64) {
	emu.outputs = append(emu.outputs, value)
	if emu.Output != nil {
		fmt.Fprintf(emu.Output, OUTPUT_FORMAT, value)
	}
}

// Reset the machine, then load the program and initial memory.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset()
	emu.steps = 0
	emu.outputs = nil

	if emu.Program.Empty() {
		err = ErrProgramEmpty
		return
	}

	status := emu.Machine.LoadProgram(emu.Program, emu.Memory)
	if status != vm.STATUS_READY {
		err = ErrProgramEmpty
		return
	}

	return
}

// Steps returns the number of steps since a reset.
func (emu *Emulator) Steps() int {
	return emu.steps
}

// Outputs returns every OUTPUT value since a reset.
func (emu *Emulator) Outputs() []int64 {
	return emu.outputs
}

// LineNo returns the listing line number for the current instruction,
// or 0 if the instruction pointer is out of the program.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Machine.InstructionIndex())
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()

	status := emu.Machine.Status()
	if status == vm.STATUS_WAITING {
		err = ErrNotLoaded
		return
	}

	if !status.Terminal() {
		status = emu.Machine.Step()
		emu.steps++
	}

	switch status {
	case vm.STATUS_ERRORED:
		done = true
		err = &ErrRuntime{LineNo: lineno, Err: emu.Machine.Fault()}
	case vm.STATUS_HALTED:
		done = true
	}

	if emu.Verbose && done {
		log.Printf("emulator: %v after %v steps, acc=%d", status, emu.steps, emu.Machine.Accumulator())
	}

	return
}

// Execute ticks the emulator until the machine halts or faults, the step
// limit is reached (ErrStepLimit), or ctx is done.
func (emu *Emulator) Execute(ctx context.Context) (err error) {
	for {
		if emu.StepLimit > 0 && emu.steps >= emu.StepLimit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrStepLimit}
			return
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
