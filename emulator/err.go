package emulator

import (
	"errors"

	"github.com/ezrec/gritvm/translate"
)

var f = translate.From

var (
	ErrProgramEmpty = errors.New(f("program empty"))
	ErrNotLoaded    = errors.New(f("no program loaded"))
	ErrStepLimit    = errors.New(f("step limit reached"))
	ErrMemoryValue  = errors.New(f("invalid memory value"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %v %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrJob identifies the batch job that failed.
type ErrJob struct {
	Name string
	Err  error
}

func (err *ErrJob) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrJob) Unwrap() error {
	return err.Err
}
