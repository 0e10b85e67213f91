package vm

import (
	"errors"

	"github.com/ezrec/gritvm/translate"
)

var f = translate.From

var (
	// Runtime faults
	ErrMemoryIndex      = errors.New(f("memory index out of range"))
	ErrMemoryCheck      = errors.New(f("memory check failed"))
	ErrDivideByZero     = errors.New(f("divide by zero"))
	ErrJumpZero         = errors.New(f("zero jump distance"))
	ErrOperationInvalid = errors.New(f("operation invalid"))

	// Parser errors
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
)

// ErrFault records the instruction that faulted and why.
type ErrFault struct {
	Index       int
	Instruction Instruction
	Err         error
}

func (err *ErrFault) Error() string {
	return f("instruction %v '%v' %v", err.Index, err.Instruction.String(), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrSyntax identifies the listing line that could not be parsed.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %v '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
