// Package vm implements the gritvm accumulator machine and its listing parser.
//
// A listing holds one instruction per line: a mnemonic and a signed
// integer argument. Blank lines and lines starting with '#' are skipped.
// The Machine executes the parsed Program against a working memory of
// int64 cells and a single accumulator, advancing the instruction pointer
// by a relative jump distance after each instruction.
//
// Load failures are returned as errors. Runtime faults (bad memory index,
// division by zero, zero jump distance) are not; they move the machine to
// STATUS_ERRORED, and Machine.Fault reports the cause.
package vm
