// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// COMMENT starts a comment line in a listing.
const COMMENT = '#'

// MAX_LINE is the longest listing line the parser accepts, in bytes.
const MAX_LINE = 1024 * 1024

// EXPRESSION_STEPS bounds the Starlark execution steps of one expression.
const EXPRESSION_STEPS = 1_000_000

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// Parser converts a gritvm listing into a Program.
//
// The zero value is ready to use. A Parser holds no state between calls
// other than its predefines, so the same listing always parses to the
// same Program.
type Parser struct {
	Verbose bool // If set, logs each parsed line.

	predefine map[string]int64
}

// Predefine sets a name visible to $(...) expressions.
func (ps *Parser) Predefine(name string, value int64) {
	if ps.predefine == nil {
		ps.predefine = map[string]int64{name: value}
	} else {
		ps.predefine[name] = value
	}
}

// ParseString parses a listing held in a string.
func (ps *Parser) ParseString(text string) (prog *Program, err error) {
	return ps.Parse(strings.NewReader(text))
}

// Parse parses an input stream into a Program.
// On error, no Program is returned.
func (ps *Parser) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MAX_LINE)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	var stmts []Statement

	for scanner.Scan() {
		lineno += 1
		line = strings.Trim(scanner.Text(), " \t\r\n")

		if ps.Verbose {
			log.Printf("%v: %v", lineno, line)
		}

		if len(line) == 0 || line[0] == COMMENT {
			continue
		}

		var stmt Statement
		stmt, err = ps.parseLine(line, lineno)
		if err != nil {
			return
		}
		stmts = append(stmts, stmt)
	}

	err = scanner.Err()
	if err != nil {
		// The failing line was never returned by the scanner.
		lineno += 1
		line = ""
		return
	}

	prog = &Program{Statements: stmts}

	return
}

// parseLine decodes a single non-empty, non-comment line.
func (ps *Parser) parseLine(line string, lineno int) (stmt Statement, err error) {
	line = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := ps.parenEval(str[2:len(str)-1], lineno)
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	op, ok := LookupOperation(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	var arg int64
	switch {
	case len(args) == 1:
		arg, err = valueOf(args[0])
		if err != nil {
			return
		}
	case op.UsesArgument():
		err = ErrOpcodeValueMissing
		return
	}

	stmt = Statement{
		LineNo:      lineno,
		Words:       words,
		Instruction: Instruction{Operation: op, Argument: arg},
	}

	return
}

// valueOf parses a signed decimal argument.
func valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations.
func (ps *Parser) parenEval(expr string, lineno int) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	thread.SetMaxExecutionSteps(EXPRESSION_STEPS)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(lineno),
	}
	for key, val := range ps.predefine {
		pred[key] = starlark.MakeInt64(val)
	}

	rc, err := starlark.EvalOptions(&opts, &thread, "expr", expr, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// Parse is a convenience wrapper for a zero-value Parser.
func Parse(text string) (*Program, error) {
	return (&Parser{}).ParseString(text)
}
