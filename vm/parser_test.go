package vm

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	assert := assert.New(t)

	ps := &Parser{}

	prog, err := ps.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.True(prog.Empty())
	assert.Equal(0, prog.Len())
}

func TestParserSkips(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"# header comment",
		"",
		"   ",
		"\tADDCONST 5\r",
		"  # indented comment",
		"HALT",
		"",
	}

	prog, err := Parse(strings.Join(program, "\n"))
	require.NoError(t, err)

	expected := []Statement{
		{4, []string{"ADDCONST", "5"}, Instruction{OP_ADDCONST, 5}},
		{6, []string{"HALT"}, Instruction{OP_HALT, 0}},
	}

	assert.Equal(expected, prog.Statements)
	assert.Equal(4, prog.LineNo(0))
	assert.Equal(6, prog.LineNo(1))
	assert.Equal(0, prog.LineNo(2))
	assert.Equal(0, prog.LineNo(-1))
}

func TestParserOperations(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line        string
		instruction Instruction
	}){
		{"CLEAR", Instruction{OP_CLEAR, 0}},
		{"CLEAR 7", Instruction{OP_CLEAR, 7}},
		{"AT 0", Instruction{OP_AT, 0}},
		{"SET 3", Instruction{OP_SET, 3}},
		{"INSERT 2", Instruction{OP_INSERT, 2}},
		{"ERASE 1", Instruction{OP_ERASE, 1}},
		{"ADDCONST -12", Instruction{OP_ADDCONST, -12}},
		{"SUBCONST +4", Instruction{OP_SUBCONST, 4}},
		{"MULCONST 9", Instruction{OP_MULCONST, 9}},
		{"DIVCONST 010", Instruction{OP_DIVCONST, 10}},
		{"ADDMEM 1", Instruction{OP_ADDMEM, 1}},
		{"SUBMEM 1", Instruction{OP_SUBMEM, 1}},
		{"MULMEM 1", Instruction{OP_MULMEM, 1}},
		{"DIVMEM 1", Instruction{OP_DIVMEM, 1}},
		{"JUMPREL -3", Instruction{OP_JUMPREL, -3}},
		{"JUMPZERO 2", Instruction{OP_JUMPZERO, 2}},
		{"JUMPNZERO -1", Instruction{OP_JUMPNZERO, -1}},
		{"NOOP", Instruction{OP_NOOP, 0}},
		{"HALT", Instruction{OP_HALT, 0}},
		{"OUTPUT", Instruction{OP_OUTPUT, 0}},
		{"CHECKMEM 4", Instruction{OP_CHECKMEM, 4}},
		{"ADDCONST\t\t 3", Instruction{OP_ADDCONST, 3}},
		{"ADDCONST 9223372036854775807", Instruction{OP_ADDCONST, 9223372036854775807}},
	}

	for _, entry := range table {
		prog, err := Parse(entry.line)
		assert.NoError(err, entry.line)
		if err != nil {
			continue
		}
		inst, ok := prog.At(0)
		assert.True(ok, entry.line)
		assert.Equal(entry.instruction, inst, entry.line)
	}
}

func TestParserErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []string
		lineno  int
		err     error
	}){
		{[]string{"FROB 1"}, 1, ErrOpcodeInvalid},
		{[]string{"HALT", "addconst 1"}, 2, ErrOpcodeInvalid},
		{[]string{"# ok", "", "AT"}, 3, ErrOpcodeValueMissing},
		{[]string{"JUMPREL"}, 1, ErrOpcodeValueMissing},
		{[]string{"SET 1 2"}, 1, ErrOpcodeExtraArgs},
		{[]string{"ADDCONST 5 # five"}, 1, ErrOpcodeExtraArgs},
		{[]string{"ADDCONST 1", "AT x"}, 2, ErrParseNumber("x")},
		{[]string{"HALT now"}, 1, ErrParseNumber("now")},
		{[]string{"ADDCONST 1.5"}, 1, ErrParseNumber("1.5")},
		{[]string{"ADDCONST 99999999999999999999"}, 1, ErrParseNumber("99999999999999999999")},
	}

	for _, entry := range table {
		here := strings.Join(entry.program, "|")
		prog, err := Parse(strings.Join(entry.program, "\n"))
		assert.Nil(prog, here)
		assert.ErrorIs(err, entry.err, here)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), here) {
			assert.Equal(entry.lineno, syntax.LineNo, here)
			assert.Equal(entry.program[entry.lineno-1], syntax.Line, here)
		}
	}
}

func TestParserExpression(t *testing.T) {
	assert := assert.New(t)

	ps := &Parser{}
	ps.Predefine("SIZE", 4)

	program := []string{
		"CHECKMEM $(SIZE)",
		"ADDCONST $(SIZE * 10 + 2)",
		"JUMPZERO $(-LINENO)",
		"SUBCONST $(7 // 2)",
	}

	prog, err := ps.ParseString(strings.Join(program, "\n"))
	require.NoError(t, err)

	expected := []Instruction{
		{OP_CHECKMEM, 4},
		{OP_ADDCONST, 42},
		{OP_JUMPZERO, -3},
		{OP_SUBCONST, 3},
	}

	var insts []Instruction
	for _, inst := range prog.Instructions() {
		insts = append(insts, inst)
	}
	assert.Equal(expected, insts)
	assert.Equal([]string{"SUBCONST", "3"}, prog.Statements[3].Words)

	_, err = ps.ParseString("ADDCONST $(UNKNOWN)")
	assert.ErrorIs(err, ErrParseExpression("UNKNOWN"))

	_, err = ps.ParseString("ADDCONST $('str')")
	assert.ErrorIs(err, ErrParseExpression("'str'"))

	// Runaway expressions stop at the step budget.
	expr := "len([x for x in range(200000000)])"
	prog, err = ps.ParseString("ADDCONST $(" + expr + ")")
	assert.Nil(prog)
	assert.ErrorIs(err, ErrParseExpression(expr))
}

func TestParserLongLine(t *testing.T) {
	assert := assert.New(t)

	// Longer than bufio's default token size, but under MAX_LINE.
	prog, err := Parse("ADDCONST 1\n# " + strings.Repeat("x", 70000) + "\nHALT\n")
	if assert.NoError(err) {
		assert.Equal(2, prog.Len())
		assert.Equal(3, prog.Statements[1].LineNo)
	}

	prog, err = Parse("ADDCONST 1\nNOOP " + strings.Repeat("1", MAX_LINE+1) + "\nHALT\n")
	assert.Nil(prog)
	assert.ErrorIs(err, bufio.ErrTooLong)

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(2, syntax.LineNo)
		assert.Equal("", syntax.Line)
	}
}

func TestParserIdempotent(t *testing.T) {
	assert := assert.New(t)

	text := "# loop\nADDCONST 3\nSUBCONST 1\nJUMPNZERO -1\nHALT\n"

	first, err := Parse(text)
	assert.NoError(err)
	second, err := Parse(text)
	assert.NoError(err)

	assert.Equal(first, second)
	assert.Equal("ADDCONST 3\nSUBCONST 1\nJUMPNZERO -1\nHALT\n", first.String())
}

func TestLookupOperation(t *testing.T) {
	assert := assert.New(t)

	for op := range Operation(opCount) {
		found, ok := LookupOperation(op.String())
		assert.True(ok, op.String())
		assert.Equal(op, found)
	}

	_, ok := LookupOperation("halt")
	assert.False(ok)

	assert.False(Operation(opCount).Valid())
	assert.False(Operation(-1).Valid())
	assert.Equal("Operation(20)", Operation(opCount).String())
}
