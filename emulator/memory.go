package emulator

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/gritvm/vm"
)

// ParseMemory evaluates an initial working memory expression.
//
// The expression is Starlark, and must produce an int, or a list or tuple
// of ints: "10", "[1, 2, 3]", "[0] * 8", "list(range(4))".
// An empty expression is an empty memory.
func ParseMemory(expr string) (memory []int64, err error) {
	defer func() {
		if err != nil {
			memory = nil
		}
	}()

	expr = strings.TrimSpace(expr)
	if len(expr) == 0 {
		memory = []int64{}
		return
	}

	thread := starlark.Thread{Name: "memory"}
	thread.SetMaxExecutionSteps(vm.EXPRESSION_STEPS)
	opts := syntax.FileOptions{}

	value, err := starlark.EvalOptions(&opts, &thread, "memory", expr, starlark.StringDict{})
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrMemoryValue, err)
		return
	}

	var items []starlark.Value
	switch v := value.(type) {
	case starlark.Int:
		items = []starlark.Value{v}
	case starlark.Indexable:
		for n := range v.Len() {
			items = append(items, v.Index(n))
		}
	default:
		err = ErrMemoryValue
		return
	}

	memory = make([]int64, 0, len(items))
	for _, item := range items {
		st_int, ok := item.(starlark.Int)
		if !ok {
			err = ErrMemoryValue
			return
		}
		var v64 int64
		v64, ok = st_int.Int64()
		if !ok {
			err = ErrMemoryValue
			return
		}
		memory = append(memory, v64)
	}

	return
}
