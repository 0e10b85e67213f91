package depot

import (
	"errors"

	"github.com/ezrec/gritvm/translate"
)

var f = translate.From

var (
	ErrNameInvalid  = errors.New(f("program name invalid"))
	ErrProgramEmpty = errors.New(f("program empty"))
)

type ErrProgramMissing string

func (err ErrProgramMissing) Error() string {
	return f("program %v missing", string(err))
}
