package emulator

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/gritvm/vm"
)

// Job is a single listing to run in a batch.
type Job struct {
	Name      string  // Name used in errors.
	Listing   string  // Program text.
	Memory    []int64 // Initial working memory.
	StepLimit int     // Maximum steps. Zero is unbounded.
}

// Result is the final machine state of a Job.
type Result struct {
	Name        string
	Status      vm.Status
	Accumulator int64
	Memory      []int64
	Outputs     []int64
	Steps       int
}

// RunAll runs every job on its own emulator, concurrently.
//
// A job that faults still produces a Result with STATUS_ERRORED; only
// parse errors, step limits and cancellation fail the batch. The first
// such error cancels the remaining jobs.
func RunAll(ctx context.Context, jobs []Job) (results []Result, err error) {
	results = make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)

	for n, job := range jobs {
		g.Go(func() (err error) {
			defer func() {
				if err != nil {
					err = &ErrJob{Name: job.Name, Err: err}
				}
			}()

			prog, err := vm.Parse(job.Listing)
			if err != nil {
				return
			}

			emu := NewEmulator()
			emu.Program = prog
			emu.Memory = job.Memory
			emu.StepLimit = job.StepLimit

			err = emu.Reset()
			if err != nil {
				return
			}

			err = emu.Execute(ctx)
			var runtime *ErrRuntime
			if errors.As(err, &runtime) && !errors.Is(err, ErrStepLimit) {
				// Faults are reported through the result status.
				err = nil
			}
			if err != nil {
				return
			}

			results[n] = Result{
				Name:        job.Name,
				Status:      emu.Status(),
				Accumulator: emu.Accumulator(),
				Memory:      emu.DataMem(),
				Outputs:     emu.Outputs(),
				Steps:       emu.Steps(),
			}

			return
		})
	}

	err = g.Wait()

	return
}
