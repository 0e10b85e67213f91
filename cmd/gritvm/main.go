// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ezrec/gritvm/depot"
	"github.com/ezrec/gritvm/emulator"
	"github.com/ezrec/gritvm/vm"
)

func main() {
	var compile string
	var memory string
	var depotDir string
	var name string
	var save bool
	var output string
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".gvm listing to run")
	flag.StringVar(&memory, "m", "", "Initial memory expression, ie '[10, 20]'")
	flag.StringVar(&depotDir, "d", "", "Program depot directory")
	flag.StringVar(&name, "n", "", "Program name in the depot")
	flag.BoolVar(&save, "s", false, "Save listing to the depot, do not execute")
	flag.StringVar(&output, "o", "-", "OUTPUT destination")
	flag.IntVar(&limit, "l", 0, "Step limit (0 is unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	mem, err := emulator.ParseMemory(memory)
	if err != nil {
		log.Fatalf("%v: -m %v: %v", os.Args[0], memory, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = checkFlags(flag.NArg(), compile, depotDir, name, save)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	// Batch mode: every argument is a listing file.
	if flag.NArg() != 0 {
		runBatch(ctx, flag.Args(), mem, limit)
		return
	}

	var listing string

	if len(compile) != 0 {
		data, err := os.ReadFile(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		listing = string(data)
	}

	if len(depotDir) != 0 {
		var done bool
		listing, done, err = useDepot(os.Stdout, depotDir, compile, name, save, verbose, listing)
		if err != nil {
			log.Fatal(err)
		}
		if done {
			return
		}
	}

	ps := &vm.Parser{Verbose: verbose}
	prog, err := ps.ParseString(listing)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Memory = mem
	emu.Verbose = verbose
	emu.StepLimit = limit

	err = execute(ctx, emu, compile, output)
	if err != nil {
		log.Fatal(err)
	}
}

// checkFlags rejects flag combinations that have no meaning.
func checkFlags(nargs int, compile, depotDir, name string, save bool) error {
	if nargs != 0 && (len(compile) != 0 || len(name) != 0 || save) {
		return errors.New("-c, -n and -s cannot be used with listing arguments")
	}
	if len(depotDir) == 0 {
		if save {
			return errors.New("-s requires -d")
		}
		if len(name) != 0 {
			return errors.New("-n requires -d")
		}
	}
	return nil
}

// useDepot saves, fetches or lists depot programs. When done is set,
// there is nothing left to execute.
func useDepot(w io.Writer, depotDir, compile, name string, save, verbose bool, listing string) (fetched string, done bool, err error) {
	dp, err := depot.Open(depotDir)
	if err != nil {
		err = fmt.Errorf("%v: %w", depotDir, err)
		return
	}
	defer dp.Close()
	dp.Verbose = verbose

	fetched = listing

	switch {
	case save:
		if len(name) == 0 {
			name = filepath.Base(compile)
		}
		err = dp.Store(name, listing)
		if err != nil {
			err = fmt.Errorf("%v: %w", name, err)
		}
		done = true
	case len(compile) == 0 && len(name) != 0:
		fetched, err = dp.Fetch(name)
		if err != nil {
			err = fmt.Errorf("%v: %w", depotDir, err)
		}
	case len(compile) == 0:
		var names []string
		names, err = dp.Names()
		if err != nil {
			err = fmt.Errorf("%v: %w", depotDir, err)
			return
		}
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
		done = true
	}

	return
}

// execute runs the emulator, sending OUTPUT to a file or "-" for stdout,
// and reports the final state on stderr.
func execute(ctx context.Context, emu *emulator.Emulator, compile, output string) (err error) {
	if output == "-" {
		emu.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			return err
		}
		defer ouf.Close()
		emu.Output = ouf
	}

	err = emu.Reset()
	if err != nil {
		return fmt.Errorf("%v: %w", compile, err)
	}

	err = emu.Execute(ctx)
	report(os.Stderr, compile, emu.Status(), emu.Accumulator(), emu.DataMem())

	return
}

// runBatch runs each listing file on its own machine.
func runBatch(ctx context.Context, files []string, mem []int64, limit int) {
	var jobs []emulator.Job
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}
		jobs = append(jobs, emulator.Job{
			Name:      file,
			Listing:   string(data),
			Memory:    mem,
			StepLimit: limit,
		})
	}

	results, err := emulator.RunAll(ctx, jobs)
	if err != nil {
		log.Fatal(err)
	}

	for _, result := range results {
		for _, value := range result.Outputs {
			fmt.Printf("%v: "+emulator.OUTPUT_FORMAT, result.Name, value)
		}
		report(os.Stdout, result.Name, result.Status, result.Accumulator, result.Memory)
	}
}

// report prints the final machine state.
func report(w io.Writer, name string, status vm.Status, acc int64, mem []int64) {
	fmt.Fprintf(w, "%v: status=%v accumulator=%d memory=%v\n", name, status, acc, mem)
}
