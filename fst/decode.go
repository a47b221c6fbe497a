package fst

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"sync"
)

// Verbose, when set by the caller, makes Decode print the input
// model's per-symbol probability table to stderr before decoding
// starts.
var Verbose bool

// Seq is one observed DNA sequence to decode.
type Seq struct {
	Name  string
	Bases []Base
}

// Result is one decoded record: Symbols is empty (with a "no
// decoding" warning) when no path through the Machine explains the
// observation.
type Result struct {
	Name     string
	Symbols  string
	Warnings []Warning
}

// controlWeight assigns control symbols (frame/block markers) a
// 4^(-4*maxDupLen) weight relative to payload symbols: maxDupLen is
// typically about half a codeword's length, and a path that spends
// its matches on control characters rather than payload should be
// heavily disfavored relative to one that doesn't.
func controlWeight(maxDupLen int) float64 {
	return math.Pow(4, -4*float64(maxDupLen))
}

// Decode runs the joint Viterbi decoder over every observed sequence
// against machine/mutatorParams, returning decoded symbol strings in
// the same order as the input. Decoding a Machine whose contexts or
// output alphabet violate the core's preconditions fails fatally for
// the whole call with *InvalidMachineError; a single sequence
// admitting no decoding only produces a Warning, and decoding
// continues with the rest.
func Decode(machine Machine, mutatorParams *MutatorParams, observed []Seq) ([]Result, error) {
	inAlph := machine.InputAlphabet(InputAlphabetFlags{Relaxed: true, Control: true, EOF: true})
	inputModel := NewInputModel(machine, inAlph, 1.0, controlWeight(mutatorParams.MaxDupLen()))
	if Verbose {
		fmt.Fprintf(os.Stderr, "input model:\n%s", inputModel)
	}

	machineScores, err := NewMachineScores(machine, inputModel)
	if err != nil {
		return nil, err
	}
	mutatorScores := NewMutatorScores(mutatorParams)
	stateOrder := machine.DecoderToposort(inAlph)

	// Each observed sequence decodes independently of every other: the
	// per-sequence matrix, fill and traceback are self-contained, so a
	// bounded worker pool can decode them concurrently while a
	// pre-sized, index-addressed results slice keeps the output in
	// input order.
	results := make([]Result, len(observed))
	errs := make([]error, len(observed))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(observed) {
		workers = len(observed)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				obs := observed[i]
				matrix := NewMatrix(machine, machineScores, mutatorScores, obs.Bases)
				matrix.Fill(stateOrder)

				symbols, warnings, err := matrix.Traceback()
				if err != nil {
					errs[i] = err
					continue
				}

				if symbols == "" && matrix.Loglike() == negInf() {
					warnings = append(warnings, Warning{Message: "no valid Viterbi decoding found"})
				}
				for j := range warnings {
					warnings[j].Name = obs.Name
				}

				results[i] = Result{Name: obs.Name, Symbols: symbols, Warnings: warnings}
			}
		}()
	}
	for i := range observed {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
