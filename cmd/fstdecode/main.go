// Command fstdecode decodes a FASTA file of noisy DNA reads into the
// most likely input-symbol strings for a given transducer (Machine)
// and mutation model (MutatorParams).
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"

	"fstdecode/consensus"
	"fstdecode/fst"
	"fstdecode/io/fasta"
	"fstdecode/machinedef"
	"fstdecode/mutparams"
	"fstdecode/oligo/long"
)

var mfile = flag.String("m", "", "machine definition file")
var pfile = flag.String("p", "", "mutation-parameter file")
var forceLocal = flag.Bool("local", false, "force local alignment mode, overriding the parameter file")
var verbose = flag.Bool("v", false, "verbose: print traceback diagnostics (substitutions/deletions/duplications)")
var profname = flag.String("prof", "", "CPU profile filename")
var parity = flag.Int("parity", 0, "number of parity replicates per group; records named NAME/0..NAME/K-1 are combined with Reed-Solomon before being reported (0 disables grouping)")
var prime5 = flag.String("5prime", "", "5' primer sequence to cut before decoding (requires -3prime)")
var prime3 = flag.String("3prime", "", "3' primer sequence to cut before decoding (requires -5prime)")
var primerErrors = flag.Int("primererrors", 2, "mismatches/indels tolerated when locating a primer")

func main() {
	flag.Parse()

	if *mfile == "" || *pfile == "" || flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: fstdecode -m machine.def -p mutparams.def in.fasta out.fasta\n")
		os.Exit(1)
	}

	machine, err := machinedef.Load(*mfile)
	if err != nil {
		fmt.Printf("Error loading machine: %v\n", err)
		os.Exit(1)
	}

	mutatorParams, err := mutparams.Load(*pfile)
	if err != nil {
		fmt.Printf("Error loading mutation parameters: %v\n", err)
		os.Exit(1)
	}
	forceLocalSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "local" {
			forceLocalSet = true
		}
	})
	if forceLocalSet {
		mutatorParams.Local = *forceLocal
	}

	if *profname != "" {
		f, err := os.Create(*profname)
		if err != nil {
			fmt.Printf("Error creating '%s': %v\n", *profname, err)
			os.Exit(1)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("can't start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	records, err := fasta.Read(flag.Arg(0), false)
	if err != nil {
		fmt.Printf("Can't parse input: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%d records\n", len(records))

	var p5, p3 *long.Oligo
	if (*prime5 == "") != (*prime3 == "") {
		fmt.Printf("-5prime and -3prime must be given together\n")
		os.Exit(1)
	}
	if *prime5 != "" {
		var ok bool
		p5, ok = long.FromString(*prime5)
		if !ok {
			fmt.Printf("Invalid -5prime sequence: %q\n", *prime5)
			os.Exit(1)
		}
		p3, ok = long.FromString(*prime3)
		if !ok {
			fmt.Printf("Invalid -3prime sequence: %q\n", *prime3)
			os.Exit(1)
		}
	}

	observed := make([]fst.Seq, len(records))
	for i, rec := range records {
		seq := rec.Seq
		if p5 != nil {
			trimmed, ok := fasta.TrimPrimers(seq, p5, p3, *primerErrors)
			if !ok {
				fmt.Fprintf(os.Stderr, "warning: %s: primers not found, decoding untrimmed\n", rec.Name)
			} else {
				seq = trimmed
			}
		}
		if !fasta.GCBalanced(seq) {
			fmt.Fprintf(os.Stderr, "warning: %s: GC content outside the synthesizable 40-60%% range\n", rec.Name)
		}

		bases := make([]fst.Base, seq.Len())
		for j := 0; j < seq.Len(); j++ {
			bases[j] = fst.Base(seq.At(j))
		}
		observed[i] = fst.Seq{Name: rec.Name, Bases: bases}
	}

	fst.Verbose = *verbose
	results, err := fst.Decode(machine, mutatorParams, observed)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	out := make([]fasta.TextRecord, len(results))
	var decoded, empty int
	for i, r := range results {
		for _, w := range r.Warnings {
			if *verbose || r.Symbols == "" {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
			}
		}
		if r.Symbols == "" {
			empty++
		} else {
			decoded++
		}
		out[i] = fasta.TextRecord{Name: r.Name, Seq: r.Symbols}
	}

	if *parity > 0 {
		out = combineGroups(out, *parity)
	}

	if err := fasta.WriteText(flag.Arg(1), out); err != nil {
		fmt.Printf("Error creating the file: %s: %v\n", flag.Arg(1), err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "%d decoded, %d empty, %d total\n", decoded, empty, len(results))
}

// combineGroups collects records whose name has the form "group/index"
// (index in [0, parity+dataShards)) and replaces each such group with a
// single record recovered by consensus.Combine; records that don't
// match the pattern pass through unchanged. The result preserves the
// input's record order: a combined group takes the position of its
// first-seen member, and a group that fails to combine emits its
// original members back at their own original positions, rather than
// moving every group to the front of the output.
func combineGroups(recs []fasta.TextRecord, parityShards int) []fasta.TextRecord {
	type member struct {
		idx     int
		seq     string
		origPos int
	}
	type placed struct {
		pos int
		rec fasta.TextRecord
	}

	groups := make(map[string][]member)
	var order []string
	var out []placed

	for i, r := range recs {
		slash := strings.LastIndexByte(r.Name, '/')
		if slash < 0 {
			out = append(out, placed{pos: i, rec: r})
			continue
		}
		name, idxStr := r.Name[:slash], r.Name[slash+1:]
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			out = append(out, placed{pos: i, rec: r})
			continue
		}
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], member{idx: idx, seq: r.Seq, origPos: i})
	}

	for _, name := range order {
		members := groups[name]
		firstPos := members[0].origPos
		for _, mm := range members {
			if mm.origPos < firstPos {
				firstPos = mm.origPos
			}
		}

		n := 0
		for _, mm := range members {
			if mm.idx+1 > n {
				n = mm.idx + 1
			}
		}
		maxLen := 0
		for _, mm := range members {
			if len(mm.seq) > maxLen {
				maxLen = len(mm.seq)
			}
		}

		shards := make([]consensus.Shard, n)
		for _, mm := range members {
			data := make([]byte, maxLen)
			copy(data, mm.seq)
			shards[mm.idx] = consensus.Shard{Data: data, Present: mm.seq != ""}
		}

		message, _, recovered, err := consensus.Combine(consensus.Group{Name: name, Shards: shards, ParityShards: parityShards})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: group %q: %v\n", name, err)
			for _, mm := range members {
				out = append(out, placed{pos: mm.origPos, rec: fasta.TextRecord{Name: name + "/" + strconv.Itoa(mm.idx), Seq: mm.seq}})
			}
			continue
		}
		if !recovered {
			fmt.Fprintf(os.Stderr, "warning: group %q: recovered message failed parity verification\n", name)
		}
		out = append(out, placed{pos: firstPos, rec: fasta.TextRecord{Name: name, Seq: strings.TrimRight(string(message), "\x00")}})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })

	result := make([]fasta.TextRecord, len(out))
	for i, p := range out {
		result[i] = p.rec
	}
	return result
}
