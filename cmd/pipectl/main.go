// Package main provides the pipectl command line tool.
// pipectl verifies and exercises the 5-stage pipeline control engine:
// it can model-check the engine's invariants, print the control dependency
// graph's level schedule, report the minimized control equations, and
// replay instruction traces.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sarchlab/pipectl/cdg"
	"github.com/sarchlab/pipectl/insts"
	"github.com/sarchlab/pipectl/sop"
	"github.com/sarchlab/pipectl/timing"
	"github.com/sarchlab/pipectl/verif"
)

var (
	verify   = flag.Bool("verify", false, "Model-check the engine invariants")
	levels   = flag.Bool("levels", false, "Print the CDG level schedule")
	minimize = flag.Bool("minimize", false, "Print minimized two-level control equations")
	maxCex   = flag.Int("max-counterexamples", 10, "Counterexamples to report before stopping")
	verbose  = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	ran := false
	ok := true

	if *levels {
		ran = true
		if err := printLevels(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			ok = false
		}
	}

	if *minimize {
		ran = true
		printMinimized()
	}

	if *verify {
		ran = true
		if !runVerify() {
			ok = false
		}
	}

	if flag.NArg() > 0 {
		ran = true
		if err := replayTrace(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			ok = false
		}
	}

	if !ran {
		fmt.Fprintf(os.Stderr, "Usage: pipectl [options] [trace-file]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if !ok {
		os.Exit(1)
	}
}

// printLevels validates the engine's control dependency graph and prints
// its signals grouped by evaluation level.
func printLevels() error {
	graph := cdg.EngineGraph()

	levelOf, err := graph.Levels()
	if err != nil {
		return err
	}

	byLevel := map[int][]string{}
	max := 0
	for sig, l := range levelOf {
		byLevel[l] = append(byLevel[l], string(sig))
		if l > max {
			max = l
		}
	}

	for l := 0; l <= max; l++ {
		names := byLevel[l]
		sort.Strings(names)
		fmt.Printf("Level %d: %s\n", l, strings.Join(names, ", "))
	}

	steps, err := graph.CriticalPathLength()
	if err != nil {
		return err
	}
	fmt.Printf("Critical path: %d steps\n", steps)

	return nil
}

// printMinimized reports the main-control truth table reduced to two-level
// sum-of-products form, one equation per control enable.
func printMinimized() {
	names := sop.ControlInputNames()
	for _, expr := range sop.ControlExpressions() {
		fmt.Println(expr.String(names))
		if *verbose {
			literals := 0
			for _, t := range expr.Terms {
				literals += t.Literals(sop.NumControlInputs)
			}
			fmt.Printf("  %d term(s), %d literal(s)\n", len(expr.Terms), literals)
		}
	}
}

// runVerify sweeps the input space against the engine invariants and the
// two-cycle load-use property. Returns false if any counterexample exists.
func runVerify() bool {
	checker := verif.NewChecker()
	checker.MaxCounterexamples = *maxCex

	found := checker.Run()
	found = append(found, checker.CheckLoadUseResolution()...)

	if len(found) == 0 {
		fmt.Println("All invariants hold.")
		return true
	}

	for _, cex := range found {
		fmt.Fprintf(os.Stderr, "Violation: %s\n", cex)
	}
	fmt.Fprintf(os.Stderr, "%d counterexample(s) found.\n", len(found))
	return false
}

// replayTrace runs a trace file through the reference driver and prints
// the accumulated control statistics. Each line holds one hex instruction
// word, optionally followed by 0/1 for the branch comparator outcome.
// Blank lines and '#' comments are skipped.
func replayTrace(path string) error {
	trace, err := loadTrace(path)
	if err != nil {
		return err
	}

	stats, err := timing.Replay(trace)
	if err != nil {
		return fmt.Errorf("replaying %s: %w", path, err)
	}

	fmt.Printf("Trace: %s\n", path)
	fmt.Printf("Cycles: %d\n", stats.Cycles)
	fmt.Printf("Instructions: %d\n", stats.Instructions)
	fmt.Printf("Stalls: %d\n", stats.Stalls)
	fmt.Printf("Flushes: %d\n", stats.Flushes)
	fmt.Printf("Forwards: %d\n", stats.Forwards)
	if *verbose {
		fmt.Printf("CPI: %.3f\n", stats.CPI())
	}

	return nil
}

func loadTrace(path string) ([]timing.TraceEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer file.Close()

	decoder := insts.NewDecoder()
	var trace []timing.TraceEntry

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		word, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
		}

		entry := timing.TraceEntry{Inst: decoder.Decode(uint32(word))}
		if len(fields) > 1 && fields[1] == "1" {
			entry.ZeroFlag = true
		}
		trace = append(trace, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	return trace, nil
}
