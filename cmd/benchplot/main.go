// Command benchplot draws PNG charts from the CSV files written by the
// multithreaded n-gram benchmark.
//
//	benchplot render results/thread_scaling_2gram.csv
//	benchplot render --summary results/workload_2gram_t8.csv
//	benchplot speedup 2 8
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
