// Command dca extracts the smallest stored CA compatible with a given
// parameter model and strength from one or more archives, writing its
// rows as CSV.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mleithner/ca2/archive"
	"github.com/mleithner/ca2/errs"
	"github.com/mleithner/ca2/ipm"
	"github.com/mleithner/ca2/selector"
)

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "dca: "+format+"\n", a...)
	os.Exit(1)
}

func main() {
	ipmPath := flag.String("ipm", "", "the input parameter model file (an ACTS or CTWedge file)")
	flag.StringVar(ipmPath, "i", *ipmPath, "shorthand for -ipm")
	output := flag.String("output", "", "path to the output CSV file; stdout if omitted")
	flag.StringVar(output, "o", *output, "shorthand for -output")
	strength := flag.Int("t", 0, "the required strength of CA")
	noHeader := flag.Bool("no-header", false, "disable the CSV header line")
	flag.Parse()

	if *ipmPath == "" {
		fatalf("-ipm is required")
	}
	archivePaths := flag.Args()
	if len(archivePaths) == 0 {
		fatalf("%v", errs.ErrNoInputFiles)
	}

	contents, err := os.ReadFile(*ipmPath)
	if err != nil {
		fatalf("unable to read the parameter model file: %v", err)
	}
	requestedCA, err := ipm.Parse(string(contents), uint8(*strength))
	if err != nil {
		fatalf("%v", err)
	}

	var archives []*archive.Archive
	for _, p := range archivePaths {
		a, err := archive.Open(p)
		if err != nil {
			fatalf("%v", err)
		}
		defer a.Close()
		archives = append(archives, a)
	}

	best, err := selector.Select(requestedCA.CASpec, selector.Candidates(archives))
	if err != nil {
		fmt.Fprintln(os.Stderr, "No compatible CA found in archives.")
		return
	}

	out, closeOut, err := setupOutput(*output)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeOut()

	rs, err := selector.OpenRowStream(best, requestedCA)
	if err != nil {
		fatalf("%v", err)
	}
	if err := selector.WriteCSV(out, rs, requestedCA, !*noHeader); err != nil {
		fatalf("%v", err)
	}

	fmt.Fprintf(os.Stderr, "Decompressed CA with %d rows.\n", best.Entry.Spec.N)
}

func setupOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	w := bufio.NewWriter(f)
	return w, func() { w.Flush(); f.Close() }, nil
}
