// Command pca packages one or more compressed CAs (.cca/.ccmeta pairs
// produced by cmd/cca) into a single archive, optionally prepended by an
// arbitrary blob (e.g. a self-extracting stub).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mleithner/ca2/archive"
	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
)

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "pca: "+format+"\n", a...)
	os.Exit(1)
}

func main() {
	output := flag.String("o", "", "the output archive file")
	prepend := flag.String("p", "", "an optional file to place at the beginning of the output")
	flag.Parse()

	if *output == "" {
		fatalf("-o is required")
	}
	if info, err := os.Stat(*output); err == nil && !info.IsDir() {
		fatalf("%v: %s", errs.ErrOutputExists, *output)
	}

	pairs, err := pairInputFiles(flag.Args())
	if err != nil {
		fatalf("%v", err)
	}
	if len(pairs) == 0 {
		fatalf("%v", errs.ErrNoInputFiles)
	}

	fmt.Println("Parsing CA specifications...")
	payloads := make([]archive.Payload, 0, len(pairs))
	for _, p := range pairs {
		spec, err := readCcmeta(p.ccmeta)
		if err != nil {
			fatalf("%v", err)
		}
		data, err := os.ReadFile(p.cca)
		if err != nil {
			fatalf("%v", err)
		}
		payloads = append(payloads, archive.Payload{Spec: spec, Data: data})
	}

	var prependData []byte
	if *prepend != "" {
		fmt.Println("Prepending file...")
		prependData, err = os.ReadFile(*prepend)
		if err != nil {
			fatalf("%v", err)
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		fatalf("%v", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	fmt.Println("Reordering CAs by size and writing archive...")
	if err := archive.Write(w, prependData, payloads); err != nil {
		fatalf("%v", err)
	}
	if err := w.Flush(); err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Finished writing archive %s\n", *output)
}

type pair struct {
	ccmeta string
	cca    string
}

// pairInputFiles matches each .ccmeta in files to its .cca sibling by
// shared file stem (order-independent), mirroring original_source's
// ccmeta/cca pairing in pca.rs::parse_commandline.
func pairInputFiles(files []string) ([]pair, error) {
	var pairs []pair
	for _, f := range files {
		if strings.ToLower(filepath.Ext(f)) != ".ccmeta" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("metadata file %s does not exist", f)
		}
		stem := strings.TrimSuffix(f, filepath.Ext(f))
		cca := findSibling(files, stem, ".cca")
		if cca == "" {
			return nil, fmt.Errorf("%w: %s has no matching .cca file", errs.ErrMissingPair, f)
		}
		if _, err := os.Stat(cca); err != nil {
			return nil, fmt.Errorf("compressed CA file %s does not exist", cca)
		}
		pairs = append(pairs, pair{ccmeta: f, cca: cca})
	}
	return pairs, nil
}

func findSibling(files []string, stem, ext string) string {
	for _, f := range files {
		if strings.ToLower(filepath.Ext(f)) == ext && strings.TrimSuffix(f, filepath.Ext(f)) == stem {
			return f
		}
	}
	return ""
}

func readCcmeta(path string) (caspec.CASpec, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return caspec.CASpec{}, err
	}
	return caspec.DeserializeCcmeta(buf)
}
