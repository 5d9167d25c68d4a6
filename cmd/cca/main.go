// Command cca compresses a CA stored as a CSV file into a .cca payload
// plus a .ccmeta sidecar describing it, ready to be packaged by cmd/pca.
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/codec"
	"github.com/mleithner/ca2/intern"
)

// uint16List accumulates one value per repeated occurrence of a flag,
// mirroring clap's Vec<u16> multi-value argument (-vs 3 -vs 2 -vs 5).
type uint16List []uint16

func (l *uint16List) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

func (l *uint16List) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid value count %q: %w", s, err)
	}
	*l = append(*l, uint16(n))
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "cca: "+format+"\n", a...)
	os.Exit(1)
}

func main() {
	caFile := flag.String("ca", "", "path to the CA file (CSV)")
	strength := flag.Int("strength", 0, "required strength t")
	noHeader := flag.Bool("no-header", false, "the CSV file has no header line")
	var vs uint16List
	flag.Var(&vs, "vs", "a parameter value count v_i, in CSV column order; repeat once per column")
	flag.Parse()

	if *caFile == "" {
		fatalf("-ca is required")
	}
	if *strength < 2 || len(vs) < 2 || len(vs) < *strength {
		fatalf("invalid strength or parameter value counts")
	}
	if info, err := os.Stat(*caFile); err != nil || info.IsDir() {
		fatalf("CA file does not exist")
	}

	vsIn := []uint16(vs)
	vsOut := append([]uint16(nil), vsIn...)
	sortDescending(vsOut)

	columnMap, err := intern.ColumnMap(vsIn, vsOut)
	if err != nil {
		fatalf("%v", err)
	}

	ext := filepath.Ext(*caFile)
	base := strings.TrimSuffix(*caFile, ext)
	outCompressed := base + ".cca"
	outMeta := base + ".ccmeta"

	fmt.Printf("Opening %s for reading\n", *caFile)
	f, err := os.Open(*caFile)
	if err != nil {
		fatalf("%v", err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1
	if !*noHeader {
		if _, err := reader.Read(); err != nil {
			fatalf("reading header: %v", err)
		}
	}

	fmt.Printf("Opening %s for writing raw compressed CA data\n", outCompressed)
	fCompressed, err := os.Create(outCompressed)
	if err != nil {
		fatalf("%v", err)
	}
	defer fCompressed.Close()

	enc, err := codec.NewEncoder(caspec.Bzip2, vsOut)
	if err != nil {
		fatalf("%v", err)
	}

	tables := make([]*intern.Table, len(vsOut))
	for i := range tables {
		tables[i] = intern.NewTable()
	}

	var n uint64
	row := make([]uint16, len(vsOut))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fatalf("reading row %d: %v", n, err)
		}
		for outCol, inCol := range columnMap {
			v, err := tables[outCol].InternBounded(record[inCol], vsOut[outCol])
			if err != nil {
				fatalf("row %d, column %d: %v", n, outCol, err)
			}
			row[outCol] = v
		}
		if err := enc.WriteRow(row); err != nil {
			fatalf("%v", err)
		}
		n++
	}

	fmt.Println("Finalizing encoding...")
	data, err := enc.Finish()
	if err != nil {
		fatalf("%v", err)
	}
	bufCompressed := bufio.NewWriter(fCompressed)
	if _, err := bufCompressed.Write(data); err != nil {
		fatalf("%v", err)
	}
	if err := bufCompressed.Flush(); err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Successfully compressed %d rows, writing metadata...\n", n)
	spec, err := caspec.New(caspec.Bzip2, n, uint8(*strength), vsOut)
	if err != nil {
		fatalf("%v", err)
	}

	fMeta, err := os.Create(outMeta)
	if err != nil {
		fatalf("%v", err)
	}
	defer fMeta.Close()
	if _, err := fMeta.Write(caspec.SerializeCcmeta(spec)); err != nil {
		fatalf("%v", err)
	}
}

func sortDescending(vs []uint16) {
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j-1] < vs[j]; j-- {
			vs[j-1], vs[j] = vs[j], vs[j-1]
		}
	}
}
