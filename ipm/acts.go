package ipm

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mleithner/ca2/caspec"
)

var (
	actsSectionRe = regexp.MustCompile(`^\s*\[\s*([A-Za-z ]+?)\s*\]\s*$`)
	actsParamRe   = regexp.MustCompile(`^\s*([A-Za-z_][\w]*)\s*\([^)]*\)\s*:\s*(.+?)\s*$`)
)

// ParseACTS attempts to parse contents as an ACTS system-under-test
// file. It returns ok=false (not an error) when contents does not
// contain a recognizable [Parameter] section, so callers can fall
// through to the next format, mirroring original_source's
// try_parse_acts returning None.
func ParseACTS(contents string, strength uint8) (caspec.RequestedCA, bool) {
	var names []string
	var values [][]string
	var sizes []uint16
	sawParameterSection := false

	section := ""
	scanner := bufio.NewScanner(strings.NewReader(contents))
	for scanner.Scan() {
		line := scanner.Text()
		if m := actsSectionRe.FindStringSubmatch(line); m != nil {
			section = strings.ToLower(strings.TrimSpace(m[1]))
			switch section {
			case "constraint":
				fmt.Fprintln(os.Stderr, "ACTS Parser Warning: Constraints are unsupported.")
			case "test set":
				fmt.Fprintln(os.Stderr, "ACTS Parser Warning: Predefined test sets are unsupported.")
			case "relation":
				fmt.Fprintln(os.Stderr, "ACTS Parser Warning: Relations/VCAs are unsupported.")
			}
			continue
		}
		if section != "parameter" {
			continue
		}
		m := actsParamRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sawParameterSection = true
		names = append(names, m[1])
		var vals []string
		for _, v := range strings.Split(m[2], ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				vals = append(vals, v)
			}
		}
		values = append(values, vals)
		sizes = append(sizes, uint16(len(vals)))
	}

	if !sawParameterSection {
		return caspec.RequestedCA{}, false
	}

	req, err := caspec.NewRequestedCA(names, values, sizes, strength)
	if err != nil {
		return caspec.RequestedCA{}, false
	}
	return req, true
}
