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
	ctwedgeModelRe      = regexp.MustCompile(`(?i)^\s*Model\s+[A-Za-z_]\w*\s*$`)
	ctwedgeParamsHdrRe  = regexp.MustCompile(`(?i)^\s*Parameters\s*:\s*$`)
	ctwedgeConstrHdrRe  = regexp.MustCompile(`(?i)^\s*Constraints\s*:\s*$`)
	ctwedgeEnumParamRe  = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*:\s*\[(.+)\]\s*$`)
	ctwedgeBoolParamRe  = regexp.MustCompile(`(?i)^\s*([A-Za-z_]\w*)\s*:\s*Boolean\s*$`)
	ctwedgeRangeParamRe = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*:\s*\[[^\]]*\.\.[^\]]*\]\s*$`)
)

// ParseCTWedge attempts to parse contents as a CTWedge model file. It
// returns ok=false when no "Model" header is found, mirroring
// original_source's try_parse_ctwedge returning None for non-CTWedge
// input.
func ParseCTWedge(contents string, strength uint8) (caspec.RequestedCA, bool) {
	var names []string
	var values [][]string
	var sizes []uint16
	sawModel := false
	inParameters := false

	scanner := bufio.NewScanner(strings.NewReader(contents))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if ctwedgeModelRe.MatchString(line) {
			sawModel = true
			continue
		}
		if ctwedgeParamsHdrRe.MatchString(line) {
			inParameters = true
			continue
		}
		if ctwedgeConstrHdrRe.MatchString(line) {
			inParameters = false
			fmt.Fprintln(os.Stderr, "CTWedge Parser Warning: Constraints are unsupported.")
			continue
		}
		if !inParameters {
			continue
		}

		if m := ctwedgeRangeParamRe.FindStringSubmatch(line); m != nil {
			// original_source's Rule::range is unimplemented; we skip the
			// parameter rather than aborting the whole model.
			fmt.Fprintf(os.Stderr, "CTWedge Parser Warning: range notation for %q is unsupported, skipping.\n", m[1])
			continue
		}
		if m := ctwedgeEnumParamRe.FindStringSubmatch(line); m != nil {
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
			continue
		}
		if m := ctwedgeBoolParamRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
			values = append(values, []string{"true", "false"})
			sizes = append(sizes, 2)
			continue
		}
	}

	if !sawModel || len(names) == 0 {
		return caspec.RequestedCA{}, false
	}

	req, err := caspec.NewRequestedCA(names, values, sizes, strength)
	if err != nil {
		return caspec.RequestedCA{}, false
	}
	return req, true
}
