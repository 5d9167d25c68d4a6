// Package ipm ingests external parameter-model file formats (ACTS and
// CTWedge system-under-test descriptions) into caspec.RequestedCA
// values. Parsing these formats is explicitly out of scope for the core
// covering-array engine (spec.md §1); this package is the concrete
// "single callable per format" the core's dispatcher contract expects
// (spec.md §6.4).
package ipm

import (
	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
)

// Parse tries each supported parameter-model format in turn — ACTS,
// then CTWedge — returning the first one that recognizes contents.
// Mirrors original_source/src/bin/dca.rs::parse_request's fallback
// order.
func Parse(contents string, strength uint8) (caspec.RequestedCA, error) {
	if req, ok := ParseACTS(contents, strength); ok {
		return req, nil
	}
	if req, ok := ParseCTWedge(contents, strength); ok {
		return req, nil
	}
	return caspec.RequestedCA{}, errs.ErrUnrecognizedModel
}
