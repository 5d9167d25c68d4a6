// Package ca2 is the root of a compressed covering-array archive
// toolchain.
//
// A covering array (CA) is a matrix of rows over k columns, parameterized
// by a strength t and a per-column value-count vector vs. This module
// compresses one CA's rows into a compact binary payload (package codec),
// packages several compressed CAs plus metadata into a single archive
// (package archive), and, given a parsed parameter model (package ipm),
// locates the smallest stored CA compatible with a request and
// reconstructs its rows (package selector).
//
// The on-disk descriptor for a single stored CA lives in package caspec.
// Three small command binaries (cmd/cca, cmd/pca, cmd/dca) wire these
// packages together: cca compresses a CSV CA into a (.cca, .ccmeta) pair,
// pca packages pairs into a .ca2 archive, and dca extracts rows from one
// or more archives as CSV.
package ca2
