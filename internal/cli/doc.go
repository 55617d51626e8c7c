// Package cli implements the recfmt command line. It parses flags and
// environment settings, builds the logger and converter, and maps failures
// to process exit codes. All conversion logic lives in package recfmt.
package cli
