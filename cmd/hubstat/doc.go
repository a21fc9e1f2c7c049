// Package main hosts the hubstat CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the fetch and classify pipeline against
// the configured data-status feed (or a saved response via --input) and
// presents the published table, its summary, the HTML report, or a long
// running HTTP server. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on presentation.
//
// Pipeline failures never fail a command: the table degrades to empty and a
// one-line notice names the failure kind. Only configuration, usage and I/O
// errors produce a non-zero exit.
package main
