// Package report renders scan results for the command line.
//
// Three formats are supported: styled text for terminals, and JSON or YAML
// for tooling. Structured formats keep repositories in scan order.
package report
