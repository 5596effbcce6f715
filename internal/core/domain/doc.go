// Package domain defines the core entities for i18nscout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: A repository owned by the scanned user
//   - FileEntry: One entry of a repository tree
//   - FileContent: Decoded text of a candidate file
//   - ScanResult: Confirmed translation files per repository
//   - ScanReport: A ScanResult plus failures and counters for one run
//   - Verdict: Outcome of a content classification
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
