// Package domain defines the core business entities for Omnibar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchItem: A searchable entry with precomputed match fields
//   - SearchConfig: Validated tuning knobs for matching and scoring
//   - Result: A scored search hit with highlight ranges
//   - SearchMode / Dataset: Which item collections a query spans
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
