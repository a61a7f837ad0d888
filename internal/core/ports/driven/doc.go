// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ItemStore: Holds the ingested bookmark, tab and history items
//   - ApproximateMatcher: Fuzzy text matching over haystack strings
//   - ConfigStore: Search configuration persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ProfileSource: Reads items from a browser profile. Without one,
//     the store simply stays empty for that browser.
//   - ProfileWatcher: Reports profile file changes. Without it, data is
//     only read once at startup.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
