// Package connectors provides implementations of the ProfileSource interface
// for the supported browser data sources. Each connector knows how to read
// searchable items out of a specific on-disk profile format (Chromium,
// Firefox, tab export files).
package connectors
