package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingActionService is returned when the result action service is not provided.
var ErrMissingActionService = errors.New("tui: result action service is required")
