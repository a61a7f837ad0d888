package search

import "errors"

// ErrNoSearchService is returned when a search runs without a service.
var ErrNoSearchService = errors.New("search service not available")

// ErrNoActionService is returned when an action runs without a service.
var ErrNoActionService = errors.New("result action service not available")
