package driven

// MatchOptions tunes a single approximate matching pass.
type MatchOptions struct {
	// Tolerance is the number of extra characters allowed between the
	// first and last matched character. Matches needing more are dropped.
	Tolerance int

	// TypoTolerance additionally tries one-character-deletion variants
	// of the term. Variant matches are charged one extra insertion.
	TypoTolerance bool
}

// ApproximateHit is one haystack entry accepted by the matcher.
type ApproximateHit struct {
	// Index is the haystack position of the matched string.
	Index int

	// Insertions counts unmatched characters between the first and last
	// matched character. Zero means the term appears contiguously.
	Insertions int

	// Positions are the matched byte offsets within the haystack string,
	// ascending.
	Positions []int
}

// ApproximateMatcher finds haystack strings that approximately contain a
// term. Matching is case-insensitive.
type ApproximateMatcher interface {
	// Match returns hits for every haystack string that matches the term
	// within the given options, in ascending haystack order.
	Match(term string, haystack []string, opts MatchOptions) ([]ApproximateHit, error)
}
