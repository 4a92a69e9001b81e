package code

// Match reports whether a record code satisfies a query.
//
// The first segment is compared exactly: a "$" query selects only subjectless
// records, and a digit query never selects them. Segments 2-4 treat a "$" in
// the query as a wildcard and otherwise require equality. A "$" in a record's
// segments 2-4 only matches a "$" or wildcard query segment.
func Match(query, record Code) bool {
	if query[0] != record[0] {
		return false
	}
	for i := 1; i < Width; i++ {
		if query[i].IsUnknown() {
			continue
		}
		if query[i] != record[i] {
			return false
		}
	}
	return true
}

// Matcher is a parsed query ready to test record codes.
// The zero value matches nothing.
type Matcher struct {
	query Code
	ok    bool
}

// NewMatcher parses query. A malformed query yields a Matcher that never matches.
func NewMatcher(query string) Matcher {
	q, err := Parse(query)
	if err != nil {
		return Matcher{}
	}
	return Matcher{query: q, ok: true}
}

// Valid reports whether the query parsed.
func (m Matcher) Valid() bool {
	return m.ok
}

// Matches parses a record code and tests it against the query.
// Malformed record codes never match.
func (m Matcher) Matches(recordCode string) bool {
	if !m.ok {
		return false
	}
	rc, err := Parse(recordCode)
	if err != nil {
		return false
	}
	return Match(m.query, rc)
}

// Filter returns the items whose code matches query, in their original order.
// A malformed query returns nil; items with malformed codes are skipped.
// Filter never mutates items.
func Filter[T any](query string, items []T, codeOf func(T) string) []T {
	matcher := NewMatcher(query)
	if !matcher.Valid() {
		return nil
	}

	var result []T
	for _, item := range items {
		if matcher.Matches(codeOf(item)) {
			result = append(result, item)
		}
	}
	return result
}
