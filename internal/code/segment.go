package code

import "strconv"

// Segment is one position of a classification code.
// The zero value is Unknown, written "$". Digits 1 through 4 are the only
// other valid values.
type Segment uint8

// Unknown is the "$" segment. In the first position it names the category of
// isms lacking a subject; in positions 2-4 of a query it is a wildcard.
const Unknown Segment = 0

// MaxDigit is the largest digit a segment can hold.
const MaxDigit = 4

// Marker is the textual form of Unknown.
const Marker = "$"

// ParseSegment parses "1".."4" or "$". Anything else, including surrounding
// whitespace, is rejected.
func ParseSegment(s string) (Segment, bool) {
	if s == Marker {
		return Unknown, true
	}
	if len(s) != 1 || s[0] < '1' || s[0] > '0'+MaxDigit {
		return Unknown, false
	}
	return Segment(s[0] - '0'), true
}

// IsUnknown reports whether the segment is "$".
func (s Segment) IsUnknown() bool {
	return s == Unknown
}

// String returns "$" or the digit.
func (s Segment) String() string {
	if s.IsUnknown() {
		return Marker
	}
	return strconv.Itoa(int(s))
}
